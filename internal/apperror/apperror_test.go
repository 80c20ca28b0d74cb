package apperror

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestError_Message(t *testing.T) {
	t.Parallel()

	t.Run("without cause the message stands alone", func(t *testing.T) {
		t.Parallel()
		err := New(NotFound, "mail type is not configured")
		if err.Error() != "mail type is not configured" {
			t.Fatalf("unexpected message: %q", err.Error())
		}
	})

	t.Run("with cause the message carries the cause text", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("permission denied")
		err := New(InternalServerError, "failed to read the address book").WithCause(cause)
		if err.Error() != "failed to read the address book: permission denied" {
			t.Fatalf("unexpected message: %q", err.Error())
		}
	})

	t.Run("formatted constructor interpolates arguments", func(t *testing.T) {
		t.Parallel()
		err := Newf(NotFound, "no address registered for %q", "Bob")
		if err.Error() != `no address registered for "Bob"` {
			t.Fatalf("unexpected message: %q", err.Error())
		}
	})
}

func TestError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := fs.ErrNotExist
	err := New(InternalServerError, "failed to read file").WithCause(fmt.Errorf("open: %w", cause))

	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected errors.Is to reach the wrapped cause")
	}
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{
			name: "direct error reports its kind",
			err:  New(UnprocessableEntity, "bad template"),
			want: UnprocessableEntity,
		},
		{
			name: "wrapped error is still classified",
			err:  fmt.Errorf("loading: %w", New(NotFound, "missing")),
			want: NotFound,
		},
		{
			name: "foreign error defaults to internal",
			err:  errors.New("boom"),
			want: InternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := KindOf(tt.err); got != tt.want {
				t.Fatalf("KindOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHintOf(t *testing.T) {
	t.Parallel()

	err := New(UnavailableForLegalReasons, "subject is empty").WithHint("set a non-empty subject template")
	if got := HintOf(err); got != "set a non-empty subject template" {
		t.Fatalf("HintOf() = %q", got)
	}
	if got := HintOf(errors.New("boom")); got != "" {
		t.Fatalf("expected empty hint for foreign error, got %q", got)
	}
}
