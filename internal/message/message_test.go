package message

import (
	"errors"
	"testing"
	"time"

	"github.com/example/mail-composer/internal/apperror"
)

func TestParseAddress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "plain address", input: "alice@example.com", wantErr: false},
		{name: "at sign alone is enough", input: "@", wantErr: false},
		{name: "unicode local part", input: "田中@example.jp", wantErr: false},
		{name: "missing at sign", input: "not-an-email", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			addr, err := ParseAddress(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAddress(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				if apperror.KindOf(err) != apperror.UnavailableForLegalReasons {
					t.Fatalf("unexpected kind: %q", apperror.KindOf(err))
				}
				return
			}
			if addr.String() != tt.input {
				t.Fatalf("String() = %q, want the input back", addr.String())
			}
		})
	}
}

func TestNewSubject(t *testing.T) {
	t.Parallel()

	t.Run("keeps the text verbatim", func(t *testing.T) {
		t.Parallel()
		s, err := NewSubject("  [Dev] start 09:30  ")
		if err != nil {
			t.Fatalf("NewSubject returned error: %v", err)
		}
		if s.String() != "  [Dev] start 09:30  " {
			t.Fatalf("subject was altered: %q", s.String())
		}
	})

	t.Run("rejects whitespace-only input", func(t *testing.T) {
		t.Parallel()
		for _, input := range []string{"", "   ", "\t\n"} {
			if _, err := NewSubject(input); err == nil {
				t.Fatalf("expected error for %q", input)
			}
		}
	})
}

func TestBody_CRLF(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "single newline", input: "line1\nline2", want: "line1\r\nline2"},
		{name: "no newline", input: "one line", want: "one line"},
		{name: "empty body", input: "", want: ""},
		{name: "trailing newline", input: "done\n", want: "done\r\n"},
		// The replacement is unconditional; pre-normalized input doubles up.
		{name: "existing crlf doubles", input: "a\r\nb", want: "a\r\r\nb"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NewBody(tt.input).CRLF(); got != tt.want {
				t.Fatalf("CRLF() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewWorkTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "morning", input: "09:30", wantErr: false},
		{name: "sentinel accepted", input: "--:--", wantErr: false},
		{name: "no range check", input: "99:99", wantErr: false},
		{name: "too short", input: "9:30", wantErr: true},
		{name: "too long", input: "09:30:00", wantErr: true},
		{name: "colon misplaced", input: "0930:", wantErr: true},
		{name: "two colons", input: "0:3:0", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			wt, err := NewWorkTime(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewWorkTime(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && wt.String() != tt.input {
				t.Fatalf("String() = %q, want %q", wt.String(), tt.input)
			}
		})
	}

	t.Run("shape violations report the input", func(t *testing.T) {
		t.Parallel()
		_, err := NewWorkTime("later")
		var appErr *apperror.Error
		if !errors.As(err, &appErr) {
			t.Fatalf("expected *apperror.Error, got %T", err)
		}
		if appErr.Kind != apperror.UnavailableForLegalReasons {
			t.Fatalf("unexpected kind: %q", appErr.Kind)
		}
	})
}

func TestNow(t *testing.T) {
	t.Parallel()

	clock := func() time.Time {
		return time.Date(2025, time.March, 14, 9, 5, 59, 0, time.Local)
	}
	if got := Now(clock).String(); got != "09:05" {
		t.Fatalf("Now() = %q, want %q", got, "09:05")
	}
}

func TestWorkTimeRange_String(t *testing.T) {
	t.Parallel()

	start, err := NewWorkTime("09:00")
	if err != nil {
		t.Fatalf("NewWorkTime: %v", err)
	}
	end, err := NewWorkTime("18:00")
	if err != nil {
		t.Fatalf("NewWorkTime: %v", err)
	}

	r := NewWorkTimeRange(start, end)
	if r.String() != "09:00-18:00" {
		t.Fatalf("String() = %q", r.String())
	}

	sentinel := NewWorkTimeRange(SentinelWorkTime(), end)
	if sentinel.String() != "--:---18:00" {
		t.Fatalf("sentinel range = %q", sentinel.String())
	}
}

func TestDraft(t *testing.T) {
	t.Parallel()

	mustAddr := func(s string) Address {
		t.Helper()
		a, err := ParseAddress(s)
		if err != nil {
			t.Fatalf("ParseAddress(%q): %v", s, err)
		}
		return a
	}

	t.Run("joins recipients in order", func(t *testing.T) {
		t.Parallel()
		subject, _ := NewSubject("hello")
		draft := NewDraft(
			[]Address{mustAddr("b@x"), mustAddr("a@x")},
			[]Address{mustAddr("c@x")},
			subject,
			NewBody("body"),
		)
		if draft.ToLine() != "b@x,a@x" {
			t.Fatalf("ToLine() = %q", draft.ToLine())
		}
		if draft.CcLine() != "c@x" {
			t.Fatalf("CcLine() = %q", draft.CcLine())
		}
	})

	t.Run("empty recipient lists render empty", func(t *testing.T) {
		t.Parallel()
		subject, _ := NewSubject("hello")
		draft := NewDraft(nil, nil, subject, NewBody(""))
		if draft.ToLine() != "" || draft.CcLine() != "" {
			t.Fatalf("expected empty lines, got to=%q cc=%q", draft.ToLine(), draft.CcLine())
		}
	})

	t.Run("accessors copy the slices", func(t *testing.T) {
		t.Parallel()
		subject, _ := NewSubject("hello")
		to := []Address{mustAddr("a@x")}
		draft := NewDraft(to, nil, subject, NewBody(""))
		got := draft.To()
		got[0] = mustAddr("mutated@x")
		if draft.ToLine() != "a@x" {
			t.Fatalf("draft was mutated through accessor: %q", draft.ToLine())
		}
	})
}
