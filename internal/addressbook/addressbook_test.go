package addressbook

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/example/mail-composer/internal/apperror"
)

func writeBook(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "address_book.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write address book: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("loads unique entries", func(t *testing.T) {
		t.Parallel()
		path := writeBook(t, `[
			{"name": "Alice", "address": "alice@example.com"},
			{"name": "Bob", "address": "bob@example.com"}
		]`)
		book, err := Load(path)
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}
		if book.Len() != 2 {
			t.Fatalf("Len() = %d, want 2", book.Len())
		}
		names := book.Names()
		if len(names) != 2 || names[0] != "Alice" || names[1] != "Bob" {
			t.Fatalf("Names() = %v", names)
		}
	})

	t.Run("missing file is an internal error", func(t *testing.T) {
		t.Parallel()
		_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
		if err == nil {
			t.Fatalf("expected error for missing file")
		}
		if apperror.KindOf(err) != apperror.InternalServerError {
			t.Fatalf("unexpected kind: %q", apperror.KindOf(err))
		}
	})

	t.Run("malformed JSON is an input-shape violation", func(t *testing.T) {
		t.Parallel()
		_, err := Load(writeBook(t, `{"not": "an array"}`))
		if err == nil {
			t.Fatalf("expected error for malformed JSON")
		}
		if apperror.KindOf(err) != apperror.UnavailableForLegalReasons {
			t.Fatalf("unexpected kind: %q", apperror.KindOf(err))
		}
	})

	t.Run("duplicate names are rejected at load time", func(t *testing.T) {
		t.Parallel()
		_, err := Load(writeBook(t, `[
			{"name": "Alice", "address": "a@x"},
			{"name": "Alice", "address": "a@y"}
		]`))
		if err == nil {
			t.Fatalf("expected error for duplicate name")
		}
		if apperror.KindOf(err) != apperror.UnavailableForLegalReasons {
			t.Fatalf("unexpected kind: %q", apperror.KindOf(err))
		}
	})

	t.Run("invalid address is accepted at load time", func(t *testing.T) {
		t.Parallel()
		book, err := Load(writeBook(t, `[{"name": "Alice", "address": "not-an-email"}]`))
		if err != nil {
			t.Fatalf("Load should not validate addresses: %v", err)
		}
		_, err = book.Resolve("Alice")
		if err == nil {
			t.Fatalf("expected resolve-time failure for invalid address")
		}
		if apperror.KindOf(err) != apperror.UnavailableForLegalReasons {
			t.Fatalf("unexpected kind: %q", apperror.KindOf(err))
		}
	})
}

func TestBook_Resolve(t *testing.T) {
	t.Parallel()

	book, err := Load(writeBook(t, `[
		{"name": "Alice", "address": "alice@example.com"},
		{"name": "Bob", "address": "bob@example.com"},
		{"name": "Carol", "address": "carol@example.com"}
	]`))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	t.Run("hit returns the stored address", func(t *testing.T) {
		t.Parallel()
		addr, err := book.Resolve("Alice")
		if err != nil {
			t.Fatalf("Resolve returned error: %v", err)
		}
		if addr.String() != "alice@example.com" {
			t.Fatalf("Resolve() = %q", addr.String())
		}
	})

	t.Run("lookup is case sensitive", func(t *testing.T) {
		t.Parallel()
		if _, err := book.Resolve("alice"); apperror.KindOf(err) != apperror.NotFound {
			t.Fatalf("expected NotFound for %q, got %v", "alice", err)
		}
	})

	t.Run("miss names the missing key", func(t *testing.T) {
		t.Parallel()
		_, err := book.Resolve("Mallory")
		if apperror.KindOf(err) != apperror.NotFound {
			t.Fatalf("unexpected kind: %q", apperror.KindOf(err))
		}
		if got := err.Error(); got != `no address registered for "Mallory"` {
			t.Fatalf("unexpected message: %q", got)
		}
	})

	t.Run("batch resolution follows input order", func(t *testing.T) {
		t.Parallel()
		addrs, err := book.ResolveMany([]string{"Carol", "Alice", "Carol"})
		if err != nil {
			t.Fatalf("ResolveMany returned error: %v", err)
		}
		got := []string{addrs[0].String(), addrs[1].String(), addrs[2].String()}
		want := []string{"carol@example.com", "alice@example.com", "carol@example.com"}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("ResolveMany order mismatch: got %v, want %v", got, want)
			}
		}
	})

	t.Run("batch resolution fails fast without partial results", func(t *testing.T) {
		t.Parallel()
		addrs, err := book.ResolveMany([]string{"Alice", "Mallory", "Bob"})
		if err == nil {
			t.Fatalf("expected error for unknown name")
		}
		if addrs != nil {
			t.Fatalf("expected no partial results, got %v", addrs)
		}
	})

	t.Run("empty input resolves to an empty list", func(t *testing.T) {
		t.Parallel()
		addrs, err := book.ResolveMany(nil)
		if err != nil {
			t.Fatalf("ResolveMany returned error: %v", err)
		}
		if len(addrs) != 0 {
			t.Fatalf("expected empty result, got %v", addrs)
		}
	})
}

func TestSource(t *testing.T) {
	t.Parallel()

	t.Run("defers load errors to resolution time", func(t *testing.T) {
		t.Parallel()
		source := NewSource(filepath.Join(t.TempDir(), "absent.json"))
		_, err := source.ResolveMany([]string{"Alice"})
		if apperror.KindOf(err) != apperror.InternalServerError {
			t.Fatalf("unexpected kind: %q", apperror.KindOf(err))
		}
	})

	t.Run("caches the directory after first use", func(t *testing.T) {
		t.Parallel()
		path := writeBook(t, `[{"name": "Alice", "address": "alice@example.com"}]`)
		source := NewSource(path)
		if _, err := source.Resolve("Alice"); err != nil {
			t.Fatalf("first resolve failed: %v", err)
		}
		if err := os.Remove(path); err != nil {
			t.Fatalf("failed to remove book: %v", err)
		}
		if _, err := source.Resolve("Alice"); err != nil {
			t.Fatalf("cached resolve failed: %v", err)
		}
	})
}
