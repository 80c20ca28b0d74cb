// Package history defines the compose-history journal: a record of every
// draft handed to the mail client, dry runs included.
package history

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested journal entry does not exist.
var ErrNotFound = errors.New("history: not found")

// Entry is one journaled dispatch.
type Entry struct {
	ID         string
	ComposedAt time.Time
	MailType   string
	Subject    string
	To         []string
	Cc         []string
	DryRun     bool
}

// Recorder appends dispatches to the journal. Implementations must be safe
// to call after a successful dispatch; a recording failure must never undo
// or mask the dispatch itself.
type Recorder interface {
	Record(ctx context.Context, entry Entry) error
}
