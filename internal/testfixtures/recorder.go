package testfixtures

import (
	"context"
	"sync"

	"github.com/example/mail-composer/internal/history"
)

// HistoryRecorder is an in-memory history.Recorder that captures journal
// entries for assertions. A non-nil Err is returned from every Record call.
type HistoryRecorder struct {
	mu      sync.Mutex
	entries []history.Entry

	Err error
}

// Record appends the entry unless Err is set.
func (r *HistoryRecorder) Record(_ context.Context, entry history.Entry) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	r.entries = append(r.entries, entry)
	r.mu.Unlock()
	return nil
}

// Entries returns a copy of everything recorded so far.
func (r *HistoryRecorder) Entries() []history.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]history.Entry(nil), r.entries...)
}
