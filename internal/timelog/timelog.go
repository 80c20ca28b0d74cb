// Package timelog persists the day's work-start time across invocations so
// the end-of-day mail can report a worked-hours range.
package timelog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/example/mail-composer/internal/apperror"
	"github.com/example/mail-composer/internal/message"
)

// dateKey serializes a date the way the store file is keyed.
func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// FileStore keeps a date→HH:MM map in a single pretty-printed JSON file.
// The file is read fresh on every operation and created lazily on first
// write. Single writer only: concurrent processes would clobber each other.
type FileStore struct {
	path string
	now  func() time.Time
}

// NewFileStore builds a store around the given file. A nil clock falls back
// to time.Now.
func NewFileStore(path string, now func() time.Time) *FileStore {
	if now == nil {
		now = time.Now
	}
	return &FileStore{path: path, now: now}
}

func (s *FileStore) load() (map[string]string, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, apperror.New(apperror.InternalServerError,
			"failed to read the start-time file").
			WithHint("check the file's permissions").
			WithCause(err)
	}

	var entries map[string]string
	if err := json.Unmarshal(content, &entries); err != nil {
		return nil, apperror.New(apperror.UnavailableForLegalReasons,
			"failed to parse the start-time file").
			WithHint(`expected a JSON object mapping "YYYY-MM-DD" to "HH:MM"`).
			WithCause(err)
	}
	if entries == nil {
		entries = map[string]string{}
	}
	return entries, nil
}

func (s *FileStore) save(entries map[string]string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return apperror.New(apperror.InternalServerError,
			"failed to encode the start-time map").
			WithCause(err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperror.New(apperror.InternalServerError,
				"failed to create the start-time directory").
				WithHint("check write permissions on the log directory").
				WithCause(err)
		}
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return apperror.New(apperror.InternalServerError,
			"failed to write the start-time file").
			WithHint("check disk space and write permissions").
			WithCause(err)
	}
	return nil
}

// SaveStart upserts the start time recorded for the given date. Last write
// wins.
func (s *FileStore) SaveStart(date time.Time, start message.WorkTime) error {
	entries, err := s.load()
	if err != nil {
		return err
	}
	entries[dateKey(date)] = start.String()
	return s.save(entries)
}

// LoadStart returns the start time recorded for the given date. The second
// return value reports whether a time was recorded; an absent file or date
// is not an error.
func (s *FileStore) LoadStart(date time.Time) (message.WorkTime, bool, error) {
	entries, err := s.load()
	if err != nil {
		return message.WorkTime{}, false, err
	}
	raw, ok := entries[dateKey(date)]
	if !ok {
		return message.WorkTime{}, false, nil
	}
	start, err := message.NewWorkTime(raw)
	if err != nil {
		return message.WorkTime{}, false, err
	}
	return start, true, nil
}

// SaveTodayStart records the start time under today's local date.
func (s *FileStore) SaveTodayStart(start message.WorkTime) error {
	return s.SaveStart(s.now(), start)
}

// LoadTodayStart reads the start time recorded under today's local date.
func (s *FileStore) LoadTodayStart() (message.WorkTime, bool, error) {
	return s.LoadStart(s.now())
}
