// Package sqlite persists the compose-history journal in a single-table
// SQLite database under the configured output directory.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/example/mail-composer/internal/history"
)

const schema = `
CREATE TABLE IF NOT EXISTS compose_history (
	id          TEXT PRIMARY KEY,
	composed_at TEXT NOT NULL,
	mail_type   TEXT NOT NULL,
	subject     TEXT NOT NULL,
	to_addrs    TEXT NOT NULL,
	cc_addrs    TEXT NOT NULL,
	dry_run     INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_compose_history_composed_at
	ON compose_history (composed_at);
`

// Journal is a SQLite-backed history.Recorder.
type Journal struct {
	db *sql.DB
}

// Open creates the parent directory if needed, opens the database, and
// bootstraps the schema.
func Open(path string) (*Journal, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("bootstrap journal schema: %w", err)
	}
	return &Journal{db: db}, nil
}

// Close releases the database handle.
func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}

// Record appends one dispatch to the journal.
func (j *Journal) Record(ctx context.Context, entry history.Entry) error {
	query := `
		INSERT INTO compose_history (id, composed_at, mail_type, subject, to_addrs, cc_addrs, dry_run)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := j.db.ExecContext(ctx, query,
		entry.ID,
		entry.ComposedAt.Format(time.RFC3339),
		entry.MailType,
		entry.Subject,
		strings.Join(entry.To, ","),
		strings.Join(entry.Cc, ","),
		boolToInt(entry.DryRun),
	)
	if err != nil {
		return fmt.Errorf("record compose history: %w", err)
	}
	return nil
}

// List returns all journal entries ordered oldest first.
func (j *Journal) List(ctx context.Context) ([]history.Entry, error) {
	query := `
		SELECT id, composed_at, mail_type, subject, to_addrs, cc_addrs, dry_run
		FROM compose_history
		ORDER BY composed_at, id
	`
	rows, err := j.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list compose history: %w", err)
	}
	defer rows.Close()

	var entries []history.Entry
	for rows.Next() {
		var (
			entry      history.Entry
			composedAt string
			toAddrs    string
			ccAddrs    string
			dryRun     int
		)
		if err := rows.Scan(&entry.ID, &composedAt, &entry.MailType, &entry.Subject, &toAddrs, &ccAddrs, &dryRun); err != nil {
			return nil, fmt.Errorf("scan compose history row: %w", err)
		}
		entry.ComposedAt, err = time.Parse(time.RFC3339, composedAt)
		if err != nil {
			return nil, fmt.Errorf("parse composed_at: %w", err)
		}
		entry.To = splitAddrs(toAddrs)
		entry.Cc = splitAddrs(ccAddrs)
		entry.DryRun = dryRun != 0
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate compose history: %w", err)
	}
	return entries, nil
}

// Get returns a single entry by id.
func (j *Journal) Get(ctx context.Context, id string) (history.Entry, error) {
	query := `
		SELECT id, composed_at, mail_type, subject, to_addrs, cc_addrs, dry_run
		FROM compose_history
		WHERE id = ?
	`
	var (
		entry      history.Entry
		composedAt string
		toAddrs    string
		ccAddrs    string
		dryRun     int
	)
	err := j.db.QueryRowContext(ctx, query, id).
		Scan(&entry.ID, &composedAt, &entry.MailType, &entry.Subject, &toAddrs, &ccAddrs, &dryRun)
	if err == sql.ErrNoRows {
		return history.Entry{}, history.ErrNotFound
	}
	if err != nil {
		return history.Entry{}, fmt.Errorf("get compose history entry: %w", err)
	}
	entry.ComposedAt, err = time.Parse(time.RFC3339, composedAt)
	if err != nil {
		return history.Entry{}, fmt.Errorf("parse composed_at: %w", err)
	}
	entry.To = splitAddrs(toAddrs)
	entry.Cc = splitAddrs(ccAddrs)
	entry.DryRun = dryRun != 0
	return entry, nil
}

func splitAddrs(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, ",")
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
