package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists entries in a sqlite database. ":memory:" is a
// valid path for an ephemeral database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and migrates) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS journal (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		tick INTEGER NOT NULL,
		kind TEXT NOT NULL,
		payload TEXT NOT NULL,
		at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_journal_kind ON journal(kind);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append implements Store.
func (s *SQLiteStore) Append(ctx context.Context, e *Entry) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO journal (id, tick, kind, payload, at) VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.Tick, e.Kind, string(e.Payload), e.At.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}

	seq, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("read assigned seq: %w", err)
	}
	e.Seq = uint64(seq)
	return nil
}

// List implements Store.
func (s *SQLiteStore) List(ctx context.Context, fromSeq uint64) ([]*Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, id, tick, kind, payload, at FROM journal WHERE seq >= ? ORDER BY seq`,
		fromSeq)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var out []*Entry
	for rows.Next() {
		var e Entry
		var payload, at string
		if err := rows.Scan(&e.Seq, &e.ID, &e.Tick, &e.Kind, &payload, &at); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		parsed, err := time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return nil, fmt.Errorf("parse entry time: %w", err)
		}
		e.Payload = []byte(payload)
		e.At = parsed
		out = append(out, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return out, nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
