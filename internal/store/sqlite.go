package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// MemoryDSN opens a private in-memory database.
const MemoryDSN = ":memory:"

// SQLiteStore implements the Ledger interface on SQLite.
type SQLiteStore struct {
	db *sqlx.DB
}

var _ Ledger = (*SQLiteStore)(nil)

// NewSQLiteStore opens the database at dsn and runs any pending schema
// migrations. An in-memory database exists per connection, so the pool is
// pinned to a single connection.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// Record inserts the ids that are not yet known and returns how many were
// new.
func (s *SQLiteStore) Record(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx,
		"INSERT OR IGNORE INTO seen_messages (id, first_seen) VALUES (?, ?)",
	)
	if err != nil {
		return 0, fmt.Errorf("preparing insert statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	added := 0
	for _, id := range ids {
		res, err := stmt.ExecContext(ctx, id, now)
		if err != nil {
			return 0, fmt.Errorf("recording message %s: %w", id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("recording message %s: %w", id, err)
		}
		added += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing seen messages: %w", err)
	}
	return added, nil
}

// MarkOpened flags the message as opened, recording it first if needed.
func (s *SQLiteStore) MarkOpened(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO seen_messages (id, first_seen, opened) VALUES (?, ?, 1)
		ON CONFLICT(id) DO UPDATE SET opened = 1`,
		id, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("marking message %s as opened: %w", id, err)
	}
	return nil
}

// Opened returns the ids of every opened message.
func (s *SQLiteStore) Opened(ctx context.Context) (map[string]bool, error) {
	var ids []string
	if err := s.db.SelectContext(ctx, &ids, "SELECT id FROM seen_messages WHERE opened = 1"); err != nil {
		return nil, fmt.Errorf("querying opened messages: %w", err)
	}

	opened := make(map[string]bool, len(ids))
	for _, id := range ids {
		opened[id] = true
	}
	return opened, nil
}

// Forget removes the message from the ledger.
func (s *SQLiteStore) Forget(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM seen_messages WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("forgetting message %s: %w", id, err)
	}
	return nil
}

// SeenCount returns the number of messages in the ledger.
func (s *SQLiteStore) SeenCount(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM seen_messages"); err != nil {
		return 0, fmt.Errorf("counting seen messages: %w", err)
	}
	return n, nil
}
