package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // registers the "sqlite" driver for database/sql

	"github.com/fsr-protokoll/editor/internal/domain"
	"github.com/fsr-protokoll/editor/migrations"
)

// SQLiteSlotStore keeps slots in a local SQLite file. It is the default
// backend for a single-user installation.
type SQLiteSlotStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path, applies the
// connection pragmas and runs pending migrations.
func OpenSQLite(ctx context.Context, path string) (*SQLiteSlotStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("repo.OpenSQLite: open: %w", err)
	}
	// One writer at a time; the session already serializes its saves.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		`PRAGMA journal_mode=WAL;`,
		`PRAGMA synchronous=NORMAL;`,
		`PRAGMA busy_timeout=5000;`,
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			db.Close()
			return nil, fmt.Errorf("repo.OpenSQLite: %s: %w", p, err)
		}
	}

	if err := migrations.Up(ctx, db, goose.DialectSQLite3); err != nil {
		db.Close()
		return nil, fmt.Errorf("repo.OpenSQLite: %w", err)
	}
	return &SQLiteSlotStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteSlotStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteSlotStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("repo.SQLiteSlotStore.Get: %w", domain.ErrNotFound)
		}
		return "", fmt.Errorf("repo.SQLiteSlotStore.Get: %w", err)
	}
	return value, nil
}

func (s *SQLiteSlotStore) Put(ctx context.Context, key, value string) error {
	const q = `
		INSERT INTO slots (key, value)
		VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE
		SET value      = excluded.value,
		    updated_at = CURRENT_TIMESTAMP`

	if _, err := s.db.ExecContext(ctx, q, key, value); err != nil {
		return fmt.Errorf("repo.SQLiteSlotStore.Put: %w", err)
	}
	return nil
}

func (s *SQLiteSlotStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM slots WHERE key = ?`, key); err != nil {
		return fmt.Errorf("repo.SQLiteSlotStore.Delete: %w", err)
	}
	return nil
}
