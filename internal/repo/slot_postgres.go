package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fsr-protokoll/editor/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgSlotStore is the Postgres implementation of SlotStore.
// It expects the slots table from the migrations package.
type pgSlotStore struct {
	db db
}

// NewPostgresSlotStore constructs a SlotStore backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPostgresSlotStore(db db) SlotStore {
	return &pgSlotStore{db: db}
}

func (s *pgSlotStore) Get(ctx context.Context, key string) (string, error) {
	const q = `SELECT value FROM slots WHERE key = @key`

	var value string
	err := s.db.QueryRow(ctx, q, pgx.NamedArgs{"key": key}).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("repo.SlotStore.Get: %w", domain.ErrNotFound)
		}
		return "", fmt.Errorf("repo.SlotStore.Get: %w", err)
	}
	return value, nil
}

func (s *pgSlotStore) Put(ctx context.Context, key, value string) error {
	const q = `
		INSERT INTO slots (key, value)
		VALUES (@key, @value)
		ON CONFLICT (key) DO UPDATE
		SET value      = EXCLUDED.value,
		    updated_at = now()`

	if _, err := s.db.Exec(ctx, q, pgx.NamedArgs{"key": key, "value": value}); err != nil {
		return fmt.Errorf("repo.SlotStore.Put: %w", err)
	}
	return nil
}

func (s *pgSlotStore) Delete(ctx context.Context, key string) error {
	const q = `DELETE FROM slots WHERE key = @key`

	if _, err := s.db.Exec(ctx, q, pgx.NamedArgs{"key": key}); err != nil {
		return fmt.Errorf("repo.SlotStore.Delete: %w", err)
	}
	return nil
}
