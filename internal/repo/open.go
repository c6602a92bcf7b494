package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"github.com/fsr-protokoll/editor/internal/config"
	"github.com/fsr-protokoll/editor/migrations"
)

// Open connects the backend selected by cfg, migrating SQL backends, and
// returns it with a function that releases it.
func Open(ctx context.Context, cfg config.Storage) (SlotStore, func() error, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return NewMemorySlotStore(), func() error { return nil }, nil

	case config.DriverSQLite:
		s, err := OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("repo.Open: %w", err)
		}
		return s, s.Close, nil

	case config.DriverPostgres:
		// pgxpool.New does not open connections immediately; Ping does.
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("repo.Open: create pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("repo.Open: ping postgres: %w", err)
		}
		if err := migratePool(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("repo.Open: %w", err)
		}
		return NewPostgresSlotStore(pool), func() error { pool.Close(); return nil }, nil

	case config.DriverRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("repo.Open: ping redis: %w", err)
		}
		return NewRedisSlotStore(client), client.Close, nil

	case config.DriverBolt:
		s, err := OpenBolt(cfg.BoltPath)
		if err != nil {
			return nil, nil, fmt.Errorf("repo.Open: %w", err)
		}
		return s, s.Close, nil
	}
	return nil, nil, fmt.Errorf("repo.Open: unknown storage driver %q", cfg.Driver)
}

// migratePool runs the goose migrations through a database/sql view of pool.
func migratePool(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()
	return migrations.Up(ctx, db, goose.DialectPostgres)
}
