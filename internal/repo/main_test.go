package repo_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/pressly/goose/v3"

	"github.com/fsr-protokoll/editor/migrations"
	"github.com/fsr-protokoll/editor/testutil"
)

// TestMain runs before any test in the repo_test package.
// When TEST_DATABASE_URL is set it applies all pending migrations to the test
// database so the Postgres tests never need to think about schema state.
// The SQLite store migrates itself on open.
func TestMain(m *testing.M) {
	if os.Getenv("TEST_DATABASE_URL") == "" {
		os.Exit(m.Run())
	}

	// goose needs database/sql, not a pgx pool.
	db := testutil.MustOpenSQLDB(os.Getenv("TEST_DATABASE_URL"))
	defer db.Close()

	if err := migrations.Up(context.Background(), db, goose.DialectPostgres); err != nil {
		log.Fatalf("TestMain: run migrations: %v", err)
	}

	os.Exit(m.Run())
}
