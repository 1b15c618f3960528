// Package testutil holds helpers for integration tests that need Postgres.
// Every helper skips the calling test when TEST_DATABASE_URL is unset.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/pkordes/fuel-tracker/backend/migrations"
)

// Tables lists every table the migrations create, in truncation order.
var Tables = []string{"fuel_purchases", "mileage_sessions", "users"}

var (
	migrateOnce sync.Once
	migrateErr  error
)

// NewTestDB returns a pool on a migrated database whose tables have been
// emptied. Migrations run once per test binary. The pool is closed when the
// test finishes.
func NewTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	pool := NewPool(t)
	ctx := context.Background()

	migrateOnce.Do(func() { migrateErr = Migrate(ctx, pool) })
	if migrateErr != nil {
		t.Fatalf("testutil.NewTestDB: %v", migrateErr)
	}
	if err := Truncate(ctx, pool); err != nil {
		t.Fatalf("testutil.NewTestDB: %v", err)
	}
	return pool
}

// NewPool opens a pool on TEST_DATABASE_URL without touching the schema.
func NewPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	pool, err := pgxpool.New(context.Background(), requireDSN(t))
	if err != nil {
		t.Fatalf("testutil.NewPool: open pool: %v", err)
	}
	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		t.Fatalf("testutil.NewPool: ping: %v", err)
	}

	t.Cleanup(pool.Close)
	return pool
}

// NewSQLDB opens a database/sql handle on TEST_DATABASE_URL for driving goose
// directly.
func NewSQLDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", requireDSN(t))
	if err != nil {
		t.Fatalf("testutil.NewSQLDB: open: %v", err)
	}
	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		t.Fatalf("testutil.NewSQLDB: ping: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}

// Migrate applies every pending migration through pool.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("testutil.Migrate: create provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("testutil.Migrate: up: %w", err)
	}
	return nil
}

// Truncate empties every table and restarts the identity sequences.
func Truncate(ctx context.Context, pool *pgxpool.Pool) error {
	q := "TRUNCATE " + strings.Join(Tables, ", ") + " RESTART IDENTITY"
	if _, err := pool.Exec(ctx, q); err != nil {
		return fmt.Errorf("testutil.Truncate: %w", err)
	}
	return nil
}

func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping integration test")
	}
	return dsn
}
