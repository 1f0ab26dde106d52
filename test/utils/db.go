// test/utils/db.go
package testutils

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/lib/pq"
)

func TestDBWithCleanup(t *testing.T) *sql.DB {
	t.Helper()

	dsn := "host=localhost port=5433 user=testuser password=testpass dbname=postgres sslmode=disable"
	if envDSN := os.Getenv("TEST_PG_ADMIN_URL"); envDSN != "" {
		dsn = envDSN
	}

	adminDB, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("Failed to open admin connection: %v", err)
	}
	defer adminDB.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := adminDB.PingContext(ctx); err != nil {
		t.Skipf("Postgres unavailable: %v", err)
	}

	_, err = adminDB.ExecContext(ctx, "CREATE DATABASE tokenicon_test")
	if err != nil && !isDuplicateDBError(err) {
		t.Fatalf("Failed to create tokenicon_test: %v", err)
	}

	appDSN := "host=localhost port=5433 user=testuser password=testpass dbname=tokenicon_test sslmode=disable"
	if envDSN := os.Getenv("TEST_DATABASE_URL"); envDSN != "" {
		appDSN = envDSN
	}

	db, err := sql.Open("postgres", appDSN)
	if err != nil {
		t.Fatalf("Failed to open tokenicon_test connection: %v", err)
	}

	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("tokenicon_test unavailable: %v", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	t.Cleanup(func() {
		db.Close()
		_, _ = adminDB.ExecContext(context.Background(), "DROP DATABASE IF EXISTS tokenicon_test WITH (FORCE)")
	})

	setupSchema(db, t)
	return db
}

func setupSchema(db *sql.DB, t *testing.T) {
	t.Helper()

	_, err := db.Exec(`
		DROP TABLE IF EXISTS icon_requests CASCADE;
		CREATE TABLE icon_requests (
			id SERIAL PRIMARY KEY,
			symbol TEXT NOT NULL,
			size TEXT NOT NULL,
			created_at TIMESTAMPTZ DEFAULT NOW()
		);
	`)
	if err != nil {
		t.Fatalf("Schema setup failed: %v", err)
	}
}

func isDuplicateDBError(err error) bool {
	return err != nil && err.Error() == `pq: database "tokenicon_test" already exists`
}
