// Package dbtest opens the integration test database.
package dbtest

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/rounds/internal/database"
)

// Open connects to TEST_DATABASE_URL, applies migrations and empties every
// table. The test is skipped when the variable is not set so the live
// database is never touched.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	_ = godotenv.Load("../../../.env")

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	if err := database.Migrate(url); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	db, err := database.New(url)
	if err != nil {
		t.Fatalf("connecting to test database: %v", err)
	}

	t.Cleanup(func() { db.Close() })

	_, err = db.ExecContext(context.Background(),
		`TRUNCATE TABLE job_history, jobs, customer, zone, address RESTART IDENTITY CASCADE`)
	if err != nil {
		t.Fatalf("truncating test database: %v", err)
	}

	return db
}
