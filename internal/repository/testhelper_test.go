package repository

import (
	"database/sql"
	"testing"

	"github.com/chordbase/chordbase-api/internal/database/migrations"
	_ "github.com/tursodatabase/go-libsql"
)

// setupTestDB creates an in-memory SQLite database for testing.
// It runs migrations and returns a database connection that will be cleaned up
// when the test completes.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("libsql", ":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	if err := migrations.Run(db, nil); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

// setupTestRepos creates all repositories using a test database.
func setupTestRepos(t *testing.T) *Repositories {
	t.Helper()
	db := setupTestDB(t)
	return NewRepositories(db)
}

// InsertTestProfile is a helper to insert a test profile directly.
func InsertTestProfile(t *testing.T, db *sql.DB, id, email, tier, status string, searchesUsed int, lastReset string) {
	t.Helper()
	query := `
		INSERT INTO user_profiles (id, email, subscription_tier, subscription_status, daily_searches_used, last_search_reset, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, datetime('now'), datetime('now'))
	`
	if _, err := db.Exec(query, id, email, tier, status, searchesUsed, lastReset); err != nil {
		t.Fatalf("failed to insert test profile: %v", err)
	}
}
