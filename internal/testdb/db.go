// Package testdb provides database helpers shared by tests across packages.
// It depends only on the embedded migrations and database/sql, never on a
// specific store implementation.
package testdb

import (
	"database/sql"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3" // sqlite driver
	"github.com/stretchr/testify/require"

	"tradegate/migrations"
)

// NewSQLite opens a fresh in-memory database with the embedded schema
// applied. Every call returns an isolated database, so tests using it can
// run in parallel. The database is closed when the test finishes.
func NewSQLite(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)

	// A single connection keeps every statement on the same in-memory
	// database; a second connection would see an empty schema.
	db.SetMaxOpenConns(1)

	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})

	ApplySQLiteSchema(t, db)
	return db
}

// ApplySQLiteSchema executes the up section of every embedded sqlite
// migration in order, bypassing goose's process-global configuration so
// parallel tests cannot trample each other's dialect or base FS.
func ApplySQLiteSchema(t *testing.T, db *sql.DB) {
	t.Helper()

	entries, err := migrations.Files.ReadDir("sqlite")
	require.NoError(t, err)

	for _, entry := range entries {
		raw, err := migrations.Files.ReadFile("sqlite/" + entry.Name())
		require.NoError(t, err)

		up, _, found := strings.Cut(string(raw), "-- +goose Down")
		require.True(t, found, "migration %s is missing its down section marker", entry.Name())

		_, err = db.Exec(up)
		require.NoError(t, err)
	}
}
