// Package testutil provides the in-memory database used by repository
// and service tests. The embedded migrations mirror internal/db.
package testutil

import (
	"database/sql"
	"embed"
	"sort"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

//go:embed migrations/*.sql
var testMigrationsFS embed.FS

// NewTestDB creates an in-memory sqlite database with every migration
// applied, in filename order.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	// a second connection would see a different empty :memory: database
	db.SetMaxOpenConns(1)

	entries, err := testMigrationsFS.ReadDir("migrations")
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		script, err := testMigrationsFS.ReadFile("migrations/" + name)
		require.NoError(t, err, "read migration %s", name)
		_, err = db.Exec(string(script))
		require.NoError(t, err, "apply migration %s", name)
	}
	return db
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	t.Helper()
	require.NoError(t, closer.Close())
}
