package migrations

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRunAppliesAllSteps(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, Run(ctx, db))

	var applied int
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM schema_migrations`).Scan(&applied))
	require.Equal(t, len(All()), applied)

	for _, table := range []string{
		"properties", "users", "property_services", "service_attachments",
		"price_master", "tickets", "ticket_attachments",
		"service_persons", "service_events",
		"regions", "service_catalog", "region_service_rates",
		"quotes", "quote_line_items",
	} {
		var name string
		err := db.QueryRowContext(ctx,
			`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s missing", table)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, Run(ctx, db))
	require.NoError(t, Run(ctx, db))

	var applied int
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM schema_migrations`).Scan(&applied))
	require.Equal(t, len(All()), applied)
}

func TestVersionsAreOrderedAndUnique(t *testing.T) {
	seen := map[int]bool{}
	prev := 0
	for _, m := range All() {
		require.Greater(t, m.Version, prev, "versions must be ascending")
		require.False(t, seen[m.Version], "duplicate version %d", m.Version)
		require.NotEmpty(t, m.Name)
		seen[m.Version] = true
		prev = m.Version
	}
}
