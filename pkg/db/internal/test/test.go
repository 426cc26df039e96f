// Package test opens throwaway databases for the db tests.
package test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/soft-orgs/pkg/db"
)

// Sqlite opens an empty SQLite database in a temp directory with foreign
// keys enforced. The test fails if the database cannot be opened, and the
// database is closed when the test ends.
func Sqlite(ctx context.Context, tb testing.TB) *db.DB {
	tb.Helper()
	dsn := filepath.Join(tb.TempDir(), "orgs.db") + "?_pragma=foreign_keys(1)"
	dbx, err := db.Open(ctx, "sqlite", dsn)
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	tb.Cleanup(func() {
		if err := dbx.Close(); err != nil {
			tb.Error(err)
		}
	})
	return dbx
}
