package stores

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fieldworks/sitecmd/internal/core/project"
	"github.com/fieldworks/sitecmd/internal/data/db"
)

func newTestDB(t *testing.T) *db.DB {
	t.Helper()
	database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func seedProject(t *testing.T, database *db.DB, name string) project.Project {
	t.Helper()
	store := NewProjectStore(database)
	p := project.Project{Name: name, JobNumber: "J-100"}
	require.NoError(t, store.Create(context.Background(), &p))
	return p
}

func countRows(t *testing.T, database *db.DB, query string, args ...any) int {
	t.Helper()
	var n int
	err := database.Conn().QueryRowContext(context.Background(), query, args...).Scan(&n)
	require.NoError(t, err)
	return n
}
