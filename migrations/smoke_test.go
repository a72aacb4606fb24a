package migrations_test

import (
	"context"
	"database/sql"
	"io/fs"
	"sort"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-activitylog/migrations"
)

func TestSQLiteMigrationsCreateActivityLog(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	filesystems := migrations.Filesystems()
	require.NotEmpty(t, filesystems)
	for _, fsys := range filesystems {
		require.NoError(t, applyUp(ctx, db, fsys, "sqlite/*.up.sql"))
	}

	var tableName string
	err = db.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type='table' AND name='activity_log'").Scan(&tableName)
	require.NoError(t, err)
	require.Equal(t, "activity_log", tableName)
}

func TestMigrationsShipBothDialects(t *testing.T) {
	for _, fsys := range migrations.Filesystems() {
		pg, err := fs.Glob(fsys, "*.up.sql")
		require.NoError(t, err)
		lite, err := fs.Glob(fsys, "sqlite/*.up.sql")
		require.NoError(t, err)
		require.Len(t, lite, len(pg))
	}
}

func applyUp(ctx context.Context, db *sql.DB, filesystem fs.FS, pattern string) error {
	entries, err := fs.Glob(filesystem, pattern)
	if err != nil {
		return err
	}
	sort.Strings(entries)
	for _, entry := range entries {
		content, err := fs.ReadFile(filesystem, entry)
		if err != nil {
			return err
		}
		for _, stmt := range strings.Split(string(content), ";") {
			if strings.TrimSpace(stmt) == "" {
				continue
			}
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}
	}
	return nil
}
