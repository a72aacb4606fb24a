package activitylog

import (
	"embed"
	"io/fs"
)

// MigrationsFS contains the activity_log migrations for PostgreSQL and SQLite.
//
// Root files (data/sql/migrations/*.sql) target PostgreSQL; SQLite overrides
// live in data/sql/migrations/sqlite. go-persistence-bun picks the right set
// for the active dialect:
//
//	migrationsFS, _ := activitylog.Migrations()
//	client.RegisterDialectMigrations(
//	    migrationsFS,
//	    persistence.WithDialectSourceLabel("."),
//	    persistence.WithValidationTargets("postgres", "sqlite"),
//	)
//
//go:embed data/sql/migrations/*.sql data/sql/migrations/sqlite/*.sql
var MigrationsFS embed.FS

// Migrations returns MigrationsFS rooted at the migrations directory.
func Migrations() (fs.FS, error) {
	return fs.Sub(MigrationsFS, "data/sql/migrations")
}
