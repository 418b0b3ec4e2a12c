package atlas

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

//go:embed data/sql/migrations
var migrationsFS embed.FS

// GetMigrationsFS returns the embedded migration files, one directory per
// dialect.
func GetMigrationsFS() embed.FS {
	return migrationsFS
}

// ApplyMigrations runs the embedded migrations for the database dialect in
// file name order. Every statement is idempotent.
func ApplyMigrations(ctx context.Context, db *bun.DB) error {
	var dir string
	switch db.Dialect().Name() {
	case dialect.PG:
		dir = "data/sql/migrations/postgres"
	case dialect.SQLite:
		dir = "data/sql/migrations/sqlite"
	default:
		return fmt.Errorf("atlas: no migrations for dialect %s", db.Dialect().Name())
	}

	names, err := fs.Glob(migrationsFS, path.Join(dir, "*.up.sql"))
	if err != nil {
		return err
	}
	sort.Strings(names)
	for _, name := range names {
		script, err := migrationsFS.ReadFile(name)
		if err != nil {
			return err
		}
		if _, err := db.ExecContext(ctx, string(script)); err != nil {
			return fmt.Errorf("atlas: apply %s: %w", path.Base(name), err)
		}
	}
	return nil
}
