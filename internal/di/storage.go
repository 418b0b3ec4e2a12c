package di

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-atlas/internal/runtimeconfig"
)

const (
	storageProviderBun    = "bun"
	storageProviderMemory = "memory"
)

// openBunDB opens the configured database with the matching bun dialect.
func openBunDB(cfg runtimeconfig.StorageConfig) (*bun.DB, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	switch driver := strings.ToLower(strings.TrimSpace(cfg.Driver)); driver {
	case "", "sqlite", "sqlite3":
		sqlDB, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("di: open sqlite: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
		return bun.NewDB(sqlDB, sqlitedialect.New()), nil
	case "postgres", "pgx":
		sqlDB, err := sql.Open("pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("di: open postgres: %w", err)
		}
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	default:
		return nil, fmt.Errorf("%w: %s", runtimeconfig.ErrStorageDriverUnknown, driver)
	}
}
