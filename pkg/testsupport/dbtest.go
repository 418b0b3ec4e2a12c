package testsupport

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// NewSQLiteMemoryDB opens a private shared-cache in-memory database so tests
// in the same process never see each other's tables.
func NewSQLiteMemoryDB() (*sql.DB, error) {
	dsn := fmt.Sprintf("file:atlas-%s?mode=memory&cache=shared", uuid.NewString())
	return sql.Open("sqlite3", dsn)
}

// NewBunSQLite returns a bun DB over a fresh in-memory SQLite database with
// tables created for the given models.
func NewBunSQLite(tb testing.TB, models ...any) *bun.DB {
	tb.Helper()

	sqlDB, err := NewSQLiteMemoryDB()
	if err != nil {
		tb.Fatalf("new sqlite db: %v", err)
	}
	db := bun.NewDB(sqlDB, sqlitedialect.New())
	db.SetMaxOpenConns(1)
	tb.Cleanup(func() {
		_ = db.Close()
	})

	ctx := context.Background()
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			tb.Fatalf("create table %T: %v", model, err)
		}
	}
	return db
}
