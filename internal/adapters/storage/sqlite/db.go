// Package sqlite opens the embedded SQLite engine.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"pet-adoption-tracker/internal/adapters/storage/migrations"
	"pet-adoption-tracker/internal/adapters/storage/sqldb"
)

const pragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"

// MemoryPath abre una base SQLite efímera (útil en tests).
const MemoryPath = ":memory:"

type Options struct {
	Path string
	// SchemaVersion fija la versión de esquema; 0 = última.
	SchemaVersion int64
}

// Open abre la base, aplica migraciones y devuelve el motor listo para los stores.
func Open(ctx context.Context, opts Options) (*sqldb.DB, error) {
	path := strings.TrimSpace(opts.Path)
	if path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	if path != MemoryPath {
		path = filepath.Clean(path)
	}
	dsn := path + "?" + pragmas

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	// Un solo escritor: también mantiene viva la base :memory: entre transacciones.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if _, err := migrations.Up(ctx, sqlDB, goose.DialectSQLite3, opts.SchemaVersion); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return sqldb.New(sqlDB, sqldb.SQLite), nil
}
