package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"pet-adoption-tracker/internal/adapters/storage/migrations"
	"pet-adoption-tracker/internal/adapters/storage/sqldb"
)

type Options struct {
	DSN           string
	MaxConns      int
	SchemaVersion int64
}

// Open abre un pool a Postgres usando pgx (database/sql) y aplica migraciones.
func Open(ctx context.Context, opts Options) (*sqldb.DB, error) {
	db, err := sql.Open("pgx", opts.DSN)
	if err != nil {
		return nil, err
	}

	maxConns := opts.MaxConns
	if maxConns <= 0 {
		maxConns = 10
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns / 2)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	if _, err := migrations.Up(ctx, db, goose.DialectPostgres, opts.SchemaVersion); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return sqldb.New(db, sqldb.Postgres), nil
}
