package sqldb

import (
	"context"
	"database/sql"
	"errors"

	"pet-adoption-tracker/internal/ports/storage"
)

// DB adapta un *sql.DB al puerto storage.DB.
type DB struct {
	sqlDB   *sql.DB
	dialect Dialect
}

func New(sqlDB *sql.DB, dialect Dialect) *DB {
	return &DB{sqlDB: sqlDB, dialect: dialect}
}

func (d *DB) Update(ctx context.Context, fn func(ctx context.Context, tx storage.Tx) error) error {
	if d == nil || d.sqlDB == nil {
		return errors.New("storage is not configured")
	}
	return runTx(ctx, d.sqlDB, false, func(q DBTX) error {
		return fn(ctx, &Tx{q: q, d: d.dialect, writable: true})
	})
}

// View corre fn en una transacción de solo lectura; las escrituras fallan
// con storage.ErrReadOnly antes de llegar al driver.
func (d *DB) View(ctx context.Context, fn func(ctx context.Context, tx storage.Tx) error) error {
	if d == nil || d.sqlDB == nil {
		return errors.New("storage is not configured")
	}
	return runTx(ctx, d.sqlDB, true, func(q DBTX) error {
		return fn(ctx, &Tx{q: q, d: d.dialect})
	})
}

func (d *DB) Close() error {
	if d == nil || d.sqlDB == nil {
		return nil
	}
	return d.sqlDB.Close()
}

// SQL expone el handle subyacente (migraciones, tests).
func (d *DB) SQL() *sql.DB {
	return d.sqlDB
}
