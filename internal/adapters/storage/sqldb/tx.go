// Package sqldb implementa el puerto de storage sobre database/sql.
// SQLite y Postgres comparten las consultas; Dialect marca las diferencias.
package sqldb

import (
	"context"
	"database/sql"
	"fmt"
)

// DBTX es lo que usan las consultas de Tx: un *sql.Tx abierto por runTx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// runTx abre la transacción de una operación del store. Las lecturas piden
// ReadOnly al driver; un error o un panic en fn deshace todo.
func runTx(ctx context.Context, db *sql.DB, readOnly bool, fn func(q DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, &sql.TxOptions{ReadOnly: readOnly})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	committed = true
	return nil
}
