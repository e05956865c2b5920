package db

import (
	"context"
	"database/sql"
	"fmt"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx so repositories can run
// inside or outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)

// UnitOfWork runs fn inside one transaction. fn must only touch the
// database through tx.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

// SQLiteUnitOfWork implements UnitOfWork with database/sql transactions.
type SQLiteUnitOfWork struct {
	db *sql.DB
}

func NewSQLiteUnitOfWork(db *sql.DB) *SQLiteUnitOfWork {
	return &SQLiteUnitOfWork{db: db}
}

func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if rbErr := tx.Rollback(); rbErr != nil && err != nil {
			err = fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
	}()

	if err = fn(ctx, tx); err != nil {
		return err
	}
	err = tx.Commit()
	committed = true
	if err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
