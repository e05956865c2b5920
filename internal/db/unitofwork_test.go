package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/neuralplan/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUoW(t *testing.T) *db.SQLiteUnitOfWork {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return db.NewSQLiteUnitOfWork(database)
}

func putKV(ctx context.Context, tx db.DBTX, key, value string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, '2026-03-01T00:00:00Z')`, key, value)
	return err
}

func kvExists(t *testing.T, uow *db.SQLiteUnitOfWork, key string) bool {
	t.Helper()
	var found bool
	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		var n int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM kv_store WHERE key = ?`, key).Scan(&n); err != nil {
			return err
		}
		found = n > 0
		return nil
	})
	require.NoError(t, err)
	return found
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	uow := newUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return putKV(ctx, tx, "focus", "{}")
	})
	require.NoError(t, err)
	assert.True(t, kvExists(t, uow, "focus"))
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	uow := newUoW(t)
	boom := errors.New("deliberate failure")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := putKV(ctx, tx, "stats", "{}"); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.False(t, kvExists(t, uow, "stats"), "row should not exist after rollback")
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	uow := newUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = putKV(ctx, tx, "panic", "{}")
			panic("boom")
		})
	})
	assert.False(t, kvExists(t, uow, "panic"))
}
