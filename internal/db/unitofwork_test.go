package db_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tallyhq/tally/internal/db"
)

func openTestUoW(t *testing.T) (*db.SQLiteUnitOfWork, func(id string) bool) {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	// A scratch table outside the migration set keeps these tests decoupled
	// from the schema.
	_, err = database.Exec(`CREATE TABLE tx_scratch (id TEXT PRIMARY KEY)`)
	require.NoError(t, err)

	exists := func(id string) bool {
		var got string
		err := database.QueryRow(`SELECT id FROM tx_scratch WHERE id = ?`, id).Scan(&got)
		return err == nil
	}
	return db.NewSQLiteUnitOfWork(database), exists
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	uow, exists := openTestUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO tx_scratch (id) VALUES ('committed')`)
		return err
	})
	require.NoError(t, err)
	assert.True(t, exists("committed"))
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	uow, exists := openTestUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO tx_scratch (id) VALUES ('doomed')`); err != nil {
			return err
		}
		return fmt.Errorf("deliberate failure")
	})
	require.Error(t, err)
	assert.False(t, exists("doomed"))
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	uow, exists := openTestUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_, _ = tx.ExecContext(ctx, `INSERT INTO tx_scratch (id) VALUES ('panicked')`)
			panic("boom")
		})
	})
	assert.False(t, exists("panicked"))
}
