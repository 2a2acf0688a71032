package dbx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE t (id INTEGER PRIMARY KEY, v TEXT)`)
	require.NoError(t, err)
	return db
}

func countRows(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM t`).Scan(&n))
	return n
}

func TestWithTx_Commits(t *testing.T) {
	db := setupDB(t)

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO t(v) VALUES ('ok')`)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 1, countRows(t, db))
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	db := setupDB(t)
	boom := errors.New("boom")

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		_, e := tx.ExecContext(ctx, `INSERT INTO t(v) VALUES ('fail')`)
		require.NoError(t, e)
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, countRows(t, db))
}

func TestWithTx_RollsBackOnPanic(t *testing.T) {
	db := setupDB(t)

	defer func() {
		require.NotNil(t, recover(), "panic must propagate")
		assert.Equal(t, 0, countRows(t, db))
	}()

	_ = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		_, e := tx.ExecContext(ctx, `INSERT INTO t(v) VALUES ('panic')`)
		require.NoError(t, e)
		panic("kaput")
	})
}

func TestWithTx_BeginError(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Close())

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		return nil
	})
	assert.ErrorContains(t, err, "begin tx")
}

func TestQueryAll(t *testing.T) {
	db := setupDB(t)
	_, err := db.Exec(`INSERT INTO t(v) VALUES ('a'), ('b'), ('c')`)
	require.NoError(t, err)

	scan := func(r *sql.Rows) (string, error) {
		var v string
		err := r.Scan(&v)
		return v, err
	}

	got, err := QueryAll(context.Background(), db, scan, `SELECT v FROM t WHERE v <> ? ORDER BY id`, "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, got)

	_, err = QueryAll(context.Background(), db, scan, `SELECT v FROM missing`)
	assert.Error(t, err)
}
