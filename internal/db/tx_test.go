package db

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openKV(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = conn.Close() })

	_, err = conn.Exec(`CREATE TABLE kv (key TEXT PRIMARY KEY, value TEXT, updated_at INTEGER NOT NULL)`)
	require.NoError(t, err)
	return conn
}

func lookup(t *testing.T, conn *sql.DB, key string) (string, int64, bool) {
	t.Helper()
	var (
		value sql.Null[string]
		at    int64
	)
	err := conn.QueryRow(`SELECT value, updated_at FROM kv WHERE key = ?`, key).Scan(&value, &at)
	if errors.Is(err, sql.ErrNoRows) {
		return "", 0, false
	}
	require.NoError(t, err)
	return Or(value, ""), at, true
}

func TestPutKV_Upserts(t *testing.T) {
	conn := openKV(t)
	ctx := context.Background()
	first := time.Unix(1_700_000_000, 0)

	require.NoError(t, PutKV(ctx, conn, "music-favorites", `[]`, first))
	require.NoError(t, PutKV(ctx, conn, "music-favorites", `[{"id":"1204669"}]`, first.Add(time.Hour)))

	value, at, ok := lookup(t, conn, "music-favorites")
	require.True(t, ok)
	assert.JSONEq(t, `[{"id":"1204669"}]`, value)
	assert.Equal(t, first.Add(time.Hour).Unix(), at)
}

func TestWithTx(t *testing.T) {
	lost := errors.New("session expired")
	now := time.Now()

	tests := []struct {
		name    string
		pairs   [][2]string
		fnErr   error
		wantKey bool
	}{
		{"commits every pair", [][2]string{{"lastfm-user", "ana"}, {"lastfm-session", "sk"}}, nil, true},
		{"rolls back on error", [][2]string{{"lastfm-user", "ana"}, {"lastfm-session", "sk"}}, lost, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := openKV(t)
			ctx := context.Background()

			err := WithTx(ctx, conn, func(tx *sql.Tx) error {
				for _, p := range tt.pairs {
					if err := PutKV(ctx, tx, p[0], p[1], now); err != nil {
						return err
					}
				}
				return tt.fnErr
			})

			if tt.fnErr != nil {
				require.ErrorIs(t, err, tt.fnErr)
			} else {
				require.NoError(t, err)
			}
			_, _, ok := lookup(t, conn, "lastfm-session")
			assert.Equal(t, tt.wantKey, ok)
		})
	}
}

func TestWithTx_CanceledContext(t *testing.T) {
	conn := openKV(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := WithTx(ctx, conn, func(*sql.Tx) error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "begin transaction")
	assert.False(t, called)
}

func TestOr(t *testing.T) {
	assert.Equal(t, "ana", Or(sql.Null[string]{V: "ana", Valid: true}, ""))
	assert.Empty(t, Or(sql.Null[string]{V: "stale"}, ""))
	assert.Equal(t, int64(-1), Or(sql.Null[int64]{}, -1))
}
