package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithBusyTimeout(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{":memory:", ":memory:?_pragma=busy_timeout(5000)"},
		{"file:auth.db?_pragma=journal_mode(WAL)", "file:auth.db?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"},
		{"file:auth.db?_pragma=busy_timeout(100)", "file:auth.db?_pragma=busy_timeout(100)"},
	}
	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			require.Equal(t, tt.want, withBusyTimeout(tt.dsn))
		})
	}
}

func TestNewStore_BusyTimeoutOnEveryConnection(t *testing.T) {
	ctx := context.Background()
	dsn := "file:" + filepath.Join(t.TempDir(), "auth.db") + "?_pragma=journal_mode(WAL)"

	st, err := NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	// Hold several connections at once so the pool has to open new ones.
	conns := make([]*sql.Conn, 3)
	for i := range conns {
		conns[i], err = st.db.Conn(ctx)
		require.NoError(t, err)
	}
	t.Cleanup(func() {
		for _, c := range conns {
			_ = c.Close()
		}
	})

	for i, c := range conns {
		var timeout int
		require.NoError(t, c.QueryRowContext(ctx, `PRAGMA busy_timeout`).Scan(&timeout))
		require.Equal(t, 5000, timeout, "connection %d", i)
	}
}
