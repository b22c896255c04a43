package adapter

import (
	"context"
	"testing"

	"github.com/leapstack-labs/leapodbc/internal/testutil"
	"github.com/leapstack-labs/leapodbc/pkg/bridge"
	"github.com/leapstack-labs/leapodbc/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegration_SQLite(t *testing.T) {
	ctx := context.Background()
	cfg := core.ConnectionConfig{Driver: bridge.DriverSQLite, DSN: ":memory:"}

	conn, err := bridge.Open(ctx, cfg, testutil.NewTestLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	a, err := Open(ctx, conn, conn, cfg, testutil.NewTestLogger(t))
	require.NoError(t, err)
	assert.Equal(t, "generic", a.Dialect().Name())
	assert.Equal(t, "SQLite", a.Metadata().DBMSName)

	require.NoError(t, a.Execute(ctx, `CREATE TABLE todos (id INTEGER, title VARCHAR(20), published BOOLEAN)`))
	require.NoError(t, a.Execute(ctx, `INSERT INTO todos VALUES (1, 'write', 1), (2, 'ship', 0), (3, NULL, NULL)`))

	rows, err := a.SelectRows(ctx, `SELECT id, title, published FROM todos ORDER BY id`, true)
	require.NoError(t, err)
	assert.Equal(t, [][]any{
		{int64(1), "write", true},
		{int64(2), "ship", false},
		{int64(3), nil, nil},
	}, rows)

	text, err := a.SelectRows(ctx, `SELECT id, title, published FROM todos ORDER BY id`, false)
	require.NoError(t, err)
	assert.Equal(t, []any{"1", "write", "1"}, text[0])

	v, err := a.SelectValue(ctx, `SELECT published FROM todos WHERE id = 2`)
	require.NoError(t, err)
	assert.Equal(t, false, v)
}
