package bridge

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/leapodbc/internal/testutil"
	"github.com/leapstack-labs/leapodbc/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSQLite(t *testing.T, path string) *Conn {
	t.Helper()
	conn, err := Open(context.Background(), core.ConnectionConfig{
		Driver:           DriverSQLite,
		ConnectionString: "Database=" + path,
	}, testutil.NewTestLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestSQLite_RoundTrip(t *testing.T) {
	ctx := context.Background()
	conn := openSQLite(t, ":memory:")

	require.NoError(t, conn.Execute(ctx, `CREATE TABLE todos (id INTEGER, title VARCHAR(20), published BOOLEAN)`))
	require.NoError(t, conn.Execute(ctx, `INSERT INTO todos VALUES (1, 'write', 1), (2, 'ship', 0)`))

	cols, rows, err := conn.FetchRows(ctx, `SELECT id, title, published FROM todos ORDER BY id`)
	require.NoError(t, err)
	require.Len(t, cols, 3)
	assert.Equal(t, []string{"id", "title", "published"}, core.ColumnNames(cols))
	assert.Equal(t, core.TypeInteger, cols[0].TypeCode)
	assert.Equal(t, core.TypeVarchar, cols[1].TypeCode)
	assert.Equal(t, core.TypeBit, cols[2].TypeCode)

	require.Len(t, rows, 2)
	assert.Equal(t, int64(1), rows[0][0])
	assert.Equal(t, "write", rows[0][1])
}

func TestSQLite_Info(t *testing.T) {
	conn := openSQLite(t, ":memory:")

	name, err := conn.GetInfo(context.Background(), core.InfoDBMSName)
	require.NoError(t, err)
	assert.Equal(t, "SQLite", name)

	version, err := conn.GetInfo(context.Background(), core.InfoDBMSVersion)
	require.NoError(t, err)
	assert.NotEmpty(t, version)
}

func TestSQLite_Reconnect(t *testing.T) {
	ctx := context.Background()
	conn := openSQLite(t, filepath.Join(t.TempDir(), "app.db"))

	require.NoError(t, conn.Execute(ctx, `CREATE TABLE kept (id INTEGER)`))
	require.NoError(t, conn.Reconnect(ctx))
	assert.True(t, conn.IsConnected())

	_, rows, err := conn.FetchRows(ctx, `SELECT count(*) FROM kept`)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(0), rows[0][0])
}
