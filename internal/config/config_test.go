package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/leapodbc/pkg/bridge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionSettings_Validate(t *testing.T) {
	tests := []struct {
		name      string
		conn      ConnectionSettings
		errSubstr string
	}{
		{name: "empty driver", conn: ConnectionSettings{}, errSubstr: "connection driver is required"},
		{name: "pgx", conn: ConnectionSettings{Driver: "pgx"}},
		{name: "sqlite uppercase", conn: ConnectionSettings{Driver: "SQLite"}},
		{name: "duckdb", conn: ConnectionSettings{Driver: "duckdb"}},
		{name: "unknown odbc", conn: ConnectionSettings{Driver: "odbc"}, errSubstr: "unknown driver"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.conn.Validate()
			if tt.errSubstr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestConnectionSettings_ValidateUnknownDriverType(t *testing.T) {
	err := (&ConnectionSettings{Driver: "mysql"}).Validate()

	var unknown *bridge.UnknownDriverError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "mysql", unknown.Name)
	assert.Contains(t, unknown.Available, "pgx")
}

func TestToConnectionConfig(t *testing.T) {
	c := &ConnectionSettings{
		Driver:           "PGX",
		ConnectionString: "Server=h;UID=u",
		EmulateBooleans:  true,
		SchemaSearchPath: "analytics",
		Params:           map[string]any{"masquerade_disabled": true},
	}

	cc := c.ToConnectionConfig()
	assert.Equal(t, "pgx", cc.Driver)
	assert.Equal(t, "Server=h;UID=u", cc.ConnectionString)
	assert.True(t, cc.EmulateBooleans)
	assert.Equal(t, "analytics", cc.SchemaSearchPath)
	assert.Equal(t, true, cc.Params["masquerade_disabled"])

	var nilSettings *ConnectionSettings
	assert.Empty(t, nilSettings.ToConnectionConfig().Driver)
}

func TestMergeConnection(t *testing.T) {
	base := &ConnectionSettings{
		Driver:           "pgx",
		DSN:              "postgres://base",
		SchemaSearchPath: "public",
		Params:           map[string]any{"a": 1, "b": 2},
	}
	override := &ConnectionSettings{
		DSN:             "postgres://prod",
		EmulateBooleans: true,
		Params:          map[string]any{"b": 3},
	}

	merged := MergeConnection(base, override)
	assert.Equal(t, "pgx", merged.Driver)
	assert.Equal(t, "postgres://prod", merged.DSN)
	assert.Equal(t, "public", merged.SchemaSearchPath)
	assert.True(t, merged.EmulateBooleans)
	assert.Equal(t, map[string]any{"a": 1, "b": 3}, merged.Params)

	// Inputs are untouched.
	assert.Equal(t, "postgres://base", base.DSN)
	assert.Equal(t, 2, base.Params["b"])

	assert.Nil(t, MergeConnection(nil, nil))
	assert.Equal(t, "postgres://prod", MergeConnection(nil, override).DSN)
	assert.Equal(t, "postgres://base", MergeConnection(base, nil).DSN)
}

func TestLoadFromDir(t *testing.T) {
	t.Run("no config file", func(t *testing.T) {
		cfg, err := LoadFromDir(t.TempDir())
		require.NoError(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("yaml with environments", func(t *testing.T) {
		dir := t.TempDir()
		content := `
connection:
  connection_string: "Server=localhost;Database=dev"
  schema_search_path: analytics
environment: dev
environments:
  prod:
    connection_string: "Server=warehouse;Database=prod"
    emulate_booleans: true
    params:
      masquerade_disabled: true
`
		require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o600))

		cfg, err := LoadFromDir(dir)
		require.NoError(t, err)
		require.NotNil(t, cfg)
		assert.Equal(t, DefaultDriver, cfg.Connection.Driver)

		dev := cfg.Resolve("")
		assert.Equal(t, "Server=localhost;Database=dev", dev.ConnectionString)
		assert.False(t, dev.EmulateBooleans)

		prod := cfg.Resolve("prod")
		assert.Equal(t, "Server=warehouse;Database=prod", prod.ConnectionString)
		assert.Equal(t, "analytics", prod.SchemaSearchPath)
		assert.True(t, prod.EmulateBooleans)
		assert.Equal(t, true, prod.Params["masquerade_disabled"])
	})

	t.Run("alternate file name", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileNameAlt), []byte("connection:\n  driver: sqlite\n"), 0o600))

		cfg, err := LoadFromDir(dir)
		require.NoError(t, err)
		assert.Equal(t, "sqlite", cfg.Connection.Driver)
	})
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName), []byte("{}"), 0o600))

	assert.Equal(t, root, FindProjectRoot(nested, 10))
	assert.Empty(t, FindProjectRoot(nested, 1))
}
