package redshift

import (
	"testing"

	"github.com/leapstack-labs/leapodbc/pkg/core"
	"github.com/leapstack-labs/leapodbc/pkg/dialect"
	"github.com/leapstack-labs/leapodbc/pkg/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistered(t *testing.T) {
	for _, name := range []string{"Redshift", "Amazon Redshift", "REDSHIFT 1.0"} {
		d, err := dialect.For(&metadata.Snapshot{DBMSName: name})
		require.NoError(t, err, name)
		assert.Equal(t, Name, d.Name())
	}

	_, err := dialect.For(&metadata.Snapshot{DBMSName: "PostgreSQL"})
	// No fallback is registered in this package's tests.
	var ude *dialect.UnknownDialectError
	assert.ErrorAs(t, err, &ude)
}

func TestPolicy(t *testing.T) {
	smallint := core.NewColumn("flag", core.TypeSmallint, -1, -1, -1)

	tests := []struct {
		name        string
		cfg         core.ConnectionConfig
		wantEmulate bool
	}{
		{"default off", core.ConnectionConfig{}, false},
		{"config on", core.ConnectionConfig{EmulateBooleans: true}, true},
		{
			name: "param overrides config",
			cfg: core.ConnectionConfig{
				EmulateBooleans: true,
				Params:          map[string]any{"emulate_booleans": false},
			},
			wantEmulate: false,
		},
		{
			name:        "weakly typed param",
			cfg:         core.ConnectionConfig{Params: map[string]any{"emulate_booleans": "true"}},
			wantEmulate: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(nil).Policy(tt.cfg)
			require.NoError(t, err)
			assert.True(t, p.AllowsEmulation())
			assert.Equal(t, tt.wantEmulate, p.EmulateBooleans())
			assert.Equal(t, tt.wantEmulate, p.IsStrictBoolean(smallint))
		})
	}
}

func TestPolicy_EmulatedSmallintRoundTrip(t *testing.T) {
	p, err := New(nil).Policy(core.ConnectionConfig{EmulateBooleans: true})
	require.NoError(t, err)

	cols := []core.ColumnDescriptor{core.NewColumn("flag", core.TypeSmallint, -1, -1, -1)}
	typed, err := p.Decode(cols, []core.RawRow{{"1"}, {"0"}, {nil}})
	require.NoError(t, err)
	assert.Equal(t, []core.TypedRow{{true}, {false}, {nil}}, typed)

	rows := make([][]any, len(typed))
	for i, r := range typed {
		rows[i] = []any(r)
	}
	assert.Equal(t, [][]any{{"1"}, {"0"}, {nil}}, p.Encode(rows))
}

func TestPolicy_Masquerade(t *testing.T) {
	shaped := core.NewColumn("active", core.TypeVarchar, 6, 6, 0)

	p, err := New(nil).Policy(core.ConnectionConfig{Params: map[string]any{
		"boolean_masquerade": map[string]any{"length": 6, "precision": 6, "scale": 0},
	}})
	require.NoError(t, err)
	assert.True(t, p.IsMasquerade(shaped))
	assert.False(t, p.IsMasquerade(core.NewColumn("active", core.TypeVarchar, 5, 5, 0)))

	p, err = New(nil).Policy(core.ConnectionConfig{Params: map[string]any{"masquerade_disabled": true}})
	require.NoError(t, err)
	assert.False(t, p.IsMasquerade(core.NewColumn("active", core.TypeVarchar, 5, 5, 0)))
}

func TestParseParams(t *testing.T) {
	tests := []struct {
		name    string
		input   map[string]any
		want    *Params
		wantErr bool
	}{
		{
			name:  "nil params returns empty struct",
			input: nil,
			want:  &Params{},
		},
		{
			name:  "emulate booleans",
			input: map[string]any{"emulate_booleans": true},
			want:  &Params{EmulateBooleans: boolPtr(true)},
		},
		{
			name: "masquerade shape",
			input: map[string]any{
				"boolean_masquerade": map[string]any{"length": 5, "precision": 5},
			},
			want: &Params{BooleanMasquerade: &MasqueradeParams{Length: 5, Precision: 5}},
		},
		{
			name:    "unknown key",
			input:   map[string]any{"emulate_bool": true},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseParams(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTypeToSQL(t *testing.T) {
	d := New(nil)

	tests := []struct {
		logical string
		limit   *int
		want    string
	}{
		{"integer", nil, "integer"},
		{"integer", dialect.IntPtr(2), "smallint"},
		{"integer", dialect.IntPtr(8), "bigint"},
		{"string", nil, "VARCHAR(255)"},
		{"string", dialect.IntPtr(64), "VARCHAR(64)"},
		{"primary_key", nil, "BIGINT IDENTITY(1,1) PRIMARY KEY"},
		{"float", nil, "float8"},
		{"binary", nil, "bytea"},
		{"time", nil, "timestamp"},
	}

	for _, tt := range tests {
		got, err := d.TypeToSQL(tt.logical, tt.limit, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.logical)
	}

	_, err := d.TypeToSQL("integer", dialect.IntPtr(9), nil, nil)
	var we *core.WidthError
	assert.ErrorAs(t, err, &we)
}

func TestDDL(t *testing.T) {
	d := New(nil)

	sql, err := d.CreateDatabase("analytics", dialect.DatabaseOptions{Owner: "etl", ConnectionLimit: dialect.IntPtr(10)})
	require.NoError(t, err)
	assert.Equal(t, `CREATE DATABASE "analytics" OWNER = "etl" CONNECTION LIMIT = 10`, sql)

	sql, err = d.CreateDatabase("analytics", dialect.DatabaseOptions{})
	require.NoError(t, err)
	assert.Equal(t, `CREATE DATABASE "analytics"`, sql)

	sql, err = d.DropDatabase("analytics")
	require.NoError(t, err)
	assert.Equal(t, `DROP DATABASE "analytics"`, sql)

	sql, err = d.RenameTable("public.users", "people")
	require.NoError(t, err)
	assert.Equal(t, `ALTER TABLE "public"."users" RENAME TO "people"`, sql)

	sql, err = d.RenameColumn("users", "name", "full_name")
	require.NoError(t, err)
	assert.Equal(t, `ALTER TABLE "users" RENAME COLUMN "name" TO "full_name"`, sql)

	sql, err = d.RemoveIndex("users", "users_idx")
	require.NoError(t, err)
	assert.Equal(t, `DROP INDEX "users_idx"`, sql)

	sql, err = d.RenameIndex("users", "old_idx", "new_idx")
	require.NoError(t, err)
	assert.Equal(t, `ALTER INDEX "old_idx" RENAME TO "new_idx"`, sql)
}

func TestDDL_Unsupported(t *testing.T) {
	d := New(nil)

	_, err := d.ChangeColumn("users", "name", "text")
	var uoe *core.UnsupportedOperationError
	require.ErrorAs(t, err, &uoe)
	assert.Equal(t, "change_column", uoe.Operation)
	assert.Contains(t, err.Error(), "does not allow modifying columns")

	_, err = d.ChangeColumnDefault("users", "name", "x")
	require.ErrorAs(t, err, &uoe)
	assert.Equal(t, "change_column_default", uoe.Operation)
}

func TestCatalogQueries(t *testing.T) {
	d := New(nil)

	assert.Equal(t, "SHOW search_path", d.ShowSearchPath())
	assert.Equal(t, `SET search_path TO "$user", public`, d.SetSearchPath(`"$user", public`))

	q := d.TablesQuery("")
	assert.Contains(t, q, "current_schemas(false)")
	assert.Contains(t, q, "IN ('r')")

	q = d.DataSourcesQuery("analytics")
	assert.Contains(t, q, "n.nspname = 'analytics'")
	assert.Contains(t, q, "IN ('r','v','m')")

	q = d.TableExistsQuery("", "o'brien")
	assert.Contains(t, q, "c.relname = 'o''brien'")

	assert.Equal(t, `select "schema", "table" from svv_table_info`, d.NonEmptyTablesQuery())
	assert.Contains(t, d.FallbackTablesQuery(), "NOT LIKE 'pg_%'")
	assert.Equal(t, `TRUNCATE TABLE "public"."users";`, d.TruncateTable("public.users"))
}

func boolPtr(b bool) *bool { return &b }
