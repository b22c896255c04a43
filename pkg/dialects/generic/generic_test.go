package generic

import (
	"testing"

	"github.com/leapstack-labs/leapodbc/pkg/core"
	"github.com/leapstack-labs/leapodbc/pkg/dialect"
	"github.com/leapstack-labs/leapodbc/pkg/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisteredAsFallback(t *testing.T) {
	d, err := dialect.For(&metadata.Snapshot{DBMSName: "SomeUnknownDB"})
	require.NoError(t, err)
	assert.Equal(t, Name, d.Name())
}

func TestPolicy_IgnoresEmulation(t *testing.T) {
	p, err := New(nil).Policy(core.ConnectionConfig{EmulateBooleans: true})
	require.NoError(t, err)
	assert.False(t, p.EmulateBooleans())

	tr, fa := p.BooleanLiterals()
	assert.Equal(t, "1", tr)
	assert.Equal(t, "0", fa)

	// SMALLINT stays numeric without emulation.
	got, err := p.Cast(core.NewColumn("n", core.TypeSmallint, -1, -1, -1), int64(1))
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)
}

func TestQuoting(t *testing.T) {
	tests := []struct {
		name  string
		quote string
		in    string
		want  string
	}{
		{"default quote", "", "public.users", `"public"."users"`},
		{"driver quote", "`", "users", "`users`"},
		{"pre-quoted half", `"`, `"Public".users`, `"Public"."users"`},
		{"blank quote char", " ", "users", `"users"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(&metadata.Snapshot{IdentifierQuoteChar: tt.quote})
			assert.Equal(t, tt.want, d.QuoteTableName(tt.in))
		})
	}

	assert.Equal(t, `"id"`, New(nil).QuoteColumnName("id"))
}

func TestNativeTypes(t *testing.T) {
	d := New(nil)
	types := d.NativeTypes()
	assert.Equal(t, BooleanType, types["boolean"].Name)
	assert.Equal(t, PrimaryKey, types["primary_key"].Name)

	// Returned map is a copy.
	types["boolean"] = dialect.NativeType{Name: "tinyint"}
	assert.Equal(t, BooleanType, d.NativeTypes()["boolean"].Name)

	sql, err := d.TypeToSQL("boolean", nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "bool", sql)

	sql, err = d.TypeToSQL("string", nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "varchar(255)", sql)
}

func TestCapabilities(t *testing.T) {
	caps := New(nil).Capabilities()
	assert.False(t, caps.Migrations)
	assert.False(t, caps.PreparedStatements)
	assert.False(t, caps.SchemaSearchPath)

	var d dialect.Dialect = New(nil)
	_, isDDL := d.(dialect.DDL)
	assert.False(t, isDDL)
	_, isCatalog := d.(dialect.Catalog)
	assert.False(t, isCatalog)
}

func TestTruncate(t *testing.T) {
	d := New(nil)
	assert.Equal(t, `TRUNCATE TABLE "events"`, d.TruncateTable("events"))
	assert.Contains(t, d.CurrentSchemaTablesQuery(), "current_schema()")
	assert.Contains(t, d.CurrentSchemaTablesQuery(), "'BASE TABLE'")
}
