// Package generic provides the baseline dialect used for DBMSs that have no
// dedicated dialect. It gives minimal support: quoting with the driver-reported
// quote character, native booleans and truncation. Schema DDL is not generated.
//
// Import this package with a blank identifier to register the fallback:
//
//	import _ "github.com/leapstack-labs/leapodbc/pkg/dialects/generic"
package generic

import (
	"github.com/leapstack-labs/leapodbc/pkg/coerce"
	"github.com/leapstack-labs/leapodbc/pkg/core"
	"github.com/leapstack-labs/leapodbc/pkg/dialect"
	"github.com/leapstack-labs/leapodbc/pkg/metadata"
)

// Name is the registered dialect name.
const Name = "generic"

// Native type names specific to the generic dialect.
const (
	BooleanType = "bool"
	PrimaryKey  = "SERIAL PRIMARY KEY"
)

func init() {
	dialect.RegisterFallback(Name, func(snap *metadata.Snapshot) dialect.Dialect { return New(snap) })
}

// Dialect is the generic dialect.
type Dialect struct {
	ids dialect.IdentifierConfig
}

var _ dialect.Dialect = (*Dialect)(nil)

// New creates a generic dialect for snap. A nil snapshot uses ANSI double quotes.
func New(snap *metadata.Snapshot) *Dialect {
	norm := dialect.NormCaseSensitive
	quote := ""
	if snap != nil {
		quote = snap.QuoteChar()
		if snap.UpcaseIdentifiers() {
			norm = dialect.NormUppercase
		}
	}
	return &Dialect{ids: dialect.IdentifiersFor(quote, norm)}
}

// Name returns the dialect name.
func (d *Dialect) Name() string { return Name }

// Policy returns a policy without SMALLINT boolean emulation; the
// EmulateBooleans setting is accepted but has no effect.
func (d *Dialect) Policy(cfg core.ConnectionConfig) (coerce.Policy, error) {
	return coerce.NewPolicy().WithEmulateBooleans(cfg.EmulateBooleans), nil
}

// Capabilities returns the generic capabilities: no migrations, no
// prepared statements.
func (d *Dialect) Capabilities() dialect.Capabilities {
	return dialect.Capabilities{}
}

// Identifiers returns the identifier configuration.
func (d *Dialect) Identifiers() dialect.IdentifierConfig { return d.ids }

// QuoteColumnName quotes a column name.
func (d *Dialect) QuoteColumnName(name string) string { return d.ids.QuoteIdentifier(name) }

// QuoteTableName quotes a possibly qualified table name.
func (d *Dialect) QuoteTableName(name string) string { return d.ids.QuoteTableName(name) }

var nativeTypes = map[string]dialect.NativeType{
	"primary_key": {Name: PrimaryKey},
	"string":      {Name: "varchar", Limit: dialect.IntPtr(255)},
	"text":        {Name: "text"},
	"integer":     {Name: "integer"},
	"decimal":     {Name: "decimal"},
	"float":       {Name: "float"},
	"datetime":    {Name: "timestamp"},
	"timestamp":   {Name: "timestamp"},
	"time":        {Name: "time"},
	"date":        {Name: "date"},
	"binary":      {Name: "blob"},
	"boolean":     {Name: BooleanType},
}

// NativeTypes returns the native type table.
func (d *Dialect) NativeTypes() map[string]dialect.NativeType {
	out := make(map[string]dialect.NativeType, len(nativeTypes))
	for k, v := range nativeTypes {
		out[k] = v
	}
	return out
}

// TypeToSQL renders a logical type using the baseline rules.
func (d *Dialect) TypeToSQL(logical string, limit, precision, scale *int) (string, error) {
	return dialect.TypeToSQL(nativeTypes, logical, limit, precision, scale)
}

// TruncateTable returns a TRUNCATE TABLE statement.
func (d *Dialect) TruncateTable(name string) string {
	return "TRUNCATE TABLE " + d.QuoteTableName(name)
}

// CurrentSchemaTablesQuery lists base tables in the current schema.
func (d *Dialect) CurrentSchemaTablesQuery() string {
	return `SELECT table_name
FROM information_schema.tables
WHERE table_schema = (SELECT current_schema())
  AND table_type = 'BASE TABLE'`
}
