// Package redshift provides the Amazon Redshift warehouse dialect.
//
// Redshift drivers report boolean columns as VARCHAR(5) strings, and some
// loading pipelines store booleans as SMALLINT; both are decoded as booleans
// here. The dialect also generates the DDL Redshift accepts and rejects column
// modification, which Redshift does not support.
//
// Import this package with a blank identifier to register the dialect:
//
//	import _ "github.com/leapstack-labs/leapodbc/pkg/dialects/redshift"
package redshift

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/leapstack-labs/leapodbc/pkg/coerce"
	"github.com/leapstack-labs/leapodbc/pkg/core"
	"github.com/leapstack-labs/leapodbc/pkg/dialect"
	"github.com/leapstack-labs/leapodbc/pkg/metadata"
)

// Name is the registered dialect name.
const Name = "redshift"

// Pattern matches DBMS names served by this dialect.
var Pattern = regexp.MustCompile(`(?i)redshift`)

func init() {
	dialect.Register(Name, Pattern, func(snap *metadata.Snapshot) dialect.Dialect { return New(snap) })
}

// Dialect is the Redshift dialect.
type Dialect struct {
	ids dialect.IdentifierConfig
}

var (
	_ dialect.Dialect = (*Dialect)(nil)
	_ dialect.DDL     = (*Dialect)(nil)
	_ dialect.Catalog = (*Dialect)(nil)
)

// New creates a Redshift dialect.
func New(snap *metadata.Snapshot) *Dialect {
	quote := ""
	if snap != nil {
		quote = snap.QuoteChar()
	}
	return &Dialect{ids: dialect.IdentifiersFor(quote, dialect.NormLowercase)}
}

// Name returns the dialect name.
func (d *Dialect) Name() string { return Name }

// Policy derives the coercion policy from the connection configuration.
func (d *Dialect) Policy(cfg core.ConnectionConfig) (coerce.Policy, error) {
	params, err := ParseParams(cfg.Params)
	if err != nil {
		return coerce.Policy{}, err
	}
	emulate := cfg.EmulateBooleans
	if params.EmulateBooleans != nil {
		emulate = *params.EmulateBooleans
	}
	return coerce.NewPolicy(params.options()...).WithEmulateBooleans(emulate), nil
}

// Capabilities reports migration and search path support. Prepared
// statements stay off; literals are substituted before sending.
func (d *Dialect) Capabilities() dialect.Capabilities {
	return dialect.Capabilities{
		Migrations:       true,
		SchemaSearchPath: true,
	}
}

// Identifiers returns the server quote character with lowercase folding.
func (d *Dialect) Identifiers() dialect.IdentifierConfig { return d.ids }

// QuoteColumnName quotes a single identifier, leaving quoted input alone.
func (d *Dialect) QuoteColumnName(name string) string { return d.ids.QuoteIdentifier(name) }

// QuoteTableName quotes each part of a schema-qualified name.
func (d *Dialect) QuoteTableName(name string) string { return d.ids.QuoteTableName(name) }

var nativeTypes = map[string]dialect.NativeType{
	"primary_key": {Name: "BIGINT IDENTITY(1,1) PRIMARY KEY"},
	"string":      {Name: "VARCHAR", Limit: dialect.IntPtr(255)},
	"text":        {Name: "text"},
	"integer":     {Name: "int4"},
	"decimal":     {Name: "numeric"},
	"float":       {Name: "float8"},
	"datetime":    {Name: "timestamp"},
	"timestamp":   {Name: "timestamp"},
	"time":        {Name: "timestamp"},
	"date":        {Name: "date"},
	"binary":      {Name: "bytea"},
	"boolean":     {Name: "boolean"},
}

// NativeTypes returns a copy of the logical to native type table.
func (d *Dialect) NativeTypes() map[string]dialect.NativeType {
	out := make(map[string]dialect.NativeType, len(nativeTypes))
	for k, v := range nativeTypes {
		out[k] = v
	}
	return out
}

// TypeToSQL maps integers by byte width and everything else through the
// native type table.
func (d *Dialect) TypeToSQL(logical string, limit, precision, scale *int) (string, error) {
	return dialect.TypeToSQL(nativeTypes, logical, limit, precision, scale)
}

// TruncateTable returns the statement emptying one table.
func (d *Dialect) TruncateTable(name string) string {
	return "TRUNCATE TABLE " + d.QuoteTableName(name) + ";"
}

// CurrentSchemaTablesQuery lists base tables of the current schema.
func (d *Dialect) CurrentSchemaTablesQuery() string {
	return `SELECT table_name
FROM information_schema.tables
WHERE table_schema = (SELECT current_schema())
  AND table_type = 'BASE TABLE'`
}

// DDL

// CreateDatabase renders CREATE DATABASE with optional owner and
// connection limit.
func (d *Dialect) CreateDatabase(name string, opts dialect.DatabaseOptions) (string, error) {
	var b strings.Builder
	b.WriteString("CREATE DATABASE ")
	b.WriteString(d.QuoteTableName(name))
	if opts.Owner != "" {
		b.WriteString(" OWNER = ")
		b.WriteString(d.QuoteColumnName(opts.Owner))
	}
	if opts.ConnectionLimit != nil {
		b.WriteString(" CONNECTION LIMIT = ")
		b.WriteString(strconv.Itoa(*opts.ConnectionLimit))
	}
	return b.String(), nil
}

// DropDatabase renders DROP DATABASE.
func (d *Dialect) DropDatabase(name string) (string, error) {
	return "DROP DATABASE " + d.QuoteTableName(name), nil
}

// RenameTable renders ALTER TABLE ... RENAME TO.
func (d *Dialect) RenameTable(name, newName string) (string, error) {
	return fmt.Sprintf("ALTER TABLE %s RENAME TO %s", d.QuoteTableName(name), d.QuoteTableName(newName)), nil
}

// ChangeColumn is not supported: Redshift does not allow modifying columns.
func (d *Dialect) ChangeColumn(_, _, _ string) (string, error) {
	return "", &core.UnsupportedOperationError{
		Dialect:   Name,
		Operation: "change_column",
		Reason:    "Redshift does not allow modifying columns",
	}
}

// ChangeColumnDefault is not supported: Redshift does not allow modifying columns.
func (d *Dialect) ChangeColumnDefault(_, _, _ string) (string, error) {
	return "", &core.UnsupportedOperationError{
		Dialect:   Name,
		Operation: "change_column_default",
		Reason:    "Redshift does not allow modifying columns",
	}
}

// RenameColumn renders ALTER TABLE ... RENAME COLUMN with both names quoted.
func (d *Dialect) RenameColumn(table, column, newName string) (string, error) {
	return fmt.Sprintf("ALTER TABLE %s RENAME COLUMN %s TO %s",
		d.QuoteTableName(table), d.QuoteColumnName(column), d.QuoteColumnName(newName)), nil
}

// RemoveIndex renders DROP INDEX. The table is not part of the statement.
func (d *Dialect) RemoveIndex(_, index string) (string, error) {
	return "DROP INDEX " + d.QuoteTableName(index), nil
}

// RenameIndex renders ALTER INDEX ... RENAME TO.
func (d *Dialect) RenameIndex(_, index, newName string) (string, error) {
	return fmt.Sprintf("ALTER INDEX %s RENAME TO %s", d.QuoteColumnName(index), d.QuoteTableName(newName)), nil
}
