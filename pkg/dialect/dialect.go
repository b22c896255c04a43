// Package dialect provides the public contract for database dialects used by
// the connection adapter.
//
// A Dialect is a strategy value selected once per connection from the DBMS name
// the driver reports. It owns identifier quoting, the logical-to-native type
// table and the coercion Policy for result values. Optional capabilities (DDL
// generation, catalog queries) are separate interfaces that callers detect with
// a type assertion. Concrete dialects are registered from pkg/dialects/*/ packages.
package dialect

import (
	"fmt"
	"strconv"

	"github.com/leapstack-labs/leapodbc/pkg/coerce"
	"github.com/leapstack-labs/leapodbc/pkg/core"
)

// NativeType is a native column type with an optional default limit.
type NativeType struct {
	Name  string
	Limit *int
}

// SQL renders the native type with its default limit, if any.
func (t NativeType) SQL() string {
	if t.Limit == nil {
		return t.Name
	}
	return t.Name + "(" + strconv.Itoa(*t.Limit) + ")"
}

// Capabilities describes what a dialect supports.
type Capabilities struct {
	Migrations         bool
	PreparedStatements bool
	SchemaSearchPath   bool
	ColumnChange       bool
}

// Dialect is implemented by every registered dialect.
type Dialect interface {
	// Name returns the dialect name (e.g., "redshift").
	Name() string

	// Policy derives the coercion policy for a new connection.
	Policy(cfg core.ConnectionConfig) (coerce.Policy, error)

	Capabilities() Capabilities

	// Identifiers returns the identifier quoting configuration.
	Identifiers() IdentifierConfig

	QuoteColumnName(name string) string
	QuoteTableName(name string) string

	// NativeTypes maps logical type names to native types.
	NativeTypes() map[string]NativeType

	// TypeToSQL renders a logical column type as native DDL.
	TypeToSQL(logical string, limit, precision, scale *int) (string, error)

	// TruncateTable returns the statement that empties a table.
	TruncateTable(name string) string

	// CurrentSchemaTablesQuery lists base tables in the current schema.
	CurrentSchemaTablesQuery() string
}

// DatabaseOptions configures CREATE DATABASE.
type DatabaseOptions struct {
	Owner           string `mapstructure:"owner"`
	ConnectionLimit *int   `mapstructure:"connection_limit"`
}

// DDL is implemented by dialects that generate schema statements.
type DDL interface {
	CreateDatabase(name string, opts DatabaseOptions) (string, error)
	DropDatabase(name string) (string, error)
	RenameTable(name, newName string) (string, error)
	ChangeColumn(table, column, logical string) (string, error)
	ChangeColumnDefault(table, column, def string) (string, error)
	RenameColumn(table, column, newName string) (string, error)
	RemoveIndex(table, index string) (string, error)
	RenameIndex(table, index, newName string) (string, error)
}

// Catalog is implemented by dialects with a queryable system catalog and a
// schema search path.
type Catalog interface {
	ShowSearchPath() string
	SetSearchPath(path string) string

	// TablesQuery lists tables in schema, or in the effective search path
	// when schema is empty.
	TablesQuery(schema string) string

	// DataSourcesQuery lists tables, views and materialized views.
	DataSourcesQuery(schema string) string

	// TableExistsQuery returns a query yielding a row when the table exists.
	TableExistsQuery(schema, table string) string

	// NonEmptyTablesQuery lists (schema, table) pairs with rows.
	NonEmptyTablesQuery() string

	// FallbackTablesQuery lists (schema, table) pairs of user base tables
	// when NonEmptyTablesQuery is not permitted.
	FallbackTablesQuery() string
}

// IntegerTypeToSQL maps an integer byte width to a native integer type.
func IntegerTypeToSQL(limit *int) (string, error) {
	if limit == nil {
		return "integer", nil
	}
	switch *limit {
	case 1, 2:
		return "smallint", nil
	case 3, 4:
		return "integer", nil
	case 5, 6, 7, 8:
		return "bigint", nil
	default:
		return "", &core.WidthError{Width: *limit}
	}
}

// TypeToSQL is the baseline logical-to-native type rendering shared by dialects.
// An explicit limit overrides the native default; decimal types take precision
// and scale.
func TypeToSQL(types map[string]NativeType, logical string, limit, precision, scale *int) (string, error) {
	if logical == "integer" {
		return IntegerTypeToSQL(limit)
	}
	native, ok := types[logical]
	if !ok {
		// Unknown logical types are passed through as native names.
		return logical, nil
	}
	if logical == "decimal" && precision != nil {
		if scale != nil {
			return fmt.Sprintf("%s(%d,%d)", native.Name, *precision, *scale), nil
		}
		return fmt.Sprintf("%s(%d)", native.Name, *precision), nil
	}
	if limit != nil {
		return native.Name + "(" + strconv.Itoa(*limit) + ")", nil
	}
	return native.SQL(), nil
}

// Unsupported returns an UnsupportedOperationError for d.
func Unsupported(d Dialect, operation string) error {
	return &core.UnsupportedOperationError{Dialect: d.Name(), Operation: operation}
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }
