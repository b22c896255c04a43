package redshift

import (
	"fmt"

	"github.com/leapstack-labs/leapodbc/pkg/dialect"
)

const (
	relkindTables      = "'r'"
	relkindDataSources = "'r','v','m'"
)

// ShowSearchPath reads the session search path.
func (d *Dialect) ShowSearchPath() string { return "SHOW search_path" }

// SetSearchPath sets the session search path. path is sent as given.
func (d *Dialect) SetSearchPath(path string) string { return "SET search_path TO " + path }

// TablesQuery lists ordinary tables in schema, or in the search path when
// schema is empty.
func (d *Dialect) TablesQuery(schema string) string {
	return relationsQuery(relkindTables, schema, "")
}

// DataSourcesQuery lists tables, views and materialized views.
func (d *Dialect) DataSourcesQuery(schema string) string {
	return relationsQuery(relkindDataSources, schema, "")
}

// TableExistsQuery returns a query yielding a row when table is visible.
func (d *Dialect) TableExistsQuery(schema, table string) string {
	return relationsQuery(relkindDataSources, schema, table)
}

// NonEmptyTablesQuery reads svv_table_info, which lists only tables with rows
// and needs extra privileges.
func (d *Dialect) NonEmptyTablesQuery() string {
	return `select "schema", "table" from svv_table_info`
}

// FallbackTablesQuery lists user base tables when svv_table_info is not
// readable.
func (d *Dialect) FallbackTablesQuery() string {
	return `SELECT table_schema, table_name
FROM information_schema.tables
WHERE table_schema != 'information_schema' AND table_schema NOT LIKE 'pg_%'
  AND table_type = 'BASE TABLE'`
}

// relationsQuery lists relation names of the given kinds in schema, or in the
// effective search path when schema is empty.
func relationsQuery(kinds, schema, name string) string {
	scope := "n.nspname = ANY (current_schemas(false))"
	if schema != "" {
		scope = "n.nspname = " + dialect.QuoteString(schema)
	}
	q := fmt.Sprintf(`SELECT c.relname
FROM pg_catalog.pg_class c
LEFT JOIN pg_catalog.pg_namespace n ON n.oid = c.relnamespace
WHERE c.relkind IN (%s)
  AND %s`, kinds, scope)
	if name != "" {
		q += "\n  AND c.relname = " + dialect.QuoteString(name)
	}
	return q
}
