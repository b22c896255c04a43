package adapter

import (
	"context"
	"fmt"
)

// splitName splits a possibly qualified relation name into unquoted halves.
func (a *Adapter) splitName(name string) (schema, table string) {
	ids := a.Dialect().Identifiers()
	schema, table, ok := ids.SplitQualified(name)
	if !ok {
		return "", ids.Unquote(table)
	}
	return ids.Unquote(schema), ids.Unquote(table)
}

// TableExists reports whether a table, view or materialized view named name
// is reachable. Unqualified names resolve through the session search path.
func (a *Adapter) TableExists(ctx context.Context, name string) (bool, error) {
	c, err := a.catalog("table_exists")
	if err != nil {
		return false, err
	}
	schema, table := a.splitName(name)
	_, rows, err := a.exec.FetchRows(ctx, c.TableExistsQuery(schema, table))
	if err != nil {
		return false, fmt.Errorf("failed to check table %s: %w", name, err)
	}
	return len(rows) > 0, nil
}

// Tables lists base tables in schema, or in the search path when schema is empty.
func (a *Adapter) Tables(ctx context.Context, schema string) ([]string, error) {
	c, err := a.catalog("tables")
	if err != nil {
		return nil, err
	}
	return a.names(ctx, c.TablesQuery(schema))
}

// DataSources lists tables, views and materialized views in schema, or in the
// search path when schema is empty.
func (a *Adapter) DataSources(ctx context.Context, schema string) ([]string, error) {
	c, err := a.catalog("data_sources")
	if err != nil {
		return nil, err
	}
	return a.names(ctx, c.DataSourcesQuery(schema))
}

// names runs a single-column query and returns its values as text.
func (a *Adapter) names(ctx context.Context, sql string) ([]string, error) {
	values, err := a.SelectValues(ctx, sql)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out, nil
}
