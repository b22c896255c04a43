package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/leapodbc/pkg/core"
	"github.com/leapstack-labs/leapodbc/pkg/dialect"
)

// TruncateTable empties one table.
func (a *Adapter) TruncateTable(ctx context.Context, name string) error {
	return a.Execute(ctx, a.Dialect().TruncateTable(name))
}

// TruncateTables empties tables and returns the names it truncated.
//
// Dialects without a catalog ignore names and truncate every base table in
// the current schema. Dialects with a catalog truncate names, or every
// non-empty table when names is empty.
func (a *Adapter) TruncateTables(ctx context.Context, names []string) ([]string, error) {
	d := a.Dialect()
	var err error
	if _, ok := d.(dialect.Catalog); !ok {
		names, err = a.names(ctx, d.CurrentSchemaTablesQuery())
	} else if len(names) == 0 {
		names, err = a.ListNonEmptyTables(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}

	for i, name := range names {
		if err := a.TruncateTable(ctx, name); err != nil {
			return names[:i], fmt.Errorf("failed to truncate %s: %w", name, err)
		}
	}
	a.log().Info("tables truncated", slog.Int("count", len(names)))
	return names, nil
}

// ListNonEmptyTables returns quoted schema-qualified names of tables with
// rows. When the fast listing is not permitted, it falls back to scanning all
// user base tables.
func (a *Adapter) ListNonEmptyTables(ctx context.Context) ([]string, error) {
	c, err := a.catalog("list_non_empty_tables")
	if err != nil {
		return nil, err
	}

	rows, err := a.SelectRows(ctx, c.NonEmptyTablesQuery(), false)
	if err != nil {
		if !core.IsStatementInvalid(err) {
			return nil, err
		}
		a.log().Info("falling back to information_schema.tables which is slower than svv_table_info",
			slog.String("error", err.Error()))
		rows, err = a.SelectRows(ctx, c.FallbackTablesQuery(), false)
		if err != nil {
			return nil, err
		}
	}

	d := a.Dialect()
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		if len(r) < 2 {
			continue
		}
		schema, _ := r[0].(string)
		table, _ := r[1].(string)
		if schema == "information_schema" || strings.HasPrefix(schema, "pg_") {
			continue
		}
		out = append(out, d.QuoteColumnName(schema)+"."+d.QuoteColumnName(table))
	}
	return out, nil
}
