package adapter

import (
	"context"

	"github.com/leapstack-labs/leapodbc/pkg/core"
	"github.com/leapstack-labs/leapodbc/pkg/dialect"
)

func (a *Adapter) ddl(operation string) (dialect.DDL, error) {
	d := a.Dialect()
	g, ok := d.(dialect.DDL)
	if !ok {
		return nil, &core.UnsupportedOperationError{Dialect: d.Name(), Operation: operation}
	}
	return g, nil
}

// runDDL generates a statement with gen and executes it.
func (a *Adapter) runDDL(ctx context.Context, operation string, gen func(dialect.DDL) (string, error)) error {
	g, err := a.ddl(operation)
	if err != nil {
		return err
	}
	sql, err := gen(g)
	if err != nil {
		return err
	}
	return a.Execute(ctx, sql)
}

// TypeToSQL renders a logical column type in the connection's dialect.
func (a *Adapter) TypeToSQL(logical string, limit, precision, scale *int) (string, error) {
	return a.Dialect().TypeToSQL(logical, limit, precision, scale)
}

// QuoteTableName quotes a possibly qualified table name.
func (a *Adapter) QuoteTableName(name string) string { return a.Dialect().QuoteTableName(name) }

// QuoteColumnName quotes a column name.
func (a *Adapter) QuoteColumnName(name string) string { return a.Dialect().QuoteColumnName(name) }

func (a *Adapter) CreateDatabase(ctx context.Context, name string, opts dialect.DatabaseOptions) error {
	return a.runDDL(ctx, "create_database", func(g dialect.DDL) (string, error) { return g.CreateDatabase(name, opts) })
}

func (a *Adapter) DropDatabase(ctx context.Context, name string) error {
	return a.runDDL(ctx, "drop_database", func(g dialect.DDL) (string, error) { return g.DropDatabase(name) })
}

func (a *Adapter) RenameTable(ctx context.Context, name, newName string) error {
	return a.runDDL(ctx, "rename_table", func(g dialect.DDL) (string, error) { return g.RenameTable(name, newName) })
}

func (a *Adapter) ChangeColumn(ctx context.Context, table, column, logical string) error {
	return a.runDDL(ctx, "change_column", func(g dialect.DDL) (string, error) { return g.ChangeColumn(table, column, logical) })
}

func (a *Adapter) ChangeColumnDefault(ctx context.Context, table, column, def string) error {
	return a.runDDL(ctx, "change_column_default", func(g dialect.DDL) (string, error) {
		return g.ChangeColumnDefault(table, column, def)
	})
}

func (a *Adapter) RenameColumn(ctx context.Context, table, column, newName string) error {
	return a.runDDL(ctx, "rename_column", func(g dialect.DDL) (string, error) { return g.RenameColumn(table, column, newName) })
}

func (a *Adapter) RemoveIndex(ctx context.Context, table, index string) error {
	return a.runDDL(ctx, "remove_index", func(g dialect.DDL) (string, error) { return g.RemoveIndex(table, index) })
}

func (a *Adapter) RenameIndex(ctx context.Context, table, index, newName string) error {
	return a.runDDL(ctx, "rename_index", func(g dialect.DDL) (string, error) { return g.RenameIndex(table, index, newName) })
}
