package adapter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/leapodbc/pkg/core"
)

// Result is a decoded query result.
type Result struct {
	Columns []core.ColumnDescriptor
	Rows    []core.TypedRow
}

// ColumnNames returns the result column names in order.
func (r *Result) ColumnNames() []string {
	return core.ColumnNames(r.Columns)
}

// Decode converts raw rows using the current policy.
func (a *Adapter) Decode(cols []core.ColumnDescriptor, rows []core.RawRow) ([]core.TypedRow, error) {
	return a.Policy().Decode(cols, rows)
}

// Encode renders typed rows as literal text using the current policy.
func (a *Adapter) Encode(rows [][]any) [][]any {
	return a.Policy().Encode(rows)
}

// Execute runs a statement that returns no rows.
func (a *Adapter) Execute(ctx context.Context, sql string) error {
	a.log().Debug("execute", slog.String("sql", sql))
	return a.exec.Execute(ctx, sql)
}

// SelectAll runs a query and decodes every row.
func (a *Adapter) SelectAll(ctx context.Context, sql string) (*Result, error) {
	a.log().Debug("select", slog.String("sql", sql))
	cols, raw, err := a.exec.FetchRows(ctx, sql)
	if err != nil {
		return nil, err
	}
	typed, err := a.Decode(cols, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode result: %w", err)
	}
	return &Result{Columns: cols, Rows: typed}, nil
}

// SelectRows returns typed rows when castValues is set, and literal-text
// rows otherwise.
func (a *Adapter) SelectRows(ctx context.Context, sql string, castValues bool) ([][]any, error) {
	res, err := a.SelectAll(ctx, sql)
	if err != nil {
		return nil, err
	}
	rows := make([][]any, len(res.Rows))
	for i, r := range res.Rows {
		rows[i] = []any(r)
	}
	if castValues {
		return rows, nil
	}
	return a.Encode(rows), nil
}

// SelectValues returns the first column of every row as literal text.
func (a *Adapter) SelectValues(ctx context.Context, sql string) ([]any, error) {
	rows, err := a.SelectRows(ctx, sql, false)
	if err != nil {
		return nil, err
	}
	out := make([]any, 0, len(rows))
	for _, r := range rows {
		if len(r) == 0 {
			out = append(out, nil)
			continue
		}
		out = append(out, r[0])
	}
	return out, nil
}

// SelectValue returns the first column of the first row, cast through the
// policy's type map. It returns nil when the query yields no rows.
func (a *Adapter) SelectValue(ctx context.Context, sql string) (any, error) {
	a.log().Debug("select value", slog.String("sql", sql))
	cols, raw, err := a.exec.FetchRows(ctx, sql)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 || len(cols) == 0 {
		return nil, nil
	}
	if len(raw[0]) != len(cols) {
		return nil, &core.ShapeError{Row: 0, Want: len(cols), Got: len(raw[0])}
	}
	return a.Policy().Cast(cols[0], raw[0][0])
}
