package coerce

import (
	"fmt"

	"github.com/leapstack-labs/leapodbc/pkg/core"
)

// Decode converts raw driver rows into typed rows.
//
// Row order and count are preserved. Each row must carry exactly one value per
// column. The only value-level failure is a boolean-valued column holding
// something other than 0, 1, "0", "1" or NULL.
func (p Policy) Decode(cols []core.ColumnDescriptor, rows []core.RawRow) ([]core.TypedRow, error) {
	m := p.TypeMap()
	out := make([]core.TypedRow, len(rows))
	for r, raw := range rows {
		if len(raw) != len(cols) {
			return nil, &core.ShapeError{Row: r, Want: len(cols), Got: len(raw)}
		}
		typed := make(core.TypedRow, len(raw))
		for i, v := range raw {
			val, err := p.castValue(m, cols[i], i, v)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", r, err)
			}
			typed[i] = val
		}
		out[r] = typed
	}
	return out, nil
}

// BooleanColumns returns the indices of columns decoded as strict booleans.
func (p Policy) BooleanColumns(cols []core.ColumnDescriptor) []int {
	var idx []int
	for i, c := range cols {
		if p.IsStrictBoolean(c) {
			idx = append(idx, i)
		}
	}
	return idx
}
