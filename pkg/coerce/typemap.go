package coerce

import (
	"time"

	"github.com/leapstack-labs/leapodbc/pkg/core"
)

// Caster converts one non-null, non-temporal driver value for a column.
type Caster func(col core.ColumnDescriptor, index int, v any) (any, error)

// TypeMap is the active mapping from driver type code to caster.
// It backs both bulk decode and single-value reads.
type TypeMap map[core.TypeCode]Caster

// TypeMap builds the type map for p. SMALLINT is registered as boolean only
// when the policy emulates booleans.
func (p Policy) TypeMap() TypeMap {
	m := TypeMap{
		core.TypeFloat: castFloat,
		core.TypeReal:  castReal,
		core.TypeBit:   castBoolean,
	}
	if p.EmulateBooleans() {
		m[core.TypeSmallint] = castBoolean
	}
	return m
}

// Cast decodes a single value under p.
func (p Policy) Cast(col core.ColumnDescriptor, v any) (any, error) {
	return p.castValue(p.TypeMap(), col, 0, v)
}

func (p Policy) castValue(m TypeMap, col core.ColumnDescriptor, index int, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	if t, ok := v.(time.Time); ok {
		return FormatTimestamp(t), nil
	}
	if cast, ok := m[col.TypeCode]; ok {
		return cast(col, index, v)
	}
	if p.IsMasquerade(col) {
		if s, ok := text(v); ok {
			if b, ok := boolText(s); ok {
				return b, nil
			}
		}
	}
	return passthrough(v), nil
}

func castFloat(_ core.ColumnDescriptor, _ int, v any) (any, error) {
	return TrimFloat(v), nil
}

func castReal(_ core.ColumnDescriptor, _ int, v any) (any, error) {
	return RoundReal(v), nil
}

func castBoolean(col core.ColumnDescriptor, index int, v any) (any, error) {
	b, ok := toBool(v)
	if !ok {
		return nil, &core.CoercionError{Column: col.Name, Index: index, Value: v}
	}
	return b, nil
}
