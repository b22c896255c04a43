package coerce

import (
	"testing"
	"time"

	"github.com/leapstack-labs/leapodbc/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallint(name string) core.ColumnDescriptor {
	return core.NewColumn(name, core.TypeSmallint, -1, 5, 0)
}

func masquerade(name string) core.ColumnDescriptor {
	return core.NewColumn(name, core.TypeVarchar, 5, 5, 0)
}

func TestDecode_Dispatch(t *testing.T) {
	ts := time.Date(2023, 7, 1, 8, 30, 0, 250_000_000, time.UTC)

	tests := []struct {
		name   string
		policy Policy
		col    core.ColumnDescriptor
		in     any
		want   any
	}{
		{"null passthrough bit", NewPolicy(), core.NewColumn("b", core.TypeBit, 1, 1, 0), nil, nil},
		{"null passthrough float", NewPolicy(), core.NewColumn("f", core.TypeFloat, -1, 15, -1), nil, nil},
		{"timestamp formatted", NewPolicy(), core.NewColumn("ts", core.TypeTypeTimestamp, -1, 23, 3), ts, "2023-07-01 08:30:00.250"},
		{"time value wins over float code", NewPolicy(), core.NewColumn("f", core.TypeFloat, -1, 15, -1), ts, "2023-07-01 08:30:00.250"},
		{"float trimmed to integer", NewPolicy(), core.NewColumn("f", core.TypeFloat, -1, 15, -1), "10.000", int64(10)},
		{"float trimmed to float", NewPolicy(), core.NewColumn("f", core.TypeFloat, -1, 15, -1), "10.500", 10.5},
		{"real rounded", NewPolicy(), core.NewColumn("r", core.TypeReal, -1, 9, -1), "1.123456789", 1.123457},
		{"bit one", NewPolicy(), core.NewColumn("b", core.TypeBit, 1, 1, 0), "1", true},
		{"bit zero int", NewPolicy(), core.NewColumn("b", core.TypeBit, 1, 1, 0), 0, false},
		{"bit native bool", NewPolicy(), core.NewColumn("b", core.TypeBit, 1, 1, 0), true, true},
		{"masquerade one", NewPolicy(), masquerade("flag"), "1", true},
		{"masquerade zero", NewPolicy(), masquerade("flag"), "0", false},
		{"masquerade other text", NewPolicy(), masquerade("flag"), "hello", "hello"},
		{"masquerade bytes", NewPolicy(), masquerade("flag"), []byte("1"), true},
		{"non-matching varchar keeps literal", NewPolicy(), core.NewColumn("s", core.TypeVarchar, 255, 255, 0), "1", "1"},
		{"smallint without emulation", NewPolicy(WithEmulation()), smallint("n"), "1", "1"},
		{"smallint emulated", NewPolicy(WithEmulation()).WithEmulateBooleans(true), smallint("n"), "0", false},
		{"smallint emulated int", NewPolicy(WithEmulation()).WithEmulateBooleans(true), smallint("n"), int16(1), true},
		{"generic ignores emulation", NewPolicy().WithEmulateBooleans(true), smallint("n"), "1", "1"},
		{"integer passthrough", NewPolicy(), core.NewColumn("i", core.TypeInteger, -1, 10, 0), int64(5), int64(5)},
		{"bytes become string", NewPolicy(), core.NewColumn("c", core.TypeLongVarchar, -1, -1, -1), []byte("abc"), "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.policy.Decode([]core.ColumnDescriptor{tt.col}, []core.RawRow{{tt.in}})
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0][0])
		})
	}
}

func TestDecode_BooleanViolation(t *testing.T) {
	tests := []struct {
		name   string
		policy Policy
		col    core.ColumnDescriptor
		in     any
	}{
		{"bit with text", NewPolicy(), core.NewColumn("b", core.TypeBit, 1, 1, 0), "yes"},
		{"bit with two", NewPolicy(), core.NewColumn("b", core.TypeBit, 1, 1, 0), 2},
		{"emulated smallint with five", NewPolicy(WithEmulation()).WithEmulateBooleans(true), smallint("n"), "5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.policy.Decode([]core.ColumnDescriptor{tt.col}, []core.RawRow{{nil}, {tt.in}})
			require.Error(t, err)

			var coercionErr *core.CoercionError
			require.ErrorAs(t, err, &coercionErr)
			assert.Equal(t, tt.col.Name, coercionErr.Column)
			assert.Equal(t, tt.in, coercionErr.Value)
			assert.Contains(t, err.Error(), "row 1")
		})
	}
}

func TestDecode_PreservesShape(t *testing.T) {
	cols := []core.ColumnDescriptor{
		core.NewColumn("id", core.TypeInteger, -1, 10, 0),
		core.NewColumn("name", core.TypeVarchar, 255, 255, 0),
		core.NewColumn("score", core.TypeFloat, -1, 15, -1),
	}
	rows := []core.RawRow{
		{int64(3), "carol", "7.000"},
		{int64(1), "alice", nil},
		{int64(2), nil, "1.250"},
	}

	got, err := NewPolicy().Decode(cols, rows)
	require.NoError(t, err)

	want := []core.TypedRow{
		{int64(3), "carol", int64(7)},
		{int64(1), "alice", nil},
		{int64(2), nil, 1.25},
	}
	assert.Equal(t, want, got)
}

func TestDecode_EmptyResult(t *testing.T) {
	got, err := NewPolicy().Decode([]core.ColumnDescriptor{smallint("n")}, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDecode_ShapeMismatch(t *testing.T) {
	cols := []core.ColumnDescriptor{smallint("a"), smallint("b")}

	_, err := NewPolicy().Decode(cols, []core.RawRow{{"1", "0"}, {"1"}})
	require.Error(t, err)

	var shapeErr *core.ShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, 1, shapeErr.Row)
	assert.Equal(t, 2, shapeErr.Want)
	assert.Equal(t, 1, shapeErr.Got)
}

func TestDecode_DoesNotMutateInput(t *testing.T) {
	rows := []core.RawRow{{"1"}}
	p := NewPolicy(WithEmulation()).WithEmulateBooleans(true)

	_, err := p.Decode([]core.ColumnDescriptor{smallint("n")}, rows)
	require.NoError(t, err)
	assert.Equal(t, "1", rows[0][0])
}

func TestPolicy_Cast(t *testing.T) {
	p := NewPolicy(WithEmulation()).WithEmulateBooleans(true)

	got, err := p.Cast(smallint("n"), "1")
	require.NoError(t, err)
	assert.Equal(t, true, got)

	got, err = p.WithEmulateBooleans(false).Cast(smallint("n"), "1")
	require.NoError(t, err)
	assert.Equal(t, "1", got)
}

func TestPolicy_BooleanColumns(t *testing.T) {
	cols := []core.ColumnDescriptor{
		smallint("a"),
		core.NewColumn("b", core.TypeBit, 1, 1, 0),
		masquerade("c"),
	}

	assert.Equal(t, []int{1}, NewPolicy(WithEmulation()).BooleanColumns(cols))
	assert.Equal(t, []int{0, 1}, NewPolicy(WithEmulation()).WithEmulateBooleans(true).BooleanColumns(cols))
}
