package coerce

import (
	"testing"

	"github.com/leapstack-labs/leapodbc/pkg/core"
	"github.com/stretchr/testify/assert"
)

func TestMasquerade_Matches(t *testing.T) {
	tests := []struct {
		name string
		col  core.ColumnDescriptor
		want bool
	}{
		{"exact shape", core.NewColumn("flag", core.TypeVarchar, 5, 5, 0), true},
		{"wrong length", core.NewColumn("flag", core.TypeVarchar, 6, 5, 0), false},
		{"wrong precision", core.NewColumn("flag", core.TypeVarchar, 5, 4, 0), false},
		{"wrong scale", core.NewColumn("flag", core.TypeVarchar, 5, 5, 1), false},
		{"missing scale", core.NewColumn("flag", core.TypeVarchar, 5, 5, -1), false},
		{"char column", core.NewColumn("flag", core.TypeChar, 5, 5, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultMasquerade.Matches(tt.col))
		})
	}
}

func TestPolicy_WithEmulateBooleansReturnsCopy(t *testing.T) {
	base := NewPolicy(WithEmulation())
	on := base.WithEmulateBooleans(true)

	assert.False(t, base.EmulateBooleans(), "original policy must not change")
	assert.True(t, on.EmulateBooleans())
}

func TestPolicy_EmulationRequiresPermission(t *testing.T) {
	p := NewPolicy().WithEmulateBooleans(true)

	assert.False(t, p.EmulateBooleans())
	assert.False(t, p.IsStrictBoolean(core.NewColumn("n", core.TypeSmallint, -1, 5, 0)))
}

func TestPolicy_BooleanLiterals(t *testing.T) {
	tr, fa := NewPolicy().BooleanLiterals()
	assert.Equal(t, "1", tr)
	assert.Equal(t, "0", fa)

	tr, fa = NewPolicy(WithEmulation()).WithEmulateBooleans(true).BooleanLiterals()
	assert.Equal(t, "1", tr)
	assert.Equal(t, "0", fa)
}

func TestPolicy_TypeMap(t *testing.T) {
	plain := NewPolicy(WithEmulation()).TypeMap()
	assert.Contains(t, plain, core.TypeFloat)
	assert.Contains(t, plain, core.TypeReal)
	assert.Contains(t, plain, core.TypeBit)
	assert.NotContains(t, plain, core.TypeSmallint)

	emulated := NewPolicy(WithEmulation()).WithEmulateBooleans(true).TypeMap()
	assert.Contains(t, emulated, core.TypeSmallint)
}

func TestPolicy_WithoutMasquerade(t *testing.T) {
	p := NewPolicy(WithoutMasquerade())
	assert.False(t, p.IsMasquerade(core.NewColumn("flag", core.TypeVarchar, 5, 5, 0)))
}
