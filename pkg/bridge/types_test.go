package bridge

import (
	"testing"

	"github.com/leapstack-labs/leapodbc/pkg/core"
	"github.com/stretchr/testify/assert"
)

func TestTypeCodeFor(t *testing.T) {
	tests := []struct {
		in   string
		want core.TypeCode
	}{
		{"BOOL", core.TypeBit},
		{"int2", core.TypeSmallint},
		{"INT4", core.TypeInteger},
		{"INT8", core.TypeBigint},
		{"FLOAT8", core.TypeFloat},
		{"FLOAT4", core.TypeReal},
		{"NUMERIC", core.TypeNumeric},
		{"VARCHAR", core.TypeVarchar},
		{"VARCHAR(5)", core.TypeVarchar},
		{"character varying", core.TypeVarchar},
		{"TEXT", core.TypeLongVarchar},
		{"TIMESTAMPTZ", core.TypeTypeTimestamp},
		{"DATE", core.TypeTypeDate},
		{"BYTEA", core.TypeLongVarbinary},
		{"UUID", core.TypeGUID},
		{"GEOMETRY", core.TypeUnknown},
		{"", core.TypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, TypeCodeFor(tt.in))
		})
	}
}

func TestSplitDeclared(t *testing.T) {
	name, params := splitDeclared("numeric(10, 2)")
	assert.Equal(t, "NUMERIC", name)
	assert.Equal(t, []int{10, 2}, params)

	name, params = splitDeclared("varchar(max)")
	assert.Equal(t, "VARCHAR", name)
	assert.Nil(t, params)

	name, params = splitDeclared(" int4 ")
	assert.Equal(t, "INT4", name)
	assert.Nil(t, params)
}
