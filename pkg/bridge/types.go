package bridge

import (
	"database/sql"
	"strconv"
	"strings"

	"github.com/leapstack-labs/leapodbc/pkg/core"
)

// typeCodes maps database/sql type names to driver type codes. The mapping
// follows what the PostgreSQL ODBC driver reports, so float8 is FLOAT and
// text is LONGVARCHAR.
var typeCodes = map[string]core.TypeCode{
	"BOOL":              core.TypeBit,
	"BOOLEAN":           core.TypeBit,
	"BIT":               core.TypeBit,
	"TINYINT":           core.TypeTinyint,
	"INT1":              core.TypeTinyint,
	"INT2":              core.TypeSmallint,
	"SMALLINT":          core.TypeSmallint,
	"INT":               core.TypeInteger,
	"INT4":              core.TypeInteger,
	"INTEGER":           core.TypeInteger,
	"INT8":              core.TypeBigint,
	"BIGINT":            core.TypeBigint,
	"HUGEINT":           core.TypeBigint,
	"NUMERIC":           core.TypeNumeric,
	"DECIMAL":           core.TypeDecimal,
	"FLOAT":             core.TypeFloat,
	"FLOAT8":            core.TypeFloat,
	"DOUBLE":            core.TypeFloat,
	"DOUBLE PRECISION":  core.TypeFloat,
	"FLOAT4":            core.TypeReal,
	"REAL":              core.TypeReal,
	"CHAR":              core.TypeChar,
	"BPCHAR":            core.TypeChar,
	"CHARACTER":         core.TypeChar,
	"VARCHAR":           core.TypeVarchar,
	"CHARACTER VARYING": core.TypeVarchar,
	"NAME":              core.TypeVarchar,
	"TEXT":              core.TypeLongVarchar,
	"DATE":              core.TypeTypeDate,
	"TIME":              core.TypeTypeTime,
	"TIMETZ":            core.TypeTypeTime,
	"TIMESTAMP":         core.TypeTypeTimestamp,
	"TIMESTAMPTZ":       core.TypeTypeTimestamp,
	"DATETIME":          core.TypeTypeTimestamp,
	"BYTEA":             core.TypeLongVarbinary,
	"BLOB":              core.TypeLongVarbinary,
	"UUID":              core.TypeGUID,
}

// TypeCodeFor returns the driver type code for a database type name such as
// "VARCHAR(5)" or "int4". Unknown names map to TypeUnknown.
func TypeCodeFor(dbType string) core.TypeCode {
	name, _ := splitDeclared(dbType)
	if code, ok := typeCodes[name]; ok {
		return code
	}
	return core.TypeUnknown
}

// splitDeclared splits a declared type like "NUMERIC(10, 2)" into its upper
// cased name and numeric parameters.
func splitDeclared(dbType string) (string, []int) {
	dbType = strings.ToUpper(strings.TrimSpace(dbType))
	open := strings.IndexByte(dbType, '(')
	if open < 0 {
		return dbType, nil
	}
	name := strings.TrimSpace(dbType[:open])
	inner := strings.TrimSuffix(strings.TrimSpace(dbType[open+1:]), ")")
	var params []int
	for _, part := range strings.Split(inner, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return name, nil
		}
		params = append(params, n)
	}
	return name, params
}

// describe builds a column descriptor from database/sql column metadata.
// Character columns report their length as precision with scale 0, the way
// ODBC describes them.
func describe(ct *sql.ColumnType) core.ColumnDescriptor {
	code := TypeCodeFor(ct.DatabaseTypeName())
	_, params := splitDeclared(ct.DatabaseTypeName())

	length, precision, scale := -1, -1, -1
	if l, ok := ct.Length(); ok && l >= 0 && l < 1<<31 {
		length = int(l)
	}
	if p, s, ok := ct.DecimalSize(); ok {
		precision, scale = int(p), int(s)
	}

	switch code {
	case core.TypeChar, core.TypeVarchar, core.TypeWChar, core.TypeWVarchar:
		if length < 0 && len(params) == 1 {
			length = params[0]
		}
		if length >= 0 && precision < 0 {
			precision, scale = length, 0
		}
	case core.TypeNumeric, core.TypeDecimal:
		if precision < 0 && len(params) > 0 {
			precision, scale = params[0], 0
			if len(params) > 1 {
				scale = params[1]
			}
		}
	}

	col := core.NewColumn(ct.Name(), code, length, precision, scale)
	if nullable, ok := ct.Nullable(); ok {
		col.Nullable = nullable
	}
	return col
}
