package core

import "strconv"

// TypeCode is the driver-level SQL data type reported for a result column.
// Values match the call-level interface constants exactly.
type TypeCode int

// Driver type codes.
const (
	TypeUnknown       TypeCode = 0
	TypeChar          TypeCode = 1
	TypeNumeric       TypeCode = 2
	TypeDecimal       TypeCode = 3
	TypeInteger       TypeCode = 4
	TypeSmallint      TypeCode = 5
	TypeFloat         TypeCode = 6
	TypeReal          TypeCode = 7
	TypeDouble        TypeCode = 8
	TypeDate          TypeCode = 9  // also SQL_DATETIME
	TypeTime          TypeCode = 10 // also SQL_INTERVAL
	TypeTimestamp     TypeCode = 11
	TypeVarchar       TypeCode = 12
	TypeTypeDate      TypeCode = 91
	TypeTypeTime      TypeCode = 92
	TypeTypeTimestamp TypeCode = 93
	TypeLongVarchar   TypeCode = -1
	TypeBinary        TypeCode = -2
	TypeVarbinary     TypeCode = -3
	TypeLongVarbinary TypeCode = -4
	TypeBigint        TypeCode = -5
	TypeTinyint       TypeCode = -6
	TypeBit           TypeCode = -7
	TypeWChar         TypeCode = -8
	TypeWVarchar      TypeCode = -9
	TypeWLongVarchar  TypeCode = -10
	TypeGUID          TypeCode = -11
)

var typeCodeNames = map[TypeCode]string{
	TypeUnknown:       "UNKNOWN",
	TypeChar:          "CHAR",
	TypeNumeric:       "NUMERIC",
	TypeDecimal:       "DECIMAL",
	TypeInteger:       "INTEGER",
	TypeSmallint:      "SMALLINT",
	TypeFloat:         "FLOAT",
	TypeReal:          "REAL",
	TypeDouble:        "DOUBLE",
	TypeDate:          "DATE",
	TypeTime:          "TIME",
	TypeTimestamp:     "TIMESTAMP",
	TypeVarchar:       "VARCHAR",
	TypeTypeDate:      "TYPE_DATE",
	TypeTypeTime:      "TYPE_TIME",
	TypeTypeTimestamp: "TYPE_TIMESTAMP",
	TypeLongVarchar:   "LONGVARCHAR",
	TypeBinary:        "BINARY",
	TypeVarbinary:     "VARBINARY",
	TypeLongVarbinary: "LONGVARBINARY",
	TypeBigint:        "BIGINT",
	TypeTinyint:       "TINYINT",
	TypeBit:           "BIT",
	TypeWChar:         "WCHAR",
	TypeWVarchar:      "WVARCHAR",
	TypeWLongVarchar:  "WLONGVARCHAR",
	TypeGUID:          "GUID",
}

// String returns the SQL_ constant name without its prefix.
func (t TypeCode) String() string {
	if name, ok := typeCodeNames[t]; ok {
		return name
	}
	return "TYPE(" + strconv.Itoa(int(t)) + ")"
}

// IsTemporal reports whether the code denotes a date, time or timestamp column.
func (t TypeCode) IsTemporal() bool {
	switch t {
	case TypeDate, TypeTime, TypeTimestamp, TypeTypeDate, TypeTypeTime, TypeTypeTimestamp:
		return true
	default:
		return false
	}
}

// ColumnDescriptor describes one result column as reported by the driver.
// It is a value type; copies are independent and never mutated after fetch.
type ColumnDescriptor struct {
	Name      string
	TypeCode  TypeCode
	Length    *int
	Precision *int
	Scale     *int
	Nullable  bool
}

// NewColumn builds a descriptor with the optional attributes set.
// A negative length, precision or scale leaves the attribute unset.
func NewColumn(name string, code TypeCode, length, precision, scale int) ColumnDescriptor {
	return ColumnDescriptor{
		Name:      name,
		TypeCode:  code,
		Length:    optionalInt(length),
		Precision: optionalInt(precision),
		Scale:     optionalInt(scale),
		Nullable:  true,
	}
}

func optionalInt(v int) *int {
	if v < 0 {
		return nil
	}
	return &v
}

// LengthIs reports whether the column reports exactly n as its length.
func (c ColumnDescriptor) LengthIs(n int) bool { return c.Length != nil && *c.Length == n }

// PrecisionIs reports whether the column reports exactly n as its precision.
func (c ColumnDescriptor) PrecisionIs(n int) bool { return c.Precision != nil && *c.Precision == n }

// ScaleIs reports whether the column reports exactly n as its scale.
func (c ColumnDescriptor) ScaleIs(n int) bool { return c.Scale != nil && *c.Scale == n }

// RawRow is one row of driver-returned values, index-aligned to its columns.
type RawRow []any

// TypedRow is one decoded row, index-aligned to its columns.
type TypedRow []any

// ColumnNames returns the names of the given columns in order.
func ColumnNames(cols []ColumnDescriptor) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}
