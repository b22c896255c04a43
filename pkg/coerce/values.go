package coerce

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TimestampLayout is the canonical text form of temporal values, without the
// optional millisecond fraction.
const TimestampLayout = "2006-01-02 15:04:05"

// realScale is the number of fractional digits a REAL column guarantees.
const realScale = 6

var (
	minInt64 = decimal.NewFromInt(math.MinInt64)
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
)

// FormatTimestamp renders t as "YYYY-MM-DD HH:MM:SS[.fff]".
// The fraction is truncated to milliseconds and omitted only when the
// sub-second part is zero, so 500µs renders as ".000".
func FormatTimestamp(t time.Time) string {
	s := t.Format(TimestampLayout)
	if ns := t.Nanosecond(); ns != 0 {
		s += fmt.Sprintf(".%03d", ns/int(time.Millisecond))
	}
	return s
}

// TrimFloat strips trailing fractional zeros from an approximate numeric.
// Integral values become int64, everything else float64. Values that are not
// numeric are returned unchanged.
func TrimFloat(v any) any {
	d, ok := toDecimal(v)
	if !ok {
		return passthrough(v)
	}
	if d.IsInteger() && d.GreaterThanOrEqual(minInt64) && d.LessThanOrEqual(maxInt64) {
		return d.IntPart()
	}
	f, _ := d.Float64()
	return f
}

// RoundReal rounds a REAL value to six decimal places to drop the noise the
// driver reports beyond the type's guaranteed precision.
func RoundReal(v any) any {
	d, ok := toDecimal(v)
	if !ok {
		return passthrough(v)
	}
	f, _ := d.Round(realScale).Float64()
	return f
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch val := v.(type) {
	case decimal.Decimal:
		return val, true
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(val))
		return d, err == nil
	case []byte:
		d, err := decimal.NewFromString(strings.TrimSpace(string(val)))
		return d, err == nil
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat(val), true
	case float32:
		if math.IsNaN(float64(val)) || math.IsInf(float64(val), 0) {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat32(val), true
	case int:
		return decimal.NewFromInt(int64(val)), true
	case int8:
		return decimal.NewFromInt(int64(val)), true
	case int16:
		return decimal.NewFromInt(int64(val)), true
	case int32:
		return decimal.NewFromInt32(val), true
	case int64:
		return decimal.NewFromInt(val), true
	case uint8:
		return decimal.NewFromInt(int64(val)), true
	case uint16:
		return decimal.NewFromInt(int64(val)), true
	case uint32:
		return decimal.NewFromInt(int64(val)), true
	case uint64:
		return decimal.RequireFromString(strconv.FormatUint(val, 10)), true
	default:
		return decimal.Decimal{}, false
	}
}

// toBool maps the accepted boolean literals. ok is false for anything else.
func toBool(v any) (b bool, ok bool) {
	switch val := v.(type) {
	case bool:
		return val, true
	case string:
		return boolText(val)
	case []byte:
		return boolText(string(val))
	case int:
		return boolInt(int64(val))
	case int8:
		return boolInt(int64(val))
	case int16:
		return boolInt(int64(val))
	case int32:
		return boolInt(int64(val))
	case int64:
		return boolInt(val)
	case uint8:
		return boolInt(int64(val))
	case uint16:
		return boolInt(int64(val))
	case uint32:
		return boolInt(int64(val))
	case uint64:
		if val > 1 {
			return false, false
		}
		return val == 1, true
	default:
		return false, false
	}
}

func boolText(s string) (bool, bool) {
	switch s {
	case "1":
		return true, true
	case "0":
		return false, true
	default:
		return false, false
	}
}

func boolInt(i int64) (bool, bool) {
	switch i {
	case 1:
		return true, true
	case 0:
		return false, true
	default:
		return false, false
	}
}

// text returns the string form of character-ish driver values.
func text(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case []byte:
		return string(val), true
	default:
		return "", false
	}
}

func passthrough(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
