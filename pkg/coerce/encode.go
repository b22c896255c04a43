package coerce

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// Encode renders typed rows as driver text for literal SQL.
//
// nil stays nil, booleans use the policy's literal convention, temporal values
// use the canonical timestamp text and everything else is converted with a
// generic string conversion. Encode never fails and is idempotent.
func (p Policy) Encode(rows [][]any) [][]any {
	out := make([][]any, len(rows))
	for r, row := range rows {
		enc := make([]any, len(row))
		for i, v := range row {
			if s, ok := p.EncodeValue(v); ok {
				enc[i] = s
			}
		}
		out[r] = enc
	}
	return out
}

// EncodeValue renders a single value. ok is false for NULL.
func (p Policy) EncodeValue(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, true
	case bool:
		t, f := p.BooleanLiterals()
		if val {
			return t, true
		}
		return f, true
	case time.Time:
		return FormatTimestamp(val), true
	case *time.Time:
		if val == nil {
			return "", false
		}
		return FormatTimestamp(*val), true
	case decimal.Decimal:
		return val.String(), true
	case []byte:
		return string(val), true
	}
	if s, err := cast.ToStringE(v); err == nil {
		return s, true
	}
	return fmt.Sprint(v), true
}
