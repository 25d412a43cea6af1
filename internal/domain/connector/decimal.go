package connector

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseBRDecimal converts Brazilian-formatted amounts such as "  3.749,30"
// into a decimal value. Numeric input is accepted as-is. Nil, blank, and
// unparseable input yield (zero, false).
func ParseBRDecimal(value any) (decimal.Decimal, bool) {
	switch v := value.(type) {
	case nil:
		return decimal.Zero, false
	case decimal.Decimal:
		return v, true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	case float64:
		return decimal.NewFromFloat(v), true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return decimal.Zero, false
		}
		// drop thousands separators, then comma becomes the decimal point
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	default:
		return decimal.Zero, false
	}
}
