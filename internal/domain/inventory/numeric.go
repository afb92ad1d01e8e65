package inventory

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// ClampNonNegative devuelve cero para valores negativos.
func ClampNonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// ParseQuantity convierte una cantidad (texto o número) a decimal.
// Valores no numéricos valen 0 y los negativos se llevan a 0.
func ParseQuantity(v any) decimal.Decimal {
	return ClampNonNegative(toDecimal(v, false))
}

// ParsePrice convierte un precio (texto o número) a decimal. Acepta símbolo de euro,
// espacios y coma decimal ("1.299,99 €"). Valores no numéricos o negativos valen 0.
func ParsePrice(v any) decimal.Decimal {
	return ClampNonNegative(toDecimal(v, true))
}

func toDecimal(v any, currency bool) decimal.Decimal {
	switch n := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return n
	case *decimal.Decimal:
		if n == nil {
			return decimal.Zero
		}
		return *n
	case int:
		return decimal.NewFromInt(int64(n))
	case int64:
		return decimal.NewFromInt(n)
	case float64:
		return decimal.NewFromFloat(n)
	case float32:
		return decimal.NewFromFloat32(n)
	case json.Number:
		return parseNumericText(n.String(), currency)
	case string:
		return parseNumericText(n, currency)
	default:
		return decimal.Zero
	}
}

func parseNumericText(s string, currency bool) decimal.Decimal {
	s = strings.TrimSpace(s)
	if currency {
		s = strings.NewReplacer("€", "", " ", "", "\u00a0", "").Replace(s)
	}
	if s == "" {
		return decimal.Zero
	}
	// "1.299,99" usa coma decimal; "1,299.99" usa coma de miles.
	if lastComma := strings.LastIndex(s, ","); lastComma >= 0 {
		if strings.LastIndex(s, ".") > lastComma {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
