package normalize

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// zeroCurrency holds the trimmed spellings spreadsheets use for "no charge".
var zeroCurrency = map[string]struct{}{
	"":  {},
	"-": {},
	"0": {},
}

// ParseCurrency converts a Brazilian-formatted currency text ("R$ 1.234,56")
// into a float64. Blank, "-" and "0" are the no-charge sentinel and yield 0;
// so does anything that fails to parse. The result is always finite.
func ParseCurrency(raw string) float64 {
	s := strings.TrimSpace(raw)
	if _, ok := zeroCurrency[s]; ok {
		return 0
	}
	s = strings.ReplaceAll(s, "R$", "")
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	s = strings.TrimSpace(s)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	f, _ := d.Float64()
	return finite(f)
}

// ParseCurrencyValue accepts a raw cell value of any type. Numbers are taken
// as they are; text goes through ParseCurrency; nil is 0.
func ParseCurrencyValue(v any) float64 {
	switch x := v.(type) {
	case nil:
		return 0
	case string:
		return ParseCurrency(x)
	case *string:
		if x == nil {
			return 0
		}
		return ParseCurrency(*x)
	case float64:
		return finite(x)
	case *float64:
		if x == nil {
			return 0
		}
		return finite(*x)
	case float32:
		return finite(float64(x))
	case int:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case decimal.Decimal:
		f, _ := x.Float64()
		return finite(f)
	default:
		return ParseCurrency(fmt.Sprint(x))
	}
}

// FormatCurrency renders v as Brazilian reais with two decimals:
// 1234.5 becomes "R$ 1.234,50".
func FormatCurrency(v float64) string {
	d := decimal.NewFromFloat(finite(v)).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	intPart, frac, _ := strings.Cut(d.Abs().StringFixed(2), ".")
	return "R$ " + sign + groupThousands(intPart) + "," + frac
}

// FormatPercent renders a share with one decimal, e.g. "42.5%".
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", finite(v))
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// ToCents converts a float64 amount to int64 cents.
// Uses math.Round to avoid truncation bias.
func ToCents(v float64) int64 {
	return int64(math.Round(v * 100))
}

// ToCentsPtr converts a nullable amount to nullable cents.
func ToCentsPtr(v *float64) *int64 {
	if v == nil {
		return nil
	}
	c := ToCents(*v)
	return &c
}

// PercentToBasisPoints converts a percentage to int32 basis points.
// e.g. 12.34% → 1234 bps.
func PercentToBasisPoints(v float64) int32 {
	return int32(math.Round(v * 100))
}
