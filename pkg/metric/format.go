// Package metric turns raw aggregates into display strings for the dashboard.
//
// Precision is chosen per call site: some fields render currency with 0
// decimals and others with 2, some percentages with 1 decimal and others with 2.
// Clients parse these strings, so a field's precision must not change.
//
// Every ratio helper checks its denominator. A zero denominator yields the
// kind's sentinel (NotAvailable, ZeroCurrency or a zero percent) and never NaN
// or Inf.
package metric

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	// NotAvailable is rendered for ratios without a natural zero.
	NotAvailable = "N/A"
	// ZeroCurrency is rendered for averages over an empty set.
	ZeroCurrency = "$0"
	// DensitySuffix is appended to users-per-vendor ratios.
	DensitySuffix = "users/vendor"
)

// Kind is the semantic unit of a formatted value.
type Kind int

const (
	KindCurrency Kind = iota
	KindPercent
	KindRatio
)

// Style is a kind plus the number of decimals its call site renders.
type Style struct {
	Kind   Kind
	Places int32
}

var (
	CurrencyWhole = Style{Kind: KindCurrency, Places: 0}
	CurrencyCents = Style{Kind: KindCurrency, Places: 2}
	Percent1      = Style{Kind: KindPercent, Places: 1}
	Percent2      = Style{Kind: KindPercent, Places: 2}
	Density       = Style{Kind: KindRatio, Places: 1}
)

// Format renders v in the given style.
func Format(v float64, s Style) string {
	fixed := toDecimal(v).StringFixed(s.Places)
	switch s.Kind {
	case KindCurrency:
		return "$" + fixed
	case KindPercent:
		return fixed + "%"
	default:
		return fixed + DensitySuffix
	}
}

// Sentinel is the value rendered when a ratio of this style has a zero denominator.
func (s Style) Sentinel() string {
	switch s.Kind {
	case KindCurrency:
		return ZeroCurrency
	default:
		return NotAvailable
	}
}

// FormatRatio renders num/den in the given style, or the style's sentinel when den is zero.
func FormatRatio(num, den float64, s Style) string {
	q, ok := SafeDiv(num, den)
	if !ok {
		return s.Sentinel()
	}
	return Format(q, s)
}

// Currency renders an amount with a "$" prefix.
func Currency(v float64, places int32) string {
	return Format(v, Style{Kind: KindCurrency, Places: places})
}

// Percent renders a value that is already scaled to 0–100.
func Percent(v float64, places int32) string {
	return Format(v, Style{Kind: KindPercent, Places: places})
}

// Rate renders part/whole*100 as a percentage. An empty whole renders as zero
// percent, for rates whose natural value over nothing is 0.
func Rate(part, whole float64, places int32) string {
	q, ok := SafeDiv(part, whole)
	if !ok {
		return Percent(0, places)
	}
	return Percent(q*100, places)
}

// SafeDiv divides num by den and reports false when den is zero or the
// result is not finite.
func SafeDiv(num, den float64) (float64, bool) {
	if den == 0 {
		return 0, false
	}
	q := num / den
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return 0, false
	}
	return q, true
}

// Round rounds half away from zero to the given decimals.
func Round(v float64, places int32) float64 {
	return toDecimal(v).Round(places).InexactFloat64()
}

func toDecimal(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}
