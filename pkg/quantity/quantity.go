// Package quantity reads free-text ingredient quantities and computes how much
// of an ingredient is still missing from the pantry.
package quantity

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	mixedFraction = regexp.MustCompile(`^(\d+)\s+(\d+)/(\d+)`)
	fraction      = regexp.MustCompile(`^(\d+)/(\d+)`)
	vulgar        = regexp.MustCompile(`^(\d*)\s*([¼½¾⅐⅑⅒⅓⅔⅕⅖⅗⅘⅙⅚⅛⅜⅝⅞])`)
	leadingNumber = regexp.MustCompile(`^[+-]?(?:\d+(?:\.\d*)?|\.\d+)`)
)

// vulgarFractions holds numerator/denominator pairs for unicode fraction glyphs
var vulgarFractions = map[string][2]int64{
	"¼": {1, 4}, "½": {1, 2}, "¾": {3, 4},
	"⅐": {1, 7}, "⅑": {1, 9}, "⅒": {1, 10},
	"⅓": {1, 3}, "⅔": {2, 3},
	"⅕": {1, 5}, "⅖": {2, 5}, "⅗": {3, 5}, "⅘": {4, 5},
	"⅙": {1, 6}, "⅚": {5, 6},
	"⅛": {1, 8}, "⅜": {3, 8}, "⅝": {5, 8}, "⅞": {7, 8},
}

// Parse reads the leading number of s. A comma is accepted as the decimal
// separator, and fractions ("1/2", "1 1/2", "½") are understood. Trailing text
// is ignored the way parseFloat ignores it ("2 large" is 2). ok is false when s
// does not start with a number.
func Parse(s string) (decimal.Decimal, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return decimal.Zero, false
	}

	if m := mixedFraction.FindStringSubmatch(s); m != nil {
		if frac, ok := ratio(m[2], m[3]); ok {
			whole, _ := decimal.NewFromString(m[1])
			return whole.Add(frac), true
		}
	}

	if m := fraction.FindStringSubmatch(s); m != nil {
		if frac, ok := ratio(m[1], m[2]); ok {
			return frac, true
		}
	}

	if m := vulgar.FindStringSubmatch(s); m != nil {
		parts := vulgarFractions[m[2]]
		value := decimal.NewFromInt(parts[0]).Div(decimal.NewFromInt(parts[1]))
		if m[1] != "" {
			whole, _ := decimal.NewFromString(m[1])
			value = value.Add(whole)
		}
		return value, true
	}

	if m := leadingNumber.FindString(s); m != "" {
		d, err := decimal.NewFromString(strings.TrimSuffix(strings.TrimPrefix(m, "+"), "."))
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	}

	return decimal.Zero, false
}

// ParseOrZero is Parse with unparseable input read as zero
func ParseOrZero(s string) decimal.Decimal {
	d, _ := Parse(s)
	return d
}

// Reconcile returns max(0, required - available). Missing or malformed
// quantities count as zero, so the result is never negative.
func Reconcile(required, available string) float64 {
	return Diff(ParseOrZero(required), ParseOrZero(available)).InexactFloat64()
}

// Diff returns max(0, required - available)
func Diff(required, available decimal.Decimal) decimal.Decimal {
	diff := required.Sub(available)
	if diff.IsNegative() {
		return decimal.Zero
	}
	return diff
}

// Shortfall computes the formatted shortfall of required against available.
// ok is false unless both quantities are numeric.
func Shortfall(required, available string) (string, bool) {
	req, ok := Parse(required)
	if !ok {
		return "", false
	}
	avail, ok := Parse(available)
	if !ok {
		return "", false
	}
	return Format(Diff(req, avail)), true
}

// Format renders a quantity with at most two decimal places and no trailing zeros
func Format(d decimal.Decimal) string {
	return d.Round(2).String()
}

func ratio(num, den string) (decimal.Decimal, bool) {
	n, err := decimal.NewFromString(num)
	if err != nil {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(den)
	if err != nil || d.IsZero() {
		return decimal.Zero, false
	}
	return n.Div(d), true
}
