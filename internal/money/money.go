// Package money holds amount parsing and display formatting. Amounts travel as
// float64 and are only rounded when they are rendered.
package money

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const Symbol = "£"

// Parse reads a plain decimal number. The whole field must be numeric.
func Parse(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d.InexactFloat64(), nil
}

// Fixed renders v with the given number of decimal places, rounding half away from zero.
func Fixed(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', int(places), 64)
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

// Format renders v as "£12.34".
func Format(v float64) string {
	return Symbol + Fixed(v, 2)
}

// Round2 rounds v to two places, used when an amount leaves the process for display-only sinks.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
