// Package format renders market numbers for display.
// Decimal-based so rounding is stable across platforms.
package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	trillion = decimal.New(1, 12)
	billion  = decimal.New(1, 9)
	million  = decimal.New(1, 6)
)

// Price renders a price value: two decimals with thousands separators for
// values of 1 and above, six decimals for sub-unit prices.
func Price(v float64) string {
	d := decimal.NewFromFloat(v)
	if d.Abs().GreaterThanOrEqual(decimal.New(1, 0)) {
		return groupThousands(d.StringFixed(2))
	}
	return d.StringFixed(6)
}

// MarketCap renders a market capitalization scaled to T/B/M units, or the
// plain grouped number below a million.
func MarketCap(v float64) string {
	d := decimal.NewFromFloat(v)
	abs := d.Abs()

	switch {
	case abs.GreaterThanOrEqual(trillion):
		return d.Div(trillion).StringFixed(2) + "T"
	case abs.GreaterThanOrEqual(billion):
		return d.Div(billion).StringFixed(2) + "B"
	case abs.GreaterThanOrEqual(million):
		return d.Div(million).StringFixed(2) + "M"
	default:
		return groupThousands(d.StringFixed(0))
	}
}

// Change renders a percentage change with two decimals and a sign.
func Change(v float64) string {
	d := decimal.NewFromFloat(v)
	s := d.StringFixed(2) + "%"
	if !d.IsNegative() {
		s = "+" + s
	}
	return s
}

// groupThousands inserts commas into the integer part of a fixed-point
// decimal string.
func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := b.String() + fracPart
	if neg {
		out = "-" + out
	}
	return out
}
