// Package report formats account, market, and order data for the operator's
// console. It makes no decisions and performs no I/O beyond the writer it is
// handed.
package report

import (
	"fmt"
	"strings"
)

// Rule returns a horizontal rule of n characters.
func Rule(ch byte, n int) string {
	return strings.Repeat(string(ch), n)
}

// Center centers s in a field of width w.
func Center(s string, w int) string {
	if len(s) >= w {
		return s
	}
	left := (w - len(s)) / 2
	return strings.Repeat(" ", left) + s
}

// Money formats an amount with its currency code, e.g. "10250.00 USD".
func Money(v float64, currency string) string {
	return fmt.Sprintf("%.2f %s", v, currency)
}

// Percent formats a percentage with two decimals.
func Percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// Flag renders a permission flag.
func Flag(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// Price formats a price at the precision implied by the symbol's digits.
func Price(v float64, digits int) string {
	if digits <= 0 {
		digits = 5
	}
	return fmt.Sprintf("%.*f", digits, v)
}
