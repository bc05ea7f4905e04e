package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBRL formats an amount the way the app displays money, e.g. "R$ 1.234,56" and
// "-R$ 10,00". Amounts are rounded to cents.
func FormatBRL(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	fixed := amount.StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return sign + "R$ " + b.String() + "," + frac
}
