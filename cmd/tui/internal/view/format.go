package view

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const apiTimeout = 30 * time.Second

// FormatMoney renders d as Brazilian reais, e.g. "R$ 1.234,50".
func FormatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder

	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}

		b.WriteRune(r)
	}

	sign := ""
	if d.IsNegative() {
		sign = "-"
	}

	return sign + "R$ " + b.String() + "," + frac
}

// FormatDate formats a time.Time into DD/MM/YYYY.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// APICtx returns a context with a standard timeout for API calls.
func APICtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), apiTimeout)
}
