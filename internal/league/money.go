package league

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney renders a prize as whole dollars with thousands separators ("$1,800,000")
func FormatMoney(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(0)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	digits := d.String()
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + "$" + b.String()
}
