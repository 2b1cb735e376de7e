// Package billing holds shared money math. Amounts are cents and every
// stored price already includes tax, so the breakdown works backwards
// from the total.
package billing

import "fmt"

// taxRateBasisPoints is the sales tax included in every price, 12%.
const taxRateBasisPoints = 1200

type TaxBreakdown struct {
	Total    int64
	Subtotal int64
	Tax      int64
}

// Breakdown splits a tax-inclusive total into net and tax portions.
// Subtotal rounds down, the tax keeps the remainder, so the parts
// always add back up to the total.
func Breakdown(total int64) TaxBreakdown {
	subtotal := total * 10000 / (10000 + taxRateBasisPoints)
	return TaxBreakdown{
		Total:    total,
		Subtotal: subtotal,
		Tax:      total - subtotal,
	}
}

// FormatCents renders cents as a currency string, e.g. 2500 -> "$25.00".
func FormatCents(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s$%d.%02d", sign, v/100, v%100)
}
