package billing

import "github.com/shopspring/decimal"

var (
	hundred = decimal.NewFromInt(100)
)

// Totals is the priced breakdown of a cart or bill. Values are exact; round
// only when presenting them.
type Totals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Total          decimal.Decimal `json:"total"`
}

// Calculate prices a subtotal. discountPercent is expected to be clamped to
// 0..100 already (see ClampPercent).
//
//	tax      = subtotal * taxRate
//	discount = subtotal * discountPercent / 100
//	total    = subtotal + tax - discount
func Calculate(subtotal, taxRate, discountPercent decimal.Decimal) Totals {
	tax := subtotal.Mul(taxRate)
	discount := subtotal.Mul(discountPercent.Shift(-2))
	return Totals{
		Subtotal:       subtotal,
		TaxAmount:      tax,
		DiscountAmount: discount,
		Total:          subtotal.Add(tax).Sub(discount),
	}
}

// ClampPercent bounds p to the closed range 0..100.
func ClampPercent(p decimal.Decimal) decimal.Decimal {
	if p.IsNegative() {
		return decimal.Zero
	}
	if p.GreaterThan(hundred) {
		return hundred
	}
	return p
}
