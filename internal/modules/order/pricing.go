package order

import "github.com/shopspring/decimal"

// Promo codes honored at checkout.
type promoKind int

const (
	promoPercentage promoKind = iota
	promoFixed
	promoFreeShipping
)

type promo struct {
	kind  promoKind
	value decimal.Decimal
}

var promoCodes = map[string]promo{
	"SAVE10":   {kind: promoPercentage, value: decimal.NewFromInt(10)},
	"SAVE20":   {kind: promoPercentage, value: decimal.NewFromInt(20)},
	"FLAT15":   {kind: promoFixed, value: decimal.NewFromInt(15)},
	"FREESHIP": {kind: promoFreeShipping},
}

var (
	baseShipping      = decimal.NewFromInt(10)
	freeShippingAbove = decimal.NewFromInt(100)
	taxRate           = decimal.NewFromFloat(0.10)
	hundred           = decimal.NewFromInt(100)
)

// Quote is the money breakdown of an order at checkout. The invariant
// Total = Subtotal - Discount + ShippingCost + Tax holds by construction.
type Quote struct {
	Subtotal     decimal.Decimal
	Discount     decimal.Decimal
	ShippingCost decimal.Decimal
	Tax          decimal.Decimal
	Total        decimal.Decimal
}

// priceOrder computes the quote for a subtotal and an optional promo code.
// Shipping is a flat 10, waived when the discounted subtotal exceeds 100 or
// a free-shipping code applies. Tax is 10% of the discounted subtotal.
// Unknown promo codes are ignored rather than rejected.
func priceOrder(subtotal decimal.Decimal, promoCode string) Quote {
	discount := decimal.Zero
	freeShipping := false

	if p, ok := promoCodes[promoCode]; ok {
		switch p.kind {
		case promoPercentage:
			discount = subtotal.Mul(p.value).Div(hundred)
		case promoFixed:
			discount = p.value
		case promoFreeShipping:
			freeShipping = true
		}
	}
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}

	discounted := subtotal.Sub(discount)

	shipping := baseShipping
	if freeShipping || discounted.GreaterThan(freeShippingAbove) {
		shipping = decimal.Zero
	}

	tax := discounted.Mul(taxRate).Round(2)
	discount = discount.Round(2)
	total := subtotal.Sub(discount).Add(shipping).Add(tax)

	return Quote{
		Subtotal:     subtotal,
		Discount:     discount,
		ShippingCost: shipping,
		Tax:          tax,
		Total:        total,
	}
}
