package procedurebill

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Amounts are kept in whole currency units. Rounding is half away from zero.

// FromPrice rounds the price and derives GST and total from it.
func FromPrice(price, rate decimal.Decimal) (p, gst, total decimal.Decimal) {
	p = price.Round(0)
	gst = GST(p, rate)
	return p, gst, p.Add(gst)
}

// FromTotal splits a GST-inclusive total into price and GST.
func FromTotal(total, rate decimal.Decimal) (price, gst decimal.Decimal) {
	if rate.IsZero() {
		return total, decimal.Zero
	}
	gst = total.Mul(rate).Div(hundred.Add(rate)).Round(0)
	return total.Sub(gst), gst
}

func GST(price, rate decimal.Decimal) decimal.Decimal {
	return price.Mul(rate).Div(hundred).Round(0)
}
