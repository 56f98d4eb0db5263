package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a numeric field as the clinic API delivered it. Raw keeps the
// original text for display; Value is zero unless Valid.
type Amount struct {
	Raw   string
	Value decimal.Decimal
	Valid bool
}

// ParseAmount never fails: missing or non-numeric text yields an invalid
// Amount that counts as zero.
func ParseAmount(raw string) Amount {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Amount{Raw: raw}
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return Amount{Raw: raw}
	}
	return Amount{Raw: raw, Value: d, Valid: true}
}

func AmountOf(d decimal.Decimal) Amount {
	return Amount{Raw: d.String(), Value: d, Valid: true}
}

// Decimal returns the coerced value.
func (a Amount) Decimal() decimal.Decimal {
	if !a.Valid {
		return decimal.Zero
	}
	return a.Value
}

func (a Amount) String() string {
	return a.Raw
}

// Fixed formats valid amounts with the given number of decimals and leaves
// anything else as it arrived.
func (a Amount) Fixed(places int32) string {
	if !a.Valid {
		return a.Raw
	}
	return a.Value.StringFixed(places)
}
