// Package pos implements the cashier engine: cart state, pricing math,
// stock availability and split-tender payment tracking. Everything here is
// plain in-memory state with no storage or transport dependencies; the
// application services wire it to persistence.
//
// All money values are in paise (int64). Decimals exist only at the API edge.
package pos

import (
	"errors"
	"strings"

	"github.com/nimeshjn/vendura-api/internal/domain/enum"
)

// Domain errors surfaced by the cashier engine. Services map these onto
// HTTP-level errors.
var (
	ErrOutOfStock       = errors.New("product is out of stock")
	ErrStockExceeded    = errors.New("quantity exceeds available stock")
	ErrProductNotInCart = errors.New("product is not in the cart")
	ErrUnknownPromoCode = errors.New("unknown promo code")
	ErrInvalidDiscount  = errors.New("invalid discount")
	ErrInvalidTaxRate   = errors.New("invalid tax rate")
	ErrInvalidAmount    = errors.New("invalid payment amount")
	ErrInsufficientCash = errors.New("cash given is less than the amount due")
)

// TaxLine is a named percentage tax applied to the discounted subtotal.
// Multiple lines stack additively; they are never compounded on each other.
type TaxLine struct {
	Name string  `json:"name"`
	Rate float64 `json:"rate"` // percent
}

// Discount is a manual discount applied to the subtotal.
// Value is a percent for DiscountTypePercentage and rupees for
// DiscountTypeFixedAmount.
type Discount struct {
	Type  enum.DiscountType `json:"type"`
	Value float64           `json:"value"`
}

// IsZero reports whether no manual discount is set
func (d Discount) IsZero() bool {
	return d.Type == "" || d.Value == 0
}

// Subtotal sums line totals across the cart
func Subtotal(lines []Line) int64 {
	var sum int64
	for _, l := range lines {
		sum += l.TotalPrice
	}
	return sum
}

// TotalItems sums quantities across the cart
func TotalItems(lines []Line) int {
	var n int
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}

// TaxAmount computes a single tax line against a taxable base
func TaxAmount(taxable int64, rate float64) int64 {
	if taxable <= 0 || rate <= 0 {
		return 0
	}
	return int64(float64(taxable) * rate / 100)
}

// TotalTax computes each tax line independently against the discounted
// subtotal and sums the results.
func TotalTax(taxable int64, taxes []TaxLine) int64 {
	var sum int64
	for _, t := range taxes {
		sum += TaxAmount(taxable, t.Rate)
	}
	return sum
}

// DiscountAmount resolves a manual discount against a subtotal.
// Fixed discounts are capped at the subtotal so the discounted base never
// goes negative.
func DiscountAmount(subtotal int64, d Discount) int64 {
	if d.IsZero() || subtotal <= 0 {
		return 0
	}
	var amount int64
	switch d.Type {
	case enum.DiscountTypePercentage:
		amount = int64(float64(subtotal) * d.Value / 100)
	case enum.DiscountTypeFixedAmount:
		amount = int64(d.Value * 100)
	}
	if amount < 0 {
		amount = 0
	}
	if amount > subtotal {
		amount = subtotal
	}
	return amount
}

// Promo code policy. SAVE10 takes 10% off the subtotal; FLAT50 takes a flat
// ₹50 capped at the subtotal.
const (
	PromoSave10 = "SAVE10"
	PromoFlat50 = "FLAT50"

	flat50Amount = 50 * 100 // paise
)

// NormalizePromoCode uppercases and trims a user-entered code
func NormalizePromoCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// PromoDiscount resolves a promo code against a subtotal.
// Unknown codes return ErrUnknownPromoCode with no discount.
func PromoDiscount(code string, subtotal int64) (int64, error) {
	switch NormalizePromoCode(code) {
	case PromoSave10:
		return subtotal / 10, nil
	case PromoFlat50:
		if subtotal < flat50Amount {
			return subtotal, nil
		}
		return flat50Amount, nil
	default:
		return 0, ErrUnknownPromoCode
	}
}

// FinalTotal combines subtotal, tax and discount, clamped at zero.
// A discount larger than subtotal+tax yields a free sale, never a negative
// amount due.
func FinalTotal(subtotal, tax, discount int64) int64 {
	total := subtotal + tax - discount
	if total < 0 {
		return 0
	}
	return total
}
