package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Coupon is a percentage discount code, usable MaxUses times within
// [ValidFrom, ValidTo].
type Coupon struct {
	Code            string
	DiscountPercent int
	ValidFrom       time.Time
	ValidTo         time.Time
	MaxUses         int
	TimesUsed       int
}

func (c Coupon) Valid(now time.Time) bool {
	return !now.Before(c.ValidFrom) && !now.After(c.ValidTo) && c.TimesUsed < c.MaxUses
}

// Discount is the amount c takes off subtotal, rounded to the currency's
// minor unit.
func (c Coupon) Discount(subtotal Money) Money {
	scale, _ := currency.Standard.Rounding(subtotal.Currency)

	amount := subtotal.Amount.
		Mul(decimal.NewFromInt(int64(c.DiscountPercent))).
		Div(decimal.NewFromInt(100)).
		Round(int32(scale))

	return Money{Amount: amount, Currency: subtotal.Currency}
}

// Apply prices items with c taken off their subtotal.
func (c Coupon) Apply(items []CartItem, subtotal Money) CartTotals {
	discount := c.Discount(subtotal)

	return CartTotals{
		Items:      items,
		Subtotal:   subtotal,
		Discount:   discount,
		Total:      Money{Amount: subtotal.Amount.Sub(discount.Amount), Currency: subtotal.Currency},
		CouponCode: c.Code,
	}
}

// CartTotals is a priced cart: the lines plus subtotal, discount and total in
// one currency.
type CartTotals struct {
	Items      []CartItem
	Subtotal   Money
	Discount   Money
	Total      Money
	CouponCode string
}
