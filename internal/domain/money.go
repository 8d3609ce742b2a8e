package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

// NewMoney validates amount against unit: it must not be negative and must
// fit the currency's minor unit (two places for USD, none for JPY).
func NewMoney(amount decimal.Decimal, unit currency.Unit) (Money, error) {
	if amount.IsNegative() {
		return Money{}, fmt.Errorf("price amount[%s] is negative", amount)
	}

	scale, _ := currency.Standard.Rounding(unit)
	if !amount.Equal(amount.Truncate(int32(scale))) {
		return Money{}, fmt.Errorf("%w: %s allows %d, got %s", ErrPriceScale, unit, scale, amount)
	}

	return Money{Amount: amount, Currency: unit}, nil
}

func (m Money) IsZero() bool {
	return m.Amount.IsZero() && m.Currency == currency.Unit{}
}

func (m Money) Mul(n int) Money {
	return Money{
		Amount:   m.Amount.Mul(decimal.NewFromInt(int64(n))),
		Currency: m.Currency,
	}
}

func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.Currency, other.Currency)
	}

	return Money{
		Amount:   m.Amount.Add(other.Amount),
		Currency: m.Currency,
	}, nil
}

func (m Money) String() string {
	return m.Amount.StringFixed(2) + " " + m.Currency.String()
}

// Subtotal sums price × quantity over priced items. Items without a price are
// skipped; every priced item must be in unit.
func Subtotal(items []CartItem, unit currency.Unit) (Money, error) {
	total := Money{Amount: decimal.Zero, Currency: unit}

	for _, item := range items {
		if item.Price.IsZero() {
			continue
		}

		var err error
		total, err = total.Add(item.Price.Mul(item.Quantity))
		if err != nil {
			return Money{}, fmt.Errorf("item[%s]: %w", item.ID, err)
		}
	}

	return total, nil
}
