package domain_test

import (
	"testing"

	"github.com/RR-LN/comercio-cart/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func TestNewMoney(t *testing.T) {
	kwd := currency.MustParseISO("KWD")

	tests := []struct {
		name      string
		amount    string
		unit      currency.Unit
		wantError error
	}{
		{
			name:   "two places in USD: ok",
			amount: "19.99",
			unit:   currency.USD,
		},
		{
			name:   "trailing zero beyond scale: ok",
			amount: "19.990",
			unit:   currency.USD,
		},
		{
			name:      "three places in USD: error",
			amount:    "19.999",
			unit:      currency.USD,
			wantError: domain.ErrPriceScale,
		},
		{
			name:   "three places in KWD: ok",
			amount: "19.999",
			unit:   kwd,
		},
		{
			name:      "fraction in JPY: error",
			amount:    "100.5",
			unit:      currency.JPY,
			wantError: domain.ErrPriceScale,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := domain.NewMoney(decimal.RequireFromString(tt.amount), tt.unit)
			if tt.wantError != nil {
				require.ErrorIs(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.amount).Equal(m.Amount))
			assert.Equal(t, tt.unit, m.Currency)
		})
	}

	_, err := domain.NewMoney(decimal.RequireFromString("-1"), currency.USD)
	require.EqualError(t, err, "price amount[-1] is negative")
}

func TestSubtotal(t *testing.T) {
	items := []domain.CartItem{
		{ID: "a", Quantity: 2, Price: domain.Money{Amount: decimal.RequireFromString("10.50"), Currency: currency.EUR}},
		{ID: "b", Quantity: 5},
		{ID: "c", Quantity: 1, Price: domain.Money{Amount: decimal.RequireFromString("0.99"), Currency: currency.EUR}},
	}

	total, err := domain.Subtotal(items, currency.EUR)
	require.NoError(t, err)
	assert.Equal(t, "21.99 EUR", total.String())

	_, err = domain.Subtotal(items, currency.USD)
	require.ErrorIs(t, err, domain.ErrCurrencyMismatch)

	empty, err := domain.Subtotal(nil, currency.USD)
	require.NoError(t, err)
	assert.True(t, empty.Amount.IsZero())
}
