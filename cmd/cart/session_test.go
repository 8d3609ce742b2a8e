package main

import (
	"bytes"
	"testing"

	"github.com/RR-LN/comercio-cart/internal/cart"
	"github.com/RR-LN/comercio-cart/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func TestLineID(t *testing.T) {
	assert.Equal(t, "p1", lineID(domain.AddItemRequest{ProductID: "p1"}))
	assert.Equal(t, "p1:red:M", lineID(domain.AddItemRequest{ProductID: "p1", Color: "red", Size: "M"}))
	assert.Equal(t, "p1::M", lineID(domain.AddItemRequest{ProductID: "p1", Size: "M"}))

	// a separator inside an id does not merge different products
	assert.NotEqual(t,
		lineID(domain.AddItemRequest{ProductID: "p1:red:"}),
		lineID(domain.AddItemRequest{ProductID: "p1", Color: "red"}),
	)
	assert.Equal(t, "p1%3Ared%3A", lineID(domain.AddItemRequest{ProductID: "p1:red:"}))
}

func TestParseMoney(t *testing.T) {
	m, err := parseMoney("", "USD")
	require.NoError(t, err)
	assert.True(t, m.IsZero())

	m, err = parseMoney("12.30", "EUR")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("12.3").Equal(m.Amount))
	assert.Equal(t, currency.EUR, m.Currency)

	_, err = parseMoney("abc", "EUR")
	require.Error(t, err)

	_, err = parseMoney("1", "??")
	require.Error(t, err)
}

func TestPrintCart(t *testing.T) {
	snap := cart.NewSnapshot([]domain.CartItem{
		{ID: "p1", ProductID: "p1", Quantity: 2, Price: domain.Money{Amount: decimal.RequireFromString("5"), Currency: currency.USD}},
		{ID: "p2:red:", ProductID: "p2", Quantity: 1, Color: "red"},
	})

	var buf bytes.Buffer
	require.NoError(t, printCart(&buf, snap, "USD"))

	out := buf.String()
	assert.Contains(t, out, "p2:red:")
	assert.Contains(t, out, "5.00 USD")
	assert.Contains(t, out, "3 item(s)")
	assert.Contains(t, out, "total 10.00 USD")

	buf.Reset()
	require.Error(t, printCart(&buf, snap, "EUR"))
}

func TestPrintTotals(t *testing.T) {
	usd := func(s string) domain.Money {
		return domain.Money{Amount: decimal.RequireFromString(s), Currency: currency.USD}
	}

	var buf bytes.Buffer
	require.NoError(t, printTotals(&buf, domain.CartTotals{
		Subtotal:   usd("24.75"),
		Discount:   usd("2.48"),
		Total:      usd("22.27"),
		CouponCode: "TEN",
	}))

	out := buf.String()
	assert.Contains(t, out, "24.75 USD")
	assert.Contains(t, out, "discount (TEN)")
	assert.Contains(t, out, "-2.48 USD")
	assert.Contains(t, out, "22.27 USD")
}

func TestRootCmd_RegistersCommands(t *testing.T) {
	root := newRootCmd()

	for _, name := range []string{"serve", "show", "add", "update", "remove", "clear", "sync", "discount", "coupon"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}
