package remote_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/RR-LN/comercio-cart/internal/domain"
	"github.com/RR-LN/comercio-cart/internal/httpapi"
	"github.com/RR-LN/comercio-cart/internal/remote"
	"github.com/RR-LN/comercio-cart/internal/repository"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func newCartService(t *testing.T, coupons ...domain.Coupon) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	couponRepo := repository.NewMemoryCoupon()
	for _, c := range coupons {
		_, err := couponRepo.CreateCoupon(t.Context(), c)
		require.NoError(t, err)
	}

	srv := httptest.NewServer(httpapi.NewRouter(httpapi.RouterConfig{
		CartHandler: httpapi.NewCartHandler(repository.NewMemoryCart(), couponRepo),
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_AddThenGet(t *testing.T) {
	srv := newCartService(t)

	client, err := remote.NewClient(srv.URL+"/", time.Second)
	require.NoError(t, err)

	ctx := t.Context()
	userID := gofakeit.UUID()

	items, err := client.GetCart(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, items)

	req := domain.AddItemRequest{
		ProductID: gofakeit.UUID(),
		Quantity:  2,
		Size:      "M",
		Price:     domain.Money{Amount: decimal.RequireFromString("4.50"), Currency: currency.GBP},
	}
	added, err := client.AddItem(ctx, userID, req)
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)
	assert.Equal(t, req.ProductID, added.ProductID)
	assert.Equal(t, 2, added.Quantity)
	assert.Equal(t, "M", added.Size)
	assert.True(t, req.Price.Amount.Equal(added.Price.Amount))
	assert.Equal(t, currency.GBP, added.Price.Currency)

	items, err = client.GetCart(ctx, userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, added.ID, items[0].ID)
}

func TestClient_UpdateRemoveClear(t *testing.T) {
	srv := newCartService(t)

	client, err := remote.NewClient(srv.URL, time.Second)
	require.NoError(t, err)

	ctx := t.Context()
	userID := gofakeit.UUID()

	a, err := client.AddItem(ctx, userID, domain.AddItemRequest{ProductID: "p1", Quantity: 1})
	require.NoError(t, err)
	b, err := client.AddItem(ctx, userID, domain.AddItemRequest{ProductID: "p2", Quantity: 1, Color: "red"})
	require.NoError(t, err)

	items, err := client.UpdateQuantity(ctx, userID, a.ID, 6)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 6, items[0].Quantity)

	_, err = client.UpdateQuantity(ctx, userID, "missing", 1)
	require.Error(t, err)
	assert.Equal(t, "Failed to update cart", remote.Message(err))
	var remoteErr *remote.Error
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, http.StatusNotFound, remoteErr.StatusCode)

	require.NoError(t, client.RemoveItem(ctx, userID, b.ID))

	err = client.RemoveItem(ctx, userID, b.ID)
	assert.Equal(t, "Failed to remove from cart", remote.Message(err))

	items, err = client.GetCart(ctx, userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, a.ID, items[0].ID)

	require.NoError(t, client.ClearCart(ctx, userID))

	items, err = client.GetCart(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestClient_ApplyDiscount(t *testing.T) {
	now := time.Now()
	srv := newCartService(t, domain.Coupon{
		Code: "HALF", DiscountPercent: 50, ValidFrom: now.Add(-time.Hour), ValidTo: now.Add(time.Hour), MaxUses: 1,
	})

	client, err := remote.NewClient(srv.URL, time.Second)
	require.NoError(t, err)

	ctx := t.Context()
	userID := gofakeit.UUID()

	_, err = client.AddItem(ctx, userID, domain.AddItemRequest{
		ProductID: "p1",
		Quantity:  3,
		Price:     domain.Money{Amount: decimal.RequireFromString("3.33"), Currency: currency.EUR},
	})
	require.NoError(t, err)

	totals, err := client.ApplyDiscount(ctx, userID, "HALF", currency.EUR)
	require.NoError(t, err)
	require.Len(t, totals.Items, 1)
	assert.Equal(t, "9.99 EUR", totals.Subtotal.String())
	assert.Equal(t, "5.00 EUR", totals.Discount.String())
	assert.Equal(t, "4.99 EUR", totals.Total.String())
	assert.Equal(t, "HALF", totals.CouponCode)

	_, err = client.ApplyDiscount(ctx, userID, "HALF", currency.EUR)
	require.Error(t, err)
	assert.Equal(t, "Failed to apply discount", remote.Message(err))
	assert.Contains(t, err.Error(), "FAILED_PRECONDITION")
}

func TestClient_TruncatedErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Length", "512")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":{"message":"maint`))
	}))
	t.Cleanup(srv.Close)

	client, err := remote.NewClient(srv.URL, time.Second)
	require.NoError(t, err)

	_, err = client.GetCart(t.Context(), "u1")
	require.Error(t, err)
	assert.Equal(t, "Failed to fetch cart", remote.Message(err))
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Contains(t, err.Error(), "503")
}

func TestClient_Errors(t *testing.T) {
	srv := newCartService(t)

	client, err := remote.NewClient(srv.URL, time.Second)
	require.NoError(t, err)

	ctx := t.Context()

	_, err = client.AddItem(ctx, "u1", domain.AddItemRequest{ProductID: "p1"})
	require.Error(t, err)
	assert.Equal(t, "Failed to add to cart", remote.Message(err))

	var remoteErr *remote.Error
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, http.StatusBadRequest, remoteErr.StatusCode)
	assert.Contains(t, err.Error(), "INVALID_ARGUMENT")

	_, err = client.GetCart(ctx, "")
	assert.Equal(t, "Failed to fetch cart", remote.Message(err))
}

func TestClient_ServiceDown(t *testing.T) {
	srv := newCartService(t)
	url := srv.URL
	srv.Close()

	client, err := remote.NewClient(url, time.Second)
	require.NoError(t, err)

	_, err = client.GetCart(t.Context(), "u1")
	require.Error(t, err)
	assert.Equal(t, "Failed to fetch cart", remote.Message(err))
}

func TestClient_MalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"a","productId":"p1","quantity":0}]`))
	}))
	t.Cleanup(srv.Close)

	client, err := remote.NewClient(srv.URL, time.Second)
	require.NoError(t, err)

	_, err = client.GetCart(t.Context(), "u1")
	require.Error(t, err)
	assert.Equal(t, "Failed to fetch cart", remote.Message(err))
}

func TestNewClient_RejectsRelativeURL(t *testing.T) {
	_, err := remote.NewClient("/api", time.Second)
	require.Error(t, err)
}
