// Package wire holds the JSON records exchanged with the remote cart service
// and their mapping to domain types.
package wire

import (
	"fmt"
	"time"

	"github.com/RR-LN/comercio-cart/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Price struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency" binding:"required,len=3"`
}

type CartItem struct {
	ID        string     `json:"id"`
	ProductID string     `json:"productId"`
	Quantity  int        `json:"quantity"`
	Color     string     `json:"color,omitempty"`
	Size      string     `json:"size,omitempty"`
	Price     *Price     `json:"price,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// AddItemBody is the body of POST /api/cart/add.
type AddItemBody struct {
	UserID    string `json:"userId" binding:"required"`
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1,max=2147483647"`
	Color     string `json:"color,omitempty"`
	Size      string `json:"size,omitempty"`
	Price     *Price `json:"price,omitempty"`
}

// UpdateQuantityBody is the body of PUT /api/cart/{userId}/items/{itemId}.
// Zero removes the line.
type UpdateQuantityBody struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// DiscountBody is the body of POST /api/cart/{userId}/discount. Currency
// selects the lines that are priced.
type DiscountBody struct {
	Code     string `json:"code" binding:"required"`
	Currency string `json:"currency" binding:"required,len=3"`
}

// CartTotals answers POST /api/cart/{userId}/discount.
type CartTotals struct {
	Items      []CartItem `json:"items"`
	Subtotal   Price      `json:"subtotal"`
	Discount   Price      `json:"discount"`
	Total      Price      `json:"total"`
	CouponCode string     `json:"couponCode"`
}

func (b AddItemBody) ToDomain() (domain.AddItemRequest, error) {
	price, err := b.Price.toDomain()
	if err != nil {
		return domain.AddItemRequest{}, err
	}

	return domain.AddItemRequest{
		ProductID: b.ProductID,
		Quantity:  b.Quantity,
		Color:     b.Color,
		Size:      b.Size,
		Price:     price,
	}, nil
}

func NewAddItemBody(userID string, req domain.AddItemRequest) AddItemBody {
	return AddItemBody{
		UserID:    userID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Color:     req.Color,
		Size:      req.Size,
		Price:     priceFromDomain(req.Price),
	}
}

func (i CartItem) ToDomain() (domain.CartItem, error) {
	if i.ID == "" {
		return domain.CartItem{}, fmt.Errorf("item id is empty")
	}
	if i.ProductID == "" {
		return domain.CartItem{}, fmt.Errorf("item[%s]: productId is empty", i.ID)
	}
	if i.Quantity <= 0 {
		return domain.CartItem{}, fmt.Errorf("item[%s]: quantity[%d] is not positive", i.ID, i.Quantity)
	}

	price, err := i.Price.toDomain()
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("item[%s]: %w", i.ID, err)
	}

	item := domain.CartItem{
		ID:        i.ID,
		ProductID: i.ProductID,
		Quantity:  i.Quantity,
		Color:     i.Color,
		Size:      i.Size,
		Price:     price,
	}
	if i.CreatedAt != nil {
		item.CreatedAt = *i.CreatedAt
	}

	return item, nil
}

func ItemsToDomain(items []CartItem) ([]domain.CartItem, error) {
	result := make([]domain.CartItem, 0, len(items))
	for _, item := range items {
		d, err := item.ToDomain()
		if err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, nil
}

func ItemFromDomain(item domain.CartItem) CartItem {
	result := CartItem{
		ID:        item.ID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		Color:     item.Color,
		Size:      item.Size,
		Price:     priceFromDomain(item.Price),
	}
	if !item.CreatedAt.IsZero() {
		createdAt := item.CreatedAt.UTC()
		result.CreatedAt = &createdAt
	}
	return result
}

// ItemsFromDomain never returns nil so an empty cart encodes as [].
func ItemsFromDomain(items []domain.CartItem) []CartItem {
	result := make([]CartItem, 0, len(items))
	for _, item := range items {
		result = append(result, ItemFromDomain(item))
	}
	return result
}

func (p *Price) toDomain() (domain.Money, error) {
	if p == nil {
		return domain.Money{}, nil
	}

	unit, err := currency.ParseISO(p.Currency)
	if err != nil {
		return domain.Money{}, fmt.Errorf("currency[%s] is not valid: %w", p.Currency, err)
	}

	return domain.NewMoney(p.Amount, unit)
}

func priceFromDomain(m domain.Money) *Price {
	if m.IsZero() {
		return nil
	}
	return &Price{Amount: m.Amount, Currency: m.Currency.String()}
}

func TotalsFromDomain(t domain.CartTotals) CartTotals {
	return CartTotals{
		Items:      ItemsFromDomain(t.Items),
		Subtotal:   Price{Amount: t.Subtotal.Amount, Currency: t.Subtotal.Currency.String()},
		Discount:   Price{Amount: t.Discount.Amount, Currency: t.Discount.Currency.String()},
		Total:      Price{Amount: t.Total.Amount, Currency: t.Total.Currency.String()},
		CouponCode: t.CouponCode,
	}
}

func (t CartTotals) ToDomain() (domain.CartTotals, error) {
	items, err := ItemsToDomain(t.Items)
	if err != nil {
		return domain.CartTotals{}, err
	}

	result := domain.CartTotals{Items: items, CouponCode: t.CouponCode}
	for _, m := range []struct {
		dst *domain.Money
		src Price
	}{
		{&result.Subtotal, t.Subtotal},
		{&result.Discount, t.Discount},
		{&result.Total, t.Total},
	} {
		*m.dst, err = m.src.toDomain()
		if err != nil {
			return domain.CartTotals{}, err
		}
	}

	return result, nil
}
