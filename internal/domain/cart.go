package domain

import (
	"time"
)

type Cart struct {
	OwnerID string
	Items   []CartItem
}

// CartItem is a single line of a cart: one product configuration and its quantity.
// Color and Size are empty when the product has no such option.
type CartItem struct {
	ID        string
	ProductID string
	Quantity  int
	Color     string
	Size      string
	Price     Money

	CreatedAt time.Time
}

// AddItemRequest is what a client sends to put a product into a remote cart.
type AddItemRequest struct {
	ProductID string
	Quantity  int
	Color     string
	Size      string
	Price     Money
}
