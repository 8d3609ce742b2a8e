package port

import (
	"context"
	"time"

	"github.com/RR-LN/comercio-cart/internal/domain"
	"golang.org/x/text/currency"
)

// CartRepository persists carts on the remote cart service side.
type CartRepository interface {
	GetCart(ctx context.Context, ownerID string) (domain.Cart, error)
	AddItem(ctx context.Context, ownerID string, req domain.AddItemRequest) (domain.CartItem, error)
	UpdateQuantity(ctx context.Context, ownerID, itemID string, quantity int) (domain.Cart, error)
	DeleteItem(ctx context.Context, ownerID, itemID string) (bool, error)
	ClearCart(ctx context.Context, ownerID string) error
}

type CouponRepository interface {
	CreateCoupon(ctx context.Context, coupon domain.Coupon) (domain.Coupon, error)
	// RedeemCoupon uses the coupon once if it is valid at now.
	RedeemCoupon(ctx context.Context, code string, now time.Time) (domain.Coupon, error)
}

// RemoteCart is the client's view of the remote cart service.
type RemoteCart interface {
	GetCart(ctx context.Context, userID string) ([]domain.CartItem, error)
	AddItem(ctx context.Context, userID string, req domain.AddItemRequest) (domain.CartItem, error)
	UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) ([]domain.CartItem, error)
	RemoveItem(ctx context.Context, userID, itemID string) error
	ClearCart(ctx context.Context, userID string) error
	ApplyDiscount(ctx context.Context, userID, code string, unit currency.Unit) (domain.CartTotals, error)
}
