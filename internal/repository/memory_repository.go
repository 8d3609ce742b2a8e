package repository

import (
	"context"
	"fmt"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/RR-LN/comercio-cart/internal/domain"
	"github.com/RR-LN/comercio-cart/internal/port"
	"github.com/google/uuid"
)

// memoryCartRepository keeps carts in process memory. It follows the same
// line identity rules as the postgres repository: one line per
// product/color/size within a cart.
type memoryCartRepository struct {
	mu    sync.Mutex
	carts map[string][]domain.CartItem
	now   func() time.Time
}

func NewMemoryCart() port.CartRepository {
	return &memoryCartRepository{
		carts: make(map[string][]domain.CartItem),
		now:   time.Now,
	}
}

func (r *memoryCartRepository) GetCart(_ context.Context, ownerID string) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, fmt.Errorf("ownerID is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return domain.Cart{
		OwnerID: ownerID,
		Items:   slices.Clone(r.carts[ownerID]),
	}, nil
}

func (r *memoryCartRepository) AddItem(_ context.Context, ownerID string, req domain.AddItemRequest) (domain.CartItem, error) {
	if ownerID == "" {
		return domain.CartItem{}, fmt.Errorf("ownerID is empty")
	}
	if req.ProductID == "" {
		return domain.CartItem{}, fmt.Errorf("productID is empty")
	}
	if req.Quantity <= 0 || req.Quantity > math.MaxInt32 {
		return domain.CartItem{}, fmt.Errorf("quantity[%d] is out of range", req.Quantity)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.carts[ownerID]
	i := slices.IndexFunc(items, func(item domain.CartItem) bool {
		return item.ProductID == req.ProductID && item.Color == req.Color && item.Size == req.Size
	})
	if i >= 0 {
		items[i].Quantity = int(min(int64(items[i].Quantity)+int64(req.Quantity), math.MaxInt32))
		if !req.Price.IsZero() {
			items[i].Price = req.Price
		}
		return items[i], nil
	}

	id, err := uuid.NewV7()
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("uuid.NewV7: %w", err)
	}

	item := domain.CartItem{
		ID:        id.String(),
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Color:     req.Color,
		Size:      req.Size,
		Price:     req.Price,
		CreatedAt: r.now(),
	}
	r.carts[ownerID] = append(items, item)

	return item, nil
}

func (r *memoryCartRepository) UpdateQuantity(_ context.Context, ownerID, itemID string, quantity int) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, fmt.Errorf("ownerID is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.carts[ownerID]
	i := indexByID(items, itemID)
	if i < 0 {
		return domain.Cart{}, fmt.Errorf("itemID[%s]: %w", itemID, domain.ErrItemNotFound)
	}

	if quantity <= 0 {
		items = slices.Delete(items, i, i+1)
	} else {
		items[i].Quantity = min(quantity, math.MaxInt32)
	}
	r.carts[ownerID] = items

	return domain.Cart{OwnerID: ownerID, Items: slices.Clone(items)}, nil
}

func (r *memoryCartRepository) DeleteItem(_ context.Context, ownerID, itemID string) (bool, error) {
	if ownerID == "" {
		return false, fmt.Errorf("ownerID is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.carts[ownerID]
	i := indexByID(items, itemID)
	if i < 0 {
		return false, nil
	}
	r.carts[ownerID] = slices.Delete(items, i, i+1)

	return true, nil
}

func (r *memoryCartRepository) ClearCart(_ context.Context, ownerID string) error {
	if ownerID == "" {
		return fmt.Errorf("ownerID is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.carts, ownerID)
	return nil
}

func indexByID(items []domain.CartItem, id string) int {
	return slices.IndexFunc(items, func(item domain.CartItem) bool {
		return item.ID == id
	})
}
