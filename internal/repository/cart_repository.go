package repository

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/RR-LN/comercio-cart/internal/db"
	"github.com/RR-LN/comercio-cart/internal/domain"
	"github.com/RR-LN/comercio-cart/internal/port"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type cartRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewCart(pool *pgxpool.Pool) port.CartRepository {
	return &cartRepository{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewCartWithTx(tx pgx.Tx) port.CartRepository {
	return &cartRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *cartRepository) GetCart(ctx context.Context, ownerID string) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, fmt.Errorf("ownerID is empty")
	}

	return getCart(ctx, r.q, ownerID)
}

func (r *cartRepository) AddItem(ctx context.Context, ownerID string, req domain.AddItemRequest) (domain.CartItem, error) {
	if ownerID == "" {
		return domain.CartItem{}, fmt.Errorf("ownerID is empty")
	}
	if req.ProductID == "" {
		return domain.CartItem{}, fmt.Errorf("productID is empty")
	}
	if req.Quantity <= 0 || req.Quantity > math.MaxInt32 {
		return domain.CartItem{}, fmt.Errorf("quantity[%d] is out of range", req.Quantity)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("uuid.NewV7: %w", err)
	}

	params := db.AddItemParams{
		ID:          id,
		OwnerID:     ownerID,
		ProductID:   req.ProductID,
		Quantity:    int32(req.Quantity),
		Color:       req.Color,
		Size:        req.Size,
		PriceAmount: decimal.Zero,
	}
	if !req.Price.IsZero() {
		params.PriceAmount = req.Price.Amount
		params.PriceCurrency = req.Price.Currency.String()
	}

	row, err := r.q.AddItem(ctx, params)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("q.AddItem: %w", err)
	}

	item, err := mapGetCartRowToDomain(db.GetCartRow(row))
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("mapGetCartRowToDomain: %w", err)
	}

	return item, nil
}

// UpdateQuantity sets the quantity of one line and returns the resulting cart.
// A non-positive quantity deletes the line.
func (r *cartRepository) UpdateQuantity(ctx context.Context, ownerID, itemID string, quantity int) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, fmt.Errorf("ownerID is empty")
	}

	id, err := uuid.Parse(itemID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("itemID[%s]: %w", itemID, domain.ErrItemNotFound)
	}

	return withTx(ctx, r.pool, r.q, func(q *db.Queries) (domain.Cart, error) {
		_, err := q.LockItem(ctx, db.LockItemParams{OwnerID: ownerID, ID: id})
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Cart{}, fmt.Errorf("itemID[%s]: %w", itemID, domain.ErrItemNotFound)
		}
		if err != nil {
			return domain.Cart{}, fmt.Errorf("q.LockItem: %w", err)
		}

		if quantity <= 0 {
			if _, err := q.DeleteItem(ctx, db.DeleteItemParams{OwnerID: ownerID, ID: id}); err != nil {
				return domain.Cart{}, fmt.Errorf("q.DeleteItem: %w", err)
			}
		} else {
			_, err := q.SetItemQuantity(ctx, db.SetItemQuantityParams{
				OwnerID:  ownerID,
				ID:       id,
				Quantity: int32(min(quantity, math.MaxInt32)),
			})
			if err != nil {
				return domain.Cart{}, fmt.Errorf("q.SetItemQuantity: %w", err)
			}
		}

		return getCart(ctx, q, ownerID)
	})
}

func (r *cartRepository) DeleteItem(ctx context.Context, ownerID, itemID string) (bool, error) {
	if ownerID == "" {
		return false, fmt.Errorf("ownerID is empty")
	}

	id, err := uuid.Parse(itemID)
	if err != nil {
		return false, nil
	}

	rowsAffected, err := r.q.DeleteItem(ctx, db.DeleteItemParams{
		OwnerID: ownerID,
		ID:      id,
	})
	if err != nil {
		return false, fmt.Errorf("q.DeleteItem: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *cartRepository) ClearCart(ctx context.Context, ownerID string) error {
	if ownerID == "" {
		return fmt.Errorf("ownerID is empty")
	}

	if err := r.q.ClearCart(ctx, ownerID); err != nil {
		return fmt.Errorf("q.ClearCart: %w", err)
	}

	return nil
}

func getCart(ctx context.Context, q *db.Queries, ownerID string) (domain.Cart, error) {
	dbCartItems, err := q.GetCart(ctx, ownerID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("q.GetCart: %w", err)
	}

	items, err := mapGetCartRowsToDomain(dbCartItems)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("mapGetCartRowsToDomain: %w", err)
	}

	return domain.Cart{
		OwnerID: ownerID,
		Items:   items,
	}, nil
}

func mapGetCartRowToDomain(row db.GetCartRow) (domain.CartItem, error) {
	item := domain.CartItem{
		ID:        row.ID.String(),
		ProductID: row.ProductID,
		Quantity:  int(row.Quantity),
		Color:     row.Color,
		Size:      row.Size,
		CreatedAt: row.CreatedAt,
	}

	if row.PriceCurrency == "" {
		return item, nil
	}

	parsedCurrency, err := currency.ParseISO(row.PriceCurrency)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("currency[%s] is not valid: %w", row.PriceCurrency, err)
	}
	item.Price = domain.Money{Amount: row.PriceAmount, Currency: parsedCurrency}

	return item, nil
}

func mapGetCartRowsToDomain(rows []db.GetCartRow) ([]domain.CartItem, error) {
	items := make([]domain.CartItem, 0, len(rows))

	for _, row := range rows {
		item, err := mapGetCartRowToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapGetCartRowToDomain: %w", err)
		}

		items = append(items, item)
	}

	return items, nil
}
