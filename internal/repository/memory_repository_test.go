package repository_test

import (
	"testing"

	"github.com/RR-LN/comercio-cart/internal/domain"
	"github.com/RR-LN/comercio-cart/internal/repository"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCart(t *testing.T) {
	ctx := t.Context()
	repo := repository.NewMemoryCart()
	ownerID := gofakeit.UUID()

	req := randomAddItemRequest()
	first, err := repo.AddItem(ctx, ownerID, req)
	require.NoError(t, err)
	assertItemMatchesRequest(t, req, first)

	again, err := repo.AddItem(ctx, ownerID, req)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, 2*req.Quantity, again.Quantity)

	second, err := repo.AddItem(ctx, ownerID, randomAddItemRequest())
	require.NoError(t, err)

	cart, err := repo.UpdateQuantity(ctx, ownerID, first.ID, 9)
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
	assert.Equal(t, 9, cart.Items[0].Quantity)

	_, err = repo.UpdateQuantity(ctx, ownerID, "missing", 1)
	require.ErrorIs(t, err, domain.ErrItemNotFound)

	deleted, err := repo.DeleteItem(ctx, ownerID, second.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.DeleteItem(ctx, ownerID, second.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	cart, err = repo.UpdateQuantity(ctx, ownerID, first.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	_, err = repo.AddItem(ctx, ownerID, randomAddItemRequest())
	require.NoError(t, err)
	require.NoError(t, repo.ClearCart(ctx, ownerID))

	cart, err = repo.GetCart(ctx, ownerID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	_, err = repo.GetCart(ctx, "")
	require.EqualError(t, err, "ownerID is empty")
}
