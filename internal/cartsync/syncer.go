// Package cartsync keeps a session cart store in step with the remote cart
// service. The remote copy is authoritative on Load; concurrent writers from
// other devices are not reconciled and the last writer wins.
package cartsync

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/RR-LN/comercio-cart/internal/cart"
	"github.com/RR-LN/comercio-cart/internal/domain"
	"github.com/RR-LN/comercio-cart/internal/logger"
	"github.com/RR-LN/comercio-cart/internal/port"
	"github.com/RR-LN/comercio-cart/internal/remote"
	"golang.org/x/text/currency"
)

type Syncer struct {
	userID string
	store  *cart.Store
	remote port.RemoteCart
	log    *logger.Logger

	mu      sync.Mutex
	loading bool
	errMsg  string
}

func New(userID string, store *cart.Store, rc port.RemoteCart, log *logger.Logger) *Syncer {
	return &Syncer{
		userID:  userID,
		store:   store,
		remote:  rc,
		log:     log.With("component", "cartsync"),
		loading: true,
	}
}

// Load replaces the local snapshot with the remote cart. Without a user there
// is nothing to fetch and the local cart is left alone.
func (s *Syncer) Load(ctx context.Context) error {
	if s.userID == "" {
		s.setLoading(false)
		return nil
	}

	s.setLoading(true)
	defer s.setLoading(false)

	items, err := s.remote.GetCart(ctx, s.userID)
	if err != nil {
		s.fail("load", err)
		return err
	}

	s.store.Replace(cart.NewSnapshot(items))
	s.setErr("")
	s.log.Debug("cart loaded", "items", len(items))

	return nil
}

// Add posts req to the remote cart and merges the returned line locally.
// The local store is untouched when the call fails.
func (s *Syncer) Add(ctx context.Context, req domain.AddItemRequest) (domain.CartItem, error) {
	item, err := s.remote.AddItem(ctx, s.userID, req)
	if err != nil {
		s.fail("add", err)
		return domain.CartItem{}, err
	}

	// the service reports the line's full quantity, so it replaces rather
	// than adds to a local line with the same id
	s.store.Upsert(item)
	s.setErr("")

	return item, nil
}

// UpdateQuantity sets the quantity of a line on the remote cart and installs
// the cart the service answers with. A line the service no longer has is
// dropped locally.
func (s *Syncer) UpdateQuantity(ctx context.Context, itemID string, quantity int) error {
	items, err := s.remote.UpdateQuantity(ctx, s.userID, itemID, quantity)
	if isNotFound(err) {
		s.log.Warn("update of a line missing remotely", "item_id", itemID)
		s.store.RemoveItem(itemID)
		s.setErr("")
		return nil
	}
	if err != nil {
		s.fail("update", err)
		return err
	}

	s.store.Replace(cart.NewSnapshot(items))
	s.setErr("")

	return nil
}

// RemoveItem deletes a line on the remote cart, then locally. A line already
// gone remotely counts as removed.
func (s *Syncer) RemoveItem(ctx context.Context, itemID string) error {
	if err := s.remote.RemoveItem(ctx, s.userID, itemID); err != nil && !isNotFound(err) {
		s.fail("remove", err)
		return err
	}

	s.store.RemoveItem(itemID)
	s.setErr("")

	return nil
}

func (s *Syncer) Clear(ctx context.Context) error {
	if err := s.remote.ClearCart(ctx, s.userID); err != nil {
		s.fail("clear", err)
		return err
	}

	s.store.Clear()
	s.setErr("")

	return nil
}

// ApplyDiscount redeems code against the remote cart and installs the lines
// the service priced. The local store is untouched when the call fails.
func (s *Syncer) ApplyDiscount(ctx context.Context, code string, unit currency.Unit) (domain.CartTotals, error) {
	totals, err := s.remote.ApplyDiscount(ctx, s.userID, code, unit)
	if err != nil {
		s.fail("discount", err)
		return domain.CartTotals{}, err
	}

	s.store.Replace(cart.NewSnapshot(totals.Items))
	s.setErr("")

	return totals, nil
}

func (s *Syncer) Store() *cart.Store {
	return s.store
}

func (s *Syncer) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err is the last failure message for display, or "" after a success.
func (s *Syncer) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

func (s *Syncer) fail(op string, err error) {
	msg := remote.Message(err)
	s.setErr(msg)
	s.log.Warn("cart sync failed", "op", op, "error", err)
}

func isNotFound(err error) bool {
	var remoteErr *remote.Error
	return errors.As(err, &remoteErr) && remoteErr.StatusCode == http.StatusNotFound
}

func (s *Syncer) setLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
}

func (s *Syncer) setErr(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = msg
}
