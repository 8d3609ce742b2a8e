package cart

import (
	"math"
	"slices"

	"github.com/RR-LN/comercio-cart/internal/domain"
	"golang.org/x/text/currency"
)

// MaxQuantity caps a line quantity; additions past it saturate.
const MaxQuantity = math.MaxInt32

// Snapshot is an immutable, ordered view of a cart. Every operation returns a
// new Snapshot and leaves the receiver untouched, so a Snapshot handed to a
// reader never changes underneath it.
//
// The zero value is an empty cart.
type Snapshot struct {
	items []domain.CartItem
}

// NewSnapshot builds a snapshot from items, folding duplicate ids together and
// dropping lines with a non-positive quantity.
func NewSnapshot(items []domain.CartItem) Snapshot {
	var s Snapshot
	for _, item := range items {
		s = s.AddItem(item)
	}
	return s
}

func (s Snapshot) AddItem(item domain.CartItem) Snapshot {
	i := s.index(item.ID)
	if i < 0 {
		if item.Quantity <= 0 {
			return s
		}
		items := make([]domain.CartItem, len(s.items), len(s.items)+1)
		copy(items, s.items)
		return Snapshot{items: append(items, item)}
	}

	return s.withQuantity(i, addQuantity(s.items[i].Quantity, item.Quantity))
}

// UpdateQuantity sets the quantity of the line with the given id. A missing id
// is a no-op; a non-positive quantity removes the line.
func (s Snapshot) UpdateQuantity(id string, quantity int) Snapshot {
	i := s.index(id)
	if i < 0 {
		return s
	}

	return s.withQuantity(i, min(quantity, MaxQuantity))
}

// Upsert installs item as the line for item.ID: an existing line is replaced
// in place, a new one is appended. A non-positive quantity removes the line.
func (s Snapshot) Upsert(item domain.CartItem) Snapshot {
	item.Quantity = min(item.Quantity, MaxQuantity)

	i := s.index(item.ID)
	switch {
	case i < 0 && item.Quantity <= 0:
		return s
	case i < 0:
		items := make([]domain.CartItem, len(s.items), len(s.items)+1)
		copy(items, s.items)
		return Snapshot{items: append(items, item)}
	case item.Quantity <= 0:
		return Snapshot{items: slices.Delete(slices.Clone(s.items), i, i+1)}
	}

	items := slices.Clone(s.items)
	items[i] = item
	return Snapshot{items: items}
}

func (s Snapshot) RemoveItem(id string) Snapshot {
	i := s.index(id)
	if i < 0 {
		return s
	}

	return Snapshot{items: slices.Delete(slices.Clone(s.items), i, i+1)}
}

func (s Snapshot) Clear() Snapshot {
	return Snapshot{}
}

// Items returns a copy of the lines in insertion order.
func (s Snapshot) Items() []domain.CartItem {
	return slices.Clone(s.items)
}

func (s Snapshot) Len() int {
	return len(s.items)
}

func (s Snapshot) Get(id string) (domain.CartItem, bool) {
	i := s.index(id)
	if i < 0 {
		return domain.CartItem{}, false
	}
	return s.items[i], true
}

func (s Snapshot) Has(id string) bool {
	return s.index(id) >= 0
}

func (s Snapshot) TotalQuantity() int {
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice sums price × quantity over priced lines. Lines without a price are
// skipped. All priced lines must be in unit.
func (s Snapshot) TotalPrice(unit currency.Unit) (domain.Money, error) {
	return domain.Subtotal(s.items, unit)
}

func (s Snapshot) index(id string) int {
	return slices.IndexFunc(s.items, func(item domain.CartItem) bool {
		return item.ID == id
	})
}

func (s Snapshot) withQuantity(i, quantity int) Snapshot {
	if quantity <= 0 {
		return Snapshot{items: slices.Delete(slices.Clone(s.items), i, i+1)}
	}

	items := slices.Clone(s.items)
	items[i].Quantity = quantity
	return Snapshot{items: items}
}

func addQuantity(a, b int) int {
	if b > 0 && a > MaxQuantity-b {
		return MaxQuantity
	}
	return a + b
}
