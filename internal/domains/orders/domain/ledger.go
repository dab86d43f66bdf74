package domain

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrEmptyProductID   = errors.New("product id is required")
	ErrNegativePrice    = errors.New("unit price must be greater or equal to zero")
	ErrInvalidQuantity  = errors.New("quantity must be greater or equal to one")
	ErrLineItemNotFound = errors.New("line item not found")
)

// CatalogItem is the product shape the ledger consumes. The caller is
// responsible for resolving it against the catalog; the ledger only checks
// the shape.
type CatalogItem struct {
	ProductID string
	Name      string
	UnitPrice float64
}

// LineItem is one product selection within a ledger. Identity is ID;
// merging is keyed by ProductID.
type LineItem struct {
	ID        string
	ProductID string
	Name      string
	Quantity  int
	UnitPrice float64
}

// Subtotal returns the line value.
func (li LineItem) Subtotal() float64 {
	return float64(li.Quantity) * li.UnitPrice
}

// Ledger holds the line items of one in-progress order in insertion order.
// It keeps at most one line per product: adding a product already present
// bumps its quantity and leaves the unit price pinned to the first insertion,
// so later catalog price changes do not affect an open order.
type Ledger struct {
	items []LineItem
}

// NewLedger returns an empty ledger for a new order-entry session.
func NewLedger() *Ledger {
	return &Ledger{}
}

// AddItem merges the product into the ledger. A product seen before gets its
// quantity incremented by one; otherwise a new line with quantity one is
// appended.
func (l *Ledger) AddItem(product CatalogItem) error {
	if product.ProductID == "" {
		return ErrEmptyProductID
	}
	if product.UnitPrice < 0 {
		return ErrNegativePrice
	}
	for i := range l.items {
		if l.items[i].ProductID == product.ProductID {
			l.items[i].Quantity++
			return nil
		}
	}
	l.items = append(l.items, LineItem{
		ID:        uuid.NewString(),
		ProductID: product.ProductID,
		Name:      product.Name,
		Quantity:  1,
		UnitPrice: product.UnitPrice,
	})
	return nil
}

// RemoveItem drops the line with the given id. Removing an absent line is a
// no-op, so the call is idempotent.
func (l *Ledger) RemoveItem(lineItemID string) {
	for i := range l.items {
		if l.items[i].ID == lineItemID {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return
		}
	}
}

// SetQuantity replaces the quantity of an existing line. Quantities below one
// are rejected; callers wanting removal must call RemoveItem explicitly.
// A failed call leaves the ledger untouched.
func (l *Ledger) SetQuantity(lineItemID string, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	for i := range l.items {
		if l.items[i].ID == lineItemID {
			l.items[i].Quantity = quantity
			return nil
		}
	}
	return ErrLineItemNotFound
}

// Total recomputes the order value from the current lines on every call.
func (l *Ledger) Total() float64 {
	var total float64
	for _, item := range l.items {
		total += item.Subtotal()
	}
	return total
}

// Items returns a copy of the lines in insertion order.
func (l *Ledger) Items() []LineItem {
	return append([]LineItem{}, l.items...)
}

// Len reports the number of distinct lines.
func (l *Ledger) Len() int {
	return len(l.items)
}
