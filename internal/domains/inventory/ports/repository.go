package ports

import (
	"context"
	"errors"

	"github.com/florenda/florenda-api/internal/domains/inventory/domain"
)

var ErrNotFound = errors.New("inventory item not found")

// ListFilter narrows item listings. Status filters on the derived
// classification; Search matches name, SKU, and category.
type ListFilter struct {
	Category string
	Status   domain.StockStatus
	Search   string
}

// Repository persists inventory items and their movement history.
type Repository interface {
	Save(ctx context.Context, item *domain.Item) (*domain.Item, error)
	GetByID(ctx context.Context, id string) (*domain.Item, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]*domain.Item, error)
	AppendMovement(ctx context.Context, movement *domain.Movement) error
	Movements(ctx context.Context, itemID string) ([]*domain.Movement, error)
}
