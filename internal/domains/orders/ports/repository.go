package ports

import (
	"context"
	"errors"

	"github.com/florenda/florenda-api/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// ListFilter narrows order listings the way the dashboard filters do.
// Zero values match everything.
type ListFilter struct {
	Status       domain.Status
	CustomerType domain.CustomerType
}

// Repository persists order aggregates.
type Repository interface {
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]*domain.Order, error)
}
