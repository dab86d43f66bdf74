package ports

import (
	"context"
	"errors"

	"github.com/florenda/florenda-api/internal/domains/catalog/domain"
)

var ErrNotFound = errors.New("product not found")

// ListFilter narrows product listings. Zero values match everything;
// Search does a case-insensitive substring match on name and category.
type ListFilter struct {
	Category string
	Status   domain.Status
	Search   string
}

// Repository persists catalog products.
type Repository interface {
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]*domain.Product, error)
}
