package ports

import (
	"context"
	"errors"

	"github.com/florenda/florenda-api/internal/domains/customers/domain"
)

var ErrNotFound = errors.New("customer not found")

// ListFilter narrows customer listings. Search matches name, email, and
// company name.
type ListFilter struct {
	Type   domain.Type
	Status domain.Status
	Search string
}

// Repository persists customer records.
type Repository interface {
	Save(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]*domain.Customer, error)
}
