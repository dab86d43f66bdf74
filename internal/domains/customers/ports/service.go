package ports

import (
	"context"

	"github.com/florenda/florenda-api/internal/domains/customers/domain"
)

// CustomerMutation carries optional fields for create/update flows.
type CustomerMutation struct {
	Type        *domain.Type
	Name        *string
	Email       *string
	Phone       *string
	Address     *string
	CompanyName *string
	TaxID       *string
	Tags        *[]string
	Notes       *string
	Status      *domain.Status
}

// Service exposes customer use cases to adapters.
type Service interface {
	Create(ctx context.Context, input CustomerMutation) (*domain.Customer, error)
	Update(ctx context.Context, id string, input CustomerMutation) (*domain.Customer, error)
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	List(ctx context.Context, filter ListFilter) ([]*domain.Customer, error)
	Delete(ctx context.Context, id string) error
	RecordOrder(ctx context.Context, id string, total float64) error
}
