package ports

import (
	"context"

	"github.com/florenda/florenda-api/internal/domains/catalog/domain"
	invdomain "github.com/florenda/florenda-api/internal/domains/inventory/domain"
)

// ProductView is the read shape handed to adapters: the product plus its
// derived stock status, which is never stored.
type ProductView struct {
	Product     *domain.Product
	StockStatus invdomain.StockStatus
}

// ComponentInput describes one sub-product line on a mutation.
type ComponentInput struct {
	Name     string
	Quantity int
	Unit     domain.ComponentUnit
	Price    float64
}

// ProductMutation carries optional fields for create/update flows.
// Nil pointers leave the existing value untouched on updates.
type ProductMutation struct {
	Name         *string
	Description  *string
	Price        *float64
	Status       *domain.Status
	Stock        *int
	MinimumStock *int
	ImageURL     *string
	Category     *string
	Components   *[]ComponentInput
}

// Service exposes catalog use cases to adapters.
type Service interface {
	Create(ctx context.Context, input ProductMutation) (*ProductView, error)
	Update(ctx context.Context, id string, input ProductMutation) (*ProductView, error)
	GetByID(ctx context.Context, id string) (*ProductView, error)
	List(ctx context.Context, filter ListFilter) ([]*ProductView, error)
	Delete(ctx context.Context, id string) error
}
