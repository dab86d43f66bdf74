package ports

import (
	"context"
	"time"

	"github.com/florenda/florenda-api/internal/domains/orders/domain"
)

// OrderLine selects one catalog product with a desired quantity.
type OrderLine struct {
	ProductID string
	Quantity  int
}

// PlaceOrderInput carries everything needed to open, fill, and submit an
// order-entry session.
type PlaceOrderInput struct {
	CustomerID   string
	CustomerName string
	CustomerType domain.CustomerType
	CompanyName  string
	TaxID        string
	PickupAt     time.Time
	Notes        string
	Tags         []string
	Lines        []OrderLine
}

// UpdateStatusInput moves an order through the shop workflow.
type UpdateStatusInput struct {
	ID     string
	Status domain.Status
}

// Service exposes order use cases to adapters.
type Service interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, filter ListFilter) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, input UpdateStatusInput) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
}
