package ports

import (
	"context"
	"time"

	"github.com/florenda/florenda-api/internal/domains/inventory/domain"
)

// ItemView is the read shape handed to adapters: the item plus its derived
// stock status.
type ItemView struct {
	Item        *domain.Item
	StockStatus domain.StockStatus
}

// ItemMutation carries optional fields for create/update flows.
type ItemMutation struct {
	Name         *string
	Category     *string
	SKU          *string
	CurrentStock *int
	MinimumStock *int
	Unit         *domain.Unit
	Location     *string
	Supplier     *string
	UnitPrice    *float64
	Notes        *string
}

// MovementInput records one stock change against an item.
type MovementInput struct {
	ItemID      string
	Type        domain.MovementType
	Quantity    int
	OccurredAt  time.Time
	Notes       string
	PerformedBy string
}

// Service exposes inventory use cases to adapters.
type Service interface {
	CreateItem(ctx context.Context, input ItemMutation) (*ItemView, error)
	UpdateItem(ctx context.Context, id string, input ItemMutation) (*ItemView, error)
	GetByID(ctx context.Context, id string) (*ItemView, error)
	List(ctx context.Context, filter ListFilter) ([]*ItemView, error)
	Delete(ctx context.Context, id string) error
	RecordMovement(ctx context.Context, input MovementInput) (*ItemView, error)
	Movements(ctx context.Context, itemID string) ([]*domain.Movement, error)
	LowStock(ctx context.Context) ([]*ItemView, error)
}
