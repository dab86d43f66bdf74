package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/florenda/florenda-api/internal/domains/inventory/domain"
	"github.com/florenda/florenda-api/internal/domains/inventory/ports"
)

// Service orchestrates inventory use cases.
type Service struct {
	repo ports.Repository
}

// NewService wires the inventory service with its repository.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// CreateItem persists a new inventory item.
func (s *Service) CreateItem(ctx context.Context, input ports.ItemMutation) (*ports.ItemView, error) {
	if input.Name == nil {
		return nil, mapError(domain.ErrEmptyName)
	}
	if input.SKU == nil {
		return nil, mapError(domain.ErrEmptySKU)
	}
	unit := domain.UnitPiece
	if input.Unit != nil {
		unit = *input.Unit
	}
	var current, minimum int
	if input.CurrentStock != nil {
		current = *input.CurrentStock
	}
	if input.MinimumStock != nil {
		minimum = *input.MinimumStock
	}
	item, err := domain.NewItem(uuid.NewString(), *input.Name, *input.SKU, unit, current, minimum)
	if err != nil {
		return nil, mapError(err)
	}
	partial := input
	partial.Name = nil
	partial.SKU = nil
	partial.Unit = nil
	partial.CurrentStock = nil
	partial.MinimumStock = nil
	if err := applyMutation(item, partial); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, item)
	if err != nil {
		return nil, err
	}
	return view(saved), nil
}

// UpdateItem applies a partial mutation to an existing item.
func (s *Service) UpdateItem(ctx context.Context, id string, input ports.ItemMutation) (*ports.ItemView, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyMutation(item, input); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, item)
	if err != nil {
		return nil, err
	}
	return view(saved), nil
}

// GetByID loads a single item with its derived stock status.
func (s *Service) GetByID(ctx context.Context, id string) (*ports.ItemView, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return view(item), nil
}

// List returns items matching the filter, each classified.
func (s *Service) List(ctx context.Context, filter ports.ListFilter) ([]*ports.ItemView, error) {
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	views := make([]*ports.ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, view(item))
	}
	return views, nil
}

// Delete removes an item.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// RecordMovement applies a stock change to an item and appends it to the
// movement history. The history entry is written first so a failed item save
// never leaves a stock change without a trace; a failed apply changes nothing.
func (s *Service) RecordMovement(ctx context.Context, input ports.MovementInput) (*ports.ItemView, error) {
	item, err := s.repo.GetByID(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}
	occurredAt := input.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}
	movement := domain.Movement{
		ID:          uuid.NewString(),
		ItemID:      input.ItemID,
		Type:        input.Type,
		Quantity:    input.Quantity,
		OccurredAt:  occurredAt,
		Notes:       input.Notes,
		PerformedBy: input.PerformedBy,
	}
	if err := item.Apply(movement); err != nil {
		return nil, mapError(err)
	}
	if err := s.repo.AppendMovement(ctx, &movement); err != nil {
		return nil, err
	}
	saved, err := s.repo.Save(ctx, item)
	if err != nil {
		return nil, err
	}
	return view(saved), nil
}

// Movements returns the movement history of an item, newest first.
func (s *Service) Movements(ctx context.Context, itemID string) ([]*domain.Movement, error) {
	if _, err := s.repo.GetByID(ctx, itemID); err != nil {
		return nil, err
	}
	return s.repo.Movements(ctx, itemID)
}

// LowStock reports every item whose derived status is not in_stock.
func (s *Service) LowStock(ctx context.Context) ([]*ports.ItemView, error) {
	items, err := s.repo.List(ctx, ports.ListFilter{})
	if err != nil {
		return nil, err
	}
	var views []*ports.ItemView
	for _, item := range items {
		if item.Status() == domain.StockInStock {
			continue
		}
		views = append(views, view(item))
	}
	return views, nil
}

func view(item *domain.Item) *ports.ItemView {
	return &ports.ItemView{Item: item, StockStatus: item.Status()}
}

func applyMutation(target *domain.Item, input ports.ItemMutation) error {
	if input.Name != nil {
		if err := target.Rename(*input.Name); err != nil {
			return err
		}
	}
	if input.Category != nil {
		target.Category = *input.Category
	}
	if input.SKU != nil {
		if err := target.SetSKU(*input.SKU); err != nil {
			return err
		}
	}
	if input.CurrentStock != nil {
		target.CurrentStock = *input.CurrentStock
	}
	if input.MinimumStock != nil {
		target.MinimumStock = *input.MinimumStock
	}
	if input.Unit != nil {
		target.Unit = *input.Unit
	}
	if input.Location != nil {
		target.Location = *input.Location
	}
	if input.Supplier != nil {
		target.Supplier = *input.Supplier
	}
	if input.UnitPrice != nil {
		if err := target.SetPrice(*input.UnitPrice); err != nil {
			return err
		}
	}
	if input.Notes != nil {
		target.Notes = *input.Notes
	}
	return target.Validate()
}

var _ ports.Service = (*Service)(nil)
