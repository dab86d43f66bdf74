package application

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/florenda/florenda-api/internal/domains/orders/domain"
	"github.com/florenda/florenda-api/internal/domains/orders/ports"
)

// Service orchestrates order use cases: it runs the order-entry session
// against the ledger, snapshots the result into an aggregate, and persists it.
type Service struct {
	repo      ports.Repository
	catalog   ports.CatalogLookup
	customers ports.CustomerDirectory
}

// NewService wires the orders service with its collaborators.
func NewService(repo ports.Repository, catalog ports.CatalogLookup, customers ports.CustomerDirectory) *Service {
	if customers == nil {
		customers = ports.NoopCustomerDirectory
	}
	return &Service{repo: repo, catalog: catalog, customers: customers}
}

// PlaceOrder resolves the requested lines through the catalog, fills a fresh
// ledger, and persists the snapshotted order. When the order references a
// customer profile, the sale is recorded against it.
func (s *Service) PlaceOrder(ctx context.Context, input ports.PlaceOrderInput) (*domain.Order, error) {
	ledger := domain.NewLedger()
	for _, line := range input.Lines {
		if line.Quantity < 1 {
			return nil, mapError(domain.ErrInvalidQuantity)
		}
		product, err := s.catalog.Lookup(ctx, line.ProductID)
		if err != nil {
			return nil, mapError(err)
		}
		if err := ledger.AddItem(product); err != nil {
			return nil, mapError(err)
		}
		if line.Quantity > 1 {
			for _, item := range ledger.Items() {
				if item.ProductID == line.ProductID {
					if err := ledger.SetQuantity(item.ID, item.Quantity+line.Quantity-1); err != nil {
						return nil, mapError(err)
					}
					break
				}
			}
		}
	}

	order, err := domain.NewOrder(uuid.NewString(), input.CustomerName, input.CustomerType, input.CompanyName, input.TaxID, input.PickupAt, ledger)
	if err != nil {
		return nil, mapError(err)
	}
	order.CustomerID = strings.TrimSpace(input.CustomerID)
	order.Notes = strings.TrimSpace(input.Notes)
	order.ReplaceTags(input.Tags)

	saved, err := s.repo.Save(ctx, order)
	if err != nil {
		return nil, err
	}
	if saved.CustomerID != "" {
		if err := s.customers.RecordOrder(ctx, saved.CustomerID, saved.Total); err != nil {
			return nil, err
		}
	}
	return saved, nil
}

// GetByID loads a single order.
func (s *Service) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns orders matching the dashboard filter.
func (s *Service) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Order, error) {
	return s.repo.List(ctx, filter)
}

// UpdateStatus moves an order through the shop workflow.
func (s *Service) UpdateStatus(ctx context.Context, input ports.UpdateStatusInput) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if err := order.UpdateStatus(input.Status); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Save(ctx, order)
}

// Delete removes an order.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

var _ ports.Service = (*Service)(nil)
