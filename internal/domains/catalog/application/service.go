package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/florenda/florenda-api/internal/domains/catalog/domain"
	"github.com/florenda/florenda-api/internal/domains/catalog/ports"
	invdomain "github.com/florenda/florenda-api/internal/domains/inventory/domain"
)

// Service orchestrates catalog use cases.
type Service struct {
	repo ports.Repository
}

// NewService wires the catalog service with its repository.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// Create persists a new product.
func (s *Service) Create(ctx context.Context, input ports.ProductMutation) (*ports.ProductView, error) {
	if input.Name == nil {
		return nil, mapError(domain.ErrEmptyName)
	}
	var price float64
	if input.Price != nil {
		price = *input.Price
	}
	product, err := domain.NewProduct(uuid.NewString(), *input.Name, price)
	if err != nil {
		return nil, mapError(err)
	}
	partial := input
	partial.Name = nil
	partial.Price = nil
	if err := applyMutation(product, partial); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, product)
	if err != nil {
		return nil, err
	}
	return view(saved), nil
}

// Update applies a partial mutation to an existing product.
func (s *Service) Update(ctx context.Context, id string, input ports.ProductMutation) (*ports.ProductView, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyMutation(product, input); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, product)
	if err != nil {
		return nil, err
	}
	return view(saved), nil
}

// GetByID loads a single product with its derived stock status.
func (s *Service) GetByID(ctx context.Context, id string) (*ports.ProductView, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return view(product), nil
}

// List returns products matching the filter, each with its stock status.
func (s *Service) List(ctx context.Context, filter ports.ListFilter) ([]*ports.ProductView, error) {
	products, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	views := make([]*ports.ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, view(p))
	}
	return views, nil
}

// Delete removes a product.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func view(product *domain.Product) *ports.ProductView {
	return &ports.ProductView{
		Product:     product,
		StockStatus: invdomain.ClassifyStock(product.Stock, product.MinimumStock),
	}
}

func applyMutation(target *domain.Product, input ports.ProductMutation) error {
	if input.Name != nil {
		if err := target.Rename(*input.Name); err != nil {
			return err
		}
	}
	if input.Description != nil {
		target.Description = *input.Description
	}
	if input.Price != nil {
		if err := target.SetPrice(*input.Price); err != nil {
			return err
		}
	}
	if input.Status != nil {
		if err := target.UpdateStatus(*input.Status); err != nil {
			return err
		}
	}
	if input.Stock != nil || input.MinimumStock != nil {
		stock := target.Stock
		minimum := target.MinimumStock
		if input.Stock != nil {
			stock = *input.Stock
		}
		if input.MinimumStock != nil {
			minimum = *input.MinimumStock
		}
		if err := target.SetStock(stock, minimum); err != nil {
			return err
		}
	}
	if input.ImageURL != nil {
		target.ImageURL = *input.ImageURL
	}
	if input.Category != nil {
		target.Category = *input.Category
	}
	if input.Components != nil {
		components := make([]domain.Component, 0, len(*input.Components))
		for _, c := range *input.Components {
			components = append(components, domain.Component{
				ID:       uuid.NewString(),
				Name:     c.Name,
				Quantity: c.Quantity,
				Unit:     c.Unit,
				Price:    c.Price,
			})
		}
		if err := target.ReplaceComponents(components); err != nil {
			return err
		}
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
