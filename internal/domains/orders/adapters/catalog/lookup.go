package catalog

import (
	"context"
	"errors"

	catalogdomain "github.com/florenda/florenda-api/internal/domains/catalog/domain"
	catalogports "github.com/florenda/florenda-api/internal/domains/catalog/ports"
	orderdomain "github.com/florenda/florenda-api/internal/domains/orders/domain"
	orderports "github.com/florenda/florenda-api/internal/domains/orders/ports"
)

var _ orderports.CatalogLookup = (*Lookup)(nil)

// Lookup resolves order product references against the catalog context.
// Inactive products are treated as unknown so they cannot be ordered.
type Lookup struct {
	products catalogports.Service
}

func NewLookup(products catalogports.Service) *Lookup {
	return &Lookup{products: products}
}

func (l *Lookup) Lookup(ctx context.Context, productID string) (orderdomain.CatalogItem, error) {
	if l == nil || l.products == nil {
		return orderdomain.CatalogItem{}, errors.New("catalog lookup not configured")
	}
	view, err := l.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, catalogports.ErrNotFound) {
			return orderdomain.CatalogItem{}, orderports.ErrUnknownProduct
		}
		return orderdomain.CatalogItem{}, err
	}
	if view.Product.Status != catalogdomain.StatusActive {
		return orderdomain.CatalogItem{}, orderports.ErrUnknownProduct
	}
	return orderdomain.CatalogItem{
		ProductID: view.Product.ID,
		Name:      view.Product.Name,
		UnitPrice: view.Product.Price,
	}, nil
}
