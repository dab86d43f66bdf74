package ports

import (
	"context"
	"errors"

	"github.com/florenda/florenda-api/internal/domains/orders/domain"
)

var ErrUnknownProduct = errors.New("product not found in catalog")

// CatalogLookup resolves product references into the shape the ledger
// consumes. Implemented by the catalog bounded context.
type CatalogLookup interface {
	Lookup(ctx context.Context, productID string) (domain.CatalogItem, error)
}

// CustomerDirectory records a completed sale against a customer profile.
// Implemented by the customers bounded context.
type CustomerDirectory interface {
	RecordOrder(ctx context.Context, customerID string, total float64) error
}

// NoopCustomerDirectory is a safe default when orders are not linked to
// customer profiles.
var NoopCustomerDirectory CustomerDirectory = noopCustomerDirectory{}

type noopCustomerDirectory struct{}

func (noopCustomerDirectory) RecordOrder(context.Context, string, float64) error { return nil }
