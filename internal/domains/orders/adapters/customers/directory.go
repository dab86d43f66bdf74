package customers

import (
	"context"
	"errors"

	customerports "github.com/florenda/florenda-api/internal/domains/customers/ports"
	orderports "github.com/florenda/florenda-api/internal/domains/orders/ports"
)

var _ orderports.CustomerDirectory = (*Directory)(nil)

// Directory settles placed orders against the customers context.
type Directory struct {
	customers customerports.Service
}

func NewDirectory(customers customerports.Service) *Directory {
	return &Directory{customers: customers}
}

func (d *Directory) RecordOrder(ctx context.Context, customerID string, total float64) error {
	if d == nil || d.customers == nil {
		return errors.New("customer directory not configured")
	}
	return d.customers.RecordOrder(ctx, customerID, total)
}
