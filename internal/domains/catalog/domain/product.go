package domain

import (
	"errors"
	"strings"
)

// Status is the catalog lifecycle state, independent of stock counts.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// ComponentUnit enumerates units used for product components.
type ComponentUnit string

const (
	ComponentPiece      ComponentUnit = "szt"
	ComponentCentimeter ComponentUnit = "cm"
	ComponentMeter      ComponentUnit = "m"
)

var (
	ErrEmptyName        = errors.New("product name is required")
	ErrNegativePrice    = errors.New("product price must be greater or equal to zero")
	ErrNegativeStock    = errors.New("product stock must be greater or equal to zero")
	ErrInvalidStatus    = errors.New("product status is invalid")
	ErrInvalidComponent = errors.New("product component must have a name and positive quantity")
)

// Component is a sub-product a composed product is built from, e.g. the
// single stems inside a bouquet.
type Component struct {
	ID       string
	Name     string
	Quantity int
	Unit     ComponentUnit
	Price    float64
}

// Product is a sellable catalog entry.
type Product struct {
	ID           string
	Name         string
	Description  string
	Price        float64
	Status       Status
	Stock        int
	MinimumStock int
	ImageURL     string
	Category     string
	Components   []Component
}

// NewProduct validates invariants and builds a product.
func NewProduct(id, name string, price float64) (*Product, error) {
	p := &Product{ID: id, Status: StatusActive}
	if err := p.Rename(name); err != nil {
		return nil, err
	}
	if err := p.SetPrice(price); err != nil {
		return nil, err
	}
	return p, nil
}

// Rename trims and validates the product name.
func (p *Product) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	p.Name = name
	return nil
}

// SetPrice validates the retail price.
func (p *Product) SetPrice(price float64) error {
	if price < 0 {
		return ErrNegativePrice
	}
	p.Price = price
	return nil
}

// SetStock updates counts used for the derived stock status.
func (p *Product) SetStock(stock, minimum int) error {
	if stock < 0 || minimum < 0 {
		return ErrNegativeStock
	}
	p.Stock = stock
	p.MinimumStock = minimum
	return nil
}

// UpdateStatus accepts only known lifecycle values and defaults to active.
func (p *Product) UpdateStatus(status Status) error {
	if status == "" {
		status = StatusActive
	}
	switch status {
	case StatusActive, StatusInactive:
		p.Status = status
		return nil
	default:
		return ErrInvalidStatus
	}
}

// ReplaceComponents swaps the component list after validating each entry.
func (p *Product) ReplaceComponents(components []Component) error {
	for _, c := range components {
		if strings.TrimSpace(c.Name) == "" || c.Quantity <= 0 {
			return ErrInvalidComponent
		}
	}
	p.Components = append([]Component{}, components...)
	return nil
}

// Validate re-applies core invariants for persistence.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if p.Price < 0 {
		return ErrNegativePrice
	}
	if p.Stock < 0 || p.MinimumStock < 0 {
		return ErrNegativeStock
	}
	switch p.Status {
	case StatusActive, StatusInactive:
	default:
		return ErrInvalidStatus
	}
	return nil
}
