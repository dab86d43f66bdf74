package domain

import (
	"errors"
	"strings"
	"time"
)

// Status enumerates order progression in the shop workflow.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusReady      Status = "ready"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// CustomerType distinguishes retail and business orders.
type CustomerType string

const (
	CustomerIndividual CustomerType = "individual"
	CustomerCompany    CustomerType = "company"
)

var (
	ErrEmptyCustomerName   = errors.New("customer name is required")
	ErrInvalidCustomerType = errors.New("customer type is invalid")
	ErrEmptyCompanyName    = errors.New("company name is required for company orders")
	ErrNoItems             = errors.New("order must contain at least one item")
	ErrInvalidStatus       = errors.New("order status is invalid")
)

// Order models a placed purchase order. Items and Total are a snapshot of the
// ledger at placement time; the ledger itself is discarded afterwards.
type Order struct {
	ID           string
	CustomerID   string
	CustomerName string
	CustomerType CustomerType
	CompanyName  string
	TaxID        string
	PickupAt     time.Time
	Notes        string
	Tags         []string
	Items        []LineItem
	Total        float64
	Status       Status
}

// NewOrder snapshots the ledger into an order aggregate and validates it.
func NewOrder(id, customerName string, customerType CustomerType, companyName, taxID string, pickupAt time.Time, ledger *Ledger) (*Order, error) {
	order := &Order{
		ID:           id,
		CustomerName: strings.TrimSpace(customerName),
		CustomerType: customerType,
		CompanyName:  strings.TrimSpace(companyName),
		TaxID:        strings.TrimSpace(taxID),
		PickupAt:     pickupAt,
	}
	if ledger != nil {
		order.Items = ledger.Items()
		order.Total = ledger.Total()
	}
	if err := order.UpdateStatus(""); err != nil {
		return nil, err
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate enforces invariants on the aggregate.
func (o *Order) Validate() error {
	if strings.TrimSpace(o.CustomerName) == "" {
		return ErrEmptyCustomerName
	}
	switch o.CustomerType {
	case CustomerIndividual:
	case CustomerCompany:
		if strings.TrimSpace(o.CompanyName) == "" {
			return ErrEmptyCompanyName
		}
	default:
		return ErrInvalidCustomerType
	}
	if len(o.Items) == 0 {
		return ErrNoItems
	}
	if !isValidStatus(o.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// UpdateStatus accepts only known states and defaults the empty string to pending.
func (o *Order) UpdateStatus(status Status) error {
	if status == "" {
		status = StatusPending
	}
	if !isValidStatus(status) {
		return ErrInvalidStatus
	}
	o.Status = status
	return nil
}

// SetCompany records company billing details and flips the customer type.
func (o *Order) SetCompany(companyName, taxID string) error {
	companyName = strings.TrimSpace(companyName)
	if companyName == "" {
		return ErrEmptyCompanyName
	}
	o.CustomerType = CustomerCompany
	o.CompanyName = companyName
	o.TaxID = strings.TrimSpace(taxID)
	return nil
}

// ReplaceTags swaps the current tag set.
func (o *Order) ReplaceTags(tags []string) {
	o.Tags = append([]string{}, tags...)
}

func isValidStatus(status Status) bool {
	switch status {
	case StatusPending, StatusProcessing, StatusReady, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}
