package domain

import (
	"errors"
	"strings"
	"time"
)

// Type distinguishes private and business customers.
type Type string

const (
	TypeIndividual Type = "individual"
	TypeCompany    Type = "company"
)

// Status marks whether a customer is still doing business with the shop.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

var (
	ErrEmptyName        = errors.New("customer name is required")
	ErrInvalidType      = errors.New("customer type is invalid")
	ErrInvalidEmail     = errors.New("email must contain '@'")
	ErrEmptyCompanyName = errors.New("company name is required for company customers")
	ErrInvalidStatus    = errors.New("customer status is invalid")
	ErrNegativeOrder    = errors.New("order total must be greater or equal to zero")
)

// Customer is a shop client record with lifetime purchase counters.
type Customer struct {
	ID          string
	Type        Type
	Name        string
	Email       string
	Phone       string
	Address     string
	CompanyName string
	TaxID       string
	Tags        []string
	Notes       string
	CreatedAt   time.Time
	TotalOrders int
	TotalSpent  float64
	Status      Status
}

// NewCustomer validates invariants and builds a customer.
func NewCustomer(id, name string, customerType Type) (*Customer, error) {
	c := &Customer{ID: id, Type: customerType, Status: StatusActive, CreatedAt: time.Now()}
	if err := c.Rename(name); err != nil {
		return nil, err
	}
	switch customerType {
	case TypeIndividual, TypeCompany:
	default:
		return nil, ErrInvalidType
	}
	return c, nil
}

// Rename trims and validates the display name.
func (c *Customer) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	c.Name = name
	return nil
}

// UpdateContact applies optional contact fields and validates email if present.
func (c *Customer) UpdateContact(email, phone, address string) error {
	email = strings.TrimSpace(email)
	if email != "" && !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	c.Email = email
	c.Phone = strings.TrimSpace(phone)
	c.Address = strings.TrimSpace(address)
	return nil
}

// SetCompany records company billing details and flips the type.
func (c *Customer) SetCompany(companyName, taxID string) error {
	companyName = strings.TrimSpace(companyName)
	if companyName == "" {
		return ErrEmptyCompanyName
	}
	c.Type = TypeCompany
	c.CompanyName = companyName
	c.TaxID = strings.TrimSpace(taxID)
	return nil
}

// UpdateStatus accepts only known values and defaults to active.
func (c *Customer) UpdateStatus(status Status) error {
	if status == "" {
		status = StatusActive
	}
	switch status {
	case StatusActive, StatusInactive:
		c.Status = status
		return nil
	default:
		return ErrInvalidStatus
	}
}

// ReplaceTags swaps the current tag set.
func (c *Customer) ReplaceTags(tags []string) {
	c.Tags = append([]string{}, tags...)
}

// RecordOrder bumps the lifetime purchase counters.
func (c *Customer) RecordOrder(total float64) error {
	if total < 0 {
		return ErrNegativeOrder
	}
	c.TotalOrders++
	c.TotalSpent += total
	return nil
}

// Validate re-applies core invariants for persistence.
func (c *Customer) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	switch c.Type {
	case TypeIndividual:
	case TypeCompany:
		if strings.TrimSpace(c.CompanyName) == "" {
			return ErrEmptyCompanyName
		}
	default:
		return ErrInvalidType
	}
	switch c.Status {
	case StatusActive, StatusInactive:
	default:
		return ErrInvalidStatus
	}
	if err := c.UpdateContact(c.Email, c.Phone, c.Address); err != nil {
		return err
	}
	return nil
}
