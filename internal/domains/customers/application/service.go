package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/florenda/florenda-api/internal/domains/customers/domain"
	"github.com/florenda/florenda-api/internal/domains/customers/ports"
)

// Service orchestrates customer use cases.
type Service struct {
	repo ports.Repository
}

// NewService wires the customers service with its repository.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// Create persists a new customer.
func (s *Service) Create(ctx context.Context, input ports.CustomerMutation) (*domain.Customer, error) {
	if input.Name == nil {
		return nil, mapError(domain.ErrEmptyName)
	}
	customerType := domain.TypeIndividual
	if input.Type != nil {
		customerType = *input.Type
	}
	customer, err := domain.NewCustomer(uuid.NewString(), *input.Name, customerType)
	if err != nil {
		return nil, mapError(err)
	}
	partial := input
	partial.Name = nil
	partial.Type = nil
	if err := applyMutation(customer, partial); err != nil {
		return nil, mapError(err)
	}
	if err := customer.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Save(ctx, customer)
}

// Update applies a partial mutation to an existing customer.
func (s *Service) Update(ctx context.Context, id string, input ports.CustomerMutation) (*domain.Customer, error) {
	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Type != nil {
		customer.Type = *input.Type
	}
	if err := applyMutation(customer, input); err != nil {
		return nil, mapError(err)
	}
	if err := customer.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Save(ctx, customer)
}

// GetByID loads a single customer.
func (s *Service) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns customers matching the dashboard filter.
func (s *Service) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Customer, error) {
	return s.repo.List(ctx, filter)
}

// Delete removes a customer.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// RecordOrder bumps the lifetime purchase counters of a customer.
func (s *Service) RecordOrder(ctx context.Context, id string, total float64) error {
	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := customer.RecordOrder(total); err != nil {
		return mapError(err)
	}
	_, err = s.repo.Save(ctx, customer)
	return err
}

func applyMutation(target *domain.Customer, input ports.CustomerMutation) error {
	if input.Name != nil {
		if err := target.Rename(*input.Name); err != nil {
			return err
		}
	}
	if input.Email != nil || input.Phone != nil || input.Address != nil {
		email, phone, address := target.Email, target.Phone, target.Address
		if input.Email != nil {
			email = *input.Email
		}
		if input.Phone != nil {
			phone = *input.Phone
		}
		if input.Address != nil {
			address = *input.Address
		}
		if err := target.UpdateContact(email, phone, address); err != nil {
			return err
		}
	}
	if input.CompanyName != nil {
		taxID := target.TaxID
		if input.TaxID != nil {
			taxID = *input.TaxID
		}
		if err := target.SetCompany(*input.CompanyName, taxID); err != nil {
			return err
		}
	} else if input.TaxID != nil {
		target.TaxID = *input.TaxID
	}
	if input.Tags != nil {
		target.ReplaceTags(*input.Tags)
	}
	if input.Notes != nil {
		target.Notes = *input.Notes
	}
	if input.Status != nil {
		if err := target.UpdateStatus(*input.Status); err != nil {
			return err
		}
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
