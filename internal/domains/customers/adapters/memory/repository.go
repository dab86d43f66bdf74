package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/florenda/florenda-api/internal/domains/customers/domain"
	"github.com/florenda/florenda-api/internal/domains/customers/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory customer persistence adapter.
type Repository struct {
	mu        sync.RWMutex
	customers map[string]*domain.Customer
}

func NewRepository() *Repository {
	return &Repository{customers: map[string]*domain.Customer{}}
}

func (r *Repository) Save(_ context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if customer == nil {
		return nil, errors.New("customer is nil")
	}
	clone := cloneCustomer(customer)
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.customers[clone.ID] = clone
	return cloneCustomer(clone), nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	customer, ok := r.customers[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneCustomer(customer), nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.customers[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.customers, id)
	return nil
}

func (r *Repository) List(_ context.Context, filter ports.ListFilter) ([]*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Customer, 0, len(r.customers))
	for _, customer := range r.customers {
		if filter.Type != "" && customer.Type != filter.Type {
			continue
		}
		if filter.Status != "" && customer.Status != filter.Status {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(customer.Name), needle) &&
				!strings.Contains(strings.ToLower(customer.Email), needle) &&
				!strings.Contains(strings.ToLower(customer.CompanyName), needle) {
				continue
			}
		}
		list = append(list, cloneCustomer(customer))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func cloneCustomer(customer *domain.Customer) *domain.Customer {
	clone := *customer
	clone.Tags = append([]string{}, customer.Tags...)
	return &clone
}
