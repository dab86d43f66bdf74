package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/florenda/florenda-api/internal/domains/orders/domain"
	"github.com/florenda/florenda-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order persistence adapter. Each order carries an
// insertion sequence so List can return newest first, matching the database
// adapter.
type Repository struct {
	mu      sync.RWMutex
	orders  map[string]*domain.Order
	seq     map[string]uint64
	nextSeq uint64
}

func NewRepository() *Repository {
	return &Repository{
		orders: map[string]*domain.Order{},
		seq:    map[string]uint64{},
	}
}

func (r *Repository) Save(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	clone := cloneOrder(order)
	if err := clone.UpdateStatus(clone.Status); err != nil {
		return nil, err
	}
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.seq[clone.ID]; !ok {
		r.nextSeq++
		r.seq[clone.ID] = r.nextSeq
	}
	r.orders[clone.ID] = clone
	return cloneOrder(clone), nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneOrder(order), nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.orders, id)
	delete(r.seq, id)
	return nil
}

func (r *Repository) List(_ context.Context, filter ports.ListFilter) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		if filter.Status != "" && order.Status != filter.Status {
			continue
		}
		if filter.CustomerType != "" && order.CustomerType != filter.CustomerType {
			continue
		}
		list = append(list, cloneOrder(order))
	}
	sort.Slice(list, func(i, j int) bool {
		return r.seq[list[i].ID] > r.seq[list[j].ID]
	})
	return list, nil
}

func cloneOrder(order *domain.Order) *domain.Order {
	clone := *order
	clone.Items = append([]domain.LineItem{}, order.Items...)
	clone.Tags = append([]string{}, order.Tags...)
	return &clone
}
