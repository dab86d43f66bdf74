package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/florenda/florenda-api/internal/domains/inventory/domain"
	"github.com/florenda/florenda-api/internal/domains/inventory/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory inventory persistence adapter.
type Repository struct {
	mu        sync.RWMutex
	items     map[string]*domain.Item
	movements map[string][]*domain.Movement
}

func NewRepository() *Repository {
	return &Repository{
		items:     map[string]*domain.Item{},
		movements: map[string][]*domain.Movement{},
	}
}

func (r *Repository) Save(_ context.Context, item *domain.Item) (*domain.Item, error) {
	if item == nil {
		return nil, errors.New("item is nil")
	}
	clone := *item
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *item
	return &clone, nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.items, id)
	delete(r.movements, id)
	return nil
}

func (r *Repository) List(_ context.Context, filter ports.ListFilter) ([]*domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Item, 0, len(r.items))
	for _, item := range r.items {
		if !matches(item, filter) {
			continue
		}
		clone := *item
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *Repository) AppendMovement(_ context.Context, movement *domain.Movement) error {
	if movement == nil {
		return errors.New("movement is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *movement
	r.movements[movement.ItemID] = append(r.movements[movement.ItemID], &clone)
	return nil
}

func (r *Repository) Movements(_ context.Context, itemID string) ([]*domain.Movement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	history := r.movements[itemID]
	list := make([]*domain.Movement, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		clone := *history[i]
		list = append(list, &clone)
	}
	return list, nil
}

func matches(item *domain.Item, filter ports.ListFilter) bool {
	if filter.Category != "" && item.Category != filter.Category {
		return false
	}
	if filter.Status != "" && item.Status() != filter.Status {
		return false
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(item.Name), needle) &&
			!strings.Contains(strings.ToLower(item.SKU), needle) &&
			!strings.Contains(strings.ToLower(item.Category), needle) {
			return false
		}
	}
	return true
}
