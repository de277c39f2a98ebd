package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/palmbay/resort/api/internal/model"
)

// SnackStore is an in-memory snack catalog and order repository
type SnackStore struct {
	mu     sync.RWMutex
	items  map[string]*model.SnackItem
	orders map[string]*model.SnackOrder
}

// NewSnackStore creates an empty snack store
func NewSnackStore() *SnackStore {
	return &SnackStore{
		items:  make(map[string]*model.SnackItem),
		orders: make(map[string]*model.SnackOrder),
	}
}

func (s *SnackStore) CreateItem(ctx context.Context, item *model.SnackItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.items {
		if existing.Code == item.Code {
			return model.NewConflictError(model.CodeDuplicateCode,
				fmt.Sprintf("item code %q already exists", item.Code))
		}
	}

	now := time.Now().UTC()
	item.CreatedAt, item.UpdatedAt = now, now
	s.items[item.ID] = clone(item)
	return nil
}

func (s *SnackStore) GetItem(ctx context.Context, id string) (*model.SnackItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.items[id]), nil
}

func (s *SnackStore) GetItemByCode(ctx context.Context, code string) (*model.SnackItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.items {
		if item.Code == code {
			return clone(item), nil
		}
	}
	return nil, nil
}

func (s *SnackStore) ListItems(ctx context.Context, category *string) ([]*model.SnackItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*model.SnackItem
	for _, item := range s.items {
		if category != nil && item.Category != *category {
			continue
		}
		out = append(out, clone(item))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (s *SnackStore) UpdateItem(ctx context.Context, id string, updates map[string]interface{}) (*model.SnackItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return nil, ErrMissing
	}
	updated, err := applyUpdates(item, updates)
	if err != nil {
		return nil, err
	}
	updated.UpdatedAt = time.Now().UTC()
	s.items[id] = updated
	return clone(updated), nil
}

func (s *SnackStore) CreateOrder(ctx context.Context, order *model.SnackOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	order.CreatedAt, order.UpdatedAt = now, now
	s.orders[order.ID] = clone(order)
	return nil
}

func (s *SnackStore) GetOrder(ctx context.Context, id string) (*model.SnackOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.orders[id]), nil
}

func (s *SnackStore) ListOrdersByGuest(ctx context.Context, guestID string) ([]*model.SnackOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*model.SnackOrder
	for _, order := range s.orders {
		if order.GuestID == guestID {
			out = append(out, clone(order))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *SnackStore) ListOrdersBetween(ctx context.Context, startDate, endDate string) ([]*model.SnackOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*model.SnackOrder
	for _, order := range s.orders {
		key := order.CreatedAt.UTC().Format(model.DateKeyLayout)
		if key >= startDate && key <= endDate {
			out = append(out, clone(order))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *SnackStore) UpdateOrder(ctx context.Context, id string, updates map[string]interface{}) (*model.SnackOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, ErrMissing
	}
	updated, err := applyUpdates(order, updates)
	if err != nil {
		return nil, err
	}
	updated.UpdatedAt = time.Now().UTC()
	s.orders[id] = updated
	return clone(updated), nil
}
