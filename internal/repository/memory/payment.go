package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/palmbay/resort/api/internal/model"
)

// PaymentStore is an in-memory payment repository
type PaymentStore struct {
	mu       sync.RWMutex
	payments map[string]*model.Payment
}

// NewPaymentStore creates an empty payment store
func NewPaymentStore() *PaymentStore {
	return &PaymentStore{payments: make(map[string]*model.Payment)}
}

func (s *PaymentStore) Create(ctx context.Context, p *model.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	s.payments[p.ID] = clone(p)
	return nil
}

func (s *PaymentStore) GetByID(ctx context.Context, id string) (*model.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.payments[id]), nil
}

func (s *PaymentStore) List(ctx context.Context, filter model.PaymentFilter) ([]*model.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*model.Payment
	for _, p := range s.payments {
		if filter.Status != nil && p.Status != *filter.Status {
			continue
		}
		if filter.Method != nil && p.Method != *filter.Method {
			continue
		}
		key := p.CreatedAt.UTC().Format(model.DateKeyLayout)
		if filter.StartDate != "" && key < filter.StartDate {
			continue
		}
		if filter.EndDate != "" && key > filter.EndDate {
			continue
		}
		out = append(out, clone(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	if filter.Offset >= len(out) {
		return nil, nil
	}
	out = out[filter.Offset:]
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (s *PaymentStore) ListByReference(ctx context.Context, ref model.PaymentReference) ([]*model.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*model.Payment
	for _, p := range s.payments {
		if p.Reference == ref {
			out = append(out, clone(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *PaymentStore) ListBetween(ctx context.Context, startDate, endDate string) ([]*model.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// An empty bound leaves that side of the window open.
	var out []*model.Payment
	for _, p := range s.payments {
		key := p.CreatedAt.UTC().Format(model.DateKeyLayout)
		if startDate != "" && key < startDate {
			continue
		}
		if endDate != "" && key > endDate {
			continue
		}
		out = append(out, clone(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *PaymentStore) Update(ctx context.Context, id string, updates map[string]interface{}) (*model.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.payments[id]
	if !ok {
		return nil, ErrMissing
	}
	updated, err := applyUpdates(p, updates)
	if err != nil {
		return nil, err
	}
	updated.UpdatedAt = time.Now().UTC()
	s.payments[id] = updated
	return clone(updated), nil
}
