package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/palmbay/resort/api/internal/model"
)

// PoolStore is an in-memory pool and ticket repository
type PoolStore struct {
	mu      sync.RWMutex
	pools   map[string]*model.Pool
	tickets map[string]*model.PoolTicket
}

// NewPoolStore creates an empty pool store
func NewPoolStore() *PoolStore {
	return &PoolStore{
		pools:   make(map[string]*model.Pool),
		tickets: make(map[string]*model.PoolTicket),
	}
}

func (s *PoolStore) CreatePool(ctx context.Context, pool *model.Pool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	pool.CreatedAt, pool.UpdatedAt = now, now
	s.pools[pool.ID] = clone(pool)
	return nil
}

func (s *PoolStore) GetPool(ctx context.Context, id string) (*model.Pool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.pools[id]), nil
}

func (s *PoolStore) ListPools(ctx context.Context) ([]*model.Pool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*model.Pool
	for _, pool := range s.pools {
		out = append(out, clone(pool))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *PoolStore) CreateTicket(ctx context.Context, ticket *model.PoolTicket) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Same capacity re-check the SurrealDB repository performs inside its
	// guarded transaction.
	if pool, ok := s.pools[ticket.PoolID]; ok {
		booked := 0
		for _, existing := range s.tickets {
			if existing.PoolID == ticket.PoolID && existing.Date == ticket.Date && existing.ConsumesCapacity() {
				booked += existing.Headcount()
			}
		}
		if booked+ticket.Headcount() > pool.Capacity {
			return model.NewCapacityError(ticket.Headcount(), booked, pool.Capacity)
		}
	}

	now := time.Now().UTC()
	ticket.CreatedAt, ticket.UpdatedAt = now, now
	s.tickets[ticket.ID] = clone(ticket)
	return nil
}

func (s *PoolStore) GetTicket(ctx context.Context, id string) (*model.PoolTicket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.tickets[id]), nil
}

func (s *PoolStore) ListTicketsForDate(ctx context.Context, poolID, date string) ([]*model.PoolTicket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*model.PoolTicket
	for _, ticket := range s.tickets {
		if ticket.PoolID == poolID && ticket.Date == date {
			out = append(out, clone(ticket))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *PoolStore) ListTicketsByGuest(ctx context.Context, guestID string) ([]*model.PoolTicket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*model.PoolTicket
	for _, ticket := range s.tickets {
		if ticket.GuestID == guestID {
			out = append(out, clone(ticket))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (s *PoolStore) UpdateTicket(ctx context.Context, id string, updates map[string]interface{}) (*model.PoolTicket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, ok := s.tickets[id]
	if !ok {
		return nil, ErrMissing
	}
	updated, err := applyUpdates(ticket, updates)
	if err != nil {
		return nil, err
	}
	updated.UpdatedAt = time.Now().UTC()
	s.tickets[id] = updated
	return clone(updated), nil
}

func (s *PoolStore) ListIssuedBefore(ctx context.Context, date string) ([]*model.PoolTicket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*model.PoolTicket
	for _, ticket := range s.tickets {
		if ticket.Status == model.TicketStatusIssued && ticket.Date < date {
			out = append(out, clone(ticket))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}
