package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/palmbay/resort/api/internal/model"
)

// ShiftStore is an in-memory shift and swap-request repository
type ShiftStore struct {
	mu     sync.RWMutex
	shifts map[string]*model.Shift
	swaps  map[string]*model.SwapRequest
}

// NewShiftStore creates an empty shift store
func NewShiftStore() *ShiftStore {
	return &ShiftStore{
		shifts: make(map[string]*model.Shift),
		swaps:  make(map[string]*model.SwapRequest),
	}
}

func (s *ShiftStore) Create(ctx context.Context, shift *model.Shift) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Same overlap re-check the SurrealDB repository performs inside its
	// guarded transaction.
	for _, existing := range s.shifts {
		if existing.StaffID != shift.StaffID || existing.Status == model.ShiftStatusCancelled {
			continue
		}
		if existing.StartTime.Before(shift.EndTime) && shift.StartTime.Before(existing.EndTime) {
			return model.NewConflictError(model.CodeShiftConflict,
				"shift overlaps an existing shift for this staff member")
		}
	}

	now := time.Now().UTC()
	shift.CreatedAt, shift.UpdatedAt = now, now
	s.shifts[shift.ID] = clone(shift)
	return nil
}

func (s *ShiftStore) GetByID(ctx context.Context, id string) (*model.Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.shifts[id]), nil
}

func (s *ShiftStore) ListByStaff(ctx context.Context, staffID string) ([]*model.Shift, error) {
	return s.listStaff(staffID, false)
}

func (s *ShiftStore) ListActiveByStaff(ctx context.Context, staffID string) ([]*model.Shift, error) {
	return s.listStaff(staffID, true)
}

func (s *ShiftStore) listStaff(staffID string, activeOnly bool) ([]*model.Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*model.Shift
	for _, shift := range s.shifts {
		if shift.StaffID != staffID {
			continue
		}
		if activeOnly && shift.Status == model.ShiftStatusCancelled {
			continue
		}
		out = append(out, clone(shift))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (s *ShiftStore) Update(ctx context.Context, id string, updates map[string]interface{}) (*model.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	shift, ok := s.shifts[id]
	if !ok {
		return nil, ErrMissing
	}
	updated, err := applyUpdates(shift, updates)
	if err != nil {
		return nil, err
	}
	updated.UpdatedAt = time.Now().UTC()
	s.shifts[id] = updated
	return clone(updated), nil
}

func (s *ShiftStore) CreateSwap(ctx context.Context, swap *model.SwapRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	swap.CreatedAt, swap.UpdatedAt = now, now
	s.swaps[swap.ID] = clone(swap)
	return nil
}

func (s *ShiftStore) GetSwap(ctx context.Context, id string) (*model.SwapRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.swaps[id]), nil
}

func (s *ShiftStore) UpdateSwap(ctx context.Context, id string, updates map[string]interface{}) (*model.SwapRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	swap, ok := s.swaps[id]
	if !ok {
		return nil, ErrMissing
	}
	updated, err := applyUpdates(swap, updates)
	if err != nil {
		return nil, err
	}
	updated.UpdatedAt = time.Now().UTC()
	s.swaps[id] = updated
	return clone(updated), nil
}
