package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/palmbay/resort/api/internal/model"
)

// PoolRepository defines the interface for pool and ticket storage
type PoolRepository interface {
	CreatePool(ctx context.Context, pool *model.Pool) error
	GetPool(ctx context.Context, id string) (*model.Pool, error)
	ListPools(ctx context.Context) ([]*model.Pool, error)
	CreateTicket(ctx context.Context, ticket *model.PoolTicket) error
	GetTicket(ctx context.Context, id string) (*model.PoolTicket, error)
	// ListTicketsForDate returns every ticket of a pool on the given date
	// key, regardless of status.
	ListTicketsForDate(ctx context.Context, poolID, date string) ([]*model.PoolTicket, error)
	ListTicketsByGuest(ctx context.Context, guestID string) ([]*model.PoolTicket, error)
	UpdateTicket(ctx context.Context, id string, updates map[string]interface{}) (*model.PoolTicket, error)
	// ListIssuedBefore returns issued tickets whose date key is strictly
	// before the given one.
	ListIssuedBefore(ctx context.Context, date string) ([]*model.PoolTicket, error)
}

// PoolService issues day tickets against per-date pool capacity.
type PoolService struct {
	repo     PoolRepository
	activity *ActivityRecorder
}

// PoolServiceConfig holds configuration for the pool service
type PoolServiceConfig struct {
	Repo     PoolRepository
	Activity *ActivityRecorder
}

// NewPoolService creates a new pool service
func NewPoolService(cfg PoolServiceConfig) *PoolService {
	return &PoolService{repo: cfg.Repo, activity: cfg.Activity}
}

// CreatePool registers a capacity-limited pool.
func (s *PoolService) CreatePool(ctx context.Context, name string, capacity int) (*model.Pool, error) {
	var errs []model.FieldError
	if name == "" {
		errs = append(errs, model.FieldError{Field: "name", Code: "INVALID_NAME", Message: "name is required"})
	}
	if fe := model.CheckIntRange("capacity", "INVALID_CAPACITY", capacity, 1, 10000); fe != nil {
		errs = append(errs, *fe)
	}
	if len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}

	pool := &model.Pool{
		ID:       uuid.NewString(),
		Name:     name,
		Capacity: capacity,
	}
	if err := s.repo.CreatePool(ctx, pool); err != nil {
		return nil, err
	}
	s.activity.Record(ctx, "pool", pool.ID, "created", map[string]any{"capacity": capacity})
	return pool, nil
}

// GetPool retrieves a pool by ID.
func (s *PoolService) GetPool(ctx context.Context, id string) (*model.Pool, error) {
	if fe := model.CheckUUID("id", "INVALID_POOL_ID", id); fe != nil {
		return nil, model.NewValidationError([]model.FieldError{*fe})
	}
	pool, err := s.repo.GetPool(ctx, id)
	if err != nil {
		return nil, err
	}
	if pool == nil {
		return nil, ErrPoolNotFound
	}
	return pool, nil
}

// ListPools lists every pool.
func (s *PoolService) ListPools(ctx context.Context) ([]*model.Pool, error) {
	return s.repo.ListPools(ctx)
}

// IssueTicket admits a party on a date if the pool's remaining capacity
// covers the full headcount. Partial admission is never offered.
func (s *PoolService) IssueTicket(ctx context.Context, req *model.IssueTicketRequest) (*model.PoolTicket, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}

	pool, err := s.GetPool(ctx, req.PoolID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.ListTicketsForDate(ctx, req.PoolID, req.Date)
	if err != nil {
		return nil, err
	}
	booked := bookedHeadcount(existing)
	requested := req.Adults + req.Children + req.Infants
	if booked+requested > pool.Capacity {
		return nil, model.NewCapacityError(requested, booked, pool.Capacity)
	}

	ticket := &model.PoolTicket{
		ID:       uuid.NewString(),
		PoolID:   req.PoolID,
		GuestID:  req.GuestID,
		Date:     req.Date,
		Adults:   req.Adults,
		Children: req.Children,
		Infants:  req.Infants,
		Status:   model.TicketStatusIssued,
	}
	if err := s.repo.CreateTicket(ctx, ticket); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, "ticket", ticket.ID, "issued", map[string]any{
		"pool_id": req.PoolID, "date": req.Date, "headcount": requested,
	})
	return ticket, nil
}

// GetTicket retrieves a ticket by ID.
func (s *PoolService) GetTicket(ctx context.Context, id string) (*model.PoolTicket, error) {
	if fe := model.CheckUUID("id", "INVALID_TICKET_ID", id); fe != nil {
		return nil, model.NewValidationError([]model.FieldError{*fe})
	}
	ticket, err := s.repo.GetTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, ErrTicketNotFound
	}
	return ticket, nil
}

// GetGuestTickets lists a guest's tickets.
func (s *PoolService) GetGuestTickets(ctx context.Context, guestID string) ([]*model.PoolTicket, error) {
	if fe := model.CheckUUID("guest_id", "INVALID_GUEST_ID", guestID); fe != nil {
		return nil, model.NewValidationError([]model.FieldError{*fe})
	}
	return s.repo.ListTicketsByGuest(ctx, guestID)
}

// CapacityRemaining reports a pool's capacity usage on a date. Cancelled
// tickets release their headcount back to the bucket.
func (s *PoolService) CapacityRemaining(ctx context.Context, poolID, date string) (*model.PoolCapacity, error) {
	if _, fe := model.ParseDateKey("date", "INVALID_DATE", date); fe != nil {
		return nil, model.NewValidationError([]model.FieldError{*fe})
	}
	pool, err := s.GetPool(ctx, poolID)
	if err != nil {
		return nil, err
	}
	tickets, err := s.repo.ListTicketsForDate(ctx, poolID, date)
	if err != nil {
		return nil, err
	}
	booked := bookedHeadcount(tickets)
	return &model.PoolCapacity{
		PoolID:    poolID,
		Date:      date,
		Capacity:  pool.Capacity,
		Booked:    booked,
		Available: pool.Capacity - booked,
	}, nil
}

// RedeemTicket marks an issued ticket as used at the gate.
func (s *PoolService) RedeemTicket(ctx context.Context, id string) (*model.PoolTicket, error) {
	ticket, err := s.GetTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := guardTransition("ticket", ticketTransitions,
		string(ticket.Status), string(model.TicketStatusRedeemed)); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	updated, err := s.repo.UpdateTicket(ctx, id, map[string]interface{}{
		"status":      string(model.TicketStatusRedeemed),
		"redeemed_at": now.Format(time.RFC3339),
	})
	if err != nil {
		return nil, err
	}
	s.activity.Record(ctx, "ticket", id, "redeemed", nil)
	return updated, nil
}

// CancelTicket voids an issued ticket, releasing its headcount.
func (s *PoolService) CancelTicket(ctx context.Context, id string) (*model.PoolTicket, error) {
	ticket, err := s.GetTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := guardTransition("ticket", ticketTransitions,
		string(ticket.Status), string(model.TicketStatusCancelled)); err != nil {
		return nil, err
	}
	updated, err := s.repo.UpdateTicket(ctx, id, map[string]interface{}{
		"status": string(model.TicketStatusCancelled),
	})
	if err != nil {
		return nil, err
	}
	s.activity.Record(ctx, "ticket", id, "cancelled", map[string]any{
		"released": ticket.Headcount(),
	})
	return updated, nil
}

// ExpireTickets marks issued tickets from past dates as expired and returns
// how many it touched.
func (s *PoolService) ExpireTickets(ctx context.Context, today string) (int, error) {
	if _, fe := model.ParseDateKey("today", "INVALID_DATE", today); fe != nil {
		return 0, model.NewValidationError([]model.FieldError{*fe})
	}
	stale, err := s.repo.ListIssuedBefore(ctx, today)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, ticket := range stale {
		if ticket.Status != model.TicketStatusIssued {
			continue
		}
		if _, err := s.repo.UpdateTicket(ctx, ticket.ID, map[string]interface{}{
			"status": string(model.TicketStatusExpired),
		}); err != nil {
			return expired, fmt.Errorf("expiring ticket %s: %w", ticket.ID, err)
		}
		s.activity.Record(ctx, "ticket", ticket.ID, "expired", nil)
		expired++
	}
	return expired, nil
}
