package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/palmbay/resort/api/internal/database"
	"github.com/palmbay/resort/api/internal/model"
)

// PoolRepository handles pool and pool-ticket data access
type PoolRepository struct {
	db database.Database
}

// NewPoolRepository creates a new pool repository
func NewPoolRepository(db database.Database) *PoolRepository {
	return &PoolRepository{db: db}
}

// CreatePool persists a new pool
func (r *PoolRepository) CreatePool(ctx context.Context, pool *model.Pool) error {
	query := `
		CREATE type::thing('pool', $id) CONTENT {
			name: $name,
			capacity: $capacity,
			created_at: time::now(),
			updated_at: time::now()
		}
	`
	_, err := r.db.Query(ctx, query, map[string]interface{}{
		"id":       pool.ID,
		"name":     pool.Name,
		"capacity": pool.Capacity,
	})
	if err != nil {
		return fmt.Errorf("failed to create pool: %w", err)
	}
	return nil
}

// GetPool retrieves a pool, returning (nil, nil) when it does not exist
func (r *PoolRepository) GetPool(ctx context.Context, id string) (*model.Pool, error) {
	query := `SELECT * FROM type::thing('pool', $id)`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"id": id})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get pool: %w", err)
	}
	return parseRecord[model.Pool](result)
}

// ListPools retrieves every pool
func (r *PoolRepository) ListPools(ctx context.Context) ([]*model.Pool, error) {
	result, err := r.db.Query(ctx, `SELECT * FROM pool ORDER BY name ASC`, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list pools: %w", err)
	}
	return parseRecords[model.Pool](result)
}

// CreateTicket persists a new ticket. The write runs inside a guarded
// transaction that re-checks the pool's per-date capacity, so a concurrent
// issue cannot oversell the bucket.
func (r *PoolRepository) CreateTicket(ctx context.Context, ticket *model.PoolTicket) error {
	headcount := ticket.Headcount()

	batch := database.NewGuardedBatch()
	batch.Guard(
		`(math::sum((SELECT VALUE adults + children + infants FROM pool_ticket
			WHERE pool_id = $pool_id AND date = $date AND status != 'cancelled'))
			+ $headcount)
			> (SELECT VALUE capacity FROM ONLY type::thing('pool', $pool_id))`,
		map[string]interface{}{
			"pool_id":   ticket.PoolID,
			"date":      ticket.Date,
			"headcount": headcount,
		},
		"capacity exceeded",
	)
	batch.Add(`
		CREATE type::thing('pool_ticket', $id) CONTENT {
			pool_id: $pool_id,
			guest_id: $guest_id,
			date: $date,
			adults: $adults,
			children: $children,
			infants: $infants,
			status: $status,
			created_at: time::now(),
			updated_at: time::now()
		}
	`, map[string]interface{}{
		"id":       ticket.ID,
		"pool_id":  ticket.PoolID,
		"guest_id": ticket.GuestID,
		"date":     ticket.Date,
		"adults":   ticket.Adults,
		"children": ticket.Children,
		"infants":  ticket.Infants,
		"status":   string(ticket.Status),
	})

	if err := batch.Execute(ctx, r.db); err != nil {
		if errors.Is(err, database.ErrGuardFailed) {
			return model.NewConflictError(model.CodeInsufficientCapacity,
				"pool capacity exceeded for the requested date")
		}
		return fmt.Errorf("failed to create ticket: %w", err)
	}
	return nil
}

// GetTicket retrieves a ticket, returning (nil, nil) when it does not exist
func (r *PoolRepository) GetTicket(ctx context.Context, id string) (*model.PoolTicket, error) {
	query := `SELECT * FROM type::thing('pool_ticket', $id)`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"id": id})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	return parseRecord[model.PoolTicket](result)
}

// ListTicketsForDate retrieves every ticket of a pool on one date key
func (r *PoolRepository) ListTicketsForDate(ctx context.Context, poolID, date string) ([]*model.PoolTicket, error) {
	query := `
		SELECT * FROM pool_ticket
		WHERE pool_id = $pool_id AND date = $date
		ORDER BY created_at ASC
	`
	result, err := r.db.Query(ctx, query, map[string]interface{}{
		"pool_id": poolID,
		"date":    date,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets for date: %w", err)
	}
	return parseRecords[model.PoolTicket](result)
}

// ListTicketsByGuest retrieves a guest's tickets, newest first
func (r *PoolRepository) ListTicketsByGuest(ctx context.Context, guestID string) ([]*model.PoolTicket, error) {
	query := `
		SELECT * FROM pool_ticket
		WHERE guest_id = $guest_id
		ORDER BY date DESC
	`
	result, err := r.db.Query(ctx, query, map[string]interface{}{"guest_id": guestID})
	if err != nil {
		return nil, fmt.Errorf("failed to list guest tickets: %w", err)
	}
	return parseRecords[model.PoolTicket](result)
}

// UpdateTicket applies field updates and returns the updated ticket
func (r *PoolRepository) UpdateTicket(ctx context.Context, id string, updates map[string]interface{}) (*model.PoolTicket, error) {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)

	query := fmt.Sprintf("UPDATE type::thing('pool_ticket', $id) SET %s", setClause(updates))
	updates["id"] = id

	if err := r.db.Execute(ctx, query, updates); err != nil {
		return nil, fmt.Errorf("failed to update ticket: %w", err)
	}
	return r.GetTicket(ctx, id)
}

// ListIssuedBefore retrieves issued tickets dated strictly before the given
// date key. Date keys sort lexicographically.
func (r *PoolRepository) ListIssuedBefore(ctx context.Context, date string) ([]*model.PoolTicket, error) {
	query := `
		SELECT * FROM pool_ticket
		WHERE status = 'issued' AND date < $date
		ORDER BY date ASC
	`
	result, err := r.db.Query(ctx, query, map[string]interface{}{"date": date})
	if err != nil {
		return nil, fmt.Errorf("failed to list stale tickets: %w", err)
	}
	return parseRecords[model.PoolTicket](result)
}
