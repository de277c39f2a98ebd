package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/palmbay/resort/api/internal/database"
	"github.com/palmbay/resort/api/internal/model"
)

// PaymentRepository handles payment data access
type PaymentRepository struct {
	db database.Database
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db database.Database) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create persists a new payment
func (r *PaymentRepository) Create(ctx context.Context, p *model.Payment) error {
	query := `
		CREATE type::thing('payment', $id) CONTENT {
			reference: { type: $ref_type, id: $ref_id },
			amount: $amount,
			currency: $currency,
			method: $method,
			status: $status,
			refunded_amount: $refunded_amount,
			notes: $notes,
			created_at: time::now(),
			updated_at: time::now()
		}
	`
	result, err := r.db.Query(ctx, query, map[string]interface{}{
		"id":              p.ID,
		"ref_type":        string(p.Reference.Type),
		"ref_id":          p.Reference.ID,
		"amount":          p.Amount.String(),
		"currency":        p.Currency,
		"method":          string(p.Method),
		"status":          string(p.Status),
		"refunded_amount": p.RefundedAmount.String(),
		"notes":           p.Notes,
	})
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}

	created, err := parseRecords[model.Payment](result)
	if err != nil {
		return fmt.Errorf("failed to parse created payment: %w", err)
	}
	if len(created) > 0 {
		p.CreatedAt = created[0].CreatedAt
		p.UpdatedAt = created[0].UpdatedAt
	}
	return nil
}

// GetByID retrieves a payment, returning (nil, nil) when it does not exist
func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*model.Payment, error) {
	query := `SELECT * FROM type::thing('payment', $id)`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"id": id})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return parseRecord[model.Payment](result)
}

// List retrieves payments matching the filter, newest first. The caller
// controls limit and offset.
func (r *PaymentRepository) List(ctx context.Context, filter model.PaymentFilter) ([]*model.Payment, error) {
	where := "true"
	vars := map[string]interface{}{
		"limit":  filter.Limit,
		"offset": filter.Offset,
	}

	if filter.Status != nil {
		where += " AND status = $status"
		vars["status"] = string(*filter.Status)
	}
	if filter.Method != nil {
		where += " AND method = $method"
		vars["method"] = string(*filter.Method)
	}
	if filter.StartDate != "" {
		where += " AND created_at >= type::datetime($start)"
		vars["start"] = dateKeyStart(filter.StartDate)
	}
	if filter.EndDate != "" {
		where += " AND created_at < type::datetime($end)"
		vars["end"] = dateKeyEnd(filter.EndDate)
	}

	query := fmt.Sprintf(`
		SELECT * FROM payment
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $limit START $offset
	`, where)
	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return parseRecords[model.Payment](result)
}

// ListByReference retrieves all payments attached to a charged entity
func (r *PaymentRepository) ListByReference(ctx context.Context, ref model.PaymentReference) ([]*model.Payment, error) {
	query := `
		SELECT * FROM payment
		WHERE reference.type = $ref_type AND reference.id = $ref_id
		ORDER BY created_at DESC
	`
	result, err := r.db.Query(ctx, query, map[string]interface{}{
		"ref_type": string(ref.Type),
		"ref_id":   ref.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list payments by reference: %w", err)
	}
	return parseRecords[model.Payment](result)
}

// ListBetween retrieves payments created within the inclusive date window.
// An empty bound leaves that side of the window open.
func (r *PaymentRepository) ListBetween(ctx context.Context, startDate, endDate string) ([]*model.Payment, error) {
	where := "true"
	vars := map[string]interface{}{}

	if startDate != "" {
		where += " AND created_at >= type::datetime($start)"
		vars["start"] = dateKeyStart(startDate)
	}
	if endDate != "" {
		where += " AND created_at < type::datetime($end)"
		vars["end"] = dateKeyEnd(endDate)
	}

	query := fmt.Sprintf(`
		SELECT * FROM payment
		WHERE %s
		ORDER BY created_at ASC
	`, where)
	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments in window: %w", err)
	}
	return parseRecords[model.Payment](result)
}

// Update applies field updates and returns the updated payment
func (r *PaymentRepository) Update(ctx context.Context, id string, updates map[string]interface{}) (*model.Payment, error) {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)

	query := fmt.Sprintf("UPDATE type::thing('payment', $id) SET %s", setClause(updates))
	updates["id"] = id

	if err := r.db.Execute(ctx, query, updates); err != nil {
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}
	return r.GetByID(ctx, id)
}

// dateKeyStart converts an exact-date key to the instant opening that day
// (UTC midnight).
func dateKeyStart(key string) string {
	t, _ := time.Parse(model.DateKeyLayout, key)
	return t.UTC().Format(time.RFC3339)
}

// dateKeyEnd converts an exact-date key to the exclusive upper bound of
// that day (next UTC midnight).
func dateKeyEnd(key string) string {
	t, _ := time.Parse(model.DateKeyLayout, key)
	return t.AddDate(0, 0, 1).UTC().Format(time.RFC3339)
}
