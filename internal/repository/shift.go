package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/palmbay/resort/api/internal/database"
	"github.com/palmbay/resort/api/internal/model"
)

// ShiftRepository handles shift and swap-request data access
type ShiftRepository struct {
	db database.Database
}

// NewShiftRepository creates a new shift repository
func NewShiftRepository(db database.Database) *ShiftRepository {
	return &ShiftRepository{db: db}
}

// Create persists a new shift. The write runs inside a guarded transaction
// that re-checks for an overlapping non-cancelled shift of the same staff
// member, so a concurrent create cannot slip past the service-level check.
func (r *ShiftRepository) Create(ctx context.Context, shift *model.Shift) error {
	start := shift.StartTime.UTC().Format(time.RFC3339)
	end := shift.EndTime.UTC().Format(time.RFC3339)

	batch := database.NewGuardedBatch()
	batch.Guard(
		`(SELECT count() FROM shift
			WHERE staff_id = $staff_id AND status != 'cancelled'
			AND start_time < type::datetime($end) AND end_time > type::datetime($start)
			GROUP ALL)[0].count > 0`,
		map[string]interface{}{
			"staff_id": shift.StaffID,
			"start":    start,
			"end":      end,
		},
		"overlapping shift",
	)
	batch.Add(`
		CREATE type::thing('shift', $id) CONTENT {
			staff_id: $staff_id,
			role: $role,
			start_time: type::datetime($start),
			end_time: type::datetime($end),
			break_minutes: $break_minutes,
			status: $status,
			notes: $notes,
			created_at: time::now(),
			updated_at: time::now()
		}
	`, map[string]interface{}{
		"id":            shift.ID,
		"staff_id":      shift.StaffID,
		"role":          shift.Role,
		"start":         start,
		"end":           end,
		"break_minutes": shift.BreakMinutes,
		"status":        string(shift.Status),
		"notes":         shift.Notes,
	})

	if err := batch.Execute(ctx, r.db); err != nil {
		if errors.Is(err, database.ErrGuardFailed) {
			return model.NewConflictError(model.CodeShiftConflict,
				"shift overlaps an existing shift for this staff member")
		}
		return fmt.Errorf("failed to create shift: %w", err)
	}
	return nil
}

// GetByID retrieves a shift, returning (nil, nil) when it does not exist
func (r *ShiftRepository) GetByID(ctx context.Context, id string) (*model.Shift, error) {
	query := `SELECT * FROM type::thing('shift', $id)`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"id": id})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get shift: %w", err)
	}
	return parseRecord[model.Shift](result)
}

// ListByStaff retrieves all shifts of a staff member, earliest first
func (r *ShiftRepository) ListByStaff(ctx context.Context, staffID string) ([]*model.Shift, error) {
	query := `
		SELECT * FROM shift
		WHERE staff_id = $staff_id
		ORDER BY start_time ASC
	`
	result, err := r.db.Query(ctx, query, map[string]interface{}{"staff_id": staffID})
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	return parseRecords[model.Shift](result)
}

// ListActiveByStaff retrieves a staff member's non-cancelled shifts
func (r *ShiftRepository) ListActiveByStaff(ctx context.Context, staffID string) ([]*model.Shift, error) {
	query := `
		SELECT * FROM shift
		WHERE staff_id = $staff_id AND status != 'cancelled'
		ORDER BY start_time ASC
	`
	result, err := r.db.Query(ctx, query, map[string]interface{}{"staff_id": staffID})
	if err != nil {
		return nil, fmt.Errorf("failed to list active shifts: %w", err)
	}
	return parseRecords[model.Shift](result)
}

// Update applies field updates and returns the updated shift
func (r *ShiftRepository) Update(ctx context.Context, id string, updates map[string]interface{}) (*model.Shift, error) {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)

	query := fmt.Sprintf("UPDATE type::thing('shift', $id) SET %s", setClause(updates))
	updates["id"] = id

	if err := r.db.Execute(ctx, query, updates); err != nil {
		return nil, fmt.Errorf("failed to update shift: %w", err)
	}
	return r.GetByID(ctx, id)
}

// CreateSwap persists a new swap request
func (r *ShiftRepository) CreateSwap(ctx context.Context, swap *model.SwapRequest) error {
	query := `
		CREATE type::thing('swap_request', $id) CONTENT {
			shift_id: $shift_id,
			from_staff_id: $from_staff_id,
			to_staff_id: $to_staff_id,
			status: $status,
			reason: $reason,
			created_at: time::now(),
			updated_at: time::now()
		}
	`
	_, err := r.db.Query(ctx, query, map[string]interface{}{
		"id":            swap.ID,
		"shift_id":      swap.ShiftID,
		"from_staff_id": swap.FromStaffID,
		"to_staff_id":   swap.ToStaffID,
		"status":        string(swap.Status),
		"reason":        swap.Reason,
	})
	if err != nil {
		return fmt.Errorf("failed to create swap request: %w", err)
	}
	return nil
}

// GetSwap retrieves a swap request, returning (nil, nil) when it does not exist
func (r *ShiftRepository) GetSwap(ctx context.Context, id string) (*model.SwapRequest, error) {
	query := `SELECT * FROM type::thing('swap_request', $id)`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"id": id})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get swap request: %w", err)
	}
	return parseRecord[model.SwapRequest](result)
}

// UpdateSwap applies field updates and returns the updated swap request
func (r *ShiftRepository) UpdateSwap(ctx context.Context, id string, updates map[string]interface{}) (*model.SwapRequest, error) {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)

	query := fmt.Sprintf("UPDATE type::thing('swap_request', $id) SET %s", setClause(updates))
	updates["id"] = id

	if err := r.db.Execute(ctx, query, updates); err != nil {
		return nil, fmt.Errorf("failed to update swap request: %w", err)
	}
	return r.GetSwap(ctx, id)
}
