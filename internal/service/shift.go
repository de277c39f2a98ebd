package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/palmbay/resort/api/internal/model"
)

// ShiftRepository defines the interface for shift and swap-request storage
type ShiftRepository interface {
	Create(ctx context.Context, shift *model.Shift) error
	GetByID(ctx context.Context, id string) (*model.Shift, error)
	ListByStaff(ctx context.Context, staffID string) ([]*model.Shift, error)
	// ListActiveByStaff returns the staff member's non-cancelled shifts.
	ListActiveByStaff(ctx context.Context, staffID string) ([]*model.Shift, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) (*model.Shift, error)

	CreateSwap(ctx context.Context, swap *model.SwapRequest) error
	GetSwap(ctx context.Context, id string) (*model.SwapRequest, error)
	UpdateSwap(ctx context.Context, id string, updates map[string]interface{}) (*model.SwapRequest, error)
}

// ShiftService schedules staff shifts. A staff member never holds two
// overlapping non-cancelled shifts; the conflict check runs on create, on
// time updates and on swap approval for the receiving staff member.
type ShiftService struct {
	repo     ShiftRepository
	activity *ActivityRecorder
}

// ShiftServiceConfig holds configuration for the shift service
type ShiftServiceConfig struct {
	Repo     ShiftRepository
	Activity *ActivityRecorder
}

// NewShiftService creates a new shift service
func NewShiftService(cfg ShiftServiceConfig) *ShiftService {
	return &ShiftService{repo: cfg.Repo, activity: cfg.Activity}
}

// CreateShift schedules a shift after checking the staff member's existing
// shifts for overlap.
func (s *ShiftService) CreateShift(ctx context.Context, req *model.CreateShiftRequest) (*model.Shift, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}

	start, _ := time.Parse(time.RFC3339, req.StartTime) // validated above
	end, _ := time.Parse(time.RFC3339, req.EndTime)

	if err := s.checkConflicts(ctx, req.StaffID, start, end, ""); err != nil {
		return nil, err
	}

	shift := &model.Shift{
		ID:           uuid.NewString(),
		StaffID:      req.StaffID,
		Role:         req.Role,
		StartTime:    start,
		EndTime:      end,
		BreakMinutes: req.BreakMinutes,
		Status:       model.ShiftStatusScheduled,
		Notes:        req.Notes,
	}
	if err := s.repo.Create(ctx, shift); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, "shift", shift.ID, "scheduled", map[string]any{"staff_id": shift.StaffID})
	return shift, nil
}

// GetShift retrieves a shift by ID.
func (s *ShiftService) GetShift(ctx context.Context, id string) (*model.Shift, error) {
	if fe := model.CheckUUID("id", "INVALID_SHIFT_ID", id); fe != nil {
		return nil, model.NewValidationError([]model.FieldError{*fe})
	}
	shift, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, ErrShiftNotFound
	}
	return shift, nil
}

// GetStaffShifts retrieves all shifts of one staff member.
func (s *ShiftService) GetStaffShifts(ctx context.Context, staffID string) ([]*model.Shift, error) {
	if fe := model.CheckUUID("staff_id", "INVALID_STAFF_ID", staffID); fe != nil {
		return nil, model.NewValidationError([]model.FieldError{*fe})
	}
	return s.repo.ListByStaff(ctx, staffID)
}

// UpdateShift adjusts a scheduled shift. Changed times are re-checked for
// conflicts against all shifts except the one being modified.
func (s *ShiftService) UpdateShift(ctx context.Context, id string, req *model.UpdateShiftRequest) (*model.Shift, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}

	shift, err := s.GetShift(ctx, id)
	if err != nil {
		return nil, err
	}
	if shift.Status != model.ShiftStatusScheduled {
		return nil, model.NewInvalidStatusError("shift", string(shift.Status), string(model.ShiftStatusScheduled))
	}

	updates := make(map[string]interface{})
	start, end := shift.StartTime, shift.EndTime

	if req.StartTime != nil {
		start, _ = time.Parse(time.RFC3339, *req.StartTime) // validated above
		updates["start_time"] = start
	}
	if req.EndTime != nil {
		end, _ = time.Parse(time.RFC3339, *req.EndTime)
		updates["end_time"] = end
	}
	if req.StartTime != nil || req.EndTime != nil {
		if errs := model.CheckShiftSpan(start, end); len(errs) > 0 {
			return nil, model.NewValidationError(errs)
		}
		if err := s.checkConflicts(ctx, shift.StaffID, start, end, shift.ID); err != nil {
			return nil, err
		}
	}
	if req.BreakMinutes != nil {
		updates["break_minutes"] = *req.BreakMinutes
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if len(updates) == 0 {
		return shift, nil
	}

	return s.repo.Update(ctx, id, updates)
}

// ClockIn moves a scheduled shift into progress.
func (s *ShiftService) ClockIn(ctx context.Context, id string) (*model.Shift, error) {
	now := time.Now().UTC()
	return s.transition(ctx, id, model.ShiftStatusInProgress, "clock_in", map[string]interface{}{
		"clock_in_at": now,
	})
}

// ClockOut completes an in-progress shift and records the hours worked:
// elapsed clocked time minus the scheduled break, rounded to two places.
func (s *ShiftService) ClockOut(ctx context.Context, id string) (*model.Shift, error) {
	shift, err := s.GetShift(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := guardTransition("shift", shiftTransitions,
		string(shift.Status), string(model.ShiftStatusCompleted)); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	clockIn := shift.StartTime
	if shift.ClockInAt != nil {
		clockIn = *shift.ClockInAt
	}
	worked := now.Sub(clockIn) - time.Duration(shift.BreakMinutes)*time.Minute
	if worked < 0 {
		worked = 0
	}
	hours := math.Round(worked.Hours()*100) / 100

	updated, err := s.repo.Update(ctx, id, map[string]interface{}{
		"status":       string(model.ShiftStatusCompleted),
		"clock_out_at": now,
		"hours_worked": hours,
	})
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, "shift", id, "clock_out", map[string]any{"hours_worked": hours})
	return updated, nil
}

// CancelShift cancels a scheduled shift, freeing its time range.
func (s *ShiftService) CancelShift(ctx context.Context, id string) (*model.Shift, error) {
	return s.transition(ctx, id, model.ShiftStatusCancelled, "cancelled", nil)
}

// MarkNoShow marks a scheduled shift as missed.
func (s *ShiftService) MarkNoShow(ctx context.Context, id string) (*model.Shift, error) {
	return s.transition(ctx, id, model.ShiftStatusNoShow, "no_show", nil)
}

// RequestSwap asks to hand a scheduled shift to another staff member.
func (s *ShiftService) RequestSwap(ctx context.Context, shiftID, toStaffID string, reason *string) (*model.SwapRequest, error) {
	if fe := model.CheckUUID("to_staff_id", "INVALID_STAFF_ID", toStaffID); fe != nil {
		return nil, model.NewValidationError([]model.FieldError{*fe})
	}

	shift, err := s.GetShift(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if shift.Status != model.ShiftStatusScheduled {
		return nil, model.NewInvalidStatusError("shift", string(shift.Status), string(model.ShiftStatusScheduled))
	}
	if shift.StaffID == toStaffID {
		return nil, model.NewInvalidInputError("INVALID_SWAP_TARGET", "cannot swap a shift to its own staff member")
	}

	swap := &model.SwapRequest{
		ID:          uuid.NewString(),
		ShiftID:     shift.ID,
		FromStaffID: shift.StaffID,
		ToStaffID:   toStaffID,
		Status:      model.SwapStatusPending,
		Reason:      reason,
	}
	if err := s.repo.CreateSwap(ctx, swap); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, "swap_request", swap.ID, "requested", map[string]any{"shift_id": shift.ID})
	return swap, nil
}

// ApproveSwap reassigns the shift to the receiving staff member. The
// receiver's schedule is conflict-checked first. Approving an already
// decided request fails with INVALID_STATUS; the shift is never reassigned
// twice.
func (s *ShiftService) ApproveSwap(ctx context.Context, swapID string) (*model.SwapRequest, error) {
	swap, err := s.getSwap(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if err := guardTransition("swap request", swapTransitions,
		string(swap.Status), string(model.SwapStatusApproved)); err != nil {
		return nil, err
	}

	shift, err := s.GetShift(ctx, swap.ShiftID)
	if err != nil {
		return nil, err
	}
	if shift.Status != model.ShiftStatusScheduled {
		return nil, model.NewInvalidStatusError("shift", string(shift.Status), string(model.ShiftStatusScheduled))
	}
	if err := s.checkConflicts(ctx, swap.ToStaffID, shift.StartTime, shift.EndTime, shift.ID); err != nil {
		return nil, err
	}

	if _, err := s.repo.Update(ctx, shift.ID, map[string]interface{}{
		"staff_id": swap.ToStaffID,
	}); err != nil {
		return nil, err
	}
	updated, err := s.repo.UpdateSwap(ctx, swapID, map[string]interface{}{
		"status": string(model.SwapStatusApproved),
	})
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, "swap_request", swapID, "approved", map[string]any{
		"shift_id": shift.ID, "to_staff_id": swap.ToStaffID,
	})
	return updated, nil
}

// GetSwapRequest looks up a swap request by ID.
func (s *ShiftService) GetSwapRequest(ctx context.Context, id string) (*model.SwapRequest, error) {
	return s.getSwap(ctx, id)
}

// RejectSwap declines a pending swap request.
func (s *ShiftService) RejectSwap(ctx context.Context, swapID string) (*model.SwapRequest, error) {
	return s.decideSwap(ctx, swapID, model.SwapStatusRejected)
}

// CancelSwap withdraws a pending swap request.
func (s *ShiftService) CancelSwap(ctx context.Context, swapID string) (*model.SwapRequest, error) {
	return s.decideSwap(ctx, swapID, model.SwapStatusCancelled)
}

// GetShiftStats aggregates one staff member's shifts: scheduled hours for
// every non-cancelled shift, worked hours where recorded, counts by status.
func (s *ShiftService) GetShiftStats(ctx context.Context, staffID string) (*model.ShiftStats, error) {
	shifts, err := s.GetStaffShifts(ctx, staffID)
	if err != nil {
		return nil, err
	}

	stats := &model.ShiftStats{ByStatus: make(map[model.ShiftStatus]int)}
	for _, shift := range shifts {
		stats.TotalShifts++
		stats.ByStatus[shift.Status]++
		if shift.Status != model.ShiftStatusCancelled {
			stats.ScheduledHours += shift.ScheduledHours()
		}
		if shift.HoursWorked != nil {
			stats.WorkedHours += *shift.HoursWorked
		}
	}
	stats.ScheduledHours = math.Round(stats.ScheduledHours*100) / 100
	stats.WorkedHours = math.Round(stats.WorkedHours*100) / 100
	return stats, nil
}

// checkConflicts rejects the proposed range when it overlaps any of the
// staff member's non-cancelled shifts other than excludeID.
func (s *ShiftService) checkConflicts(ctx context.Context, staffID string, start, end time.Time, excludeID string) error {
	existing, err := s.repo.ListActiveByStaff(ctx, staffID)
	if err != nil {
		return err
	}
	if conflicts := findConflicts(existing, start, end, excludeID); len(conflicts) > 0 {
		return model.NewConflictError(model.CodeShiftConflict,
			fmt.Sprintf("overlaps %d existing shift(s) for this staff member", len(conflicts)))
	}
	return nil
}

func (s *ShiftService) getSwap(ctx context.Context, id string) (*model.SwapRequest, error) {
	if fe := model.CheckUUID("id", "INVALID_SWAP_ID", id); fe != nil {
		return nil, model.NewValidationError([]model.FieldError{*fe})
	}
	swap, err := s.repo.GetSwap(ctx, id)
	if err != nil {
		return nil, err
	}
	if swap == nil {
		return nil, ErrSwapNotFound
	}
	return swap, nil
}

func (s *ShiftService) decideSwap(ctx context.Context, id string, next model.SwapStatus) (*model.SwapRequest, error) {
	swap, err := s.getSwap(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := guardTransition("swap request", swapTransitions, string(swap.Status), string(next)); err != nil {
		return nil, err
	}
	updated, err := s.repo.UpdateSwap(ctx, id, map[string]interface{}{"status": string(next)})
	if err != nil {
		return nil, err
	}
	s.activity.Record(ctx, "swap_request", id, string(next), nil)
	return updated, nil
}

func (s *ShiftService) transition(ctx context.Context, id string, next model.ShiftStatus, action string, extra map[string]interface{}) (*model.Shift, error) {
	shift, err := s.GetShift(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := guardTransition("shift", shiftTransitions, string(shift.Status), string(next)); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"status": string(next)}
	for k, v := range extra {
		updates[k] = v
	}
	updated, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, "shift", id, action, nil)
	return updated, nil
}
