package model

import "time"

// ShiftStatus constants
type ShiftStatus string

const (
	ShiftStatusScheduled  ShiftStatus = "scheduled"
	ShiftStatusInProgress ShiftStatus = "in_progress"
	ShiftStatusCompleted  ShiftStatus = "completed"
	ShiftStatusCancelled  ShiftStatus = "cancelled"
	ShiftStatusNoShow     ShiftStatus = "no_show"
)

// ShiftRole constants
const (
	ShiftRoleFrontDesk    = "front_desk"
	ShiftRoleHousekeeping = "housekeeping"
	ShiftRolePool         = "pool"
	ShiftRoleKitchen      = "kitchen"
	ShiftRoleMaintenance  = "maintenance"
)

// Shift policy bounds
const (
	MinShiftDuration = 30 * time.Minute
	MaxShiftDuration = 16 * time.Hour
	MaxBreakMinutes  = 120
)

// Shift represents one staff member's scheduled work window. Two
// non-cancelled shifts for the same staff member must never overlap;
// ranges are half-open so a shift may start exactly when another ends.
type Shift struct {
	ID           string      `json:"id"`
	StaffID      string      `json:"staff_id"`
	Role         string      `json:"role"`
	StartTime    time.Time   `json:"start_time"`
	EndTime      time.Time   `json:"end_time"`
	BreakMinutes int         `json:"break_minutes"`
	Status       ShiftStatus `json:"status"`
	ClockInAt    *time.Time  `json:"clock_in_at,omitempty"`
	ClockOutAt   *time.Time  `json:"clock_out_at,omitempty"`
	// HoursWorked is set on clock-out: elapsed time minus break, hours.
	HoursWorked *float64  `json:"hours_worked,omitempty"`
	Notes       *string   `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ScheduledHours returns the planned working hours: shift span minus break.
func (s *Shift) ScheduledHours() float64 {
	span := s.EndTime.Sub(s.StartTime) - time.Duration(s.BreakMinutes)*time.Minute
	if span < 0 {
		span = 0
	}
	return span.Hours()
}

// SwapStatus constants
type SwapStatus string

const (
	SwapStatusPending   SwapStatus = "pending"
	SwapStatusApproved  SwapStatus = "approved"
	SwapStatusRejected  SwapStatus = "rejected"
	SwapStatusCancelled SwapStatus = "cancelled"
)

// SwapRequest asks to hand a scheduled shift to another staff member.
// Approval reassigns the shift exactly once; a second approval attempt is
// an invalid transition, not a no-op.
type SwapRequest struct {
	ID          string     `json:"id"`
	ShiftID     string     `json:"shift_id"`
	FromStaffID string     `json:"from_staff_id"`
	ToStaffID   string     `json:"to_staff_id"`
	Status      SwapStatus `json:"status"`
	Reason      *string    `json:"reason,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateShiftRequest carries the fields for scheduling a shift.
type CreateShiftRequest struct {
	StaffID      string  `json:"staff_id"`
	Role         string  `json:"role"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	BreakMinutes int     `json:"break_minutes"`
	Notes        *string `json:"notes,omitempty"`
}

// Validate checks all fields and returns every violation found.
func (r *CreateShiftRequest) Validate() []FieldError {
	var errs []FieldError

	if fe := CheckUUID("staff_id", "INVALID_STAFF_ID", r.StaffID); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := CheckEnum("role", "INVALID_ROLE", r.Role,
		ShiftRoleFrontDesk, ShiftRoleHousekeeping, ShiftRolePool,
		ShiftRoleKitchen, ShiftRoleMaintenance); fe != nil {
		errs = append(errs, *fe)
	}

	start, feStart := ParseInstant("start_time", "INVALID_START_TIME", r.StartTime)
	if feStart != nil {
		errs = append(errs, *feStart)
	}
	end, feEnd := ParseInstant("end_time", "INVALID_END_TIME", r.EndTime)
	if feEnd != nil {
		errs = append(errs, *feEnd)
	}
	if feStart == nil && feEnd == nil {
		errs = append(errs, checkShiftSpan(start, end)...)
	}

	if fe := CheckIntRange("break_minutes", "INVALID_BREAK_MINUTES", r.BreakMinutes, 0, MaxBreakMinutes); fe != nil {
		errs = append(errs, *fe)
	}
	return errs
}

// UpdateShiftRequest adjusts a scheduled shift. Nil fields are untouched.
type UpdateShiftRequest struct {
	StartTime    *string `json:"start_time,omitempty"`
	EndTime      *string `json:"end_time,omitempty"`
	BreakMinutes *int    `json:"break_minutes,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// Validate checks the fields that are present. Span checks against the
// unchanged half of the range happen in the service, which knows the
// current shift.
func (r *UpdateShiftRequest) Validate() []FieldError {
	var errs []FieldError

	if r.StartTime != nil {
		if _, fe := ParseInstant("start_time", "INVALID_START_TIME", *r.StartTime); fe != nil {
			errs = append(errs, *fe)
		}
	}
	if r.EndTime != nil {
		if _, fe := ParseInstant("end_time", "INVALID_END_TIME", *r.EndTime); fe != nil {
			errs = append(errs, *fe)
		}
	}
	if r.BreakMinutes != nil {
		if fe := CheckIntRange("break_minutes", "INVALID_BREAK_MINUTES", *r.BreakMinutes, 0, MaxBreakMinutes); fe != nil {
			errs = append(errs, *fe)
		}
	}
	return errs
}

func checkShiftSpan(start, end time.Time) []FieldError {
	if fe := CheckRangePair("end_time", "INVALID_TIME_RANGE", start, end); fe != nil {
		return []FieldError{*fe}
	}
	span := end.Sub(start)
	if span < MinShiftDuration {
		return []FieldError{{Field: "end_time", Code: "SHIFT_TOO_SHORT",
			Message: "shift must be at least 30 minutes"}}
	}
	if span > MaxShiftDuration {
		return []FieldError{{Field: "end_time", Code: "SHIFT_TOO_LONG",
			Message: "shift must not exceed 16 hours"}}
	}
	return nil
}

// CheckShiftSpan exposes the span policy to the service layer for updates.
func CheckShiftSpan(start, end time.Time) []FieldError {
	return checkShiftSpan(start, end)
}

// ShiftStats aggregates an already-fetched shift list.
type ShiftStats struct {
	TotalShifts    int                 `json:"total_shifts"`
	ScheduledHours float64             `json:"scheduled_hours"`
	WorkedHours    float64             `json:"worked_hours"`
	ByStatus       map[ShiftStatus]int `json:"by_status"`
}
