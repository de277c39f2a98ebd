package service

import (
	"context"
	"testing"
	"time"

	"github.com/palmbay/resort/api/internal/model"
	"github.com/palmbay/resort/api/internal/repository/memory"
	"github.com/stretchr/testify/require"
)

const (
	staffAlice = "11111111-1111-4111-8111-111111111111"
	staffBob   = "22222222-2222-4222-8222-222222222222"
)

func newShiftService(repo ShiftRepository) *ShiftService {
	return NewShiftService(ShiftServiceConfig{Repo: repo})
}

func shiftReq(staffID string, start, end time.Time) *model.CreateShiftRequest {
	return &model.CreateShiftRequest{
		StaffID:   staffID,
		Role:      model.ShiftRoleFrontDesk,
		StartTime: start.Format(time.RFC3339),
		EndTime:   end.Format(time.RFC3339),
	}
}

func day(hour int) time.Time {
	return time.Date(2025, 7, 14, hour, 0, 0, 0, time.UTC)
}

func TestCreateShift_RejectsOverlap(t *testing.T) {
	ctx := context.Background()
	svc := newShiftService(memory.NewShiftStore())

	_, err := svc.CreateShift(ctx, shiftReq(staffAlice, day(9), day(17)))
	require.NoError(t, err)

	_, err = svc.CreateShift(ctx, shiftReq(staffAlice, day(16), day(20)))
	require.True(t, model.IsCode(err, model.CodeShiftConflict), "got %v", err)
}

func TestCreateShift_AcceptsTouchingRanges(t *testing.T) {
	ctx := context.Background()
	svc := newShiftService(memory.NewShiftStore())

	_, err := svc.CreateShift(ctx, shiftReq(staffAlice, day(9), day(13)))
	require.NoError(t, err)

	// [13,17) begins exactly where [9,13) ends: no conflict.
	_, err = svc.CreateShift(ctx, shiftReq(staffAlice, day(13), day(17)))
	require.NoError(t, err)
}

func TestCreateShift_IgnoresCancelledShifts(t *testing.T) {
	ctx := context.Background()
	svc := newShiftService(memory.NewShiftStore())

	shift, err := svc.CreateShift(ctx, shiftReq(staffAlice, day(9), day(17)))
	require.NoError(t, err)
	_, err = svc.CancelShift(ctx, shift.ID)
	require.NoError(t, err)

	_, err = svc.CreateShift(ctx, shiftReq(staffAlice, day(10), day(14)))
	require.NoError(t, err)
}

func TestCreateShift_OtherStaffUnaffected(t *testing.T) {
	ctx := context.Background()
	svc := newShiftService(memory.NewShiftStore())

	_, err := svc.CreateShift(ctx, shiftReq(staffAlice, day(9), day(17)))
	require.NoError(t, err)

	_, err = svc.CreateShift(ctx, shiftReq(staffBob, day(9), day(17)))
	require.NoError(t, err)
}

func TestCreateShift_ValidatesSpan(t *testing.T) {
	svc := newShiftService(memory.NewShiftStore())

	tests := []struct {
		name string
		end  time.Time
		code string
	}{
		{"too short", day(9).Add(10 * time.Minute), "SHIFT_TOO_SHORT"},
		{"too long", day(9).Add(20 * time.Hour), "SHIFT_TOO_LONG"},
		{"reversed", day(8), "INVALID_TIME_RANGE"},
	}
	for _, tt := range tests {
		_, err := svc.CreateShift(context.Background(), shiftReq(staffAlice, day(9), tt.end))
		if !model.IsCode(err, tt.code) {
			t.Errorf("%s: expected %s, got %v", tt.name, tt.code, err)
		}
	}
}

func TestUpdateShift_RechecksConflictsExcludingSelf(t *testing.T) {
	ctx := context.Background()
	svc := newShiftService(memory.NewShiftStore())

	first, err := svc.CreateShift(ctx, shiftReq(staffAlice, day(9), day(12)))
	require.NoError(t, err)
	_, err = svc.CreateShift(ctx, shiftReq(staffAlice, day(13), day(17)))
	require.NoError(t, err)

	// Shrinking within its own old range is fine: the shift does not
	// conflict with itself.
	newEnd := day(11).Format(time.RFC3339)
	_, err = svc.UpdateShift(ctx, first.ID, &model.UpdateShiftRequest{EndTime: &newEnd})
	require.NoError(t, err)

	// Extending into the second shift is a conflict.
	badEnd := day(14).Format(time.RFC3339)
	_, err = svc.UpdateShift(ctx, first.ID, &model.UpdateShiftRequest{EndTime: &badEnd})
	require.True(t, model.IsCode(err, model.CodeShiftConflict), "got %v", err)
}

func TestClockFlow(t *testing.T) {
	ctx := context.Background()
	svc := newShiftService(memory.NewShiftStore())

	shift, err := svc.CreateShift(ctx, shiftReq(staffAlice, day(9), day(17)))
	require.NoError(t, err)

	shift, err = svc.ClockIn(ctx, shift.ID)
	require.NoError(t, err)
	require.Equal(t, model.ShiftStatusInProgress, shift.Status)
	require.NotNil(t, shift.ClockInAt)

	shift, err = svc.ClockOut(ctx, shift.ID)
	require.NoError(t, err)
	require.Equal(t, model.ShiftStatusCompleted, shift.Status)
	require.NotNil(t, shift.HoursWorked)

	// Clocking out twice is rejected.
	_, err = svc.ClockOut(ctx, shift.ID)
	require.True(t, model.IsCode(err, model.CodeInvalidStatus), "got %v", err)
}

func TestClockOut_RequiresInProgress(t *testing.T) {
	ctx := context.Background()
	svc := newShiftService(memory.NewShiftStore())

	shift, err := svc.CreateShift(ctx, shiftReq(staffAlice, day(9), day(17)))
	require.NoError(t, err)

	_, err = svc.ClockOut(ctx, shift.ID)
	require.True(t, model.IsCode(err, model.CodeInvalidStatus), "got %v", err)
}

func TestRequestSwap_RejectsSelfTarget(t *testing.T) {
	ctx := context.Background()
	svc := newShiftService(memory.NewShiftStore())

	shift, err := svc.CreateShift(ctx, shiftReq(staffAlice, day(9), day(17)))
	require.NoError(t, err)

	_, err = svc.RequestSwap(ctx, shift.ID, staffAlice, nil)
	require.True(t, model.IsCode(err, "INVALID_SWAP_TARGET"), "got %v", err)
}

func TestApproveSwap_ReassignsShift(t *testing.T) {
	ctx := context.Background()
	svc := newShiftService(memory.NewShiftStore())

	shift, err := svc.CreateShift(ctx, shiftReq(staffAlice, day(9), day(17)))
	require.NoError(t, err)

	swap, err := svc.RequestSwap(ctx, shift.ID, staffBob, nil)
	require.NoError(t, err)
	require.Equal(t, model.SwapStatusPending, swap.Status)

	swap, err = svc.ApproveSwap(ctx, swap.ID)
	require.NoError(t, err)
	require.Equal(t, model.SwapStatusApproved, swap.Status)

	shift, err = svc.GetShift(ctx, shift.ID)
	require.NoError(t, err)
	require.Equal(t, staffBob, shift.StaffID)
}

func TestApproveSwap_SecondApprovalFails(t *testing.T) {
	ctx := context.Background()
	svc := newShiftService(memory.NewShiftStore())

	shift, err := svc.CreateShift(ctx, shiftReq(staffAlice, day(9), day(17)))
	require.NoError(t, err)
	swap, err := svc.RequestSwap(ctx, shift.ID, staffBob, nil)
	require.NoError(t, err)

	_, err = svc.ApproveSwap(ctx, swap.ID)
	require.NoError(t, err)

	// The shift stays with Bob: a decided request is never applied again.
	_, err = svc.ApproveSwap(ctx, swap.ID)
	require.True(t, model.IsCode(err, model.CodeInvalidStatus), "got %v", err)

	shift, err = svc.GetShift(ctx, shift.ID)
	require.NoError(t, err)
	require.Equal(t, staffBob, shift.StaffID)
}

func TestApproveSwap_ConflictChecksReceiver(t *testing.T) {
	ctx := context.Background()
	svc := newShiftService(memory.NewShiftStore())

	shift, err := svc.CreateShift(ctx, shiftReq(staffAlice, day(9), day(17)))
	require.NoError(t, err)
	_, err = svc.CreateShift(ctx, shiftReq(staffBob, day(10), day(14)))
	require.NoError(t, err)

	swap, err := svc.RequestSwap(ctx, shift.ID, staffBob, nil)
	require.NoError(t, err)

	_, err = svc.ApproveSwap(ctx, swap.ID)
	require.True(t, model.IsCode(err, model.CodeShiftConflict), "got %v", err)

	// The request stays pending after a failed approval.
	swap, err = svc.GetSwapRequest(ctx, swap.ID)
	require.NoError(t, err)
	require.Equal(t, model.SwapStatusPending, swap.Status)
}

func TestRejectSwap_LeavesShiftAlone(t *testing.T) {
	ctx := context.Background()
	svc := newShiftService(memory.NewShiftStore())

	shift, err := svc.CreateShift(ctx, shiftReq(staffAlice, day(9), day(17)))
	require.NoError(t, err)
	swap, err := svc.RequestSwap(ctx, shift.ID, staffBob, nil)
	require.NoError(t, err)

	swap, err = svc.RejectSwap(ctx, swap.ID)
	require.NoError(t, err)
	require.Equal(t, model.SwapStatusRejected, swap.Status)

	shift, err = svc.GetShift(ctx, shift.ID)
	require.NoError(t, err)
	require.Equal(t, staffAlice, shift.StaffID)
}

func TestGetShiftStats_ExcludesCancelledFromScheduledHours(t *testing.T) {
	ctx := context.Background()
	svc := newShiftService(memory.NewShiftStore())

	_, err := svc.CreateShift(ctx, shiftReq(staffAlice, day(9), day(17)))
	require.NoError(t, err)
	cancelled, err := svc.CreateShift(ctx, shiftReq(staffAlice, day(18), day(22)))
	require.NoError(t, err)
	_, err = svc.CancelShift(ctx, cancelled.ID)
	require.NoError(t, err)

	stats, err := svc.GetShiftStats(ctx, staffAlice)
	require.NoError(t, err)
	require.Equal(t, 2, stats.TotalShifts)
	require.Equal(t, 8.0, stats.ScheduledHours)
	require.Equal(t, 1, stats.ByStatus[model.ShiftStatusCancelled])
}
