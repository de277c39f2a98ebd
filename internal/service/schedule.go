package service

import (
	"time"

	"github.com/palmbay/resort/api/internal/model"
)

// Shift conflict checking. Ranges are half-open [start, end): two ranges
// conflict iff existingStart < newEnd && newStart < existingEnd, so a shift
// may begin exactly when the previous one ends.

func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// findConflicts scans a staff member's existing shifts for overlaps with
// the proposed range. Cancelled shifts never conflict. excludeID lets an
// update check against all shifts other than the one being modified.
func findConflicts(existing []*model.Shift, start, end time.Time, excludeID string) []*model.Shift {
	var conflicts []*model.Shift
	for _, s := range existing {
		if s.ID == excludeID {
			continue
		}
		if s.Status == model.ShiftStatusCancelled {
			continue
		}
		if overlaps(s.StartTime, s.EndTime, start, end) {
			conflicts = append(conflicts, s)
		}
	}
	return conflicts
}

// bookedHeadcount sums the capacity consumed by non-cancelled tickets.
// Tickets are assumed pre-filtered to one pool and one exact date key.
func bookedHeadcount(tickets []*model.PoolTicket) int {
	booked := 0
	for _, t := range tickets {
		if !t.ConsumesCapacity() {
			continue
		}
		booked += t.Headcount()
	}
	return booked
}
