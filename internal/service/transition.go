package service

import "github.com/palmbay/resort/api/internal/model"

// Per-entity lifecycle tables. The key is the current status, the value the
// set of statuses reachable from it. Absent keys are terminal. Transitions
// are never silently coerced: anything not in the table is rejected.

type transitions map[string][]string

func (t transitions) allowed(current, next string) bool {
	for _, s := range t[current] {
		if s == next {
			return true
		}
	}
	return false
}

// guardTransition returns an INVALID_STATUS error naming both statuses when
// the move is not in the entity's table.
func guardTransition(entity string, table transitions, current, next string) error {
	if !table.allowed(current, next) {
		return model.NewInvalidStatusError(entity, current, next)
	}
	return nil
}

var paymentTransitions = transitions{
	string(model.PaymentStatusPending): {
		string(model.PaymentStatusCompleted),
		string(model.PaymentStatusFailed),
		string(model.PaymentStatusCancelled),
	},
	// refunded is reachable from completed only
	string(model.PaymentStatusCompleted): {
		string(model.PaymentStatusRefunded),
	},
}

var shiftTransitions = transitions{
	string(model.ShiftStatusScheduled): {
		string(model.ShiftStatusInProgress),
		string(model.ShiftStatusCancelled),
		string(model.ShiftStatusNoShow),
	},
	string(model.ShiftStatusInProgress): {
		string(model.ShiftStatusCompleted),
	},
}

var swapTransitions = transitions{
	string(model.SwapStatusPending): {
		string(model.SwapStatusApproved),
		string(model.SwapStatusRejected),
		string(model.SwapStatusCancelled),
	},
}

var packageTransitions = transitions{
	string(model.PackageStatusDraft): {
		string(model.PackageStatusActive),
	},
	string(model.PackageStatusActive): {
		string(model.PackageStatusInactive),
		string(model.PackageStatusSoldOut), // system-triggered at redemption limit
		string(model.PackageStatusExpired),
	},
	string(model.PackageStatusInactive): {
		string(model.PackageStatusActive),
		string(model.PackageStatusExpired),
	},
}

var ticketTransitions = transitions{
	string(model.TicketStatusIssued): {
		string(model.TicketStatusRedeemed),
		string(model.TicketStatusCancelled),
		string(model.TicketStatusExpired),
	},
}

var orderTransitions = transitions{
	string(model.OrderStatusPending): {
		string(model.OrderStatusPreparing),
		string(model.OrderStatusCancelled),
	},
	string(model.OrderStatusPreparing): {
		string(model.OrderStatusDelivered),
		string(model.OrderStatusCancelled),
	},
}

var documentTransitions = transitions{
	string(model.DocumentStatusDraft): {
		string(model.DocumentStatusPublished),
	},
	string(model.DocumentStatusPublished): {
		string(model.DocumentStatusArchived),
	},
}
