package model

import "time"

// Pool is a capacity-limited facility. Capacity is declared per pool and
// holds for each exact date key independently.
type Pool struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TicketStatus constants
type TicketStatus string

const (
	TicketStatusIssued    TicketStatus = "issued"
	TicketStatusRedeemed  TicketStatus = "redeemed"
	TicketStatusCancelled TicketStatus = "cancelled"
	TicketStatusExpired   TicketStatus = "expired"
)

// MaxTicketHeadcount bounds a single ticket's party size.
const MaxTicketHeadcount = 20

// PoolTicket admits a party to a pool on one date. The sum of headcounts of
// non-cancelled tickets for a pool+date never exceeds the pool's capacity.
type PoolTicket struct {
	ID      string `json:"id"`
	PoolID  string `json:"pool_id"`
	GuestID string `json:"guest_id"`
	// Date is the exact-date key ("2024-01-31") the capacity bucket uses.
	Date       string       `json:"date"`
	Adults     int          `json:"adults"`
	Children   int          `json:"children"`
	Infants    int          `json:"infants"`
	Status     TicketStatus `json:"status"`
	RedeemedAt *time.Time   `json:"redeemed_at,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// Headcount is the capacity this ticket consumes.
func (t *PoolTicket) Headcount() int {
	return t.Adults + t.Children + t.Infants
}

// ConsumesCapacity reports whether the ticket still counts against the
// pool's capacity bucket.
func (t *PoolTicket) ConsumesCapacity() bool {
	return t.Status != TicketStatusCancelled
}

// IssueTicketRequest carries the fields for issuing a pool ticket.
type IssueTicketRequest struct {
	PoolID   string `json:"pool_id"`
	GuestID  string `json:"guest_id"`
	Date     string `json:"date"`
	Adults   int    `json:"adults"`
	Children int    `json:"children"`
	Infants  int    `json:"infants"`
}

// Validate checks all fields and returns every violation found.
func (r *IssueTicketRequest) Validate() []FieldError {
	var errs []FieldError

	if fe := CheckUUID("pool_id", "INVALID_POOL_ID", r.PoolID); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := CheckUUID("guest_id", "INVALID_GUEST_ID", r.GuestID); fe != nil {
		errs = append(errs, *fe)
	}
	if _, fe := ParseDateKey("date", "INVALID_DATE", r.Date); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := CheckIntRange("adults", "INVALID_HEADCOUNT", r.Adults, 0, MaxTicketHeadcount); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := CheckIntRange("children", "INVALID_HEADCOUNT", r.Children, 0, MaxTicketHeadcount); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := CheckIntRange("infants", "INVALID_HEADCOUNT", r.Infants, 0, MaxTicketHeadcount); fe != nil {
		errs = append(errs, *fe)
	}
	if r.Adults+r.Children+r.Infants == 0 {
		errs = append(errs, FieldError{Field: "adults", Code: "INVALID_HEADCOUNT",
			Message: "ticket must admit at least one guest"})
	}
	return errs
}

// PoolCapacity reports how much of a pool's declared capacity a date has
// consumed.
type PoolCapacity struct {
	PoolID    string `json:"pool_id"`
	Date      string `json:"date"`
	Capacity  int    `json:"capacity"`
	Booked    int    `json:"booked"`
	Available int    `json:"available"`
}
