package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus constants
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusCancelled PaymentStatus = "cancelled"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// PaymentMethod constants
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodRoomCharge   PaymentMethod = "room_charge"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
)

// ReferenceType discriminates what a payment settles. New kinds must be
// added here and to referenceTypes below so validation stays exhaustive.
type ReferenceType string

const (
	ReferenceTypeBooking    ReferenceType = "booking"
	ReferenceTypePoolTicket ReferenceType = "pool_ticket"
	ReferenceTypeSnackOrder ReferenceType = "snack_order"
	ReferenceTypePackage    ReferenceType = "package"
)

// Currencies accepted at the property.
const (
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
	CurrencyGBP = "GBP"
	CurrencyTHB = "THB"
)

// PaymentReference is the tagged link from a payment to the thing it pays
// for. The type discriminant plus an opaque id, never a loose string pair.
type PaymentReference struct {
	Type ReferenceType `json:"type"`
	ID   string        `json:"id"`
}

// Payment represents a money transaction against a booking, pool ticket,
// snack order or package purchase.
type Payment struct {
	ID             string           `json:"id"`
	Reference      PaymentReference `json:"reference"`
	Amount         decimal.Decimal  `json:"amount"`
	Currency       string           `json:"currency"`
	Method         PaymentMethod    `json:"method"`
	Status         PaymentStatus    `json:"status"`
	RefundedAmount decimal.Decimal  `json:"refunded_amount"`
	Notes          *string          `json:"notes,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// CreatePaymentRequest carries the fields for registering a payment.
type CreatePaymentRequest struct {
	ReferenceType string  `json:"reference_type"`
	ReferenceID   string  `json:"reference_id"`
	Amount        string  `json:"amount"`
	Currency      string  `json:"currency"`
	Method        string  `json:"method"`
	Notes         *string `json:"notes,omitempty"`
}

// Validate checks all fields and returns every violation found.
func (r *CreatePaymentRequest) Validate() []FieldError {
	var errs []FieldError

	if fe := CheckEnum("reference_type", "INVALID_REFERENCE_TYPE", r.ReferenceType,
		string(ReferenceTypeBooking), string(ReferenceTypePoolTicket),
		string(ReferenceTypeSnackOrder), string(ReferenceTypePackage)); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := CheckUUID("reference_id", "INVALID_REFERENCE_ID", r.ReferenceID); fe != nil {
		errs = append(errs, *fe)
	}
	if _, fe := ParseMoney("amount", "INVALID_AMOUNT", r.Amount); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := CheckEnum("currency", "INVALID_CURRENCY", r.Currency,
		CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyTHB); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := CheckEnum("method", "INVALID_METHOD", r.Method,
		string(PaymentMethodCash), string(PaymentMethodCard),
		string(PaymentMethodRoomCharge), string(PaymentMethodBankTransfer)); fe != nil {
		errs = append(errs, *fe)
	}
	return errs
}

// PaymentFilter narrows List queries. StartDate/EndDate are inclusive
// exact-date keys.
type PaymentFilter struct {
	Status    *PaymentStatus `json:"status,omitempty"`
	Method    *PaymentMethod `json:"method,omitempty"`
	StartDate string         `json:"start_date,omitempty"`
	EndDate   string         `json:"end_date,omitempty"`
	Limit     int            `json:"limit"`
	Offset    int            `json:"offset"`
}

// Validate bounds pagination and checks the optional filter fields.
func (f *PaymentFilter) Validate() []FieldError {
	var errs []FieldError

	if fe := CheckIntRange("limit", "INVALID_LIMIT", f.Limit, 1, MaxPageLimit); fe != nil {
		errs = append(errs, *fe)
	}
	if f.Offset < 0 {
		errs = append(errs, FieldError{Field: "offset", Code: "INVALID_OFFSET", Message: "must not be negative"})
	}
	if f.Status != nil {
		if fe := CheckEnum("status", "INVALID_PAYMENT_STATUS", string(*f.Status),
			string(PaymentStatusPending), string(PaymentStatusCompleted), string(PaymentStatusFailed),
			string(PaymentStatusCancelled), string(PaymentStatusRefunded)); fe != nil {
			errs = append(errs, *fe)
		}
	}
	if f.Method != nil {
		if fe := CheckEnum("method", "INVALID_METHOD", string(*f.Method),
			string(PaymentMethodCash), string(PaymentMethodCard),
			string(PaymentMethodRoomCharge), string(PaymentMethodBankTransfer)); fe != nil {
			errs = append(errs, *fe)
		}
	}
	if f.StartDate != "" {
		if _, fe := ParseDateKey("start_date", "INVALID_START_DATE", f.StartDate); fe != nil {
			errs = append(errs, *fe)
		}
	}
	if f.EndDate != "" {
		if _, fe := ParseDateKey("end_date", "INVALID_END_DATE", f.EndDate); fe != nil {
			errs = append(errs, *fe)
		}
	}
	return errs
}

// MaxPageLimit bounds list pagination.
const MaxPageLimit = 100

// PaymentPage is one page of a payment listing.
type PaymentPage struct {
	Payments []*Payment `json:"payments"`
	HasMore  bool       `json:"has_more"`
}

// PaymentStats aggregates an already-fetched payment list.
type PaymentStats struct {
	TotalRevenue            string                `json:"total_revenue"`
	TotalTransactions       int                   `json:"total_transactions"`
	AverageTransactionValue string                `json:"average_transaction_value"`
	ByStatus                map[PaymentStatus]int `json:"by_status"`
	ByMethod                map[PaymentMethod]int `json:"by_method"`
}

// DailyRevenuePoint is one day of the gap-filled revenue series.
type DailyRevenuePoint struct {
	Date   string `json:"date"`
	Amount string `json:"amount"`
	Count  int    `json:"count"`
}
