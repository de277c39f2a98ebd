package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Shared field-level checks. Every check returns nil on success or a
// FieldError carrying the violated field's machine code, so request
// Validate() methods stay declarative.

// DateKeyLayout is the exact-date key used by capacity lookups and daily
// series ("2024-01-31").
const DateKeyLayout = "2006-01-02"

// CheckUUID verifies value is the canonical textual UUID form.
func CheckUUID(field, code, value string) *FieldError {
	if len(value) != 36 {
		return &FieldError{Field: field, Code: code, Message: "must be a canonical UUID"}
	}
	if _, err := uuid.Parse(value); err != nil {
		return &FieldError{Field: field, Code: code, Message: "must be a canonical UUID"}
	}
	return nil
}

// CheckEnum verifies value is a member of the fixed allow-list.
func CheckEnum(field, code, value string, allowed ...string) *FieldError {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return &FieldError{
		Field:   field,
		Code:    code,
		Message: fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
	}
}

// CheckIntRange verifies lo <= v <= hi.
func CheckIntRange(field, code string, v, lo, hi int) *FieldError {
	if v < lo || v > hi {
		return &FieldError{
			Field:   field,
			Code:    code,
			Message: fmt.Sprintf("must be between %d and %d", lo, hi),
		}
	}
	return nil
}

// ParseInstant parses an RFC 3339 timestamp.
func ParseInstant(field, code, value string) (time.Time, *FieldError) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, &FieldError{Field: field, Code: code, Message: "must be an RFC 3339 timestamp"}
	}
	return t, nil
}

// ParseDateKey parses an exact-date key such as "2024-01-31".
func ParseDateKey(field, code, value string) (string, *FieldError) {
	t, err := time.Parse(DateKeyLayout, value)
	if err != nil {
		return "", &FieldError{Field: field, Code: code, Message: "must be a date in YYYY-MM-DD form"}
	}
	return t.Format(DateKeyLayout), nil
}

// CheckRangePair verifies start < end. Touching instants are rejected: an
// empty range books nothing.
func CheckRangePair(field, code string, start, end time.Time) *FieldError {
	if !start.Before(end) {
		return &FieldError{Field: field, Code: code, Message: "end must be after start"}
	}
	return nil
}

// ParseMoney parses a positive decimal amount given as a string. Amounts
// travel as strings end to end to avoid float drift.
func ParseMoney(field, code, value string) (decimal.Decimal, *FieldError) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, &FieldError{Field: field, Code: code, Message: "must be a decimal amount"}
	}
	if d.Sign() <= 0 {
		return decimal.Zero, &FieldError{Field: field, Code: code, Message: "must be greater than zero"}
	}
	return d, nil
}

// ParsePercent parses a decimal percentage in [0,100].
func ParsePercent(field, code, value string) (decimal.Decimal, *FieldError) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, &FieldError{Field: field, Code: code, Message: "must be a decimal percentage"}
	}
	if d.Sign() < 0 || d.GreaterThan(decimal.NewFromInt(100)) {
		return decimal.Zero, &FieldError{Field: field, Code: code, Message: "must be between 0 and 100"}
	}
	return d, nil
}
