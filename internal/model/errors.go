package model

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Cross-cutting error codes. Entity-specific codes (PAYMENT_NOT_FOUND,
// INVALID_STAFF_ID, ...) are passed as literals at the point of detection.
const (
	CodeInvalidStatus        = "INVALID_STATUS"
	CodeShiftConflict        = "SHIFT_CONFLICT"
	CodeInsufficientCapacity = "INSUFFICIENT_CAPACITY"
	CodeDuplicateCode        = "DUPLICATE_CODE"
	CodeDuplicatePath        = "DUPLICATE_PATH"
)

// ServiceError is the error contract surfaced to the HTTP layer. The status
// code maps directly onto the response; code and message go into the JSON
// error envelope.
type ServiceError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

// Error implements the error interface
func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// FieldError represents a validation error on a specific field
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewValidationError builds a ServiceError from field-level validation
// failures. The first field's code becomes the error code; all messages are
// joined so nothing is lost when several fields fail at once.
func NewValidationError(fields []FieldError) *ServiceError {
	if len(fields) == 0 {
		return &ServiceError{
			Code:       "INVALID_INPUT",
			Message:    "one or more fields failed validation",
			StatusCode: http.StatusBadRequest,
		}
	}
	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return &ServiceError{
		Code:       fields[0].Code,
		Message:    strings.Join(msgs, "; "),
		StatusCode: http.StatusBadRequest,
	}
}

// NewInvalidInputError reports a single out-of-policy input that is not tied
// to a request struct (e.g. a bare id argument).
func NewInvalidInputError(code, message string) *ServiceError {
	return &ServiceError{Code: code, Message: message, StatusCode: http.StatusBadRequest}
}

// NewNotFoundError reports a reference that did not resolve.
func NewNotFoundError(code, resource string) *ServiceError {
	return &ServiceError{
		Code:       code,
		Message:    fmt.Sprintf("%s not found", resource),
		StatusCode: http.StatusNotFound,
	}
}

// NewConflictError reports a business conflict (overlap, duplicate key).
func NewConflictError(code, message string) *ServiceError {
	return &ServiceError{Code: code, Message: message, StatusCode: http.StatusConflict}
}

// NewInvalidStatusError reports an illegal lifecycle transition. Both the
// current and the attempted status are named in the message.
func NewInvalidStatusError(entity, current, attempted string) *ServiceError {
	return &ServiceError{
		Code:       CodeInvalidStatus,
		Message:    fmt.Sprintf("%s cannot move from status %q to %q", entity, current, attempted),
		StatusCode: http.StatusBadRequest,
	}
}

// NewCapacityError reports a headcount that would breach declared capacity.
func NewCapacityError(requested, booked, capacity int) *ServiceError {
	return &ServiceError{
		Code:       CodeInsufficientCapacity,
		Message:    fmt.Sprintf("requested %d guests but only %d of %d places remain", requested, capacity-booked, capacity),
		StatusCode: http.StatusConflict,
	}
}

// CodeOf returns the machine-readable code of err, or "" when err is not a
// ServiceError.
func CodeOf(err error) string {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// IsCode reports whether err is a ServiceError with the given code.
func IsCode(err error, code string) bool {
	return CodeOf(err) == code
}
