// Package model defines domain entities and data structures for the resort API.
//
// The model package contains all struct definitions for domain objects,
// request types with field-level validation, and the typed error contract
// shared by every service.
//
// # Domain Entities
//
// Core domain entities include:
//
//   - Payment: money transaction linked to a booking, ticket or order
//   - Shift: staff work shift with conflict-checked time range
//   - SwapRequest: staff-initiated shift reassignment
//   - Package: stay package with lifecycle and redemption counter
//   - PoolTicket: capacity-limited pool admission for a date
//   - SnackItem / SnackOrder: poolside snack catalog and orders
//   - Document: uniquely-pathed content with a monotonic version
//
// # Validation
//
// Request structs expose Validate() []FieldError. Each FieldError carries a
// machine-readable code (INVALID_STAFF_ID, SHIFT_TOO_SHORT, ...) alongside
// the human message. Shared field-level checks live in validation.go.
//
// # Error Types
//
// Services surface *model.ServiceError, carrying the code, message and HTTP
// status code the (external) controller layer maps directly onto responses:
//
//	type ServiceError struct {
//	    Code       string `json:"code"`
//	    Message    string `json:"message"`
//	    StatusCode int    `json:"statusCode"`
//	}
package model
