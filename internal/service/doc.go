// Package service implements the business logic layer for the resort API.
//
// The service package contains all domain logic: field validation, the
// shift-conflict and pool-capacity checks, per-entity status lifecycles and
// the derived aggregations behind statistics endpoints.
//
// # Service Pattern
//
// All services follow a consistent pattern:
//
//   - Constructor function (NewXxxService) accepts a config struct with
//     repository dependencies
//   - Methods validate input, apply guards, call the repository and return
//     the full DTO
//   - Errors are returned as *model.ServiceError carrying code, message and
//     HTTP status code, propagated unmodified to the caller
//   - Context is passed through for cancellation and request-scoped values
//
// # Repository Interfaces
//
// Services define their own repository interfaces, allowing:
//
//   - Easy mocking for unit tests
//   - Decoupling from the SurrealDB implementation in internal/repository
//   - An in-memory store (internal/repository/memory) for stateful tests
//
// # Lifecycle Guards
//
// Entity status changes go through named transition methods backed by the
// tables in transition.go; there is no generic set-status operation. An
// illegal transition fails with INVALID_STATUS and names both statuses.
//
// # Side Channels
//
// Activity logging and event emission are best-effort: failures are logged
// and swallowed, never surfaced as the primary result.
package service
