// Package repository implements the data access layer for the resort API.
//
// The repository package contains all database operations using SurrealDB.
// Each repository struct handles CRUD operations for a specific domain
// entity and satisfies the repository interface its service defines.
//
// # Repository Pattern
//
// All repositories follow a consistent pattern:
//
//   - Constructor function (NewXxxRepository) accepts a database connection
//   - Methods implement specific data operations (Create, GetByID, Update, ...)
//   - SurrealQL queries are used for all database interactions
//   - Results are parsed and mapped to model structs via a JSON roundtrip
//
// # Record IDs
//
// Records are created as type::thing(table, uuid), where the uuid is
// generated by the service layer. Record IDs are flattened on the way out
// so DTOs carry the bare UUID.
//
// # Guarded Writes
//
// Shift creation and ticket issuing re-check their preconditions inside the
// write transaction (database.GuardedBatch). The service-level check gives
// a friendly error early; the in-transaction guard is what actually holds
// the invariant under concurrency.
package repository
