// Package database provides the database abstraction layer for the resort
// API.
//
// The Database interface abstracts SurrealDB operations so repositories stay
// decoupled from the driver:
//   - Query: returns multiple results (SELECT lists)
//   - QueryOne: returns a single result (SELECT by ID)
//   - Execute: no return value (mutations)
//
// # Transactions
//
// Transactions here are BATCH-BASED, not connection-level. BeginTx()
// accumulates queries in memory; Commit() wraps them in
// BEGIN TRANSACTION / COMMIT TRANSACTION and sends them as one atomic
// statement. There is no isolation between Add() calls, and Rollback()
// just discards the pending batch. Guarded writes (capacity checks, shift
// conflict checks) use this to keep the check and the write in one atomic
// round trip.
//
// # Error Handling
//
// Standard errors cover the common failure cases. Check them with
// errors.Is():
//
//	if errors.Is(err, database.ErrNotFound) { ... }
package database

import (
	"context"
	"errors"
)

// Standard errors for database operations.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate indicates a unique constraint violation.
	ErrDuplicate = errors.New("duplicate record")

	// ErrConnection indicates a failure to connect to or communicate with the database.
	ErrConnection = errors.New("database connection error")

	// ErrQuery indicates a query execution failure.
	ErrQuery = errors.New("query error")

	// ErrGuardFailed indicates a guarded transactional write was refused by
	// its in-database precondition.
	ErrGuardFailed = errors.New("transaction guard failed")
)

// Database defines the interface for database operations
type Database interface {
	// Connection management
	Connect(ctx context.Context) error
	Close() error
	Ping(ctx context.Context) error

	// Query executes a query and returns results
	Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error)

	// QueryOne executes a query and returns a single result
	QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error)

	// Execute runs a query without returning results (for mutations)
	Execute(ctx context.Context, query string, vars map[string]interface{}) error

	// Transaction support
	BeginTx(ctx context.Context) (Transaction, error)
}

// Transaction represents a batch-based database transaction
type Transaction interface {
	Execute(ctx context.Context, query string, vars map[string]interface{}) error
	Commit() error
	Rollback() error
}

// Config holds database configuration
type Config struct {
	Host      string
	Port      string
	User      string
	Password  string
	Namespace string
	Database  string
}
