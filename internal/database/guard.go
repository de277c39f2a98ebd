package database

// Guarded atomic writes.
//
// Check-then-write sequences (shift conflict checks, pool capacity checks)
// are racy when the check and the write travel in separate round trips.
// GuardedBatch keeps them in one transaction: guard statements THROW with a
// "guard:" prefix when their precondition fails, which aborts the whole
// batch and surfaces as ErrGuardFailed.

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// GuardedBatch accumulates guard and write statements for one atomic
// transaction. Variables are namespaced per statement so queries from
// different sources never collide.
type GuardedBatch struct {
	statements []batchStatement
	counter    int
}

type batchStatement struct {
	query string
	vars  map[string]interface{}
}

// NewGuardedBatch creates an empty batch.
func NewGuardedBatch() *GuardedBatch {
	return &GuardedBatch{}
}

// Guard adds a precondition: when cond evaluates truthy the transaction
// throws and nothing in the batch is applied.
func (b *GuardedBatch) Guard(cond string, vars map[string]interface{}, reason string) *GuardedBatch {
	stmt := fmt.Sprintf("IF (%s) { THROW \"guard: %s\" }", cond, reason)
	b.add(stmt, vars)
	return b
}

// Add appends a write statement to the batch.
func (b *GuardedBatch) Add(query string, vars map[string]interface{}) *GuardedBatch {
	b.add(query, vars)
	return b
}

func (b *GuardedBatch) add(query string, vars map[string]interface{}) {
	b.counter++

	// Longest names first so one name being a prefix of another (start,
	// start_time) never corrupts the longer placeholder.
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })

	namespaced := make(map[string]interface{}, len(vars))
	for _, name := range names {
		newName := fmt.Sprintf("v%d_%s", b.counter, name)
		query = strings.ReplaceAll(query, "$"+name, "$"+newName)
		namespaced[newName] = vars[name]
	}
	b.statements = append(b.statements, batchStatement{query: query, vars: namespaced})
}

// Build returns the complete transaction query and merged variables.
func (b *GuardedBatch) Build() (string, map[string]interface{}) {
	if len(b.statements) == 0 {
		return "", nil
	}

	vars := make(map[string]interface{})
	var sb strings.Builder
	sb.WriteString("BEGIN TRANSACTION;\n")
	for _, stmt := range b.statements {
		sb.WriteString(stmt.query)
		if !strings.HasSuffix(strings.TrimSpace(stmt.query), ";") {
			sb.WriteString(";")
		}
		sb.WriteString("\n")
		for name, value := range stmt.vars {
			vars[name] = value
		}
	}
	sb.WriteString("COMMIT TRANSACTION;")
	return sb.String(), vars
}

// Execute runs the batch through a database transaction. A failed guard
// surfaces as ErrGuardFailed.
func (b *GuardedBatch) Execute(ctx context.Context, db Database) error {
	if len(b.statements) == 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx)
	if err != nil {
		return err
	}
	for _, stmt := range b.statements {
		if err := tx.Execute(ctx, stmt.query, stmt.vars); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Len returns the number of statements in the batch.
func (b *GuardedBatch) Len() int {
	return len(b.statements)
}
