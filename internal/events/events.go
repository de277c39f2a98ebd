// Package events carries fire-and-forget domain notifications out of the
// service layer. Emitters are best-effort by contract: the caller logs and
// swallows failures so a broken side channel can never fail the primary
// operation.
package events

import (
	"context"
	"time"
)

// Event describes a state change on a domain entity.
type Event struct {
	Type     string         `json:"type"`
	Entity   string         `json:"entity"`
	EntityID string         `json:"entity_id"`
	At       time.Time      `json:"at"`
	Data     map[string]any `json:"data,omitempty"`
}

// Emitter publishes events to interested consumers (staff dashboards,
// notification workers).
type Emitter interface {
	Emit(ctx context.Context, ev Event) error
}

// NopEmitter drops every event. Useful default for tests and deployments
// without a broker.
type NopEmitter struct{}

// Emit implements Emitter.
func (NopEmitter) Emit(context.Context, Event) error { return nil }
