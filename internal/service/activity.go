package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/palmbay/resort/api/internal/events"
)

// ActivityRecorder is the shared side channel for state changes: structured
// log line plus an emitted event. Both are best-effort; a failing emitter is
// logged at warn level and otherwise ignored. The zero value is usable and
// does nothing.
type ActivityRecorder struct {
	Logger  *slog.Logger
	Emitter events.Emitter
}

// Record logs and emits one state change. Never returns an error.
func (a *ActivityRecorder) Record(ctx context.Context, entity, entityID, action string, data map[string]any) {
	if a == nil {
		return
	}
	if a.Logger != nil {
		a.Logger.Info("activity", "entity", entity, "id", entityID, "action", action)
	}
	if a.Emitter == nil {
		return
	}
	ev := events.Event{
		Type:     entity + "." + action,
		Entity:   entity,
		EntityID: entityID,
		At:       time.Now().UTC(),
		Data:     data,
	}
	if err := a.Emitter.Emit(ctx, ev); err != nil && a.Logger != nil {
		a.Logger.Warn("activity emit failed", "type", ev.Type, "err", err)
	}
}
