package telemetry

import (
	"context"
	"time"

	"github.com/louisbranch/touchline/internal/storage"
)

// Event types recorded across a session's life.
const (
	EventSessionFinished = "session_finished"
	EventNotesSaved      = "notes_saved"
)

// Emitter records operational telemetry events.
type Emitter struct {
	store storage.TelemetryStore
	clock func() time.Time
}

// NewEmitter creates a new telemetry emitter.
func NewEmitter(store storage.TelemetryStore) *Emitter {
	return &Emitter{store: store, clock: time.Now}
}

// Emit records a telemetry event. It is a no-op when the store is nil.
func (e *Emitter) Emit(ctx context.Context, evt storage.TelemetryEvent) error {
	if e == nil || e.store == nil {
		return nil
	}
	if evt.Timestamp.IsZero() {
		if e.clock == nil {
			evt.Timestamp = time.Now().UTC()
		} else {
			evt.Timestamp = e.clock().UTC()
		}
	}
	return e.store.AppendTelemetryEvent(ctx, evt)
}

// EmitSessionFinished records that a session was committed to history.
func (e *Emitter) EmitSessionFinished(ctx context.Context, sessionID, teamID string) error {
	return e.Emit(ctx, storage.TelemetryEvent{
		Type:      EventSessionFinished,
		SessionID: sessionID,
		TeamID:    teamID,
	})
}

// EmitNotesSaved records that post-session notes were written.
func (e *Emitter) EmitNotesSaved(ctx context.Context, sessionID, teamID string) error {
	return e.Emit(ctx, storage.TelemetryEvent{
		Type:      EventNotesSaved,
		SessionID: sessionID,
		TeamID:    teamID,
	})
}
