package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldEvent is the standardized structured logging key for event identifiers.
	FieldEvent = "event"
	// FieldRecipient is the standardized structured logging key for recipient descriptions.
	FieldRecipient = "recipient"
	// FieldProjectID is the standardized structured logging key for project identifiers.
	FieldProjectID = "project_id"
	// FieldTaskID is the standardized structured logging key for task identifiers.
	FieldTaskID = "task_id"
	// FieldDispatchID is the standardized structured logging key for dispatch correlation identifiers.
	FieldDispatchID = "dispatch_id"
)

type dispatchIDKey struct{}

// WithDispatchID stores a dispatch correlation identifier in the context.
func WithDispatchID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, dispatchIDKey{}, id)
}

// DispatchIDFromContext extracts the dispatch correlation identifier, if set.
func DispatchIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(dispatchIDKey{}).(string)
	return id, ok && id != ""
}

// WithContext returns a logger augmented with structured fields derived from
// the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	if id, ok := DispatchIDFromContext(ctx); ok {
		return logger.With(slog.String(FieldDispatchID, id))
	}
	return logger
}
