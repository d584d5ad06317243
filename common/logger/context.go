package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields contains structured fields automatically added to all logs within
// a context, so business context (session_id, actor_id, step) shows up in
// every statement without being threaded by hand.
type LogFields struct {
	SessionID *int64  // feedback session ID
	ActorID   *string // user performing the current submission
	Step      *int    // 1-based step being written
	Component string  // component name, e.g. "geurim.feedback"
}

// WithLogFields enriches context with structured log fields. Multiple calls
// merge, newer non-nil/non-empty values winning.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	merged := mergeFields(GetLogFields(ctx), fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from context, empty if none are set.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, next LogFields) LogFields {
	result := existing
	if next.SessionID != nil {
		result.SessionID = next.SessionID
	}
	if next.ActorID != nil {
		result.ActorID = next.ActorID
	}
	if next.Step != nil {
		result.Step = next.Step
	}
	if next.Component != "" {
		result.Component = next.Component
	}
	return result
}

// Ptr creates a pointer from a value, for setting LogFields inline.
func Ptr[T any](v T) *T {
	return &v
}
