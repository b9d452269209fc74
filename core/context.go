package core

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Context keys for run metadata
type contextKey string

const runIDKey contextKey = "runID"

// withRunID attaches a fresh run ID to the context unless one is already set.
func withRunID(ctx context.Context) context.Context {
	if getRunID(ctx) != "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, uuid.NewString())
}

// getRunID returns the run ID from context, or "" when none is set
func getRunID(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey).(string)
	return id
}

// runFields returns the log fields identifying the current run.
func runFields(ctx context.Context, fields ...zap.Field) []zap.Field {
	return append([]zap.Field{zap.String("run_id", getRunID(ctx))}, fields...)
}
