package logging

import "context"

type contextKey string

const (
	runIDKey     contextKey = "run_id"
	iterationKey contextKey = "iteration"
)

// WithRunID attaches a sampling run identifier to the context so every log
// entry emitted during that run carries it.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// GetRunID extracts the run identifier from the context, if any.
func GetRunID(ctx context.Context) (string, bool) {
	runID, ok := ctx.Value(runIDKey).(string)
	return runID, ok
}

// WithIteration attaches the current sampler iteration to the context.
func WithIteration(ctx context.Context, iter int64) context.Context {
	return context.WithValue(ctx, iterationKey, iter)
}

// GetIteration extracts the sampler iteration from the context, if any.
func GetIteration(ctx context.Context) (int64, bool) {
	iter, ok := ctx.Value(iterationKey).(int64)
	return iter, ok
}
