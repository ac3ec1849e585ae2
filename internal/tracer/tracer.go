package tracer

import (
	"context"
	"time"
)

// Tracing levels understood by LogTracer
const (
	LevelMinimal  = "minimal"
	LevelStandard = "standard"
	LevelDetailed = "detailed"
)

// Span identifies one skill invocation
type Span struct {
	InvocationID string
	Skill        string
	Version      string
	Input        string
}

// ExecutionTracer interface for tracing skill invocations
type ExecutionTracer interface {
	// TraceStart records when an invocation is handed to a skill
	TraceStart(ctx context.Context, span Span) error

	// TraceEnd records when the caller stops waiting, with the settled status
	// or the error that ended the wait
	TraceEnd(ctx context.Context, span Span, status string, duration time.Duration, err error) error

	// Close closes the tracer and flushes any pending data
	Close() error
}

// New returns the tracer for the configured level, or a NopTracer when
// tracing is disabled
func New(enabled bool, level string) ExecutionTracer {
	if !enabled {
		return NopTracer{}
	}
	return NewLogTracer(level)
}

// NopTracer drops every event
type NopTracer struct{}

func (NopTracer) TraceStart(context.Context, Span) error { return nil }
func (NopTracer) TraceEnd(context.Context, Span, string, time.Duration, error) error {
	return nil
}
func (NopTracer) Close() error { return nil }
