package tracer

import (
	"context"
	"time"

	"github.com/hb-chen/safeskill/pkg/logger"
)

const maxLoggedInput = 200

// LogTracer implements ExecutionTracer using the package logger
type LogTracer struct {
	level string // minimal, standard, detailed
}

// NewLogTracer creates a new log tracer
func NewLogTracer(level string) *LogTracer {
	if level == "" {
		level = LevelStandard
	}
	return &LogTracer{level: level}
}

func (l *LogTracer) TraceStart(ctx context.Context, span Span) error {
	if l.level == LevelMinimal {
		return nil
	}
	logger.Infof("[Tracer] Invocation started: id=%s, skill=%s@%s", span.InvocationID, span.Skill, span.Version)
	if l.level == LevelDetailed {
		logger.Debugf("[Tracer] Invocation input: id=%s, input=%s", span.InvocationID, truncateInput(span.Input))
	}
	return nil
}

func (l *LogTracer) TraceEnd(ctx context.Context, span Span, status string, duration time.Duration, err error) error {
	// Errors are logged at every level
	if err != nil {
		logger.Errorf("[Tracer] Invocation failed: id=%s, skill=%s, duration=%v, error=%v",
			span.InvocationID, span.Skill, duration, err)
		return nil
	}
	if l.level == LevelMinimal {
		return nil
	}
	logger.Infof("[Tracer] Invocation completed: id=%s, skill=%s, status=%s, duration=%v",
		span.InvocationID, span.Skill, status, duration)
	return nil
}

func (l *LogTracer) Close() error {
	return nil
}

// truncateInput keeps the first maxLoggedInput runes of s
func truncateInput(s string) string {
	n := 0
	for i := range s {
		if n == maxLoggedInput {
			return s[:i] + "..."
		}
		n++
	}
	return s
}
