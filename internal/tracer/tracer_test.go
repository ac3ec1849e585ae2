package tracer

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/hb-chen/safeskill/pkg/logger"
)

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	logger.ReplaceLogger(zap.New(core))
	t.Cleanup(func() { logger.ReplaceLogger(zap.NewNop()) })
	return logs
}

var span = Span{InvocationID: "inv-1", Skill: "test-safe-skill", Version: "1.0.0", Input: "hi"}

func TestLogTracerLevels(t *testing.T) {
	ctx := context.Background()

	t.Run("minimal logs only errors", func(t *testing.T) {
		logs := observe(t)
		tr := NewLogTracer(LevelMinimal)

		require.NoError(t, tr.TraceStart(ctx, span))
		require.NoError(t, tr.TraceEnd(ctx, span, "success", time.Millisecond, nil))
		assert.Equal(t, 0, logs.Len())

		require.NoError(t, tr.TraceEnd(ctx, span, "", time.Millisecond, context.DeadlineExceeded))
		require.Equal(t, 1, logs.Len())
		assert.Equal(t, zapcore.ErrorLevel, logs.All()[0].Level)
	})

	t.Run("standard logs start and end", func(t *testing.T) {
		logs := observe(t)
		tr := NewLogTracer("")

		require.NoError(t, tr.TraceStart(ctx, span))
		require.NoError(t, tr.TraceEnd(ctx, span, "success", time.Millisecond, nil))
		assert.Equal(t, 2, logs.Len())
		assert.Equal(t, 1, logs.FilterMessageSnippet("status=success").Len())
	})

	t.Run("detailed logs truncated input", func(t *testing.T) {
		logs := observe(t)
		tr := NewLogTracer(LevelDetailed)

		long := span
		long.Input = string(make([]byte, 500))
		require.NoError(t, tr.TraceStart(ctx, long))

		inputs := logs.FilterMessageSnippet("Invocation input").All()
		require.Len(t, inputs, 1)
		assert.Contains(t, inputs[0].Message, "...")
	})
}

func TestTruncateInput(t *testing.T) {
	assert.Equal(t, "short", truncateInput("short"))

	ascii := strings.Repeat("a", maxLoggedInput+10)
	assert.Equal(t, strings.Repeat("a", maxLoggedInput)+"...", truncateInput(ascii))

	// multi-byte runes straddle the byte limit
	wide := strings.Repeat("é", maxLoggedInput+1)
	got := truncateInput(wide)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("é", maxLoggedInput)+"...", got)

	exact := strings.Repeat("世", maxLoggedInput)
	assert.Equal(t, exact, truncateInput(exact))
}

func TestNewDisabledIsNop(t *testing.T) {
	assert.IsType(t, NopTracer{}, New(false, LevelDetailed))
	assert.IsType(t, &LogTracer{}, New(true, LevelStandard))
}
