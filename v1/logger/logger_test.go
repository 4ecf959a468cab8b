package logger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved(tracing bool) (*LoggerClient, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return NewWithZap(zap.New(core), tracing), logs
}

func spanContext(t *testing.T) context.Context {
	t.Helper()
	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	return trace.ContextWithSpanContext(context.Background(), sc)
}

func TestLoggerClient_FieldsAndError(t *testing.T) {
	log, logs := newObserved(false)

	log.Warn("id column missing", errors.New("boom"),
		map[string]interface{}{"table": "docs", "column": "id"},
		map[string]interface{}{"column": "doc_id"},
	)

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "id column missing", entries[0].Message)
	assert.Equal(t, "docs", fields["table"])
	assert.Equal(t, "doc_id", fields["column"])
	assert.Equal(t, "boom", fields["error"])
}

func TestLoggerClient_WithContextAddsTraceIDs(t *testing.T) {
	log, logs := newObserved(true)

	log.InfoWithContext(spanContext(t), "search", nil)

	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", fields["trace_id"])
	assert.Equal(t, "00f067aa0ba902b7", fields["span_id"])
}

func TestLoggerClient_TracingDisabled(t *testing.T) {
	log, logs := newObserved(false)

	log.ErrorWithContext(spanContext(t), "search failed", nil)

	fields := logs.All()[0].ContextMap()
	assert.NotContains(t, fields, "trace_id")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zap.DebugLevel, parseLevel(Debug))
	assert.Equal(t, zap.WarnLevel, parseLevel(Warning))
	assert.Equal(t, zap.ErrorLevel, parseLevel(Error))
	assert.Equal(t, zap.InfoLevel, parseLevel("verbose"))
}

func TestNewNop(t *testing.T) {
	assert.NotPanics(t, func() {
		NewNop().DebugWithContext(context.Background(), "ignored", nil)
	})
}
