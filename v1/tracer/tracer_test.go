package tracer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/Aleph-Alpha/vectorindex/v1/logger"
)

func TestTracer_SpanLifecycle(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tr := NewWithProvider(tp, logger.NewNop())

	_, span := tr.StartSpan(context.Background(), "vectorindex.top_n")
	tr.SetAttributes(span, map[string]interface{}{
		"table": "docs",
		"limit": 5,
		"exact": true,
	})
	tr.RecordErrorOnSpan(span, errors.New("store down"))
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "vectorindex.top_n", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Contains(t, spans[0].Attributes(), attribute.String("table", "docs"))
	assert.Contains(t, spans[0].Attributes(), attribute.Int("limit", 5))
	assert.Contains(t, spans[0].Attributes(), attribute.Bool("exact", true))

	require.NoError(t, tr.Shutdown(context.Background()))
}

func TestTracer_NilShutdown(t *testing.T) {
	var tr *Tracer
	assert.NoError(t, tr.Shutdown(context.Background()))
}
