// Package tracer provides OpenTelemetry tracing for search operations.
//
// [NewClient] configures an SDK tracer provider, optionally exporting spans
// over OTLP/HTTP, and registers it globally. Search code starts spans with
// [Tracer.StartSpan] and annotates them with [Tracer.SetAttributes] and
// [Tracer.RecordErrorOnSpan]:
//
//	ctx, span := t.StartSpan(ctx, "vectorindex.top_n")
//	defer span.End()
//	t.SetAttributes(span, map[string]interface{}{"table": "docs", "limit": 5})
package tracer
