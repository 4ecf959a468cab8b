// Package logger provides structured logging on top of go.uber.org/zap.
//
// The package follows the "accept interfaces, return structs" pattern:
// [NewLoggerClient] returns a *[LoggerClient], and consumers depend on the
// [Logger] interface. Every method takes a message, an optional error and
// optional field maps:
//
//	log := logger.NewLoggerClient(logger.Config{Level: logger.Info, ServiceName: "search-api"})
//	log.Info("index ready", nil, map[string]interface{}{"table": "docs"})
//
// The *WithContext variants add trace_id and span_id from the OpenTelemetry
// span in ctx when Config.EnableTracing is set:
//
//	log.DebugWithContext(ctx, "search finished", nil, map[string]interface{}{"results": 5})
//
// Use [NewNop] where logging is optional, and [FXModule] to provide both the
// concrete client and the interface to an fx application.
package logger
