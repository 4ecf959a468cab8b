package logger

import "os"

const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// Config controls level, service tagging and trace correlation of the logger.
type Config struct {
	// Level is one of debug, info, warning, error. Anything else means info.
	Level string `yaml:"level" env:"ZAP_LOGGER_LEVEL"`

	// ServiceName is attached to every entry as "service".
	ServiceName string `yaml:"service_name" env:"SERVICE_NAME"`

	// EnableTracing adds trace_id and span_id to *WithContext entries.
	EnableTracing bool `yaml:"enable_tracing" env:"LOGGER_ENABLE_TRACING"`
}

// NewConfig reads the logger configuration from the environment.
func NewConfig() Config {
	return Config{
		Level:         getEnv("ZAP_LOGGER_LEVEL", Info),
		ServiceName:   getEnv("SERVICE_NAME", "vectorindex"),
		EnableTracing: os.Getenv("LOGGER_ENABLE_TRACING") == "true",
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
