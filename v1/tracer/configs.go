package tracer

import "os"

// Config controls the OpenTelemetry tracer provider.
type Config struct {
	// ServiceName becomes the service.name resource attribute.
	ServiceName string `yaml:"service_name" env:"TRACER_SERVICE_NAME"`

	// AppEnv becomes the deployment.environment resource attribute.
	AppEnv string `yaml:"app_env" env:"APP_ENV"`

	// EnableExport sends spans to an OTLP/HTTP collector. The collector is
	// configured through the standard OTEL_EXPORTER_OTLP_* variables.
	EnableExport bool `yaml:"enable_export" env:"TRACER_ENABLE_EXPORT"`
}

// NewConfig reads the tracer configuration from the environment.
func NewConfig() Config {
	name := os.Getenv("TRACER_SERVICE_NAME")
	if name == "" {
		name = "vectorindex"
	}
	return Config{
		ServiceName:  name,
		AppEnv:       os.Getenv("APP_ENV"),
		EnableExport: os.Getenv("TRACER_ENABLE_EXPORT") == "true",
	}
}
