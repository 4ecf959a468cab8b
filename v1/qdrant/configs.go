package qdrant

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds connection settings for the Qdrant client and the collection
// a Table reads from.
//
// Example (programmatic):
//
//	cfg := qdrant.DefaultConfig()
//	cfg.Endpoint = "qdrant.internal"
//	cfg.Collection = "documents"
//
// Example (builder style):
//
//	cfg := qdrant.FromEndpoint("qdrant.internal").
//	    WithApiKey(os.Getenv("QDRANT_API_KEY")).
//	    WithCollection("documents")
type Config struct {
	// Hostname of the Qdrant server, e.g. "localhost".
	Endpoint string `yaml:"endpoint" env:"QDRANT_ENDPOINT"`

	// gRPC port of the Qdrant server. Defaults to 6334.
	Port int `yaml:"port" env:"QDRANT_PORT"`

	// Optional authentication token for secured deployments.
	ApiKey string `yaml:"api_key" env:"QDRANT_API_KEY"`

	// UseTLS enables TLS on the gRPC connection.
	UseTLS bool `yaml:"use_tls" env:"QDRANT_USE_TLS"`

	// Collection searched by the Table.
	Collection string `yaml:"collection" env:"QDRANT_COLLECTION"`

	// IDColumn is the column name under which point ids are exposed.
	IDColumn string `yaml:"id_column" env:"QDRANT_ID_COLUMN"`

	// Timeout bounds the startup health check.
	Timeout time.Duration `yaml:"timeout" env:"QDRANT_TIMEOUT"`

	// Whether to perform version compatibility checks between client and server.
	CheckCompatibility bool `yaml:"check_compatibility" env:"QDRANT_CHECK_COMPATIBILITY"`
}

const (
	DefaultPort     = 6334
	DefaultIDColumn = "id"
)

// DefaultConfig provides sensible defaults for most use cases.
func DefaultConfig() *Config {
	return &Config{
		Endpoint:           "localhost",
		Port:               DefaultPort,
		IDColumn:           DefaultIDColumn,
		Timeout:            5 * time.Second,
		CheckCompatibility: true,
	}
}

// NewConfig starts from DefaultConfig and applies QDRANT_* environment
// variables on top.
func NewConfig() *Config {
	cfg := DefaultConfig()
	if v := os.Getenv("QDRANT_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v, err := strconv.Atoi(os.Getenv("QDRANT_PORT")); err == nil {
		cfg.Port = v
	}
	cfg.ApiKey = os.Getenv("QDRANT_API_KEY")
	if v, err := strconv.ParseBool(os.Getenv("QDRANT_USE_TLS")); err == nil {
		cfg.UseTLS = v
	}
	cfg.Collection = os.Getenv("QDRANT_COLLECTION")
	if v := os.Getenv("QDRANT_ID_COLUMN"); v != "" {
		cfg.IDColumn = v
	}
	if v, err := time.ParseDuration(os.Getenv("QDRANT_TIMEOUT")); err == nil {
		cfg.Timeout = v
	}
	if v, err := strconv.ParseBool(os.Getenv("QDRANT_CHECK_COMPATIBILITY")); err == nil {
		cfg.CheckCompatibility = v
	}
	return cfg
}

// Validate reports missing or out of range settings.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("[Qdrant] endpoint is required")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("[Qdrant] invalid port %d", c.Port)
	}
	return nil
}

// FromEndpoint returns a default config pre-filled with a specific endpoint.
func FromEndpoint(host string) *Config {
	cfg := DefaultConfig()
	cfg.Endpoint = host
	return cfg
}

// Builder-style helpers
func (c *Config) WithApiKey(key string) *Config {
	c.ApiKey = key
	return c
}

func (c *Config) WithPort(port int) *Config {
	c.Port = port
	return c
}

func (c *Config) WithTLS(enabled bool) *Config {
	c.UseTLS = enabled
	return c
}

func (c *Config) WithCollection(name string) *Config {
	c.Collection = name
	return c
}

func (c *Config) WithIDColumn(name string) *Config {
	c.IDColumn = name
	return c
}

func (c *Config) WithTimeout(d time.Duration) *Config {
	c.Timeout = d
	return c
}

func (c *Config) WithCompatibilityCheck(enabled bool) *Config {
	c.CheckCompatibility = enabled
	return c
}
