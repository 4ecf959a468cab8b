package embedding

import (
	"fmt"
	"os"
	"strconv"
)

// Provider names accepted in Config.Provider.
const (
	ProviderInference = "inference"
	ProviderOpenAI    = "openai"
)

// EMBEDDING_ENDPOINT must point to the root of the OpenAI-compatible inference
// service (no /embeddings appended). The provider appends paths itself.

type Config struct {
	Provider     string // "inference" (default) or "openai"
	Endpoint     string // Base URL; optional for openai
	ServiceToken string // Bearer token or OpenAI API key
	Model        string // Embedding model name
	Dimensions   int    // Requested output size, 0 for the model default
	HTTPTimeoutS int    // HTTP timeout seconds (default 30)
}

// NewConfig reads from environment variables.
func NewConfig() *Config {
	provider := os.Getenv("EMBEDDING_PROVIDER")
	if provider == "" {
		provider = ProviderInference
	}

	return &Config{
		Provider:     provider,
		Endpoint:     os.Getenv("EMBEDDING_ENDPOINT"),
		ServiceToken: os.Getenv("EMBEDDING_SERVICE_TOKEN"),
		Model:        os.Getenv("EMBEDDING_MODEL"),
		Dimensions:   envInt("EMBEDDING_DIMENSIONS", 0),
		HTTPTimeoutS: envInt("EMBEDDING_HTTP_TIMEOUT_SECONDS", 30),
	}
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return fallback
}

// Validate ensures required fields are present.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderInference, "":
		if c.Endpoint == "" {
			return fmt.Errorf("embedding: missing EMBEDDING_ENDPOINT")
		}
	case ProviderOpenAI:
	default:
		return fmt.Errorf("embedding: unknown provider %q", c.Provider)
	}
	if c.ServiceToken == "" {
		return fmt.Errorf("embedding: missing EMBEDDING_SERVICE_TOKEN")
	}
	if c.Model == "" {
		return fmt.Errorf("embedding: missing EMBEDDING_MODEL")
	}
	if c.Dimensions < 0 {
		return fmt.Errorf("embedding: dimensions must not be negative")
	}
	return nil
}
