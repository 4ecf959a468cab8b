package qdrant

import (
	"context"
	"fmt"

	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/Aleph-Alpha/vectorindex/v1/logger"
)

//
// ──────────────────────────────────────────────────────────────
//   QDRANT CLIENT WRAPPER
// ──────────────────────────────────────────────────────────────
//
// Thin wrapper around the official Qdrant Go client. It owns the gRPC
// connection, checks the server on startup and offers the collection
// management used to bootstrap and seed collections.
//

// QdrantClient wraps the official Qdrant Go client.
type QdrantClient struct {
	api    *qdrant.Client
	cfg    *Config
	logger logger.Logger
}

// NewQdrantClient ──────────────────────────────────────────────────────────────
// NewQdrantClient
// ──────────────────────────────────────────────────────────────
//
// NewQdrantClient connects to Qdrant and validates connectivity with a
// health check, so an unreachable server fails at startup instead of on the
// first search.
//
// Example:
//
//	client, err := qdrant.NewQdrantClient(qdrant.FromEndpoint("localhost"), log)
func NewQdrantClient(cfg *Config, log logger.Logger) (*QdrantClient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.NewNop()
	}

	port := cfg.Port
	if port == 0 {
		port = DefaultPort
	}

	log.Info("[Qdrant] Connecting", nil, map[string]interface{}{
		"endpoint": cfg.Endpoint,
		"port":     port,
	})

	api, err := qdrant.NewClient(&qdrant.Config{
		Host:                   cfg.Endpoint,
		Port:                   port,
		APIKey:                 cfg.ApiKey,
		UseTLS:                 cfg.UseTLS,
		SkipCompatibilityCheck: !cfg.CheckCompatibility,
	})
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] failed to initialize client: %w", err)
	}

	qc := &QdrantClient{api: api, cfg: cfg, logger: log}

	if err := qc.healthCheck(context.Background()); err != nil {
		_ = api.Close()
		return nil, err
	}

	log.Info("[Qdrant] Client connected successfully", nil)
	return qc, nil
}

// ──────────────────────────────────────────────────────────────
// healthCheck
// ──────────────────────────────────────────────────────────────
//
// healthCheck calls the Qdrant health endpoint, bounded by Config.Timeout.
func (c *QdrantClient) healthCheck(ctx context.Context) error {
	if c.api == nil {
		return fmt.Errorf("[Qdrant] client not initialized")
	}

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	resp, err := c.api.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("[Qdrant] health check failed: %w", err)
	}

	c.logger.Debug("[Qdrant] Health check passed", nil, map[string]interface{}{
		"title":    resp.GetTitle(),
		"version":  resp.GetVersion(),
		"endpoint": c.cfg.Endpoint,
	})
	return nil
}

// Client returns the underlying Qdrant SDK client.
func (c *QdrantClient) Client() *qdrant.Client {
	return c.api
}

// Close releases the gRPC connection.
func (c *QdrantClient) Close() error {
	if c.api == nil {
		return nil
	}
	c.logger.Info("[Qdrant] Closing client", nil)
	if err := c.api.Close(); err != nil {
		return fmt.Errorf("[Qdrant] failed to close client: %w", err)
	}
	return nil
}
