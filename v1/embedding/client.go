package embedding

import (
	"context"
	"errors"
	"fmt"

	"github.com/Aleph-Alpha/vectorindex/v1/vectordb"
)

// Client is the public entrypoint for computing embeddings. It implements
// vectordb.EmbeddingModel and hides the provider behind it.
type Client struct {
	provider Provider
}

var _ vectordb.EmbeddingModel = (*Client)(nil)

// NewClient validates cfg and builds the configured provider.
func NewClient(cfg *Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("embedding: invalid config: %w", err)
	}

	switch cfg.Provider {
	case ProviderOpenAI:
		return &Client{provider: newOpenAIProvider(cfg)}, nil
	default:
		p, err := newInferenceProvider(cfg)
		if err != nil {
			return nil, fmt.Errorf("embedding: failed to create provider: %w", err)
		}
		return &Client{provider: p}, nil
	}
}

// NewClientWithProvider wraps a custom provider.
func NewClientWithProvider(p Provider) *Client {
	return &Client{provider: p}
}

// EmbedText embeds a single query text.
func (c *Client) EmbedText(ctx context.Context, text string) (vectordb.Embedding, error) {
	if text == "" {
		return vectordb.Embedding{}, errors.New("embedding: empty text")
	}

	vecs, err := c.provider.Create(ctx, text)
	if err != nil {
		return vectordb.Embedding{}, err
	}
	if len(vecs) != 1 || len(vecs[0]) == 0 {
		return vectordb.Embedding{}, fmt.Errorf("embedding: provider returned %d vectors for one text", len(vecs))
	}
	return vectordb.Embedding{Document: text, Vec: vecs[0]}, nil
}

// EmbedTexts embeds several texts in one provider call.
func (c *Client) EmbedTexts(ctx context.Context, texts ...string) ([]vectordb.Embedding, error) {
	vecs, err := c.provider.Create(ctx, texts...)
	if err != nil {
		return nil, err
	}
	if len(vecs) != len(texts) {
		return nil, fmt.Errorf("embedding: provider returned %d vectors for %d texts", len(vecs), len(texts))
	}
	out := make([]vectordb.Embedding, len(texts))
	for i := range texts {
		out[i] = vectordb.Embedding{Document: texts[i], Vec: vecs[i]}
	}
	return out, nil
}

// Close releases provider resources when the provider has any.
func (c *Client) Close() error {
	if closer, ok := c.provider.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
