package embedding

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIProvider computes embeddings through the OpenAI embeddings API or
// any compatible server reachable at Config.Endpoint.
type OpenAIProvider struct {
	client     *openai.Client
	model      string
	dimensions int
}

func newOpenAIProvider(cfg *Config) *OpenAIProvider {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.ServiceToken),
		option.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.HTTPTimeoutS) * time.Second}),
		option.WithMaxRetries(0),
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithBaseURL(cfg.Endpoint))
	}
	client := openai.NewClient(opts...)

	return &OpenAIProvider{
		client:     &client,
		model:      cfg.Model,
		dimensions: cfg.Dimensions,
	}
}

// Create implements Provider.
func (p *OpenAIProvider) Create(ctx context.Context, texts ...string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("openai: no texts provided")
	}

	params := openai.EmbeddingNewParams{
		Model:          p.model,
		Input:          openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: texts},
		EncodingFormat: openai.EmbeddingNewParamsEncodingFormatFloat,
	}
	if p.dimensions > 0 {
		params.Dimensions = openai.Int(int64(p.dimensions))
	}

	resp, err := p.client.Embeddings.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}

	out := make([][]float64, len(texts))
	for _, item := range resp.Data {
		if item.Index < 0 || item.Index >= int64(len(texts)) {
			return nil, fmt.Errorf("openai: unexpected embedding index %d for batch size %d", item.Index, len(texts))
		}
		out[item.Index] = item.Embedding
	}
	for i, v := range out {
		if v == nil {
			return nil, fmt.Errorf("openai: missing embedding for index %d", i)
		}
	}
	return out, nil
}
