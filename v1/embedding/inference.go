package embedding

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// InferenceProvider calls the OpenAI-compatible /embeddings endpoint of the
// inference service with plain HTTP.
type InferenceProvider struct {
	baseURL      string
	serviceToken string
	model        string
	dimensions   int
	httpClient   *http.Client
}

func newInferenceProvider(cfg *Config) (*InferenceProvider, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("inference: missing EMBEDDING_ENDPOINT")
	}

	return &InferenceProvider{
		baseURL:      strings.TrimRight(cfg.Endpoint, "/"),
		serviceToken: cfg.ServiceToken,
		model:        cfg.Model,
		dimensions:   cfg.Dimensions,
		httpClient:   &http.Client{Timeout: time.Duration(cfg.HTTPTimeoutS) * time.Second},
	}, nil
}

type inferenceRequest struct {
	Model      string   `json:"model"`
	Input      []string `json:"input"`
	Dimensions int      `json:"dimensions,omitempty"`
}

type inferenceResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
}

// Create implements Provider.
func (p *InferenceProvider) Create(ctx context.Context, texts ...string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("inference: no texts provided")
	}
	if p.model == "" {
		return nil, fmt.Errorf("inference: model is required")
	}

	var parsed inferenceResponse
	req := inferenceRequest{Model: p.model, Input: texts, Dimensions: p.dimensions}
	if err := p.postJSON(ctx, p.baseURL+"/embeddings", req, &parsed); err != nil {
		return nil, fmt.Errorf("inference: %w", err)
	}

	if len(parsed.Data) != len(texts) {
		return nil, fmt.Errorf("inference: expected %d embeddings, got %d", len(texts), len(parsed.Data))
	}

	out := make([][]float64, len(parsed.Data))
	for i, d := range parsed.Data {
		out[i] = d.Embedding
	}
	return out, nil
}
