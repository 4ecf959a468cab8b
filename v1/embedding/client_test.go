package embedding

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/vectorindex/v1/vectordb"
)

type embeddingsRequest struct {
	Model      string   `json:"model"`
	Input      []string `json:"input"`
	Dimensions int      `json:"dimensions"`
}

// newEmbeddingsServer answers /embeddings with one vector per input whose
// first component is the input's length.
func newEmbeddingsServer(t *testing.T, seen *embeddingsRequest, auth *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/embeddings") {
			http.NotFound(w, r)
			return
		}
		if auth != nil {
			*auth = r.Header.Get("Authorization")
		}

		var req embeddingsRequest
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		if seen != nil {
			*seen = req
		}

		data := make([]map[string]any, len(req.Input))
		for i, in := range req.Input {
			data[i] = map[string]any{
				"object":    "embedding",
				"index":     i,
				"embedding": []float64{float64(len(in)), 0.5},
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"model":  req.Model,
			"data":   data,
			"usage":  map[string]any{"prompt_tokens": 1, "total_tokens": 1},
		})
	}))
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "inference ok", cfg: Config{Provider: ProviderInference, Endpoint: "http://x", ServiceToken: "t", Model: "m"}},
		{name: "openai without endpoint", cfg: Config{Provider: ProviderOpenAI, ServiceToken: "t", Model: "m"}},
		{name: "missing endpoint", cfg: Config{Provider: ProviderInference, ServiceToken: "t", Model: "m"}, wantErr: "EMBEDDING_ENDPOINT"},
		{name: "missing token", cfg: Config{Endpoint: "http://x", Model: "m"}, wantErr: "EMBEDDING_SERVICE_TOKEN"},
		{name: "missing model", cfg: Config{Endpoint: "http://x", ServiceToken: "t"}, wantErr: "EMBEDDING_MODEL"},
		{name: "unknown provider", cfg: Config{Provider: "cohere", ServiceToken: "t", Model: "m"}, wantErr: "unknown provider"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewConfig_FromEnv(t *testing.T) {
	t.Setenv("EMBEDDING_PROVIDER", "")
	t.Setenv("EMBEDDING_ENDPOINT", "http://inference:8080")
	t.Setenv("EMBEDDING_SERVICE_TOKEN", "secret")
	t.Setenv("EMBEDDING_MODEL", "bge-m3")
	t.Setenv("EMBEDDING_DIMENSIONS", "256")
	t.Setenv("EMBEDDING_HTTP_TIMEOUT_SECONDS", "abc")

	cfg := NewConfig()
	assert.Equal(t, ProviderInference, cfg.Provider)
	assert.Equal(t, "http://inference:8080", cfg.Endpoint)
	assert.Equal(t, 256, cfg.Dimensions)
	assert.Equal(t, 30, cfg.HTTPTimeoutS)
}

func TestClient_InferenceEmbedText(t *testing.T) {
	var seen embeddingsRequest
	var auth string
	srv := newEmbeddingsServer(t, &seen, &auth)
	defer srv.Close()

	client, err := NewClient(&Config{
		Provider:     ProviderInference,
		Endpoint:     srv.URL + "/",
		ServiceToken: "secret",
		Model:        "bge-m3",
		Dimensions:   2,
		HTTPTimeoutS: 5,
	})
	require.NoError(t, err)

	emb, err := client.EmbedText(context.Background(), "hello")
	require.NoError(t, err)

	assert.Equal(t, vectordb.Embedding{Document: "hello", Vec: []float64{5, 0.5}}, emb)
	assert.Equal(t, "Bearer secret", auth)
	assert.Equal(t, embeddingsRequest{Model: "bge-m3", Input: []string{"hello"}, Dimensions: 2}, seen)
}

func TestClient_InferenceHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client, err := NewClient(&Config{Endpoint: srv.URL, ServiceToken: "t", Model: "m", HTTPTimeoutS: 5})
	require.NoError(t, err)

	_, err = client.EmbedText(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 503")
	assert.Contains(t, err.Error(), "model not loaded")
}

func TestClient_OpenAIEmbedTexts(t *testing.T) {
	var seen embeddingsRequest
	srv := newEmbeddingsServer(t, &seen, nil)
	defer srv.Close()

	client, err := NewClient(&Config{
		Provider:     ProviderOpenAI,
		Endpoint:     srv.URL + "/v1/",
		ServiceToken: "sk-test",
		Model:        "text-embedding-3-small",
		HTTPTimeoutS: 5,
	})
	require.NoError(t, err)

	embs, err := client.EmbedTexts(context.Background(), "a", "abc")
	require.NoError(t, err)
	require.Len(t, embs, 2)
	assert.Equal(t, []float64{1, 0.5}, embs[0].Vec)
	assert.Equal(t, []float64{3, 0.5}, embs[1].Vec)
	assert.Equal(t, "text-embedding-3-small", seen.Model)
}

type stubProvider struct {
	vecs [][]float64
	err  error
}

func (s stubProvider) Create(_ context.Context, _ ...string) ([][]float64, error) {
	return s.vecs, s.err
}

func TestClient_EmbedTextRejectsBadProviderOutput(t *testing.T) {
	ctx := context.Background()

	_, err := NewClientWithProvider(stubProvider{}).EmbedText(ctx, "x")
	assert.Error(t, err)

	_, err = NewClientWithProvider(stubProvider{vecs: [][]float64{{}}}).EmbedText(ctx, "x")
	assert.Error(t, err)

	cause := errors.New("quota exceeded")
	_, err = NewClientWithProvider(stubProvider{err: cause}).EmbedText(ctx, "x")
	assert.ErrorIs(t, err, cause)

	_, err = NewClientWithProvider(stubProvider{vecs: [][]float64{{1}}}).EmbedText(ctx, "")
	assert.Error(t, err)
}
