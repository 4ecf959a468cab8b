package embedding

import "context"

// Provider computes embeddings for a batch of texts, one vector per text in
// input order.
type Provider interface {
	Create(ctx context.Context, texts ...string) ([][]float64, error)
}
