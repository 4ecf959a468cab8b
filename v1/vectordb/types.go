package vectordb

// Embedding is the vector produced for one piece of text.
type Embedding struct {
	// Document is the text that was embedded.
	Document string `json:"document"`

	// Vec is the embedding in the model's native precision.
	Vec []float64 `json:"vec"`
}

// Float32 converts the embedding into the precision tables search with.
func (e Embedding) Float32() []float32 {
	out := make([]float32, len(e.Vec))
	for i, v := range e.Vec {
		out[i] = float32(v)
	}
	return out
}

// Result is one ranked match carrying a decoded payload.
type Result[T any] struct {
	// Score is the distance reported by the store. Lower is closer for
	// L2, cosine and hamming; ordering is always the store's.
	Score float64 `json:"score"`

	// ID identifies the matched row.
	ID string `json:"id"`

	// Payload is the full row decoded into the caller's type.
	Payload T `json:"payload"`
}

// RowResult is a match whose payload is the raw row.
type RowResult = Result[Row]

// IDResult is a match without payload.
type IDResult struct {
	Score float64 `json:"score"`
	ID    string  `json:"id"`
}
