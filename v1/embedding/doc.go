// Package embedding turns query text into vectors for similarity search.
//
// [Client] implements vectordb.EmbeddingModel on top of a [Provider]:
//
//   - "inference": the OpenAI-compatible /embeddings endpoint of the
//     inference service, called over plain HTTP with a bearer service token.
//   - "openai": the OpenAI embeddings API (or a compatible server) through
//     github.com/openai/openai-go.
//
// # Configuration
//
// [NewConfig] reads:
//
//	EMBEDDING_PROVIDER               inference | openai (default inference)
//	EMBEDDING_ENDPOINT               base URL, required for inference
//	EMBEDDING_SERVICE_TOKEN          bearer token / API key
//	EMBEDDING_MODEL                  model name
//	EMBEDDING_DIMENSIONS             optional output size
//	EMBEDDING_HTTP_TIMEOUT_SECONDS   default 30
//
// # Usage
//
//	client, err := embedding.NewClient(embedding.NewConfig())
//	if err != nil {
//	    return err
//	}
//	emb, err := client.EmbedText(ctx, "what is a vector index?")
//
// With fx, include [FXModule]; it provides both *Client and
// vectordb.EmbeddingModel.
package embedding
