// Package embeddings maintains the in-memory vector index over the hospital
// data file, with a JSON cache so unchanged data is not re-embedded.
package embeddings

import (
	"context"
	"fmt"

	httputils "medichat/medichat/utils/http"
	"medichat/medichat/utils/logging"
)

// Embedder turns texts into vectors.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// OpenAIEmbedder calls an OpenAI-compatible /embeddings endpoint.
type OpenAIEmbedder struct {
	baseURL string
	apiKey  string
	model   string
}

func NewOpenAIEmbedder(baseURL, apiKey, model string) *OpenAIEmbedder {
	return &OpenAIEmbedder{baseURL: baseURL, apiKey: apiKey, model: model}
}

func (e *OpenAIEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	defer logging.LogDuration(ctx, "embeddings_embed")()

	req := map[string]interface{}{
		"model": e.model,
		"input": texts,
	}
	var resp struct {
		Data []struct {
			Embedding []float32 `json:"embedding"`
		} `json:"data"`
	}
	url := fmt.Sprintf("%s/embeddings", e.baseURL)
	if err := httputils.PostJSONWithAuth(ctx, url, e.apiKey, req, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embeddings: got %d vectors for %d inputs", len(resp.Data), len(texts))
	}
	out := make([][]float32, len(resp.Data))
	for i, d := range resp.Data {
		out[i] = d.Embedding
	}
	return out, nil
}
