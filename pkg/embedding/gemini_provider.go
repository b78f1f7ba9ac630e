package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const geminiEmbeddingModel = "text-embedding-004"

type geminiRequestPart struct {
	Text string `json:"text"`
}

type geminiRequestContent struct {
	Parts []geminiRequestPart `json:"parts"`
}

type geminiEmbeddingRequest struct {
	Model   string               `json:"model"`
	Content geminiRequestContent `json:"content"`
}

type geminiEmbeddingValues struct {
	Values []float32 `json:"values"`
}

type geminiEmbeddingResponse struct {
	Embedding geminiEmbeddingValues `json:"embedding"`
}

// GeminiProvider generates embeddings via the Gemini text-embedding-004 API.
// Vectors come back at 768 dimensions, matching the index column type.
type GeminiProvider struct {
	ApiKey string
	Client *http.Client
}

func NewGeminiProvider(apiKey string) Provider {
	return &GeminiProvider{
		ApiKey: apiKey,
		Client: &http.Client{},
	}
}

func (p *GeminiProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	geminiReq := geminiEmbeddingRequest{
		Model: geminiEmbeddingModel,
		Content: geminiRequestContent{
			Parts: []geminiRequestPart{
				{Text: text},
			},
		},
	}
	geminiReqJson, err := json.Marshal(geminiReq)
	if err != nil {
		return nil, &EmbeddingError{Provider: "gemini", Err: err}
	}

	endpoint := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1/models/%s:embedContent",
		geminiEmbeddingModel,
	)

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(geminiReqJson))
	if err != nil {
		return nil, &EmbeddingError{Provider: "gemini", Err: err}
	}

	req.Header.Set("x-goog-api-key", p.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.Client.Do(req)
	if err != nil {
		return nil, &EmbeddingError{Provider: "gemini", Err: err}
	}
	defer res.Body.Close()

	resByte, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &EmbeddingError{Provider: "gemini", Err: err}
	}

	if res.StatusCode != http.StatusOK {
		return nil, &EmbeddingError{
			Provider: "gemini",
			Err:      fmt.Errorf("unexpected status %d, body %s", res.StatusCode, string(resByte)),
		}
	}

	var resEmbedding geminiEmbeddingResponse
	if err := json.Unmarshal(resByte, &resEmbedding); err != nil {
		return nil, &EmbeddingError{Provider: "gemini", Err: err}
	}

	// Normalize so cosine distance in pgvector behaves as inner product.
	return normalizeVector(resEmbedding.Embedding.Values), nil
}
