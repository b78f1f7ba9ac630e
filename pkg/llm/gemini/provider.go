package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ai-chat-rag-be/pkg/llm"
)

type GeminiProvider struct {
	ApiKey    string
	ModelName string
	Client    *http.Client
}

var _ llm.LLMProvider = &GeminiProvider{}

func NewGeminiProvider(apiKey, modelName string) *GeminiProvider {
	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}
	return &GeminiProvider{
		ApiKey:    apiKey,
		ModelName: modelName,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type geminiChatPart struct {
	Text string `json:"text"`
}

type geminiChatContent struct {
	Parts []geminiChatPart `json:"parts"`
	Role  string           `json:"role,omitempty"`
}

type geminiChatRequest struct {
	Contents []geminiChatContent `json:"contents"`
}

type geminiChatCandidate struct {
	Content *geminiChatContent `json:"content"`
}

type geminiChatResponse struct {
	Candidates []geminiChatCandidate `json:"candidates"`
}

func (g *GeminiProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := &llm.Options{}
	for _, opt := range opts {
		opt(options)
	}

	contents := make([]geminiChatContent, len(history))
	for i, msg := range history {
		role := msg.Role
		// Gemini uses "model" where OpenAI-style callers say "assistant"
		if role == "assistant" {
			role = "model"
		}
		contents[i] = geminiChatContent{
			Parts: []geminiChatPart{{Text: msg.Content}},
			Role:  role,
		}
	}

	payload := geminiChatRequest{Contents: contents}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return "", &llm.GenerationError{Provider: "gemini", Err: fmt.Errorf("marshal request: %w", err)}
	}

	model := g.ModelName
	if options.Model != "" {
		model = options.Model
	}

	endpoint := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1/models/%s:generateContent",
		model,
	)

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(payloadJson))
	if err != nil {
		return "", &llm.GenerationError{Provider: "gemini", Err: fmt.Errorf("create request: %w", err)}
	}

	req.Header.Set("x-goog-api-key", g.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := g.Client.Do(req)
	if err != nil {
		return "", &llm.GenerationError{Provider: "gemini", Err: err}
	}
	defer res.Body.Close()

	resByte, err := io.ReadAll(res.Body)
	if err != nil {
		return "", &llm.GenerationError{Provider: "gemini", Err: fmt.Errorf("read response: %w", err)}
	}

	if res.StatusCode != http.StatusOK {
		return "", &llm.GenerationError{
			Provider: "gemini",
			Err:      fmt.Errorf("status %d, body %s", res.StatusCode, string(resByte)),
		}
	}

	var geminiRes geminiChatResponse
	if err := json.Unmarshal(resByte, &geminiRes); err != nil {
		return "", &llm.GenerationError{Provider: "gemini", Err: fmt.Errorf("unmarshal response: %w", err)}
	}

	if len(geminiRes.Candidates) == 0 || geminiRes.Candidates[0].Content == nil || len(geminiRes.Candidates[0].Content.Parts) == 0 {
		return "", &llm.GenerationError{Provider: "gemini", Err: fmt.Errorf("empty candidates in response")}
	}

	return geminiRes.Candidates[0].Content.Parts[0].Text, nil
}

func (g *GeminiProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return g.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}
