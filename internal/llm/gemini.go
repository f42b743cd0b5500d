package llm

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// ErrMissingAPIKey is returned before any network call when no credential is
// available at all. The message is part of the error-classification contract:
// the dispatcher matches it to decide the user must be prompted for a key.
var ErrMissingAPIKey = errors.New("API_KEY missing")

// GeminiProvider reaches Gemini through its OpenAI-compatible endpoint.
type GeminiProvider struct {
	apiKey  string
	baseURL string
	client  *openai.Client
}

// NewGeminiProvider builds the provider around the ambient credential.
// apiKey may be empty; calls then require a per-request override.
func NewGeminiProvider(apiKey, baseURL string) *GeminiProvider {
	p := &GeminiProvider{apiKey: apiKey, baseURL: baseURL}
	if apiKey != "" {
		p.client = newClient(apiKey, baseURL)
	}
	return p
}

func newClient(apiKey, baseURL string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(cfg)
}

func (p *GeminiProvider) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	client := p.client
	if req.APIKeyOverride != "" {
		client = newClient(req.APIKeyOverride, p.baseURL)
	}
	if client == nil {
		return "", ErrMissingAPIKey
	}

	oReq := openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.SystemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
	}
	if req.ReasoningEffort != "" {
		oReq.ReasoningEffort = req.ReasoningEffort
	} else {
		if req.Temperature > 0 {
			oReq.Temperature = req.Temperature
		}
		if req.TopP > 0 {
			oReq.TopP = req.TopP
		}
	}

	resp, err := client.CreateChatCompletion(ctx, oReq)
	if err != nil {
		return "", fmt.Errorf("gemini chat: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
