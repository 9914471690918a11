package llm

import (
	"context"

	"github.com/eduvoice/eduvoice-be/internal/pkg/apperr"
	openai "github.com/sashabaranov/go-openai"
)

const providerName = "groq"

type GroqClient struct {
	APIKey  string
	BaseURL string
	Model   string
	client  *openai.Client
}

// NewGroqClient builds a client against Groq's OpenAI-compatible API.
func NewGroqClient(apiKey string, model string, baseURL string) *GroqClient {
	if model == "" {
		model = "llama-3.1-8b-instant"
	}
	if baseURL == "" {
		baseURL = "https://api.groq.com/openai/v1"
	}

	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL

	return &GroqClient{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: baseURL,
		client:  openai.NewClientWithConfig(config),
	}
}

// GenerateText runs a single system+user prompt pair and returns the raw
// completion text. Token and temperature budgets differ per caller, so they
// are parameters here.
func (c *GroqClient) GenerateText(ctx context.Context, systemPrompt string, userPrompt string, maxTokens int, temperature float32) (string, error) {
	if c.client == nil {
		return "", apperr.NewUpstreamError(providerName, "client not initialized", nil)
	}

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.Model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: userPrompt,
				},
			},
			MaxTokens:   maxTokens,
			Temperature: temperature,
		},
	)
	if err != nil {
		return "", apperr.NewUpstreamError(providerName, "completion request failed", err.Error())
	}

	if len(resp.Choices) == 0 {
		return "", apperr.NewUpstreamError(providerName, "provider returned no choices", nil)
	}

	text := resp.Choices[0].Message.Content
	if text == "" {
		return "", apperr.NewUpstreamError(providerName, "provider returned empty response", nil)
	}

	return text, nil
}

// GenerateChatResponse generates a plain text tutoring reply from a full
// message history (system prompt included by the caller).
func (c *GroqClient) GenerateChatResponse(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	if c.client == nil {
		return "", apperr.NewUpstreamError(providerName, "client not initialized", nil)
	}

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       c.Model,
			Messages:    messages,
			MaxTokens:   500,
			Temperature: 0.7,
			TopP:        0.9,
		},
	)
	if err != nil {
		return "", apperr.NewUpstreamError(providerName, "chat request failed", err.Error())
	}

	if len(resp.Choices) == 0 {
		return "", apperr.NewUpstreamError(providerName, "provider returned no choices", nil)
	}

	text := resp.Choices[0].Message.Content
	if text == "" {
		return "", apperr.NewUpstreamError(providerName, "provider returned empty response", nil)
	}

	return text, nil
}
