package agent

import (
	"context"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// DefaultGroqBaseURL is Groq's OpenAI-compatible endpoint
const DefaultGroqBaseURL = "https://api.groq.com/openai/v1"

// GroqLLMClient implements LLMClient against an OpenAI-compatible chat API
type GroqLLMClient struct {
	client llms.Model
}

// NewGroqLLMClient creates a new GroqLLMClient
func NewGroqLLMClient(apiKey, baseURL, model string) (*GroqLLMClient, error) {
	if baseURL == "" {
		baseURL = DefaultGroqBaseURL
	}
	client, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithBaseURL(baseURL),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, err
	}
	return &GroqLLMClient{client: client}, nil
}

// GenerateJSON sends one non-streaming chat completion in JSON mode
func (c *GroqLLMClient) GenerateJSON(ctx context.Context, prompt string, temperature float32, maxOutputTokens int32) (string, error) {
	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}

	resp, err := c.client.GenerateContent(ctx, content,
		llms.WithTemperature(float64(temperature)),
		llms.WithMaxTokens(int(maxOutputTokens)),
		llms.WithJSONMode(),
	)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Content, nil
}
