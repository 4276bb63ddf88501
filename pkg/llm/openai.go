package llm

import (
	"context"
	"errors"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"electron/pkg/history"
)

// OpenAIClient talks to an OpenAI-compatible chat-completion endpoint.
type OpenAIClient struct {
	client openai.Client
	model  string
}

// NewOpenAI builds a client bound to the given credential, endpoint,
// and model. An empty baseURL falls back to DefaultBaseURL.
func NewOpenAI(apiKey, baseURL, model string) *OpenAIClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &OpenAIClient{
		client: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(baseURL),
		),
		model: model,
	}
}

// Model returns the configured model identifier.
func (c *OpenAIClient) Model() string {
	return c.model
}

// Complete sends [system] + turns and returns the primary choice's
// content. No streaming, no multi-choice handling.
func (c *OpenAIClient) Complete(ctx context.Context, systemMessage string, turns []history.Turn) (string, error) {
	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    c.model,
		Messages: buildMessages(systemMessage, turns),
	})
	if err != nil {
		return "", &CompletionError{Err: err}
	}
	if len(completion.Choices) == 0 {
		return "", &CompletionError{Err: errors.New("empty completion choices")}
	}
	return completion.Choices[0].Message.Content, nil
}

// buildMessages places the system message first, then the prior turns
// in conversation order.
func buildMessages(systemMessage string, turns []history.Turn) []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(turns)+1)
	messages = append(messages, openai.SystemMessage(systemMessage))
	for _, t := range turns {
		switch t.Role {
		case history.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(t.Content))
		default:
			messages = append(messages, openai.UserMessage(t.Content))
		}
	}
	return messages
}
