// Package ai provides the language-model client used for free-form replies.
// The model is a black box to the rest of the system: prompt plus history in,
// text plus token usage out.
package ai

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/tennisshoppro/shop-assistant-go/internal/domain/entities/conversation"
	"github.com/tennisshoppro/shop-assistant-go/internal/infrastructure/observability/logging"
)

// Completion is the result of one model call
type Completion struct {
	Content          string `json:"content"`
	PromptTokens     int    `json:"promptTokens"`
	CompletionTokens int    `json:"completionTokens"`
	TotalTokens      int    `json:"totalTokens"`
}

// Request carries everything a single completion call needs
type Request struct {
	SystemPrompt string
	History      []conversation.Message
	UserMessage  string
}

// Completer defines the interface for language-model calls, allowing for mock
// implementations in tests
type Completer interface {
	Complete(ctx context.Context, req Request) (*Completion, error)
}

// Options configures the OpenAI-backed completer
type Options struct {
	Model       string
	MaxTokens   int
	Temperature float64
}

// OpenAIClient is the concrete Completer backed by the OpenAI chat API
type OpenAIClient struct {
	client *openai.Client
	opts   Options
	logger *logging.ChanneledLogger
}

// NewOpenAIClient creates the completer. An empty API key is a configuration
// error surfaced to callers, not a fatal condition.
func NewOpenAIClient(apiKey string, opts Options, logger *logging.ChanneledLogger) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}

	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		opts:   opts,
		logger: logger,
	}, nil
}

// Complete performs one chat-completion call and returns the reply text with
// its token usage
func (c *OpenAIClient) Complete(ctx context.Context, req Request) (*Completion, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.History)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: req.SystemPrompt,
	})
	for _, msg := range req.History {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.UserMessage,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.opts.Model,
		Messages:    messages,
		MaxTokens:   c.opts.MaxTokens,
		Temperature: float32(c.opts.Temperature),
	})
	if err != nil {
		if c.logger != nil {
			c.logger.AI().Error("Chat completion failed", "model", c.opts.Model, "error", err.Error())
		}
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	return &Completion{
		Content:          resp.Choices[0].Message.Content,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	}, nil
}
