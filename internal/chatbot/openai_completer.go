package chatbot

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	"nest/internal/models"
	"nest/internal/providers"
	"nest/internal/structures"
)

// Completer produces the assistant reply for a prepared message list.
type Completer interface {
	Complete(ctx context.Context, messages []models.HistoryMessage) (string, error)
}

var errNoChoices = errors.New("model returned no choices")

// OpenAICompleter talks to any OpenAI-compatible chat completions endpoint.
type OpenAICompleter struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
	topP        float32
	logger      providers.Logger
}

func NewOpenAICompleter(conf *structures.Config, logger providers.Logger) *OpenAICompleter {
	cfg := openai.DefaultConfig(conf.LLM.APIKey)
	if conf.LLM.BaseURL != "" {
		cfg.BaseURL = conf.LLM.BaseURL
	}
	if conf.LLM.Timeout > 0 {
		cfg.HTTPClient = &http.Client{Timeout: conf.LLM.Timeout}
	}

	c := &OpenAICompleter{
		client:      openai.NewClientWithConfig(cfg),
		model:       conf.LLM.Model,
		maxTokens:   conf.LLM.MaxTokens,
		temperature: conf.LLM.Temperature,
		topP:        conf.LLM.TopP,
		logger:      logger,
	}
	if c.maxTokens == 0 {
		c.maxTokens = 512
	}
	if c.temperature == 0 {
		c.temperature = 0.7
	}
	if c.topP == 0 {
		c.topP = 0.9
	}
	return c
}

func (c *OpenAICompleter) Complete(ctx context.Context, messages []models.HistoryMessage) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(messages)),
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		TopP:        c.topP,
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		c.logger.Errorf(providers.TypeApp, "chat completion failed: %v", err)
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errNoChoices
	}
	c.logger.Debugf(providers.TypeApp, "chat completion finished: %s", resp.Choices[0].FinishReason)
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
