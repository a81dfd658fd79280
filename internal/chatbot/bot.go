package chatbot

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"

	"nest/internal/models"
)

const SystemPrompt = `You are an empathetic AI mental health companion. Your role is to:
1. Listen actively and show understanding
2. Provide gentle guidance and support
3. Help users reframe negative thoughts
4. Suggest appropriate coping strategies
5. Maintain professional boundaries
6. Never give medical advice
7. Always prioritize user safety

Remember to be compassionate, non-judgmental, and supportive.`

const RejectedReply = "I apologize, but I cannot process that input as it may violate our safety guidelines."

type BotInterface interface {
	Generate(ctx context.Context, userText string, history []models.HistoryMessage, emotionContext map[string]any) (*models.ChatReply, error)
	Summarize(history []models.HistoryMessage) models.ChatSummary
}

type Bot struct {
	completer  Completer
	filter     SafetyFilter
	suggester  ActionSuggester
	summarizer Summarizer
}

type Option func(*Bot)

func WithSafetyFilter(f SafetyFilter) Option { return func(b *Bot) { b.filter = f } }

func WithSuggester(s ActionSuggester) Option { return func(b *Bot) { b.suggester = s } }

func WithSummarizer(s Summarizer) Option { return func(b *Bot) { b.summarizer = s } }

func NewBot(completer Completer, opts ...Option) *Bot {
	b := &Bot{
		completer:  completer,
		filter:     PassThroughFilter{},
		suggester:  StaticSuggester{},
		summarizer: PlaceholderSummarizer{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Generate runs one completion. Input rejected by the safety filter never
// reaches the model.
func (b *Bot) Generate(ctx context.Context, userText string, history []models.HistoryMessage, emotionContext map[string]any) (*models.ChatReply, error) {
	if !b.filter.Allow(userText) {
		return &models.ChatReply{
			Response:         RejectedReply,
			SafetyCheck:      false,
			SuggestedActions: []string{},
		}, nil
	}

	messages, err := buildMessages(userText, history, emotionContext)
	if err != nil {
		return nil, err
	}

	reply, err := b.completer.Complete(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}

	return &models.ChatReply{
		Response:         reply,
		SafetyCheck:      b.filter.Allow(reply),
		SuggestedActions: b.suggester.Suggest(userText, reply, emotionContext),
	}, nil
}

func (b *Bot) Summarize(history []models.HistoryMessage) models.ChatSummary {
	return b.summarizer.Summarize(history)
}

func buildMessages(userText string, history []models.HistoryMessage, emotionContext map[string]any) ([]models.HistoryMessage, error) {
	messages := make([]models.HistoryMessage, 0, len(history)+3)
	messages = append(messages, models.HistoryMessage{Role: models.RoleSystem, Content: SystemPrompt})
	messages = append(messages, history...)

	if len(emotionContext) > 0 {
		raw, err := json.Marshal(emotionContext)
		if err != nil {
			return nil, fmt.Errorf("encode emotion context: %w", err)
		}
		messages = append(messages, models.HistoryMessage{
			Role:    models.RoleSystem,
			Content: "Current emotional context: " + string(raw),
		})
	}

	return append(messages, models.HistoryMessage{Role: models.RoleUser, Content: userText}), nil
}
