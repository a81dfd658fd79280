package chatbot

import "nest/internal/models"

// SafetyFilter decides whether text may be processed or returned.
type SafetyFilter interface {
	Allow(text string) bool
}

// ActionSuggester proposes follow-up actions for a completed turn.
type ActionSuggester interface {
	Suggest(userText, reply string, emotionContext map[string]any) []string
}

// Summarizer condenses a finished conversation.
type Summarizer interface {
	Summarize(history []models.HistoryMessage) models.ChatSummary
}

// PassThroughFilter accepts everything.
type PassThroughFilter struct{}

func (PassThroughFilter) Allow(string) bool { return true }

type StaticSuggester struct{}

func (StaticSuggester) Suggest(string, string, map[string]any) []string {
	return []string{
		"Try a guided meditation",
		"Practice deep breathing",
		"Write in your journal",
	}
}

type PlaceholderSummarizer struct{}

func (PlaceholderSummarizer) Summarize([]models.HistoryMessage) models.ChatSummary {
	return models.ChatSummary{
		Summary:           "Conversation summary placeholder",
		KeyPoints:         []string{"Key point 1", "Key point 2"},
		SuggestedFollowUp: "Follow-up suggestion",
	}
}
