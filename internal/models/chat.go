package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	SenderUser = "user"
	SenderAI   = "ai"

	ChatSessionAI = "ai_chat"

	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type ChatSession struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	SessionType string     `json:"session_type"`
}

type ChatMessage struct {
	ID              int64       `json:"id"`
	SessionID       int64       `json:"session_id"`
	Timestamp       time.Time   `json:"timestamp"`
	Content         string      `json:"content"`
	SenderType      string      `json:"sender_type"`
	EmotionAnalysis EmotionData `json:"emotion_analysis,omitempty"`
}

// HistoryMessage is one turn of conversation context handed to the model.
type HistoryMessage struct {
	Role    string `json:"role" bson:"role"`
	Content string `json:"content" bson:"content"`
}

type ChatReply struct {
	Response         string   `json:"response"`
	SafetyCheck      bool     `json:"safety_check"`
	SuggestedActions []string `json:"suggested_actions"`
}

type ChatSummary struct {
	Summary           string   `json:"summary" bson:"summary"`
	KeyPoints         []string `json:"key_points" bson:"key_points"`
	SuggestedFollowUp string   `json:"suggested_follow_up" bson:"suggested_follow_up"`
}

// ChatTranscript is the archived form of an ended chat session.
type ChatTranscript struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID  int64              `bson:"session_id" json:"session_id"`
	UserID     int64              `bson:"user_id" json:"user_id"`
	Messages   []HistoryMessage   `bson:"messages" json:"messages"`
	Summary    ChatSummary        `bson:"summary" json:"summary"`
	StartedAt  time.Time          `bson:"started_at" json:"started_at"`
	EndedAt    time.Time          `bson:"ended_at" json:"ended_at"`
	ArchivedAt time.Time          `bson:"archived_at" json:"archived_at"`
}

type ChatRequest struct {
	UserID         int64            `json:"user_id" validate:"required|min:1"`
	SessionID      int64            `json:"session_id"`
	Message        string           `json:"message" validate:"required"`
	History        []HistoryMessage `json:"history"`
	EmotionContext map[string]any   `json:"emotion_context"`
}

type ChatResponse struct {
	SessionID int64 `json:"session_id"`
	ChatReply
}

type EndChatResponse struct {
	SessionID int64       `json:"session_id"`
	EndTime   time.Time   `json:"end_time"`
	Summary   ChatSummary `json:"summary"`
}
