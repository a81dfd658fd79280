package models

import (
	"fmt"
	"time"

	"github.com/spf13/cast"
)

const (
	KeyDominantEmotion = "dominant_emotion"
	KeySentimentScore  = "sentiment_score"
)

// EmotionData is the free-form analyzer payload stored with a record.
type EmotionData map[string]any

type EmotionRecord struct {
	ID            int64       `json:"id"`
	UserID        int64       `json:"user_id"`
	Timestamp     time.Time   `json:"timestamp"`
	EmotionData   EmotionData `json:"emotion_data"`
	TextContent   *string     `json:"text_content"`
	VoiceFilePath *string     `json:"voice_file_path"`
}

// DominantEmotion reads the dominant_emotion key. Records are not checked on
// insert, so a missing or non-string value surfaces here.
func (r *EmotionRecord) DominantEmotion() (string, error) {
	raw, ok := r.EmotionData[KeyDominantEmotion]
	if !ok {
		return "", fmt.Errorf("%w: record %d has no %s", ErrMalformedRecord, r.ID, KeyDominantEmotion)
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: record %d %s is %T", ErrMalformedRecord, r.ID, KeyDominantEmotion, raw)
	}
	return s, nil
}

func (r *EmotionRecord) SentimentScore() (float64, error) {
	raw, ok := r.EmotionData[KeySentimentScore]
	if !ok || raw == nil {
		return 0, fmt.Errorf("%w: record %d has no %s", ErrMalformedRecord, r.ID, KeySentimentScore)
	}
	if _, isString := raw.(string); isString {
		return 0, fmt.Errorf("%w: record %d %s is a string", ErrMalformedRecord, r.ID, KeySentimentScore)
	}
	score, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: record %d: %v", ErrMalformedRecord, r.ID, err)
	}
	return score, nil
}

type RecordEmotionRequest struct {
	UserID        int64       `json:"user_id" validate:"required|min:1"`
	TextContent   *string     `json:"text_content"`
	VoiceFilePath *string     `json:"voice_file_path"`
	EmotionData   EmotionData `json:"emotion_data"`
}

type AnalyzeRequest struct {
	Text string `json:"text" validate:"required"`
}
