package models

import "time"

const (
	SessionInProgress = "in_progress"
	SessionCompleted  = "completed"
)

type MeditationSession struct {
	ID              int64      `json:"id,omitempty"`
	SessionID       string     `json:"session_id"`
	UserID          int64      `json:"user_id"`
	ExerciseID      string     `json:"exercise_id"`
	Exercise        *Exercise  `json:"exercise,omitempty"`
	SessionType     string     `json:"session_type"`
	StartTime       time.Time  `json:"start_time"`
	ExpectedEndTime time.Time  `json:"expected_end_time"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	ActualDuration  *float64   `json:"actual_duration,omitempty"`
	Status          string     `json:"status"`
	Notes           *string    `json:"notes,omitempty"`
}

type StartSessionRequest struct {
	UserID     int64      `json:"user_id" validate:"required|min:1"`
	ExerciseID string     `json:"exercise_id" validate:"required"`
	StartTime  *time.Time `json:"start_time"`
}

type CompleteSessionRequest struct {
	Notes *string `json:"notes"`
}
