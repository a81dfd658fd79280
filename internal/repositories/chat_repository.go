package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"nest/internal/models"
)

type ChatRepositoryInterface interface {
	CreateSession(ctx context.Context, userID int64) (*models.ChatSession, error)
	GetSession(ctx context.Context, id int64) (*models.ChatSession, error)
	EndSession(ctx context.Context, id int64, end time.Time) error
	AddMessage(ctx context.Context, msg *models.ChatMessage) error
	ListMessages(ctx context.Context, sessionID int64) ([]*models.ChatMessage, error)
}

type ChatRepository struct {
	db DBTX
}

func NewChatRepository(db DBTX) *ChatRepository {
	return &ChatRepository{db: db}
}

func (r *ChatRepository) CreateSession(ctx context.Context, userID int64) (*models.ChatSession, error) {
	s := &models.ChatSession{UserID: userID, SessionType: models.ChatSessionAI}
	err := r.db.QueryRow(ctx,
		`INSERT INTO chat_sessions (user_id, session_type) VALUES ($1, $2) RETURNING id, start_time`,
		userID, s.SessionType,
	).Scan(&s.ID, &s.StartTime)
	if err != nil {
		return nil, mapError("create chat session", err)
	}
	return s, nil
}

func (r *ChatRepository) GetSession(ctx context.Context, id int64) (*models.ChatSession, error) {
	var s models.ChatSession
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, start_time, end_time, session_type FROM chat_sessions WHERE id = $1`, id,
	).Scan(&s.ID, &s.UserID, &s.StartTime, &s.EndTime, &s.SessionType)
	if err != nil {
		return nil, mapError("get chat session", err)
	}
	return &s, nil
}

func (r *ChatRepository) EndSession(ctx context.Context, id int64, end time.Time) error {
	tag, err := r.db.Exec(ctx, `UPDATE chat_sessions SET end_time = $2 WHERE id = $1 AND end_time IS NULL`, id, end)
	if err != nil {
		return mapError("end chat session", err)
	}
	if tag.RowsAffected() == 0 {
		return mapError("end chat session", models.ErrConflict)
	}
	return nil
}

func (r *ChatRepository) AddMessage(ctx context.Context, msg *models.ChatMessage) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO chat_messages (session_id, timestamp, content, sender_type, emotion_analysis)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		msg.SessionID, msg.Timestamp, msg.Content, msg.SenderType, msg.EmotionAnalysis,
	).Scan(&msg.ID)
	return mapError("add chat message", err)
}

func (r *ChatRepository) ListMessages(ctx context.Context, sessionID int64) ([]*models.ChatMessage, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, session_id, timestamp, content, sender_type, emotion_analysis
		 FROM chat_messages WHERE session_id = $1 ORDER BY id`, sessionID,
	)
	if err != nil {
		return nil, mapError("list chat messages", err)
	}
	msgs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*models.ChatMessage, error) {
		var m models.ChatMessage
		err := row.Scan(&m.ID, &m.SessionID, &m.Timestamp, &m.Content, &m.SenderType, &m.EmotionAnalysis)
		return &m, err
	})
	if err != nil {
		return nil, mapError("scan chat messages", err)
	}
	return msgs, nil
}
