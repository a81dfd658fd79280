package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"nest/internal/models"
)

type EmotionRepositoryInterface interface {
	Create(ctx context.Context, record *models.EmotionRecord) error
	ListByUser(ctx context.Context, userID int64, start, end *time.Time) ([]*models.EmotionRecord, error)
}

type EmotionRepository struct {
	db DBTX
}

func NewEmotionRepository(db DBTX) *EmotionRepository {
	return &EmotionRepository{db: db}
}

func (r *EmotionRepository) Create(ctx context.Context, record *models.EmotionRecord) error {
	if record.EmotionData == nil {
		record.EmotionData = models.EmotionData{}
	}
	err := r.db.QueryRow(ctx,
		`INSERT INTO emotion_records (user_id, timestamp, emotion_data, text_content, voice_file_path)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		record.UserID, record.Timestamp, record.EmotionData, record.TextContent, record.VoiceFilePath,
	).Scan(&record.ID)
	return mapError("create emotion record", err)
}

// ListByUser returns the user's records with start <= timestamp <= end,
// oldest first. A nil bound leaves that side open.
func (r *EmotionRepository) ListByUser(ctx context.Context, userID int64, start, end *time.Time) ([]*models.EmotionRecord, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, timestamp, emotion_data, text_content, voice_file_path
		 FROM emotion_records
		 WHERE user_id = $1
		   AND ($2::timestamptz IS NULL OR timestamp >= $2)
		   AND ($3::timestamptz IS NULL OR timestamp <= $3)
		 ORDER BY timestamp, id`,
		userID, start, end,
	)
	if err != nil {
		return nil, mapError("list emotion records", err)
	}

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*models.EmotionRecord, error) {
		var rec models.EmotionRecord
		err := row.Scan(&rec.ID, &rec.UserID, &rec.Timestamp, &rec.EmotionData, &rec.TextContent, &rec.VoiceFilePath)
		return &rec, err
	})
	if err != nil {
		return nil, mapError("scan emotion records", err)
	}
	return records, nil
}
