package repositories

import (
	"context"

	"nest/internal/models"
)

type MeditationRepositoryInterface interface {
	Create(ctx context.Context, session *models.MeditationSession) error
	GetBySessionID(ctx context.Context, sessionID string) (*models.MeditationSession, error)
	Complete(ctx context.Context, session *models.MeditationSession) error
}

type MeditationRepository struct {
	db DBTX
}

func NewMeditationRepository(db DBTX) *MeditationRepository {
	return &MeditationRepository{db: db}
}

func (r *MeditationRepository) Create(ctx context.Context, s *models.MeditationSession) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO meditation_sessions
		   (session_key, user_id, exercise_id, session_type, start_time, expected_end_time, status, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		s.SessionID, s.UserID, s.ExerciseID, s.SessionType, s.StartTime, s.ExpectedEndTime, s.Status, s.Notes,
	).Scan(&s.ID)
	return mapError("create meditation session", err)
}

func (r *MeditationRepository) GetBySessionID(ctx context.Context, sessionID string) (*models.MeditationSession, error) {
	var s models.MeditationSession
	err := r.db.QueryRow(ctx,
		`SELECT id, session_key, user_id, exercise_id, session_type, start_time, expected_end_time,
		        end_time, duration, status, notes
		 FROM meditation_sessions WHERE session_key = $1`, sessionID,
	).Scan(&s.ID, &s.SessionID, &s.UserID, &s.ExerciseID, &s.SessionType, &s.StartTime, &s.ExpectedEndTime,
		&s.EndTime, &s.ActualDuration, &s.Status, &s.Notes)
	if err != nil {
		return nil, mapError("get meditation session", err)
	}
	return &s, nil
}

// Complete writes the completion fields. Only an in-progress row is
// updated, so a second completion reports ErrSessionCompleted.
func (r *MeditationRepository) Complete(ctx context.Context, s *models.MeditationSession) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE meditation_sessions
		 SET end_time = $2, duration = $3, status = $4, notes = COALESCE($5, notes)
		 WHERE session_key = $1 AND status = $6`,
		s.SessionID, s.EndTime, s.ActualDuration, s.Status, s.Notes, models.SessionInProgress,
	)
	if err != nil {
		return mapError("complete meditation session", err)
	}
	if tag.RowsAffected() == 0 {
		return mapError("complete meditation session", models.ErrSessionCompleted)
	}
	return nil
}
