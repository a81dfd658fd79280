package services

import (
	"context"
	"time"

	"nest/internal/meditation"
	"nest/internal/models"
	"nest/internal/providers"
	"nest/internal/repositories"
)

type MeditationServiceInterface interface {
	Exercises(exerciseType, difficulty string) []models.Exercise
	Exercise(id string) (models.Exercise, error)
	Recommend(emotion string, preferredDuration int) []models.Exercise
	StartSession(ctx context.Context, req *models.StartSessionRequest) (*models.MeditationSession, error)
	CompleteSession(ctx context.Context, sessionID string, notes *string) (*models.MeditationSession, error)
}

// MeditationService persists the sessions the manager creates.
type MeditationService struct {
	manager meditation.ManagerInterface
	repo    repositories.MeditationRepositoryInterface
	logger  providers.Logger
	now     func() time.Time
}

func NewMeditationService(manager meditation.ManagerInterface, repo repositories.MeditationRepositoryInterface, logger providers.Logger) *MeditationService {
	return &MeditationService{manager: manager, repo: repo, logger: logger, now: time.Now}
}

// Exercises lists the catalog narrowed by the non-empty filters.
func (s *MeditationService) Exercises(exerciseType, difficulty string) []models.Exercise {
	var list []models.Exercise
	switch {
	case exerciseType != "":
		list = s.manager.ByType(exerciseType)
	case difficulty != "":
		list = s.manager.ByDifficulty(difficulty)
	default:
		return s.manager.All()
	}
	if exerciseType == "" || difficulty == "" {
		return list
	}

	out := list[:0]
	for _, ex := range list {
		if ex.Difficulty == difficulty {
			out = append(out, ex)
		}
	}
	return out
}

func (s *MeditationService) Exercise(id string) (models.Exercise, error) {
	return s.manager.Get(id)
}

func (s *MeditationService) Recommend(emotion string, preferredDuration int) []models.Exercise {
	return s.manager.Recommend(emotion, preferredDuration)
}

func (s *MeditationService) StartSession(ctx context.Context, req *models.StartSessionRequest) (*models.MeditationSession, error) {
	start := s.now().UTC()
	if req.StartTime != nil {
		start = req.StartTime.UTC()
	}
	session, err := s.manager.StartSession(req.ExerciseID, req.UserID, start)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return nil, err
	}
	s.logger.Infof(providers.TypePost, "Meditation session %s started", session.SessionID)
	return session, nil
}

func (s *MeditationService) CompleteSession(ctx context.Context, sessionID string, notes *string) (*models.MeditationSession, error) {
	session, err := s.repo.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if ex, err := s.manager.Get(session.ExerciseID); err == nil {
		session.Exercise = &ex
	}
	if _, err := s.manager.CompleteSession(session); err != nil {
		return nil, err
	}
	if notes != nil {
		session.Notes = notes
	}
	if err := s.repo.Complete(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}
