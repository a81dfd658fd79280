package meditation

import (
	"fmt"
	"math"
	"time"

	"nest/internal/models"
)

// durationTolerance is how far, in seconds, a recommended exercise may be
// from the preferred duration.
const durationTolerance = 300

var emotionExercises = map[string][]string{
	"anxiety": {"mindfulness_breathing", "body_scan"},
	"stress":  {"mindfulness_breathing", "body_scan"},
	"anger":   {"mindfulness_breathing"},
	"sadness": {"body_scan"},
}

type ManagerInterface interface {
	Get(id string) (models.Exercise, error)
	All() []models.Exercise
	ByType(exerciseType string) []models.Exercise
	ByDifficulty(difficulty string) []models.Exercise
	Recommend(emotion string, preferredDuration int) []models.Exercise
	StartSession(exerciseID string, userID int64, start time.Time) (*models.MeditationSession, error)
	CompleteSession(session *models.MeditationSession) (*models.MeditationSession, error)
}

// Manager answers catalog queries and drives the session state machine.
// It does not persist sessions.
type Manager struct {
	catalog *Catalog
	now     func() time.Time
}

func NewManager(catalog *Catalog) *Manager {
	return &Manager{catalog: catalog, now: time.Now}
}

func (m *Manager) Get(id string) (models.Exercise, error) {
	ex, ok := m.catalog.get(id)
	if !ok {
		return models.Exercise{}, fmt.Errorf("exercise %q: %w", id, models.ErrNotFound)
	}
	return ex, nil
}

func (m *Manager) All() []models.Exercise {
	return m.catalog.filter(func(models.Exercise) bool { return true })
}

func (m *Manager) ByType(exerciseType string) []models.Exercise {
	return m.catalog.filter(func(ex models.Exercise) bool { return ex.Type == exerciseType })
}

func (m *Manager) ByDifficulty(difficulty string) []models.Exercise {
	return m.catalog.filter(func(ex models.Exercise) bool { return ex.Difficulty == difficulty })
}

// Recommend narrows the catalog by duration, then by emotion. A zero
// duration or an emotion outside the mapping skips that filter.
func (m *Manager) Recommend(emotion string, preferredDuration int) []models.Exercise {
	ids, emotionKnown := emotionExercises[emotion]
	return m.catalog.filter(func(ex models.Exercise) bool {
		if preferredDuration > 0 && math.Abs(float64(ex.Duration-preferredDuration)) > durationTolerance {
			return false
		}
		if !emotionKnown {
			return true
		}
		for _, id := range ids {
			if id == ex.ID {
				return true
			}
		}
		return false
	})
}

func (m *Manager) StartSession(exerciseID string, userID int64, start time.Time) (*models.MeditationSession, error) {
	ex, err := m.Get(exerciseID)
	if err != nil {
		return nil, err
	}
	return &models.MeditationSession{
		SessionID:       fmt.Sprintf("%d-%s-%d", userID, exerciseID, start.Unix()),
		UserID:          userID,
		ExerciseID:      exerciseID,
		Exercise:        &ex,
		SessionType:     ex.Type,
		StartTime:       start,
		ExpectedEndTime: start.Add(time.Duration(ex.Duration) * time.Second),
		Status:          models.SessionInProgress,
	}, nil
}

// CompleteSession stamps the end time and actual duration on session and
// returns it. A session completes exactly once.
func (m *Manager) CompleteSession(session *models.MeditationSession) (*models.MeditationSession, error) {
	if session.Status == models.SessionCompleted {
		return nil, fmt.Errorf("session %s: %w", session.SessionID, models.ErrSessionCompleted)
	}
	end := m.now().UTC()
	actual := math.Max(end.Sub(session.StartTime).Seconds(), 0)

	session.Status = models.SessionCompleted
	session.EndTime = &end
	session.ActualDuration = &actual
	return session, nil
}
