package meditation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nest/internal/models"
)

func newTestManager() *Manager {
	return NewManager(NewCatalog(map[string]models.Exercise{
		"mindfulness_breathing": {ID: "mindfulness_breathing", Duration: 300, Type: models.ExerciseTypeBreathing, Difficulty: models.DifficultyBeginner},
		"body_scan":             {ID: "body_scan", Duration: 600, Type: models.ExerciseTypeMeditation, Difficulty: models.DifficultyBeginner},
		"deep_focus":            {ID: "deep_focus", Duration: 1800, Type: models.ExerciseTypeMeditation, Difficulty: models.DifficultyAdvanced},
	}))
}

func ids(exercises []models.Exercise) []string {
	out := make([]string, 0, len(exercises))
	for _, ex := range exercises {
		out = append(out, ex.ID)
	}
	return out
}

func TestManager_Get(t *testing.T) {
	m := newTestManager()

	ex, err := m.Get("body_scan")
	require.NoError(t, err)
	assert.Equal(t, 600, ex.Duration)

	_, err = m.Get("nope")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestManager_Filters(t *testing.T) {
	m := newTestManager()
	assert.Equal(t, []string{"body_scan", "deep_focus"}, ids(m.ByType(models.ExerciseTypeMeditation)))
	assert.Equal(t, []string{"body_scan", "mindfulness_breathing"}, ids(m.ByDifficulty(models.DifficultyBeginner)))
	assert.Empty(t, m.ByDifficulty(models.DifficultyIntermediate))
	assert.Len(t, m.All(), 3)
}

func TestManager_RecommendDurationWindow(t *testing.T) {
	m := newTestManager()
	got := m.Recommend("", 300)
	assert.Equal(t, []string{"body_scan", "mindfulness_breathing"}, ids(got))
	for _, ex := range got {
		assert.LessOrEqual(t, abs(ex.Duration-300), 300)
	}
}

func TestManager_RecommendByEmotion(t *testing.T) {
	m := newTestManager()
	assert.Equal(t, []string{"mindfulness_breathing"}, ids(m.Recommend("anger", 0)))
	assert.Equal(t, []string{"body_scan"}, ids(m.Recommend("sadness", 0)))
	assert.Equal(t, []string{"body_scan", "mindfulness_breathing"}, ids(m.Recommend("anxiety", 0)))
}

func TestManager_RecommendUnknownEmotionSkipsFilter(t *testing.T) {
	m := newTestManager()
	assert.Len(t, m.Recommend("joy", 0), 3)
	assert.Len(t, m.Recommend("", 0), 3)
}

func TestManager_RecommendDurationThenEmotion(t *testing.T) {
	m := newTestManager()
	assert.Empty(t, m.Recommend("sadness", 100))
	assert.Equal(t, []string{"mindfulness_breathing"}, ids(m.Recommend("stress", 100)))
}

func TestManager_SessionLifecycle(t *testing.T) {
	m := newTestManager()
	start := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return start.Add(280 * time.Second) }

	s, err := m.StartSession("mindfulness_breathing", 7, start)
	require.NoError(t, err)
	assert.Equal(t, "7-mindfulness_breathing-1777629600", s.SessionID)
	assert.Equal(t, start.Add(5*time.Minute), s.ExpectedEndTime)
	assert.Equal(t, models.SessionInProgress, s.Status)
	assert.Equal(t, models.ExerciseTypeBreathing, s.SessionType)

	done, err := m.CompleteSession(s)
	require.NoError(t, err)
	assert.Same(t, s, done)
	assert.Equal(t, models.SessionCompleted, done.Status)
	require.NotNil(t, done.ActualDuration)
	assert.InDelta(t, 280.0, *done.ActualDuration, 1e-9)

	_, err = m.CompleteSession(s)
	assert.ErrorIs(t, err, models.ErrSessionCompleted)
}

func TestManager_CompleteClampsNegativeDuration(t *testing.T) {
	m := newTestManager()
	start := time.Now().Add(time.Hour)
	s, err := m.StartSession("body_scan", 1, start)
	require.NoError(t, err)

	_, err = m.CompleteSession(s)
	require.NoError(t, err)
	assert.Equal(t, 0.0, *s.ActualDuration)
}

func TestManager_StartUnknownExercise(t *testing.T) {
	_, err := newTestManager().StartSession("missing", 1, time.Now())
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
