package training

import (
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nest/internal/models"
	"nest/internal/structures"
	"nest/internal/testutil"
)

func newTestService(t *testing.T) (*Service, *MetricsBuffer, *testutil.MockMetrics) {
	t.Helper()
	conf := &structures.Config{Training: structures.TrainingConfig{ModelsDir: filepath.Join(t.TempDir(), "models")}}
	comp, err := NewZstdCompressor()
	require.NoError(t, err)
	buffer := NewMetricsBuffer(DefaultBufferSize)
	metrics := &testutil.MockMetrics{}
	svc, err := NewService(conf, comp, buffer, &testutil.MockLogger{}, metrics)
	require.NoError(t, err)
	t.Cleanup(svc.Close)
	return svc, buffer, metrics
}

func newRng() *rand.Rand {
	return rand.New(rand.NewSource(3))
}

func defaultParams() models.TrainingParams {
	return models.TrainingParams{Epochs: 3, BatchSize: 32, LearningRate: 0.001}
}

func TestPrepareTrainingData(t *testing.T) {
	svc, _, _ := newTestService(t)

	data, err := svc.PrepareTrainingData(models.ModelTypeEmotion)
	require.NoError(t, err)
	assert.Equal(t, []models.TrainingSample{
		{Text: "I'm feeling happy today", Emotion: 0},
		{Text: "I'm feeling sad", Emotion: 1},
	}, data)

	data, err = svc.PrepareTrainingData(models.ModelTypeChat)
	require.NoError(t, err)
	assert.Empty(t, data)

	_, err = svc.PrepareTrainingData("speech")
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.ErrorIs(t, err, models.ErrUnsupportedModel)
}

func TestTrainEmotionModel_ToyData(t *testing.T) {
	svc, buffer, metrics := newTestService(t)
	data, err := svc.PrepareTrainingData(models.ModelTypeEmotion)
	require.NoError(t, err)

	result, err := svc.TrainEmotionModel(context.Background(), data, defaultParams())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, result.Accuracy, 0.0)
	assert.LessOrEqual(t, result.Accuracy, 1.0)

	entries, err := buffer.Entries(models.ModelTypeEmotion)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, true, entries[0]["is_training"])
	assert.Equal(t, false, entries[2]["is_training"])
	assert.Contains(t, metrics.Accuracy, models.ModelTypeEmotion)

	model, ok := svc.Model(models.ModelTypeEmotion)
	require.True(t, ok)
	assert.Equal(t, 2, model.NumClasses)
}

func TestTrainEmotionModel_Validation(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.TrainEmotionModel(context.Background(), samples(1), defaultParams())
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = svc.TrainEmotionModel(context.Background(), samples(4), models.TrainingParams{Epochs: 0, BatchSize: 1, LearningRate: 0.1})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestTrainEmotionModel_Cancelled(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.TrainEmotionModel(ctx, samples(4), defaultParams())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSaveLoad_RoundTripKeepsParamCount(t *testing.T) {
	svc, _, _ := newTestService(t)
	original := NewClassifier(100, 128, 4, newRng())
	path, err := svc.SaveModel("emotion_model", original)
	require.NoError(t, err)
	assert.Regexp(t, `emotion_model_\d{8}_\d{6}\.pt$`, path)

	loaded, err := svc.LoadModel("emotion_model")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, original.ParamCount(), loaded.ParamCount())
	assert.Equal(t, original.W2, loaded.W2)
}

func TestLoadModel_NoneSaved(t *testing.T) {
	svc, _, _ := newTestService(t)
	m, err := svc.LoadModel("emotion_model")
	assert.NoError(t, err)
	assert.Nil(t, m)
}

func TestLoadModel_PicksMostRecent(t *testing.T) {
	svc, _, _ := newTestService(t)
	first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	svc.now = func() time.Time { return first }
	oldPath, err := svc.SaveModel("emotion_model", NewClassifier(100, 8, 2, newRng()))
	require.NoError(t, err)
	svc.now = func() time.Time { return first.Add(time.Minute) }
	_, err = svc.SaveModel("emotion_model", NewClassifier(100, 8, 5, newRng()))
	require.NoError(t, err)
	require.NoError(t, os.Chtimes(oldPath, first, first))

	loaded, err := svc.LoadModel("emotion_model")
	require.NoError(t, err)
	assert.Equal(t, 5, loaded.NumClasses)
}

func TestLoadModel_ShapeMismatch(t *testing.T) {
	svc, _, _ := newTestService(t)
	broken := NewClassifier(100, 8, 2, newRng())
	broken.B2 = broken.B2[:1]
	_, err := svc.SaveModel("emotion_model", broken)
	require.NoError(t, err)

	_, err = svc.LoadModel("emotion_model")
	assert.ErrorIs(t, err, models.ErrShapeMismatch)
}

func TestLoadModel_LegacyCheckpointAssumesDefaults(t *testing.T) {
	svc, _, _ := newTestService(t)
	c := NewClassifier(legacyInputSize, legacyHiddenSize, legacyNumClasses, newRng())
	legacy, err := json.Marshal(checkpoint{State: map[string][]float64{
		"layer1.weight": c.W1,
		"layer1.bias":   c.B1,
		"layer2.weight": c.W2,
		"layer2.bias":   c.B2,
	}})
	require.NoError(t, err)
	packed, err := svc.compressor.Compress(legacy)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(svc.modelsDir, "emotion_model_20200101_000000.pt"), packed, 0o644))

	loaded, err := svc.LoadModel("emotion_model")
	require.NoError(t, err)
	assert.Equal(t, c.ParamCount(), loaded.ParamCount())
	assert.Equal(t, legacyNumClasses, loaded.NumClasses)
}

func TestEvaluateModel(t *testing.T) {
	svc, _, _ := newTestService(t)
	model := NewClassifier(100, 16, 4, newRng())

	m, err := svc.EvaluateModel(model, samples(8))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, m.Accuracy, 0.0)

	_, err = svc.EvaluateModel(model, nil)
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = svc.EvaluateModel(NewClassifier(10, 4, 2, newRng()), samples(2))
	assert.ErrorIs(t, err, models.ErrShapeMismatch)
}

func TestEvaluate_NoCheckpoint(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.Evaluate(models.ModelTypeEmotion, samples(2))
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = svc.Evaluate("speech", samples(2))
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestStartTraining_RunsInBackground(t *testing.T) {
	svc, _, metrics := newTestService(t)

	id, err := svc.StartTraining(models.ModelTypeEmotion, defaultParams())
	require.NoError(t, err)
	assert.Len(t, id, 36)

	assert.Eventually(t, func() bool {
		st, err := svc.Status(models.ModelTypeEmotion)
		return err == nil && st.Status != models.StatusRunning
	}, 10*time.Second, 20*time.Millisecond)
	assert.Equal(t, 1, metrics.Runs(models.ModelTypeEmotion, "success"))
}

func TestStartTraining_ConflictWhileRunning(t *testing.T) {
	svc, _, _ := newTestService(t)

	svc.jobsMu.Lock()
	svc.jobs[models.ModelTypeEmotion] = "busy"
	svc.jobsMu.Unlock()

	_, err := svc.StartTraining(models.ModelTypeEmotion, defaultParams())
	assert.ErrorIs(t, err, models.ErrConflict)

	st, err := svc.Status(models.ModelTypeEmotion)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRunning, st.Status)

	svc.jobsMu.Lock()
	delete(svc.jobs, models.ModelTypeEmotion)
	svc.jobsMu.Unlock()
}

func TestStartTraining_UnsupportedTypeFailsInBackground(t *testing.T) {
	svc, _, metrics := newTestService(t)

	_, err := svc.StartTraining("speech", defaultParams())
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = svc.StartTraining(models.ModelTypeChat, defaultParams())
	require.NoError(t, err)
	assert.Eventually(t, func() bool {
		return metrics.Runs(models.ModelTypeChat, "failure") == 1
	}, 5*time.Second, 20*time.Millisecond)
}

func TestStatus_NotTrained(t *testing.T) {
	svc, _, _ := newTestService(t)
	st, err := svc.Status(models.ModelTypeMeditation)
	require.NoError(t, err)
	assert.Equal(t, models.StatusNotTrained, st.Status)
	assert.Equal(t, "No trained model found for meditation", st.Message)
}
