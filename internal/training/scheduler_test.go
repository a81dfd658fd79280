package training

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nest/internal/models"
	"nest/internal/structures"
	"nest/internal/testutil"
)

func schedulerConfig(path string, interval time.Duration) *structures.Config {
	return &structures.Config{
		Training: structures.TrainingConfig{SnapshotPath: path, SaveInterval: interval},
	}
}

func TestScheduler_PersistThenRestore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "buffer.dat")
	logger := &testutil.MockLogger{}

	src := NewMetricsBuffer(10)
	require.NoError(t, src.Append(models.ModelTypeChat, models.MetricsEntry{"loss": 1.5}))
	s := NewScheduler(schedulerConfig(path, time.Hour), logger, NewFileManager(&testutil.MockCompressor{}, src, logger, &testutil.MockMetrics{}))
	require.NoError(t, s.Persist())

	dst := NewMetricsBuffer(10)
	r := NewScheduler(schedulerConfig(path, time.Hour), logger, NewFileManager(&testutil.MockCompressor{}, dst, logger, &testutil.MockMetrics{}))
	require.NoError(t, r.Restore())
	assert.Equal(t, 1, dst.TotalEntries())
}

func TestScheduler_PersistError(t *testing.T) {
	logger := &testutil.MockLogger{}
	fm := NewFileManager(&testutil.MockCompressor{}, NewMetricsBuffer(1), logger, &testutil.MockMetrics{})
	s := NewScheduler(schedulerConfig(unwritablePath(t), time.Hour), logger, fm)

	assert.Error(t, s.Persist())
	assert.Equal(t, 1, logger.Count("error"))
}

func TestScheduler_InitSavesPeriodically(t *testing.T) {
	path := filepath.Join(t.TempDir(), "buffer.dat")
	logger := &testutil.MockLogger{}
	metrics := &testutil.MockMetrics{}
	fm := NewFileManager(&testutil.MockCompressor{}, NewMetricsBuffer(1), logger, metrics)

	s := NewScheduler(schedulerConfig(path, time.Second), logger, fm)
	s.Init()
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return metrics.PersistCount() > 0
	}, 5*time.Second, 100*time.Millisecond)
}

func TestScheduler_StopWithoutInit(t *testing.T) {
	s := NewScheduler(schedulerConfig("", time.Second), &testutil.MockLogger{}, nil)
	assert.NotPanics(t, s.Stop)
}
