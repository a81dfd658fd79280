package training

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nest/internal/models"
	"nest/internal/testutil"
)

func TestFileManager_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "buffer.dat")
	comp, err := NewZstdCompressor()
	require.NoError(t, err)

	src := NewMetricsBuffer(10)
	require.NoError(t, src.Append(models.ModelTypeEmotion, models.MetricsEntry{"epoch": 1, "accuracy": 0.5}))
	metrics := &testutil.MockMetrics{}
	require.NoError(t, NewFileManager(comp, src, &testutil.MockLogger{}, metrics).SaveToFile(path))
	assert.Equal(t, 1, metrics.Persists)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	dst := NewMetricsBuffer(10)
	require.NoError(t, NewFileManager(comp, dst, &testutil.MockLogger{}, metrics).LoadFromFile(path))
	entries, err := dst.Entries(models.ModelTypeEmotion)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 0.5, entries[0]["accuracy"])
}

func TestFileManager_LoadFromFile_FileNotExist(t *testing.T) {
	fm := NewFileManager(&testutil.MockCompressor{}, NewMetricsBuffer(1), &testutil.MockLogger{}, &testutil.MockMetrics{})
	assert.NoError(t, fm.LoadFromFile("/nonexistent/path/file.dat"))
}

func TestFileManager_LoadFromFile_CorruptJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.dat")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	fm := NewFileManager(&testutil.MockCompressor{}, NewMetricsBuffer(1), &testutil.MockLogger{}, &testutil.MockMetrics{})
	assert.Error(t, fm.LoadFromFile(path))
}

func TestFileManager_SaveToFile_CompressError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "buffer.dat")
	comp := &testutil.MockCompressor{CompressFn: func([]byte) ([]byte, error) {
		return nil, errors.New("compress failed")
	}}
	fm := NewFileManager(comp, NewMetricsBuffer(1), &testutil.MockLogger{}, &testutil.MockMetrics{})

	assert.Error(t, fm.SaveToFile(path))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

// unwritablePath returns a path whose parent is a regular file, so the
// directory cannot be created.
func unwritablePath(t *testing.T) string {
	t.Helper()
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	return filepath.Join(blocker, "sub", "dashboard_metrics.zst")
}

func TestFileManager_SaveToFile_BadDir(t *testing.T) {
	fm := NewFileManager(&testutil.MockCompressor{}, NewMetricsBuffer(1), &testutil.MockLogger{}, &testutil.MockMetrics{})
	assert.Error(t, fm.SaveToFile(unwritablePath(t)))
}

func TestFileManager_SaveToFile_CreatesParentDir(t *testing.T) {
	buffer := NewMetricsBuffer(5)
	require.NoError(t, buffer.Append(models.ModelTypeEmotion, models.MetricsEntry{"epoch": 1, "accuracy": 0.5}))
	fm := NewFileManager(&testutil.MockCompressor{}, buffer, &testutil.MockLogger{}, &testutil.MockMetrics{})

	path := filepath.Join(t.TempDir(), "data", "dashboard_metrics.zst")
	require.NoError(t, fm.SaveToFile(path))
	_, err := os.Stat(path)
	assert.NoError(t, err)
}
