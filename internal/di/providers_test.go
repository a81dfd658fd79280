package di

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nest/internal/providers"
	"nest/internal/structures"
	"nest/internal/training"
)

func TestProvideLogger_CleanupClosesFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	conf := &structures.Config{Logger: structures.LoggerConfig{Level: "info", Mode: 0o644, Dir: dir}}

	logger, cleanup, err := provideLogger(conf)
	require.NoError(t, err)
	require.NotNil(t, cleanup)

	logger.Infof(providers.TypeTraining, "epoch %d", 1)
	cleanup()
	cleanup()

	data, err := os.ReadFile(filepath.Join(dir, "training.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "epoch 1")
}

func TestProvideLogger_BadLevelHasNoCleanup(t *testing.T) {
	conf := &structures.Config{Logger: structures.LoggerConfig{Level: "loud", Mode: 0o644, Dir: t.TempDir()}}

	_, cleanup, err := provideLogger(conf)
	assert.Error(t, err)
	assert.Nil(t, cleanup)
}

func TestProvideCompressor_RoundTripThenCleanup(t *testing.T) {
	compressor, cleanup, err := provideCompressor()
	require.NoError(t, err)
	require.NotNil(t, cleanup)

	packed, err := compressor.Compress([]byte(`{"emotion":[{"epoch":1}]}`))
	require.NoError(t, err)
	unpacked, err := compressor.Decompress(packed)
	require.NoError(t, err)
	assert.JSONEq(t, `{"emotion":[{"epoch":1}]}`, string(unpacked))

	assert.NotPanics(t, cleanup)
}

func TestProvideMetricsBuffer_DefaultSize(t *testing.T) {
	buffer := provideMetricsBuffer(&structures.Config{})
	for i := 0; i < training.DefaultBufferSize+5; i++ {
		require.NoError(t, buffer.Append("emotion", map[string]any{"epoch": i}))
	}
	assert.Equal(t, training.DefaultBufferSize, buffer.TotalEntries())
}
