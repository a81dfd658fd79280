package di

import (
	"nest/internal/chatbot"
	"nest/internal/meditation"
	"nest/internal/providers"
	"nest/internal/structures"
	"nest/internal/training"
	"nest/internal/training/interfaces"
)

// provideLogger closes the per-category log files on cleanup.
func provideLogger(conf *structures.Config) (providers.Logger, func(), error) {
	logger, err := providers.NewLogProvider(conf)
	if err != nil {
		return nil, nil, err
	}
	return logger, logger.Close, nil
}

// provideCompressor stops the zstd encoder and decoder workers on cleanup.
func provideCompressor() (interfaces.CompressorInterface, func(), error) {
	compressor, err := training.NewZstdCompressor()
	if err != nil {
		return nil, nil, err
	}
	return compressor, compressor.Close, nil
}

func provideMetricsBuffer(conf *structures.Config) *training.MetricsBuffer {
	size := conf.Training.BufferSize
	if size <= 0 {
		size = training.DefaultBufferSize
	}
	return training.NewMetricsBuffer(size)
}

func provideCatalog(conf *structures.Config) (*meditation.Catalog, error) {
	return meditation.LoadCatalog(conf.Meditation.ExercisesFile)
}

func provideBot(completer chatbot.Completer) chatbot.BotInterface {
	return chatbot.NewBot(completer)
}
