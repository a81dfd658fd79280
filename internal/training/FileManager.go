package training

import (
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"

	"nest/internal/models"
	"nest/internal/providers"
	"nest/internal/training/interfaces"
)

// FileManager persists the metrics buffer as a compressed JSON snapshot.
type FileManager struct {
	buffer     MetricsBufferInterface
	compressor interfaces.CompressorInterface
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
}

func NewFileManager(compressor interfaces.CompressorInterface, buffer MetricsBufferInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) *FileManager {
	return &FileManager{
		compressor: compressor,
		buffer:     buffer,
		logger:     logger,
		metrics:    metrics,
	}
}

func (f *FileManager) SaveToFile(fileName string) error {
	start := time.Now()
	defer func() { f.metrics.ObservePersistenceDuration(time.Since(start)) }()

	jsonData, err := json.Marshal(f.buffer.Snapshot())
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}
	return writeAtomic(fileName, data)
}

func (f *FileManager) Close() {
	f.compressor.Close()
}

// LoadFromFile restores the buffer. A missing snapshot is not an error.
func (f *FileManager) LoadFromFile(fileName string) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressed, err := f.compressor.Decompress(data)
	if err != nil {
		return err
	}

	var snapshot map[string][]models.MetricsEntry
	if err := json.Unmarshal(decompressed, &snapshot); err != nil {
		return err
	}
	f.buffer.Restore(snapshot)
	f.logger.Infof(providers.TypeTraining, "Restored %d metrics entries from %s", f.buffer.TotalEntries(), fileName)
	return nil
}

// writeAtomic writes data next to fileName and renames it into place.
func writeAtomic(fileName string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(fileName), 0o755); err != nil {
		return err
	}
	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	if _, err = file.Write(data); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}
