package testutil

import (
	"sync"
	"time"

	"nest/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockCompressor implements the compressor interface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu           sync.Mutex
	Requests     map[string]int
	CacheHits    int
	CacheMisses  int
	Persists     int
	Accuracy     map[string]float64
	TrainingRuns map[string]int
}

func (m *MockMetrics) IncRequestsTotal(endpoint string, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Requests == nil {
		m.Requests = make(map[string]int)
	}
	m.Requests[endpoint]++
}

func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Persists++
}

func (m *MockMetrics) SetValidationAccuracy(modelType string, accuracy float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Accuracy == nil {
		m.Accuracy = make(map[string]float64)
	}
	m.Accuracy[modelType] = accuracy
}

func (m *MockMetrics) IncTrainingRuns(modelType, result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.TrainingRuns == nil {
		m.TrainingRuns = make(map[string]int)
	}
	m.TrainingRuns[modelType+":"+result]++
}

// Runs returns how many training runs finished for modelType with result.
func (m *MockMetrics) Runs(modelType, result string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.TrainingRuns[modelType+":"+result]
}

func (m *MockMetrics) PersistCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Persists
}
