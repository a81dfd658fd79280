package training

import (
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cast"

	"nest/internal/models"
)

// DefaultBufferSize is the per-type cap of the metrics buffer.
const DefaultBufferSize = 100

type MetricsBufferInterface interface {
	Append(modelType string, entry models.MetricsEntry) error
	Entries(modelType string) ([]models.MetricsEntry, error)
	Status(modelType string) (*models.StatusResponse, error)
	TotalEntries() int
	Snapshot() map[string][]models.MetricsEntry
	Restore(data map[string][]models.MetricsEntry)
}

// MetricsBuffer keeps the most recent training metrics per model type.
// Oldest entries are evicted first once a type reaches its cap.
type MetricsBuffer struct {
	mu       sync.Mutex
	capacity int
	data     map[string][]models.MetricsEntry
	now      func() time.Time
}

func NewMetricsBuffer(capacity int) *MetricsBuffer {
	if capacity <= 0 {
		capacity = DefaultBufferSize
	}
	b := &MetricsBuffer{
		capacity: capacity,
		data:     make(map[string][]models.MetricsEntry, len(models.ModelTypes)),
		now:      time.Now,
	}
	for _, t := range models.ModelTypes {
		b.data[t] = make([]models.MetricsEntry, 0)
	}
	return b
}

func unknownType(modelType string) error {
	return fmt.Errorf("model type %q: %w", modelType, models.ErrNotFound)
}

// Append stores a copy of entry stamped with the current time.
func (b *MetricsBuffer) Append(modelType string, entry models.MetricsEntry) error {
	stamped := make(models.MetricsEntry, len(entry)+1)
	for k, v := range entry {
		stamped[k] = v
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	entries, ok := b.data[modelType]
	if !ok {
		return unknownType(modelType)
	}
	stamped["timestamp"] = b.now().Format(time.RFC3339Nano)
	entries = append(entries, stamped)
	if over := len(entries) - b.capacity; over > 0 {
		entries = append(entries[:0:0], entries[over:]...)
	}
	b.data[modelType] = entries
	return nil
}

func (b *MetricsBuffer) Entries(modelType string) ([]models.MetricsEntry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries, ok := b.data[modelType]
	if !ok {
		return nil, unknownType(modelType)
	}
	out := make([]models.MetricsEntry, len(entries))
	copy(out, entries)
	return out, nil
}

// Status reports not_started for an empty buffer, otherwise in_progress or
// completed depending on the latest entry's is_training flag.
func (b *MetricsBuffer) Status(modelType string) (*models.StatusResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries, ok := b.data[modelType]
	if !ok {
		return nil, unknownType(modelType)
	}
	if len(entries) == 0 {
		return &models.StatusResponse{Status: models.StatusNotStarted, Message: "Training has not started"}, nil
	}

	latest := entries[len(entries)-1]
	status := models.StatusDone
	if cast.ToBool(latest["is_training"]) {
		status = models.StatusRunning
	}
	return &models.StatusResponse{Status: status, Metrics: latest}, nil
}

func (b *MetricsBuffer) TotalEntries() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := 0
	for _, entries := range b.data {
		n += len(entries)
	}
	return n
}

func (b *MetricsBuffer) Snapshot() map[string][]models.MetricsEntry {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make(map[string][]models.MetricsEntry, len(b.data))
	for t, entries := range b.data {
		cp := make([]models.MetricsEntry, len(entries))
		copy(cp, entries)
		out[t] = cp
	}
	return out
}

// Restore replaces the buffered entries of every known type present in data.
// Unknown types are dropped and each type is trimmed to the cap.
func (b *MetricsBuffer) Restore(data map[string][]models.MetricsEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for t, entries := range data {
		if _, ok := b.data[t]; !ok {
			continue
		}
		if over := len(entries) - b.capacity; over > 0 {
			entries = entries[over:]
		}
		cp := make([]models.MetricsEntry, len(entries))
		copy(cp, entries)
		b.data[t] = cp
	}
}
