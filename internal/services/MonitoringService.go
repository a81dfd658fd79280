package services

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	json "github.com/goccy/go-json"

	"nest/internal/models"
	"nest/internal/providers"
	"nest/internal/structures"
)

type MonitoringServiceInterface interface {
	WriteLogs(batch *models.LogBatch) error
	WriteMetrics(batch *models.MetricBatch) error
	ReadLogs(date string) ([]map[string]any, error)
	ReadMetrics(date string) ([]any, error)
}

// MonitoringService appends client logs and metrics to per-day files.
type MonitoringService struct {
	dir    string
	logger providers.Logger
	mu     sync.Mutex
	now    func() time.Time
}

func NewMonitoringService(conf *structures.Config, logger providers.Logger) (*MonitoringService, error) {
	if err := os.MkdirAll(conf.Monitoring.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create monitoring dir: %w", err)
	}
	return &MonitoringService{dir: conf.Monitoring.Dir, logger: logger, now: time.Now}, nil
}

func (s *MonitoringService) logPath(date string) string {
	return filepath.Join(s.dir, "app-"+date+".log")
}

func (s *MonitoringService) metricsPath(date string) string {
	return filepath.Join(s.dir, "metrics-"+date+".json")
}

func validDate(date string) error {
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		return fmt.Errorf("%w: date %q is not YYYY-MM-DD", models.ErrValidation, date)
	}
	return nil
}

// WriteLogs appends one JSON line per entry to today's log file.
func (s *MonitoringService) WriteLogs(batch *models.LogBatch) error {
	var buf bytes.Buffer
	for _, entry := range batch.Logs {
		line, err := json.Marshal(entry)
		if err != nil {
			return err
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.logPath(s.now().Format(time.DateOnly)), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteMetrics rewrites today's metrics file with the batch appended. A file
// that no longer decodes starts over.
func (s *MonitoringService) WriteMetrics(batch *models.MetricBatch) error {
	snapshot := models.MetricSnapshot{
		Timestamp:   s.now().Format("2006-01-02T15:04:05.000000"),
		Metrics:     batch.Metrics,
		UserActions: batch.UserActions,
	}
	if snapshot.Metrics == nil {
		snapshot.Metrics = []models.PerformanceMetric{}
	}
	if snapshot.UserActions == nil {
		snapshot.UserActions = []models.UserAction{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.metricsPath(s.now().Format(time.DateOnly))
	existing, err := readMetricsFile(path)
	if err != nil {
		s.logger.Warnf(providers.TypePost, "Metrics file %s is corrupt, starting over: %v", path, err)
		existing = nil
	}
	if existing == nil {
		existing = []any{}
	}
	existing = append(existing, snapshot)

	data, err := json.MarshalIndent(existing, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func readMetricsFile(path string) ([]any, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var out []any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MonitoringService) ReadLogs(date string) ([]map[string]any, error) {
	if err := validDate(date); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.logPath(date))
	if os.IsNotExist(err) {
		return []map[string]any{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	logs := make([]map[string]any, 0)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal(line, &entry); err != nil {
			return nil, fmt.Errorf("decode log line: %w", err)
		}
		logs = append(logs, entry)
	}
	return logs, scanner.Err()
}

func (s *MonitoringService) ReadMetrics(date string) ([]any, error) {
	if err := validDate(date); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	metrics, err := readMetricsFile(s.metricsPath(date))
	if err != nil {
		return nil, fmt.Errorf("decode metrics file: %w", err)
	}
	if metrics == nil {
		metrics = []any{}
	}
	return metrics, nil
}
