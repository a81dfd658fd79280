package models

type LogEntry struct {
	Timestamp string         `json:"timestamp" validate:"required"`
	Level     string         `json:"level" validate:"required"`
	Message   string         `json:"message" validate:"required"`
	Context   map[string]any `json:"context"`
	UserID    *string        `json:"userId"`
	SessionID *string        `json:"sessionId"`
}

type LogBatch struct {
	Logs []LogEntry `json:"logs"`
}

type PerformanceMetric struct {
	Name      string            `json:"name" validate:"required"`
	Value     float64           `json:"value"`
	Timestamp string            `json:"timestamp" validate:"required"`
	Tags      map[string]string `json:"tags"`
}

type UserAction struct {
	Action    string         `json:"action" validate:"required"`
	Timestamp string         `json:"timestamp" validate:"required"`
	Context   map[string]any `json:"context"`
}

type MetricBatch struct {
	Metrics     []PerformanceMetric `json:"metrics"`
	UserActions []UserAction        `json:"userActions"`
}

// MetricSnapshot is one element of a day's metrics file.
type MetricSnapshot struct {
	Timestamp   string              `json:"timestamp"`
	Metrics     []PerformanceMetric `json:"metrics"`
	UserActions []UserAction        `json:"userActions"`
}
