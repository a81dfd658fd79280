package models

const (
	ModelTypeEmotion    = "emotion"
	ModelTypeChat       = "chat"
	ModelTypeMeditation = "meditation"

	StatusNotTrained = "not_trained"
	StatusTrained    = "trained"
	StatusNotStarted = "not_started"
	StatusRunning    = "in_progress"
	StatusDone       = "completed"
)

// ModelTypes lists every model type the API accepts.
var ModelTypes = []string{ModelTypeEmotion, ModelTypeChat, ModelTypeMeditation}

func IsModelType(t string) bool {
	for _, m := range ModelTypes {
		if m == t {
			return true
		}
	}
	return false
}

type TrainingSample struct {
	Text    string `json:"text"`
	Emotion int    `json:"emotion"`
}

type ModelMetrics struct {
	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1Score   float64 `json:"f1_score"`
}

type TrainingParams struct {
	Epochs       int
	BatchSize    int
	LearningRate float64
}

type TrainingRequest struct {
	ModelType    string  `json:"model_type" validate:"required"`
	Epochs       int     `json:"epochs" validate:"min:0"`
	BatchSize    int     `json:"batch_size" validate:"min:0"`
	LearningRate float64 `json:"learning_rate"`
}

// Params fills in the defaults for unset fields.
func (r *TrainingRequest) Params() TrainingParams {
	p := TrainingParams{Epochs: 10, BatchSize: 32, LearningRate: 0.001}
	if r.Epochs > 0 {
		p.Epochs = r.Epochs
	}
	if r.BatchSize > 0 {
		p.BatchSize = r.BatchSize
	}
	if r.LearningRate > 0 {
		p.LearningRate = r.LearningRate
	}
	return p
}

type TrainingResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	JobID   string `json:"job_id,omitempty"`
}

type EvaluationRequest struct {
	ModelType string           `json:"model_type" validate:"required"`
	TestData  []TrainingSample `json:"test_data"`
}

type EvaluationResponse struct {
	Status  string       `json:"status"`
	Metrics ModelMetrics `json:"metrics"`
}

type StatusResponse struct {
	Status  string       `json:"status"`
	Message string       `json:"message,omitempty"`
	Metrics MetricsEntry `json:"metrics,omitempty"`
}

// MetricsEntry is one dashboard metrics buffer item.
type MetricsEntry map[string]any
