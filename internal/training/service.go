package training

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"nest/internal/models"
	"nest/internal/nlp"
	"nest/internal/providers"
	"nest/internal/structures"
	"nest/internal/training/interfaces"
)

const (
	hiddenSize     = 128
	evalBatchSize  = 32
	checkpointName = "emotion_model"
)

type ServiceInterface interface {
	PrepareTrainingData(modelType string) ([]models.TrainingSample, error)
	TrainEmotionModel(ctx context.Context, data []models.TrainingSample, params models.TrainingParams) (*models.ModelMetrics, error)
	SaveModel(name string, model *Classifier) (string, error)
	LoadModel(name string) (*Classifier, error)
	EvaluateModel(model *Classifier, testData []models.TrainingSample) (*models.ModelMetrics, error)
	Evaluate(modelType string, testData []models.TrainingSample) (*models.ModelMetrics, error)
	StartTraining(modelType string, params models.TrainingParams) (string, error)
	Status(modelType string) (*models.StatusResponse, error)
	Close()
}

// Service trains and serves the emotion classifier. Other model types are
// accepted by the API but have no trainer.
type Service struct {
	modelsDir  string
	compressor interfaces.CompressorInterface
	buffer     MetricsBufferInterface
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface

	modelsMu sync.RWMutex
	models   map[string]*Classifier

	jobsMu sync.Mutex
	jobs   map[string]string
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc

	now func() time.Time
}

func NewService(conf *structures.Config, compressor interfaces.CompressorInterface, buffer MetricsBufferInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) (*Service, error) {
	if err := os.MkdirAll(conf.Training.ModelsDir, 0o755); err != nil {
		return nil, fmt.Errorf("create models dir: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		modelsDir:  conf.Training.ModelsDir,
		compressor: compressor,
		buffer:     buffer,
		logger:     logger,
		metrics:    metrics,
		models:     make(map[string]*Classifier),
		jobs:       make(map[string]string),
		ctx:        ctx,
		cancel:     cancel,
		now:        time.Now,
	}, nil
}

func unsupported(modelType string) error {
	return fmt.Errorf("%w: %w %q", models.ErrValidation, models.ErrUnsupportedModel, modelType)
}

// CheckpointName is the file prefix used for a model type's checkpoints.
func CheckpointName(modelType string) string {
	if modelType == models.ModelTypeEmotion {
		return checkpointName
	}
	return modelType + "_model"
}

func (s *Service) PrepareTrainingData(modelType string) ([]models.TrainingSample, error) {
	switch modelType {
	case models.ModelTypeEmotion:
		return []models.TrainingSample{
			{Text: "I'm feeling happy today", Emotion: 0},
			{Text: "I'm feeling sad", Emotion: 1},
		}, nil
	case models.ModelTypeChat, models.ModelTypeMeditation:
		return []models.TrainingSample{}, nil
	default:
		s.logger.Errorf(providers.TypeTraining, "Error preparing training data: unknown data type %s", modelType)
		return nil, unsupported(modelType)
	}
}

// TrainEmotionModel fits a fresh classifier and returns the last epoch's
// validation metrics. Every improvement in validation accuracy is
// checkpointed and every epoch is appended to the metrics buffer.
func (s *Service) TrainEmotionModel(ctx context.Context, data []models.TrainingSample, params models.TrainingParams) (*models.ModelMetrics, error) {
	result, err := s.trainEmotion(ctx, data, params)
	if err != nil {
		s.logger.Errorf(providers.TypeTraining, "Error training emotion model: %v", err)
		return nil, err
	}
	return result, nil
}

func (s *Service) trainEmotion(ctx context.Context, data []models.TrainingSample, params models.TrainingParams) (*models.ModelMetrics, error) {
	if params.Epochs <= 0 || params.BatchSize <= 0 || params.LearningRate <= 0 {
		return nil, fmt.Errorf("%w: epochs, batch size and learning rate must be positive", models.ErrValidation)
	}

	dataset, err := Featurize(data)
	if err != nil {
		return nil, err
	}
	train, val, err := dataset.Split()
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(splitSeed))
	model := NewClassifier(nlp.FeatureSize, hiddenSize, maxLabel(dataset.Y)+1, rng)
	optimizer := NewAdam(model.params(), params.LearningRate)

	var last models.ModelMetrics
	best := 0.0
	for epoch := 0; epoch < params.Epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		batches := train.Batches(params.BatchSize, rng)
		var lossSum float64
		for _, idx := range batches {
			xs, ys := train.rows(idx)
			loss, grads := model.gradients(xs, ys)
			optimizer.Step(model.params(), grads)
			lossSum += loss
		}
		trainLoss := lossSum / float64(len(batches))

		last = Score(val.Y, predictAll(model, val, evalBatchSize))
		s.logger.Infof(providers.TypeTraining, "Epoch %d/%d - Train Loss: %.4f - Val Accuracy: %.4f - F1 Score: %.4f",
			epoch+1, params.Epochs, trainLoss, last.Accuracy, last.F1Score)

		if last.Accuracy > best {
			best = last.Accuracy
			if _, err := s.SaveModel(checkpointName, model); err != nil {
				return nil, err
			}
		}

		if err := s.buffer.Append(models.ModelTypeEmotion, models.MetricsEntry{
			"epoch":       epoch + 1,
			"loss":        trainLoss,
			"accuracy":    last.Accuracy,
			"precision":   last.Precision,
			"recall":      last.Recall,
			"f1_score":    last.F1Score,
			"is_training": epoch+1 < params.Epochs,
		}); err != nil {
			return nil, err
		}
		s.metrics.SetValidationAccuracy(models.ModelTypeEmotion, last.Accuracy)
	}

	s.modelsMu.Lock()
	s.models[models.ModelTypeEmotion] = model
	s.modelsMu.Unlock()
	return &last, nil
}

func predictAll(model *Classifier, d *Dataset, batchSize int) []int {
	out := make([]int, 0, d.Len())
	for _, idx := range d.Batches(batchSize, nil) {
		xs, _ := d.rows(idx)
		for _, x := range xs {
			out = append(out, model.Predict(x))
		}
	}
	return out
}

// SaveModel writes model as {name}_{YYYYMMDD_HHMMSS}.pt and returns the path.
func (s *Service) SaveModel(name string, model *Classifier) (string, error) {
	data, err := encodeCheckpoint(model, s.compressor)
	if err != nil {
		return "", fmt.Errorf("encode checkpoint: %w", err)
	}
	path := checkpointPath(s.modelsDir, name, s.now())
	if err := writeAtomic(path, data); err != nil {
		return "", fmt.Errorf("write checkpoint: %w", err)
	}
	s.logger.Infof(providers.TypeTraining, "Model saved to %s", path)
	return path, nil
}

// LoadModel rebuilds the most recent checkpoint for name. It returns nil
// without error when no checkpoint exists.
func (s *Service) LoadModel(name string) (*Classifier, error) {
	path, err := latestCheckpoint(s.modelsDir, name)
	if err != nil || path == "" {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	model, err := decodeCheckpoint(data, s.compressor)
	if err != nil {
		s.logger.Errorf(providers.TypeTraining, "Error loading model %s: %v", path, err)
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	s.logger.Infof(providers.TypeTraining, "Loaded model from %s", path)
	return model, nil
}

func (s *Service) EvaluateModel(model *Classifier, testData []models.TrainingSample) (*models.ModelMetrics, error) {
	if len(testData) == 0 {
		return nil, fmt.Errorf("%w: test data is empty", models.ErrValidation)
	}
	if model.InputSize != nlp.FeatureSize {
		return nil, fmt.Errorf("%w: model expects %d features, extractor produces %d", models.ErrShapeMismatch, model.InputSize, nlp.FeatureSize)
	}
	dataset, err := Featurize(testData)
	if err != nil {
		return nil, err
	}
	m := Score(dataset.Y, predictAll(model, dataset, evalBatchSize))
	return &m, nil
}

// Evaluate scores the latest checkpoint of modelType against testData.
func (s *Service) Evaluate(modelType string, testData []models.TrainingSample) (*models.ModelMetrics, error) {
	if !models.IsModelType(modelType) {
		return nil, unsupported(modelType)
	}
	model, err := s.LoadModel(CheckpointName(modelType))
	if err != nil {
		return nil, err
	}
	if model == nil {
		return nil, fmt.Errorf("no trained model found for %s: %w", modelType, models.ErrNotFound)
	}
	return s.EvaluateModel(model, testData)
}

// StartTraining launches a background job and returns its id. Only one job
// per model type may run at a time.
func (s *Service) StartTraining(modelType string, params models.TrainingParams) (string, error) {
	if !models.IsModelType(modelType) {
		return "", unsupported(modelType)
	}

	s.jobsMu.Lock()
	if running, ok := s.jobs[modelType]; ok {
		s.jobsMu.Unlock()
		return "", fmt.Errorf("training job %s for %s is still running: %w", running, modelType, models.ErrConflict)
	}
	jobID := uuid.NewString()
	s.jobs[modelType] = jobID
	s.wg.Add(1)
	s.jobsMu.Unlock()

	go func() {
		defer s.wg.Done()
		defer func() {
			s.jobsMu.Lock()
			delete(s.jobs, modelType)
			s.jobsMu.Unlock()
		}()

		if err := s.runJob(modelType, params); err != nil {
			s.metrics.IncTrainingRuns(modelType, "failure")
			s.logger.Errorf(providers.TypeTraining, "Error in async training %s: %v", jobID, err)
			return
		}
		s.metrics.IncTrainingRuns(modelType, "success")
		s.logger.Infof(providers.TypeTraining, "Training completed for %s model (job %s)", modelType, jobID)
	}()
	return jobID, nil
}

func (s *Service) runJob(modelType string, params models.TrainingParams) error {
	data, err := s.PrepareTrainingData(modelType)
	if err != nil {
		return err
	}
	if modelType != models.ModelTypeEmotion {
		return fmt.Errorf("%w %q", models.ErrUnsupportedModel, modelType)
	}
	_, err = s.TrainEmotionModel(s.ctx, data, params)
	return err
}

func (s *Service) Status(modelType string) (*models.StatusResponse, error) {
	if !models.IsModelType(modelType) {
		return nil, unsupported(modelType)
	}

	s.jobsMu.Lock()
	_, running := s.jobs[modelType]
	s.jobsMu.Unlock()
	if running {
		return &models.StatusResponse{
			Status:  models.StatusRunning,
			Message: fmt.Sprintf("Model %s is being trained", modelType),
		}, nil
	}

	path, err := latestCheckpoint(s.modelsDir, CheckpointName(modelType))
	if err != nil {
		return nil, err
	}
	if path == "" {
		return &models.StatusResponse{
			Status:  models.StatusNotTrained,
			Message: fmt.Sprintf("No trained model found for %s", modelType),
		}, nil
	}
	return &models.StatusResponse{
		Status:  models.StatusTrained,
		Message: fmt.Sprintf("Model %s is trained and ready to use", modelType),
	}, nil
}

// Model returns the in-memory model for a type, if one has been trained in
// this process.
func (s *Service) Model(modelType string) (*Classifier, bool) {
	s.modelsMu.RLock()
	defer s.modelsMu.RUnlock()
	m, ok := s.models[modelType]
	return m, ok
}

// Close cancels running jobs and waits for them to stop.
func (s *Service) Close() {
	s.cancel()
	s.wg.Wait()
}
