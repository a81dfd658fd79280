package internal

import (
	"context"
	"fmt"

	"nest/internal/models"
	"nest/internal/providers"
	"nest/internal/training"
	"nest/internal/training/interfaces"
)

// Trainer runs one training job in the foreground, outside the HTTP server.
type Trainer struct {
	service   training.ServiceInterface
	scheduler interfaces.SchedulerInterface
	logger    providers.Logger
}

func NewTrainer(service training.ServiceInterface, scheduler interfaces.SchedulerInterface, logger providers.Logger) *Trainer {
	return &Trainer{service: service, scheduler: scheduler, logger: logger}
}

// Run trains modelType on its prepared data and persists the metrics buffer
// so the dashboard of a later server run shows the epochs.
func (t *Trainer) Run(ctx context.Context, modelType string, params models.TrainingParams) (*models.ModelMetrics, error) {
	if err := t.scheduler.Restore(); err != nil {
		t.logger.Warnf(providers.TypeTraining, "Restore error: %s", err)
	}
	defer t.service.Close()

	data, err := t.service.PrepareTrainingData(modelType)
	if err != nil {
		return nil, err
	}
	if modelType != models.ModelTypeEmotion {
		return nil, fmt.Errorf("%w: no trainer for %q", models.ErrUnsupportedModel, modelType)
	}

	metrics, err := t.service.TrainEmotionModel(ctx, data, params)
	if err != nil {
		return nil, err
	}
	if err := t.scheduler.Persist(); err != nil {
		return metrics, err
	}
	return metrics, nil
}
