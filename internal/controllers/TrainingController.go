package controllers

import (
	"fmt"
	"net/http"

	"nest/internal/models"
	"nest/internal/providers"
	"nest/internal/training"
)

type TrainingController struct {
	logger  providers.Logger
	service training.ServiceInterface
}

func NewTrainingController(logger providers.Logger, service training.ServiceInterface) *TrainingController {
	return &TrainingController{logger: logger, service: service}
}

// Train starts a background job and answers before it finishes.
func (tc *TrainingController) Train(w http.ResponseWriter, r *http.Request) {
	var req models.TrainingRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, tc.logger, r, err)
		return
	}
	if req.LearningRate < 0 {
		writeError(w, tc.logger, r, fmt.Errorf("%w: learning_rate must not be negative", models.ErrValidation))
		return
	}
	jobID, err := tc.service.StartTraining(req.ModelType, req.Params())
	if err != nil {
		writeError(w, tc.logger, r, err)
		return
	}
	tc.logger.Infof(providers.TypeTraining, "Training job %s queued for %s", jobID, req.ModelType)
	writeJSON(w, http.StatusAccepted, models.TrainingResponse{
		Status:  "success",
		Message: fmt.Sprintf("Training started for %s model", req.ModelType),
		JobID:   jobID,
	})
}

func (tc *TrainingController) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req models.EvaluationRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, tc.logger, r, err)
		return
	}
	metrics, err := tc.service.Evaluate(req.ModelType, req.TestData)
	if err != nil {
		writeError(w, tc.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models.EvaluationResponse{Status: "success", Metrics: *metrics})
}

func (tc *TrainingController) Status(w http.ResponseWriter, r *http.Request) {
	status, err := tc.service.Status(r.PathValue("type"))
	if err != nil {
		writeError(w, tc.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}
