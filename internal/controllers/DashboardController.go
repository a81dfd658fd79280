package controllers

import (
	"fmt"
	"net/http"

	json "github.com/goccy/go-json"

	"nest/internal/models"
	"nest/internal/providers"
	"nest/internal/training"
)

type DashboardController struct {
	logger providers.Logger
	buffer training.MetricsBufferInterface
}

func NewDashboardController(logger providers.Logger, buffer training.MetricsBufferInterface) *DashboardController {
	return &DashboardController{logger: logger, buffer: buffer}
}

func (dc *DashboardController) GetMetrics(w http.ResponseWriter, r *http.Request) {
	entries, err := dc.buffer.Entries(r.PathValue("type"))
	if err != nil {
		writeError(w, dc.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (dc *DashboardController) UpdateMetrics(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var entry models.MetricsEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil || entry == nil {
		writeError(w, dc.logger, r, fmt.Errorf("%w: body must be a JSON object", models.ErrValidation))
		return
	}
	if err := dc.buffer.Append(r.PathValue("type"), entry); err != nil {
		writeError(w, dc.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statusMessage{Status: "success"})
}

func (dc *DashboardController) Status(w http.ResponseWriter, r *http.Request) {
	status, err := dc.buffer.Status(r.PathValue("type"))
	if err != nil {
		writeError(w, dc.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}
