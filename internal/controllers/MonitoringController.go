package controllers

import (
	"fmt"
	"net/http"

	"nest/internal/models"
	"nest/internal/providers"
	"nest/internal/services"
)

type MonitoringController struct {
	logger  providers.Logger
	service services.MonitoringServiceInterface
}

func NewMonitoringController(logger providers.Logger, service services.MonitoringServiceInterface) *MonitoringController {
	return &MonitoringController{logger: logger, service: service}
}

func (mc *MonitoringController) ReceiveLogs(w http.ResponseWriter, r *http.Request) {
	var batch models.LogBatch
	if err := decodeBody(w, r, &batch); err != nil {
		writeError(w, mc.logger, r, err)
		return
	}
	if err := mc.service.WriteLogs(&batch); err != nil {
		writeError(w, mc.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statusMessage{
		Status:  "success",
		Message: fmt.Sprintf("Received %d logs", len(batch.Logs)),
	})
}

func (mc *MonitoringController) ReceiveMetrics(w http.ResponseWriter, r *http.Request) {
	var batch models.MetricBatch
	if err := decodeBody(w, r, &batch); err != nil {
		writeError(w, mc.logger, r, err)
		return
	}
	if err := mc.service.WriteMetrics(&batch); err != nil {
		writeError(w, mc.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statusMessage{
		Status:  "success",
		Message: fmt.Sprintf("Received %d metrics and %d user actions", len(batch.Metrics), len(batch.UserActions)),
	})
}

func (mc *MonitoringController) GetLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := mc.service.ReadLogs(r.PathValue("date"))
	if err != nil {
		writeError(w, mc.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"logs": logs})
}

func (mc *MonitoringController) GetMetrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := mc.service.ReadMetrics(r.PathValue("date"))
	if err != nil {
		writeError(w, mc.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"metrics": metrics})
}
