package controllers

import (
	"fmt"
	"net/http"
	"time"

	"nest/internal/models"
	"nest/internal/providers"
	"nest/internal/services"
)

type EmotionController struct {
	logger  providers.Logger
	service services.EmotionServiceInterface
}

func NewEmotionController(logger providers.Logger, service services.EmotionServiceInterface) *EmotionController {
	return &EmotionController{logger: logger, service: service}
}

func queryTime(r *http.Request, key string) (*time.Time, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be RFC3339", models.ErrValidation, key)
	}
	return &t, nil
}

func (ec *EmotionController) Record(w http.ResponseWriter, r *http.Request) {
	var req models.RecordEmotionRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, ec.logger, r, err)
		return
	}
	record, err := ec.service.Record(r.Context(), &req)
	if err != nil {
		writeError(w, ec.logger, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (ec *EmotionController) List(w http.ResponseWriter, r *http.Request) {
	userID, err := queryInt64(r, "user_id", true)
	if err != nil {
		writeError(w, ec.logger, r, err)
		return
	}
	start, err := queryTime(r, "start")
	if err != nil {
		writeError(w, ec.logger, r, err)
		return
	}
	end, err := queryTime(r, "end")
	if err != nil {
		writeError(w, ec.logger, r, err)
		return
	}

	records, err := ec.service.ListByUser(r.Context(), userID, start, end)
	if err != nil {
		writeError(w, ec.logger, r, err)
		return
	}
	if records == nil {
		records = []*models.EmotionRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (ec *EmotionController) userAndDays(r *http.Request) (int64, int, error) {
	userID, err := queryInt64(r, "user_id", true)
	if err != nil {
		return 0, 0, err
	}
	days, err := queryInt64(r, "days", false)
	if err != nil {
		return 0, 0, err
	}
	return userID, int(days), nil
}

func (ec *EmotionController) Report(w http.ResponseWriter, r *http.Request) {
	userID, days, err := ec.userAndDays(r)
	if err != nil {
		writeError(w, ec.logger, r, err)
		return
	}
	report, err := ec.service.BuildReport(r.Context(), userID, days)
	if err != nil {
		writeError(w, ec.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (ec *EmotionController) Correlations(w http.ResponseWriter, r *http.Request) {
	userID, days, err := ec.userAndDays(r)
	if err != nil {
		writeError(w, ec.logger, r, err)
		return
	}
	res, err := ec.service.Correlations(r.Context(), userID, days)
	if err != nil {
		writeError(w, ec.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (ec *EmotionController) Analyze(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, ec.logger, r, err)
		return
	}
	data, err := ec.service.Analyze(r.Context(), req.Text)
	if err != nil {
		writeError(w, ec.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}
