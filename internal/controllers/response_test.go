package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"nest/internal/models"
	"nest/internal/testutil"
)

func TestWriteError_MapsSentinels(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("user 3: %w", models.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: bad days", models.ErrValidation), http.StatusBadRequest},
		{models.ErrShapeMismatch, http.StatusBadRequest},
		{fmt.Errorf("job running: %w", models.ErrConflict), http.StatusConflict},
		{models.ErrSessionCompleted, http.StatusConflict},
		{models.ErrMalformedRecord, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			logger := &testutil.MockLogger{}
			rr := httptest.NewRecorder()
			writeError(rr, logger, httptest.NewRequest(http.MethodGet, "/x", nil), tt.err)
			assert.Equal(t, tt.status, rr.Code)
		})
	}
}

func TestWriteError_HidesInternalDetail(t *testing.T) {
	logger := &testutil.MockLogger{}
	rr := httptest.NewRecorder()
	writeError(rr, logger, httptest.NewRequest(http.MethodPost, "/chat", nil), errors.New("dial tcp 10.0.0.1:5432"))

	assert.NotContains(t, rr.Body.String(), "10.0.0.1")
	assert.Equal(t, 1, logger.Count("error"))
}

func TestDecodeBody_RejectsOversizedBody(t *testing.T) {
	body := `{"text":"` + strings.Repeat("a", maxRequestBodySize) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/emotions/analyze", strings.NewReader(body))
	rr := httptest.NewRecorder()

	var dst models.AnalyzeRequest
	err := decodeBody(rr, req, &dst)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestDecodeBody_RunsValidation(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/emotions/analyze", strings.NewReader(`{"text":""}`))
	var dst models.AnalyzeRequest
	assert.ErrorIs(t, decodeBody(httptest.NewRecorder(), req, &dst), models.ErrValidation)
}

func TestQueryInt64_ParsesBaseTen(t *testing.T) {
	tests := []struct {
		query string
		want  int64
	}{
		{"user_id=010", 10},
		{"user_id=7", 7},
		{"user_id=000", 0},
		{"user_id=-05", -5},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/emotions?"+tt.query, nil)
			got, err := queryInt64(r, "user_id", true)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQueryInt64_RejectsNonDecimal(t *testing.T) {
	for _, raw := range []string{"0x10", "1e3", "abc", "-", "12a"} {
		r := httptest.NewRequest(http.MethodGet, "/emotions?user_id="+raw, nil)
		_, err := queryInt64(r, "user_id", true)
		assert.ErrorIs(t, err, models.ErrValidation, raw)
	}
}

func TestEmotionController_ReportLeadingZeroUserID(t *testing.T) {
	ec, repo := newEmotionController()
	repo.Records = []*models.EmotionRecord{
		{ID: 1, UserID: 10, Timestamp: time.Now().Add(-time.Hour), EmotionData: models.EmotionData{"dominant_emotion": "joy", "sentiment_score": 0.8}},
	}

	rr := serve("GET /emotions/report", ec.Report, http.MethodGet, "/emotions/report?user_id=010", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"total_records":1`)
}
