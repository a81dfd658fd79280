package controllers

import (
	"fmt"
	"net/http"

	json "github.com/goccy/go-json"

	"nest/internal/models"
	"nest/internal/providers"
	"nest/internal/services"
)

// MeditationController serves the exercise catalog and session lifecycle.
// Catalog listings are immutable for the process lifetime and go through the
// response cache.
type MeditationController struct {
	logger  providers.Logger
	service services.MeditationServiceInterface
	cache   providers.CacheProviderInterface
}

func NewMeditationController(logger providers.Logger, service services.MeditationServiceInterface, cache providers.CacheProviderInterface) *MeditationController {
	return &MeditationController{logger: logger, service: service, cache: cache}
}

func (mc *MeditationController) serveFromCacheOrCompute(w http.ResponseWriter, r *http.Request, cacheKey string, compute func() (any, error)) {
	if data, ok := mc.cache.Get(cacheKey); ok {
		writeRaw(w, data)
		return
	}

	result, err := compute()
	if err != nil {
		writeError(w, mc.logger, r, err)
		return
	}
	gson, err := json.Marshal(result)
	if err != nil {
		writeError(w, mc.logger, r, err)
		return
	}
	mc.cache.Set(cacheKey, gson)
	writeRaw(w, gson)
}

func (mc *MeditationController) Exercises(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	exerciseType, difficulty := q.Get("type"), q.Get("difficulty")
	mc.serveFromCacheOrCompute(w, r, "exercises:"+exerciseType+":"+difficulty, func() (any, error) {
		list := mc.service.Exercises(exerciseType, difficulty)
		if list == nil {
			list = []models.Exercise{}
		}
		return list, nil
	})
}

func (mc *MeditationController) Exercise(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	mc.serveFromCacheOrCompute(w, r, "exercise:"+id, func() (any, error) {
		return mc.service.Exercise(id)
	})
}

func (mc *MeditationController) Recommend(w http.ResponseWriter, r *http.Request) {
	duration, err := queryInt64(r, "duration", false)
	if err != nil {
		writeError(w, mc.logger, r, err)
		return
	}
	if duration < 0 {
		writeError(w, mc.logger, r, fmt.Errorf("%w: duration must not be negative", models.ErrValidation))
		return
	}
	emotion := r.URL.Query().Get("emotion")
	mc.serveFromCacheOrCompute(w, r, fmt.Sprintf("recommend:%s:%d", emotion, duration), func() (any, error) {
		list := mc.service.Recommend(emotion, int(duration))
		if list == nil {
			list = []models.Exercise{}
		}
		return list, nil
	})
}

func (mc *MeditationController) StartSession(w http.ResponseWriter, r *http.Request) {
	var req models.StartSessionRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, mc.logger, r, err)
		return
	}
	session, err := mc.service.StartSession(r.Context(), &req)
	if err != nil {
		writeError(w, mc.logger, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (mc *MeditationController) CompleteSession(w http.ResponseWriter, r *http.Request) {
	var req models.CompleteSessionRequest
	if r.ContentLength != 0 {
		if err := decodeBody(w, r, &req); err != nil {
			writeError(w, mc.logger, r, err)
			return
		}
	}
	session, err := mc.service.CompleteSession(r.Context(), r.PathValue("id"), req.Notes)
	if err != nil {
		writeError(w, mc.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}
