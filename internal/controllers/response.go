package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/gookit/validate"
	"github.com/spf13/cast"

	"nest/internal/models"
	"nest/internal/providers"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type errorResponse struct {
	Detail string `json:"detail"`
}

type statusMessage struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	gson, err := json.Marshal(body)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func writeRaw(w http.ResponseWriter, gson []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// writeError maps the model sentinels onto status codes. Unknown errors are
// logged and hidden behind a generic 500.
func writeError(w http.ResponseWriter, logger providers.Logger, r *http.Request, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Detail: err.Error()})
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrShapeMismatch):
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: err.Error()})
	case errors.Is(err, models.ErrConflict), errors.Is(err, models.ErrSessionCompleted):
		writeJSON(w, http.StatusConflict, errorResponse{Detail: err.Error()})
	default:
		logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "%s %s: %v", r.Method, r.URL.Path, err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: "Internal Server Error"})
	}
}

// decodeBody reads a capped JSON body into dst and runs its validate tags.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", models.ErrValidation, err)
	}
	v := validate.Struct(dst)
	if !v.Validate() {
		return fmt.Errorf("%w: %s", models.ErrValidation, v.Errors.One())
	}
	return nil
}

// toDecimalInt64 accepts only an optional sign and base-10 digits. Leading
// zeros are dropped so cast never reads the value as octal.
func toDecimalInt64(raw string) (int64, error) {
	sign, digits := "", raw
	if strings.HasPrefix(digits, "-") || strings.HasPrefix(digits, "+") {
		sign, digits = digits[:1], digits[1:]
	}
	if digits == "" || strings.TrimLeft(digits, "0123456789") != "" {
		return 0, fmt.Errorf("%q is not a decimal integer", raw)
	}
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return 0, nil
	}
	return cast.ToInt64E(sign + digits)
}

func queryInt64(r *http.Request, key string, required bool) (int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		if required {
			return 0, fmt.Errorf("%w: %s is required", models.ErrValidation, key)
		}
		return 0, nil
	}
	n, err := toDecimalInt64(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", models.ErrValidation, key)
	}
	return n, nil
}

func pathInt64(r *http.Request, key string) (int64, error) {
	n, err := toDecimalInt64(r.PathValue(key))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", models.ErrValidation, key)
	}
	return n, nil
}
