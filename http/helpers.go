package http

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"

	"mortgage-planner/logging"
	"mortgage-planner/repository"
	"mortgage-planner/service"
)

// decodeJSON checks the method and content type and decodes the body into
// dst. It writes the error response itself and reports whether to go on.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}

	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return false
	}

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logging.FromContext(r.Context()).Warn("Error decoding request body", logging.FieldError, err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// writeJSON encodes into a buffer first so a failed encoding does not leave
// a half written 200 response.
func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		logging.FromContext(r.Context()).Error("Error encoding response", logging.FieldError, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := buf.WriteTo(w); err != nil {
		logging.FromContext(r.Context()).Warn("Error writing response", logging.FieldError, err)
	}
}

// writeServiceError maps service errors to a status. Storage and context
// failures are ours, a missing plan is 404, the rest is a bad request.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logging.FromContext(r.Context())

	switch {
	case errors.Is(err, service.ErrStorage),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		logger.Error("request failed", logging.FieldError, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	case errors.Is(err, repository.ErrPlanNotFound):
		logger.Info("request rejected", logging.FieldError, err, logging.FieldStatus, http.StatusNotFound)
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	logger.Info("request rejected", logging.FieldError, err, logging.FieldStatus, http.StatusBadRequest)
	http.Error(w, err.Error(), http.StatusBadRequest)
}
