package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/petcare/internal/common"
	"github.com/dmitrijs2005/petcare/internal/logging"
	"github.com/go-chi/chi/v5/middleware"
)

// errBadRequest marks malformed input: bad JSON, path ids, multipart bodies.
var errBadRequest = errors.New("bad request")

// Response is the envelope every endpoint answers with.
type Response struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeOK(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, Response{StatusCode: status, Message: message, Data: data})
}

// statusOf maps service and transport errors to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, common.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrLoggedOut):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrorNotFound),
		errors.Is(err, common.ErrInvalidReference),
		errors.Is(err, common.ErrDuplicate),
		errors.Is(err, common.ErrInvalidState),
		errors.Is(err, common.ErrFileTooLarge),
		errors.Is(err, common.ErrUnsupportedFileType),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, logger logging.Logger, err error) {
	status := statusOf(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error(r.Context(), "request failed",
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err,
		)
		message = common.ErrorInternal.Error()
	}
	writeJSON(w, status, Response{StatusCode: status, Message: message})
}
