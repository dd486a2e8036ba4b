package handler

// RESPONSE HELPERS:
// Success responses are JSON; every error renders as plain text with the
// status computed from its domain error kind. Keeping the mapping in one
// place means handlers never touch status codes themselves.

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/sakif/exercise-tracker/internal/apperror"
)

// respond delivers the outcome of a data-access call: an error goes to the
// error responder, a nil result with a nil error is reported as an internal
// fault, and anything else is serialized as the JSON body.
func respond(w http.ResponseWriter, logger *slog.Logger, data interface{}, err error) {
	if err != nil {
		// A request that outlived its deadline surfaces here as a context
		// error from the store; report it as the timeout kind.
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			err = apperror.Timeout()
		}
		writeError(w, logger, err)
		return
	}
	if data == nil {
		logger.Error("handler produced neither data nor error")
		writeError(w, logger, errors.New("missing result"))
		return
	}
	writeJSON(w, logger, http.StatusOK, data)
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent — all we can do is log it.
		logger.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}

// writeError maps a domain error to an HTTP status and a plain-text body.
//
// Validation-class errors (bad input, the duplicate username, an unknown
// userId) are 400 — the duplicate renders as 400 rather than 409 because
// that is the public contract of this API. Resource not-found is 404,
// a shed request is 504, and anything unrecognized is a generic 500 that
// never leaks internal details.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, apperror.ErrValidation), errors.Is(err, apperror.ErrConflict):
			status = http.StatusBadRequest
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, apperror.ErrTimeout):
			status = http.StatusGatewayTimeout
		case errors.Is(err, apperror.ErrStorage):
			status = http.StatusInternalServerError
		}
		writeText(w, status, appErr.Message)
		return
	}

	logger.Error("unhandled error", slog.String("error", err.Error()))
	writeText(w, http.StatusInternalServerError, "Internal Server Error")
}

// NotFound is the catch-all for unmatched routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusNotFound, "not found")
}

func writeText(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	io.WriteString(w, message)
}
