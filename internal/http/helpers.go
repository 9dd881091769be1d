package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"budgethero/internal/core"
	"budgethero/internal/log"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorBody{Detail: detail})
}

// writeServiceError maps domain errors to status codes. notFound is the
// detail used for core.ErrNotFound.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, op, notFound string) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		writeError(w, http.StatusNotFound, notFound)
	case isValidationError(err):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		log.NewStructuredLogger(log.FromContext(r.Context())).
			LogError(r.Context(), "Request failed", err, log.ErrorTypeInternal, op,
				log.NewFields().WithHTTPRequest(r.Method, r.URL.Path, "", "", ""))
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func isValidationError(err error) bool {
	var maxBytes *http.MaxBytesError
	return errors.Is(err, core.ErrInvalidAmount) ||
		errors.Is(err, core.ErrMissingField) ||
		errors.Is(err, errMalformedBody) ||
		errors.Is(err, errInvalidPath) ||
		errors.As(err, &maxBytes)
}

// recoverer turns a handler panic into a logged 500.
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.FromContext(r.Context()).ErrorContext(r.Context(), "Handler panic",
					log.FieldError, rec,
					log.FieldMethod, r.Method,
					log.FieldPath, r.URL.Path)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
