package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"marketplace-availability/internal/availability"
	"marketplace-availability/internal/domain"
	"marketplace-availability/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrReservationConflict),
		errors.Is(err, domain.ErrInvalidStatusTransition),
		errors.Is(err, domain.ErrBookingNotConfirmed):
		return http.StatusConflict
	case errors.Is(err, availability.ErrInvalidRange),
		errors.Is(err, availability.ErrMalformedDate),
		errors.Is(err, domain.ErrUnknownStatus),
		errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError renders err; internal failures are logged and hidden.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "request failed", "error", err, "path", r.URL.Path)
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return errors.Join(domain.ErrInvalidInput, err)
	}
	return nil
}
