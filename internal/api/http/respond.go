package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"artevents-backend/internal/domain"
	"artevents-backend/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// respondError maps the closed domain error set to HTTP statuses. Anything
// outside the set is a 500 with a generic body; the detail goes to the log,
// never to the client.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	switch {
	case errors.Is(err, domain.ErrEventNotFound),
		errors.Is(err, domain.ErrInviteNotFound),
		errors.Is(err, domain.ErrRequestNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrNotHost),
		errors.Is(err, domain.ErrNotInvitee),
		errors.Is(err, domain.ErrJoinNotAllowed),
		errors.Is(err, domain.ErrNotAMember):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrInviteNotPending),
		errors.Is(err, domain.ErrRequestNotPending):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrEmptyMessage),
		errors.Is(err, domain.ErrMessageTooLong),
		errors.Is(err, domain.ErrLocationLimit),
		errors.Is(err, domain.ErrDuplicateLocation),
		errors.Is(err, domain.ErrEmptyTitle),
		errors.Is(err, domain.ErrInvalidStartTime),
		errors.Is(err, domain.ErrInvalidVisibility):
		status = http.StatusBadRequest
	default:
		logger.Error("Unhandled error", "path", r.URL.Path, "error", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		return
	}
	respondJSON(w, status, errorResponse{Error: err.Error()})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}
