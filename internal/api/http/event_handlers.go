package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"artevents-backend/internal/domain"
	"artevents-backend/internal/repository"
	"artevents-backend/internal/service"
)

type EventHandler struct {
	events service.EventService
}

func NewEventHandler(events service.EventService) *EventHandler {
	return &EventHandler{events: events}
}

type createEventRequest struct {
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	Visibility      string  `json:"visibility"`
	StartTime       string  `json:"start_time"`
	StartLocationID int32   `json:"start_location_id"`
	LocationIDs     []int32 `json:"location_ids"`
	InviteeIDs      []int32 `json:"invitee_ids"`
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}

	var req createEventRequest
	if !decodeBody(w, r, &req) {
		return
	}

	event, err := h.events.CreateEvent(r.Context(), service.CreateEventInput{
		HostID:          userID,
		Title:           req.Title,
		Description:     req.Description,
		Visibility:      domain.EventVisibility(req.Visibility),
		StartTime:       req.StartTime,
		StartLocationID: req.StartLocationID,
		LocationIDs:     req.LocationIDs,
		InviteeIDs:      req.InviteeIDs,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, event)
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	event, stops, err := h.events.GetEvent(r.Context(), eventID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"event": event,
		"stops": stops,
	})
}

func (h *EventHandler) GetByShareToken(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	event, err := h.events.GetEventByShareToken(r.Context(), token)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, event)
}

func (h *EventHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	filter := repository.EventFilter{
		Query:     r.URL.Query().Get("q"),
		Ascending: r.URL.Query().Get("order") != "desc",
	}
	switch r.URL.Query().Get("visibility") {
	case "open":
		filter.Visibility = domain.VisibilityOpen
	case "invite":
		filter.Visibility = domain.VisibilityInviteOnly
	}

	events, err := h.events.ListPublicEvents(r.Context(), filter)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"events": events})
}

func (h *EventHandler) ListAttendees(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	attendees, err := h.events.ListAttendees(r.Context(), eventID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"attendees": attendees})
}

func (h *EventHandler) ChangeVisibility(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}
	eventID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		Visibility string `json:"visibility"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.events.ChangeVisibility(r.Context(), eventID, userID, domain.EventVisibility(req.Visibility)); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}
	eventID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.events.DeleteEvent(r.Context(), eventID, userID); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// pathID parses a numeric mux path variable.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int32, bool) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid " + name})
		return 0, false
	}
	return int32(id), true
}
