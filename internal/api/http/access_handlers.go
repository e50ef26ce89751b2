package http

import (
	"net/http"

	"artevents-backend/internal/service"
)

type AccessHandler struct {
	access service.AccessService
}

func NewAccessHandler(access service.AccessService) *AccessHandler {
	return &AccessHandler{access: access}
}

func (h *AccessHandler) InviteUsers(w http.ResponseWriter, r *http.Request) {
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
		InviteeIDs []int32 `json:"invitee_ids"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.InviteeIDs) == 0 {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invitee_ids is required"})
		return
	}

	invites, err := h.access.InviteUsers(r.Context(), eventID, userID, req.InviteeIDs)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"invites": invites})
}

func (h *AccessHandler) ListInvitations(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}
	invites, err := h.access.ListInvitations(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"invites": invites})
}

func (h *AccessHandler) AcceptInvite(w http.ResponseWriter, r *http.Request) {
	h.respondToInvite(w, r, true)
}

func (h *AccessHandler) DeclineInvite(w http.ResponseWriter, r *http.Request) {
	h.respondToInvite(w, r, false)
}

func (h *AccessHandler) respondToInvite(w http.ResponseWriter, r *http.Request, accept bool) {
	userID, ok := callerID(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}
	inviteID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var err error
	if accept {
		err = h.access.AcceptInvite(r.Context(), inviteID, userID)
	} else {
		err = h.access.DeclineInvite(r.Context(), inviteID, userID)
	}
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *AccessHandler) Join(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}
	eventID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.access.JoinEvent(r.Context(), eventID, userID); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "joined"})
}

func (h *AccessHandler) RequestToJoin(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}
	eventID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	req, err := h.access.RequestToJoin(r.Context(), eventID, userID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, req)
}

func (h *AccessHandler) ListPendingRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}
	eventID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	reqs, err := h.access.ListPendingRequests(r.Context(), eventID, userID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"requests": reqs})
}

func (h *AccessHandler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	h.decideRequest(w, r, true)
}

func (h *AccessHandler) DeclineRequest(w http.ResponseWriter, r *http.Request) {
	h.decideRequest(w, r, false)
}

func (h *AccessHandler) decideRequest(w http.ResponseWriter, r *http.Request, approve bool) {
	userID, ok := callerID(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}
	requestID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var err error
	if approve {
		err = h.access.ApproveRequest(r.Context(), requestID, userID)
	} else {
		err = h.access.DeclineRequest(r.Context(), requestID, userID)
	}
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *AccessHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
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
		Body string `json:"body"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	msg, err := h.access.PostMessage(r.Context(), eventID, userID, req.Body)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, msg)
}

func (h *AccessHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}
	eventID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	msgs, err := h.access.ListMessages(r.Context(), eventID, userID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"messages": msgs})
}

func (h *AccessHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}
	eventID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	access, err := h.access.ResolveAccess(r.Context(), eventID, userID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, access)
}
