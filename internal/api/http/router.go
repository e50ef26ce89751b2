package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"artevents-backend/internal/security"
	"artevents-backend/internal/service"
)

// NewRouter wires the API surface: read-only selectors and the named
// access-control use cases, all behind the identity middleware.
func NewRouter(events service.EventService, access service.AccessService, tokens security.TokenManager, allowedOrigins []string) http.Handler {
	eventHandler := NewEventHandler(events)
	accessHandler := NewAccessHandler(access)

	r := mux.NewRouter()
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(AuthMiddleware(tokens))

	// Events
	api.HandleFunc("/events", eventHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/events", eventHandler.ListPublic).Methods(http.MethodGet)
	api.HandleFunc("/events/shared/{token}", eventHandler.GetByShareToken).Methods(http.MethodGet)
	api.HandleFunc("/events/{id:[0-9]+}", eventHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/events/{id:[0-9]+}", eventHandler.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/events/{id:[0-9]+}/visibility", eventHandler.ChangeVisibility).Methods(http.MethodPatch)
	api.HandleFunc("/events/{id:[0-9]+}/attendees", eventHandler.ListAttendees).Methods(http.MethodGet)
	api.HandleFunc("/events/{id:[0-9]+}/access", accessHandler.Resolve).Methods(http.MethodGet)

	// Membership
	api.HandleFunc("/events/{id:[0-9]+}/join", accessHandler.Join).Methods(http.MethodPost)

	// Invites
	api.HandleFunc("/events/{id:[0-9]+}/invites", accessHandler.InviteUsers).Methods(http.MethodPost)
	api.HandleFunc("/invites", accessHandler.ListInvitations).Methods(http.MethodGet)
	api.HandleFunc("/invites/{id:[0-9]+}/accept", accessHandler.AcceptInvite).Methods(http.MethodPost)
	api.HandleFunc("/invites/{id:[0-9]+}/decline", accessHandler.DeclineInvite).Methods(http.MethodPost)

	// Join requests
	api.HandleFunc("/events/{id:[0-9]+}/requests", accessHandler.RequestToJoin).Methods(http.MethodPost)
	api.HandleFunc("/events/{id:[0-9]+}/requests", accessHandler.ListPendingRequests).Methods(http.MethodGet)
	api.HandleFunc("/requests/{id:[0-9]+}/approve", accessHandler.ApproveRequest).Methods(http.MethodPost)
	api.HandleFunc("/requests/{id:[0-9]+}/decline", accessHandler.DeclineRequest).Methods(http.MethodPost)

	// Chat
	api.HandleFunc("/events/{id:[0-9]+}/messages", accessHandler.PostMessage).Methods(http.MethodPost)
	api.HandleFunc("/events/{id:[0-9]+}/messages", accessHandler.ListMessages).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})
	return c.Handler(r)
}
