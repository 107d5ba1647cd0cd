package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/twacha/skincare-assistant/pkg/api/handler"
	"github.com/twacha/skincare-assistant/pkg/api/middleware"
)

// NewRouter wires the JSON API the browser UI talks to.
func NewRouter(
	sessionRepo handler.SessionRepository,
	consultations handler.ConsultationService,
	locator handler.SpecialistLocator,
	authenticator middleware.Authenticator,
) *mux.Router {
	sessions := handler.NewSessions(sessionRepo)
	messages := handler.NewMessages(consultations)
	specialists := handler.NewSpecialists(locator)

	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth(authenticator))

	api.HandleFunc("/sessions", sessions.ListSessions).Methods(http.MethodGet)
	api.HandleFunc("/sessions", sessions.CreateSession).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}", sessions.GetSession).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}", sessions.DeleteSession).Methods(http.MethodDelete)
	api.HandleFunc("/sessions/{id}/select", sessions.SelectSession).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/messages", messages.SubmitTurn).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/turn", messages.TurnState).Methods(http.MethodGet)
	api.HandleFunc("/specialists", specialists.FindSpecialists).Methods(http.MethodPost)

	return r
}
