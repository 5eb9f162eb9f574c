package api

import (
	"net/http"

	"github.com/fatih/color"
	"github.com/gorilla/mux"

	"github.com/djwooster/agora-leaderboard/internal/handler"
	"github.com/djwooster/agora-leaderboard/internal/logger"
	"github.com/djwooster/agora-leaderboard/internal/middleware"
)

func SetupRouter() http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.LoggerMiddleware)

	// Routes admin: token admin obligatoire en query param
	adminRoutes := r.PathPrefix("/challenges/{shareToken}").Subrouter()
	adminRoutes.Use(middleware.AdminMiddleware)
	adminRoutes.HandleFunc("/admin", handler.GetAdminView).Methods(http.MethodGet)
	adminRoutes.HandleFunc("/participants/{id}", handler.RemoveParticipant).Methods(http.MethodDelete)

	// Root - API documentation
	r.HandleFunc("/", handler.RootHandler).Methods(http.MethodGet)

	// Challenges
	r.HandleFunc("/challenges", handler.CreateChallenge).Methods(http.MethodPost)
	r.HandleFunc("/challenges/{shareToken}", handler.GetChallengeByShareToken).Methods(http.MethodGet)
	r.HandleFunc("/challenges/{shareToken}/leaderboard", handler.GetChallengeLeaderboard).Methods(http.MethodGet)
	r.HandleFunc("/challenges/{shareToken}/ws", handler.StreamChallenge).Methods(http.MethodGet)

	// Participants
	r.HandleFunc("/challenges/{shareToken}/participants", handler.JoinChallenge).Methods(http.MethodPost)

	// Logs
	r.HandleFunc("/participants/{id}/logs", handler.UpsertLogs).Methods(http.MethodPut)
	r.HandleFunc("/participants/{id}/logs", handler.GetParticipantLogs).Methods(http.MethodGet)

	// Health check
	r.HandleFunc("/health", handler.HealthCheck).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Warning("404 Not Found: %s %s", r.Method, r.URL.Path)
		color.Yellow("[404] %s %s (route non trouvée)", r.Method, r.URL.Path)
		http.Error(w, "Route not found", http.StatusNotFound)
	})

	return r
}
