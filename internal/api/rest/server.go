package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sentinel/vlrstats/internal/store"
)

// Server represents the REST API server
type Server struct {
	port    string
	server  *http.Server
	handler *Handler
}

// NewServer creates a new REST API server
func NewServer(port string, db *store.Database) *Server {
	handler := NewHandler(db)

	router := mux.NewRouter()

	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware)

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	// Events
	api.HandleFunc("/events", handler.GetEvents).Methods("GET")
	api.HandleFunc("/events/{eventID}", handler.GetEvent).Methods("GET")
	api.HandleFunc("/events/{eventID}/matches", handler.GetEventMatches).Methods("GET")

	// Matches
	api.HandleFunc("/matches/{matchID}", handler.GetMatch).Methods("GET")
	api.HandleFunc("/matches/{matchID}/games", handler.GetMatchGames).Methods("GET")

	// Games
	api.HandleFunc("/games/{gameID}", handler.GetGame).Methods("GET")
	api.HandleFunc("/games/{gameID}/players", handler.GetGamePlayerStats).Methods("GET")
	api.HandleFunc("/games/{gameID}/rounds", handler.GetGameRounds).Methods("GET")
	api.HandleFunc("/games/{gameID}/economy", handler.GetGameEconomy).Methods("GET")

	// Teams and players
	api.HandleFunc("/teams/{teamID}", handler.GetTeam).Methods("GET")
	api.HandleFunc("/teams/{teamID}/aliases", handler.GetTeamAliases).Methods("GET")
	api.HandleFunc("/players/{playerID}", handler.GetPlayer).Methods("GET")

	// Ad-hoc read-only SQL
	api.HandleFunc("/query", handler.PostQuery).Methods("POST")

	return &Server{
		port:    port,
		handler: handler,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: router,
		},
	}
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
