// Package websocket streams scrape-run progress to connected clients.
// Progress events arrive over Redis pub/sub, so the stream works even
// when the scraper and the API run as separate processes.
package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/redis/go-redis/v9"

	"github.com/sentinel/vlrstats/internal/publisher"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in development (TODO: restrict in production)
	},
}

// Server represents the WebSocket server
type Server struct {
	port   string
	server *http.Server
	hub    *Hub
	redis  *redis.Client
}

// NewServer creates a new WebSocket server
func NewServer(redisClient *redis.Client) *Server {
	return &Server{
		hub:   NewHub(),
		redis: redisClient,
	}
}

// Start starts the WebSocket server and begins relaying progress events
// from Redis to connected clients. Blocks until the listener fails.
func (s *Server) Start(ctx context.Context, port string) error {
	s.port = port

	go s.hub.Run()
	go s.relayProgress(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws/progress", s.handleProgress)
	mux.HandleFunc("/ws/health", s.handleHealth)

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: mux,
	}

	log.Printf("→ WebSocket server listening on :%s", port)
	return s.server.ListenAndServe()
}

// relayProgress pushes every published progress event to the hub.
func (s *Server) relayProgress(ctx context.Context) {
	for event := range publisher.Subscribe(ctx, s.redis) {
		data, err := json.Marshal(event)
		if err != nil {
			log.Printf("⚠️  Failed to encode progress event: %v", err)
			continue
		}
		s.hub.Broadcast(data)
	}
}

// handleProgress upgrades a connection and attaches it to the hub.
func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("⚠️  Failed to upgrade connection: %v", err)
		return
	}

	client := &Client{
		hub:  s.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}

// handleHealth returns WebSocket server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status": "healthy", "clients": %d}`, s.hub.ClientCount())
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
