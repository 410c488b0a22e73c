package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/sentinel/vlrstats/internal/store"
	"github.com/sentinel/vlrstats/internal/store/repository"
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	db      *store.Database
	events  *repository.EventRepository
	teams   *repository.TeamRepository
	players *repository.PlayerRepository
	matches *repository.MatchRepository
	games   *repository.GameRepository
	stats   *repository.StatsRepository
}

// NewHandler creates a new handler
func NewHandler(db *store.Database) *Handler {
	return &Handler{
		db:      db,
		events:  repository.NewEventRepository(db),
		teams:   repository.NewTeamRepository(db),
		players: repository.NewPlayerRepository(db),
		matches: repository.NewMatchRepository(db),
		games:   repository.NewGameRepository(db),
		stats:   repository.NewStatsRepository(db),
	}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.db.HealthCheck(); err != nil {
		respondError(w, http.StatusServiceUnavailable, "Database unreachable", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "vlrstats",
	})
}

// GetEvents returns stored events, newest first
func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 && l <= 500 {
		limit = l
	}

	events, err := h.events.List(r.Context(), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch events", err)
		return
	}

	respondJSON(w, http.StatusOK, events)
}

// GetEvent returns one event
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(w, r, "eventID")
	if !ok {
		return
	}

	event, err := h.events.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusNotFound, "Event not found", err)
		return
	}

	respondJSON(w, http.StatusOK, event)
}

// GetEventMatches returns the matches stored for an event
func (h *Handler) GetEventMatches(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(w, r, "eventID")
	if !ok {
		return
	}

	matches, err := h.matches.ListByEvent(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch matches", err)
		return
	}

	respondJSON(w, http.StatusOK, matches)
}

// GetMatch returns one match with its two teams
func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(w, r, "matchID")
	if !ok {
		return
	}

	match, err := h.matches.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusNotFound, "Match not found", err)
		return
	}

	teams, err := h.matches.TeamsByMatch(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch match teams", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"match": match,
		"teams": teams,
	})
}

// GetMatchGames returns the games of a match
func (h *Handler) GetMatchGames(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(w, r, "matchID")
	if !ok {
		return
	}

	games, err := h.games.ListByMatch(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch games", err)
		return
	}

	respondJSON(w, http.StatusOK, games)
}

// GetGame returns one game
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(w, r, "gameID")
	if !ok {
		return
	}

	game, err := h.games.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusNotFound, "Game not found", err)
		return
	}

	respondJSON(w, http.StatusOK, game)
}

// GetGamePlayerStats returns the full scoreboard of a game
func (h *Handler) GetGamePlayerStats(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(w, r, "gameID")
	if !ok {
		return
	}

	stats, err := h.stats.PlayerStatsByGame(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch player stats", err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// GetGameRounds returns a game's round history
func (h *Handler) GetGameRounds(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(w, r, "gameID")
	if !ok {
		return
	}

	rounds, err := h.stats.RoundsByGame(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch rounds", err)
		return
	}

	respondJSON(w, http.StatusOK, rounds)
}

// GetGameEconomy returns both teams' economy breakdown for a game
func (h *Handler) GetGameEconomy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(w, r, "gameID")
	if !ok {
		return
	}

	economy, err := h.stats.EconomyByGame(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch economy stats", err)
		return
	}

	respondJSON(w, http.StatusOK, economy)
}

// GetTeam returns one team
func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt32(w, r, "teamID")
	if !ok {
		return
	}

	team, err := h.teams.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusNotFound, "Team not found", err)
		return
	}

	respondJSON(w, http.StatusOK, team)
}

// GetTeamAliases returns every full name recorded for a team ID. More
// than one name flags a hash collision or a rebrand.
func (h *Handler) GetTeamAliases(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt32(w, r, "teamID")
	if !ok {
		return
	}

	aliases, err := h.teams.Aliases(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch aliases", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"team_id": id,
		"aliases": aliases,
	})
}

// GetPlayer returns one player
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt32(w, r, "playerID")
	if !ok {
		return
	}

	player, err := h.players.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusNotFound, "Player not found", err)
		return
	}

	respondJSON(w, http.StatusOK, player)
}

// queryRequest is the body of POST /api/v1/query.
type queryRequest struct {
	Query string `json:"query"`
}

// PostQuery runs an ad-hoc SELECT against the store. Anything that is
// not a single plain SELECT is rejected before it reaches the database.
func (h *Handler) PostQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	rows, err := h.db.ReadOnlyQuery(r.Context(), req.Query)
	if err != nil {
		if errors.Is(err, store.ErrNotReadOnly) {
			respondError(w, http.StatusBadRequest, "Query rejected", err)
			return
		}
		respondError(w, http.StatusInternalServerError, "Query failed", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"rows":  rows,
		"count": len(rows),
	})
}

func pathInt64(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid "+name, err)
		return 0, false
	}
	return id, true
}

func pathInt32(w http.ResponseWriter, r *http.Request, name string) (int32, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid "+name, err)
		return 0, false
	}
	return int32(id), true
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
