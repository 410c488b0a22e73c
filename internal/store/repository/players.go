package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sentinel/vlrstats/internal/store"
)

// PlayerRepository handles player data access.
type PlayerRepository struct {
	db *store.Database
}

// NewPlayerRepository creates a new player repository.
func NewPlayerRepository(db *store.Database) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// Insert creates a player row if the derived ID is new. The name is kept
// as first seen; re-scrapes never rewrite it.
func (r *PlayerRepository) Insert(ctx context.Context, q store.DBTX, player *store.Player) error {
	query := `
		INSERT INTO players (id, name)
		VALUES ($1, $2)
		ON CONFLICT (id) DO NOTHING
	`

	if _, err := q.ExecContext(ctx, query, player.ID, player.Name); err != nil {
		return fmt.Errorf("inserting player %q: %w", player.Name, err)
	}

	return nil
}

// GetByID finds a player by their derived ID.
func (r *PlayerRepository) GetByID(ctx context.Context, id int32) (*store.Player, error) {
	query := `SELECT id, name, created_at FROM players WHERE id = $1`

	player := &store.Player{}
	err := r.db.DB().QueryRowContext(ctx, query, id).Scan(&player.ID, &player.Name, &player.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("player not found: %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying player: %w", err)
	}

	return player, nil
}
