package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sentinel/vlrstats/internal/store"
)

// GameRepository handles game data access.
type GameRepository struct {
	db *store.Database
}

// NewGameRepository creates a new game repository.
func NewGameRepository(db *store.Database) *GameRepository {
	return &GameRepository{db: db}
}

// Upsert inserts or updates a game.
func (r *GameRepository) Upsert(ctx context.Context, q store.DBTX, game *store.Game) error {
	query := `
		INSERT INTO games (game_id, match_id, url, map, pick, win, duration)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (game_id) DO UPDATE SET
			match_id = EXCLUDED.match_id,
			url = EXCLUDED.url,
			map = EXCLUDED.map,
			pick = EXCLUDED.pick,
			win = EXCLUDED.win,
			duration = EXCLUDED.duration,
			updated_at = NOW()
	`

	_, err := q.ExecContext(ctx, query,
		game.GameID, game.MatchID, game.URL, game.Map, game.Pick, game.Win, game.Duration,
	)
	if err != nil {
		return fmt.Errorf("upserting game %d: %w", game.GameID, err)
	}

	return nil
}

// UpsertScore saves one team's round counts for a game.
func (r *GameRepository) UpsertScore(ctx context.Context, q store.DBTX, score *store.GameScore) error {
	query := `
		INSERT INTO game_scores (game_id, team_id, score, t_score, ct_score)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (game_id, team_id) DO UPDATE SET
			score = EXCLUDED.score,
			t_score = EXCLUDED.t_score,
			ct_score = EXCLUDED.ct_score
	`

	_, err := q.ExecContext(ctx, query,
		score.GameID, score.TeamID, score.Score, score.TScore, score.CTScore,
	)
	if err != nil {
		return fmt.Errorf("upserting game score %d/%d: %w", score.GameID, score.TeamID, err)
	}

	return nil
}

// GetByID finds a game by its source ID.
func (r *GameRepository) GetByID(ctx context.Context, gameID int64) (*store.Game, error) {
	query := `
		SELECT game_id, match_id, url, map, pick, win, duration, created_at, updated_at
		FROM games
		WHERE game_id = $1
	`

	game := &store.Game{}
	err := r.db.DB().QueryRowContext(ctx, query, gameID).Scan(
		&game.GameID, &game.MatchID, &game.URL, &game.Map, &game.Pick,
		&game.Win, &game.Duration, &game.CreatedAt, &game.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("game not found: %d", gameID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying game: %w", err)
	}

	return game, nil
}

// ListByMatch returns all games of a match.
func (r *GameRepository) ListByMatch(ctx context.Context, matchID int64) ([]*store.Game, error) {
	query := `
		SELECT game_id, match_id, url, map, pick, win, duration, created_at, updated_at
		FROM games
		WHERE match_id = $1
		ORDER BY game_id
	`

	rows, err := r.db.DB().QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("querying games for match %d: %w", matchID, err)
	}
	defer rows.Close()

	var games []*store.Game
	for rows.Next() {
		game := &store.Game{}
		err := rows.Scan(
			&game.GameID, &game.MatchID, &game.URL, &game.Map, &game.Pick,
			&game.Win, &game.Duration, &game.CreatedAt, &game.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning game: %w", err)
		}
		games = append(games, game)
	}

	return games, rows.Err()
}

// CollectedGameIDs returns the games of a match that already carry player
// stats. Those have been through the detail stage and are excluded from
// the next game-stage work batch.
func (r *GameRepository) CollectedGameIDs(ctx context.Context, matchID int64) (map[int64]bool, error) {
	query := `
		SELECT DISTINCT g.game_id
		FROM games g
		INNER JOIN player_stats ps ON ps.game_id = g.game_id
		WHERE g.match_id = $1
	`

	rows, err := r.db.DB().QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("querying collected games for match %d: %w", matchID, err)
	}
	defer rows.Close()

	ids := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning game id: %w", err)
		}
		ids[id] = true
	}

	return ids, rows.Err()
}
