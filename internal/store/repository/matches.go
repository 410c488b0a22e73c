package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sentinel/vlrstats/internal/store"
)

// MatchRepository handles match data access.
type MatchRepository struct {
	db *store.Database
}

// NewMatchRepository creates a new match repository.
func NewMatchRepository(db *store.Database) *MatchRepository {
	return &MatchRepository{db: db}
}

// UpsertStub saves the bare match reference the event stage discovers:
// just the ID, URL and owning event. The detail columns are untouched so a
// stub re-save never erases an earlier full match save.
func (r *MatchRepository) UpsertStub(ctx context.Context, q store.DBTX, matchID int64, eventID int64, url string) error {
	query := `
		INSERT INTO matches (match_id, event_id, url)
		VALUES ($1, $2, $3)
		ON CONFLICT (match_id) DO UPDATE SET
			event_id = EXCLUDED.event_id,
			url = EXCLUDED.url,
			updated_at = NOW()
	`

	if _, err := q.ExecContext(ctx, query, matchID, eventID, url); err != nil {
		return fmt.Errorf("upserting match stub %d: %w", matchID, err)
	}

	return nil
}

// Upsert saves the full match record. The match stage never learns the
// owning event from the match page, so the event reference only moves
// forward: a NULL in the incoming row keeps whatever the event stage
// assigned earlier.
func (r *MatchRepository) Upsert(ctx context.Context, q store.DBTX, match *store.Match) error {
	query := `
		INSERT INTO matches (match_id, url, event_id, series, date, time, patch, picks, bans, decider)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (match_id) DO UPDATE SET
			url = EXCLUDED.url,
			event_id = COALESCE(EXCLUDED.event_id, matches.event_id),
			series = EXCLUDED.series,
			date = EXCLUDED.date,
			time = EXCLUDED.time,
			patch = EXCLUDED.patch,
			picks = EXCLUDED.picks,
			bans = EXCLUDED.bans,
			decider = EXCLUDED.decider,
			updated_at = NOW()
	`

	_, err := q.ExecContext(ctx, query,
		match.MatchID, match.URL, match.EventID, match.Series, match.Date,
		match.Time, match.Patch, match.Picks, match.Bans, match.Decider,
	)
	if err != nil {
		return fmt.Errorf("upserting match %d: %w", match.MatchID, err)
	}

	return nil
}

// UpsertMatchTeam saves one team's side of a match.
func (r *MatchRepository) UpsertMatchTeam(ctx context.Context, q store.DBTX, mt *store.MatchTeam) error {
	query := `
		INSERT INTO match_teams (match_id, team_id, score, is_winner, picks, bans)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (match_id, team_id) DO UPDATE SET
			score = EXCLUDED.score,
			is_winner = EXCLUDED.is_winner,
			picks = EXCLUDED.picks,
			bans = EXCLUDED.bans
	`

	_, err := q.ExecContext(ctx, query,
		mt.MatchID, mt.TeamID, mt.Score, mt.IsWinner, mt.Picks, mt.Bans,
	)
	if err != nil {
		return fmt.Errorf("upserting match team %d/%d: %w", mt.MatchID, mt.TeamID, err)
	}

	return nil
}

// Delete removes a match and, through the FK cascade, its games and all
// dependent stat rows. Used when a stored match turns out to be a
// showmatch.
func (r *MatchRepository) Delete(ctx context.Context, matchID int64) error {
	if _, err := r.db.DB().ExecContext(ctx, `DELETE FROM matches WHERE match_id = $1`, matchID); err != nil {
		return fmt.Errorf("deleting match %d: %w", matchID, err)
	}
	return nil
}

// MatchIDsByEvent returns the IDs of all matches already stored for an
// event. The orchestrator diffs a fresh event listing against this set so
// only new matches trigger the expensive detail fetch.
func (r *MatchRepository) MatchIDsByEvent(ctx context.Context, eventID int64) (map[int64]bool, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT match_id FROM matches WHERE event_id = $1`, eventID)
	if err != nil {
		return nil, fmt.Errorf("querying match ids for event %d: %w", eventID, err)
	}
	defer rows.Close()

	ids := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning match id: %w", err)
		}
		ids[id] = true
	}

	return ids, rows.Err()
}

// GetByID finds a match by its source ID.
func (r *MatchRepository) GetByID(ctx context.Context, matchID int64) (*store.Match, error) {
	query := `
		SELECT match_id, url, event_id, series, date, time, patch, picks, bans, decider,
			created_at, updated_at
		FROM matches
		WHERE match_id = $1
	`

	match := &store.Match{}
	err := r.db.DB().QueryRowContext(ctx, query, matchID).Scan(
		&match.MatchID, &match.URL, &match.EventID, &match.Series, &match.Date,
		&match.Time, &match.Patch, &match.Picks, &match.Bans, &match.Decider,
		&match.CreatedAt, &match.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("match not found: %d", matchID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying match: %w", err)
	}

	return match, nil
}

// TeamsByMatch returns the two teams of a match in slot order. The game
// stage needs them to resolve positional markup (first/second visual slot)
// back to team IDs.
func (r *MatchRepository) TeamsByMatch(ctx context.Context, matchID int64) ([]*store.Team, error) {
	query := `
		SELECT t.id, t.name, t.short_name, t.region, t.logo_url, t.team_url,
			t.created_at, t.updated_at
		FROM teams t
		INNER JOIN match_teams mt ON t.id = mt.team_id
		WHERE mt.match_id = $1
		ORDER BY mt.id
	`

	rows, err := r.db.DB().QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("querying teams for match %d: %w", matchID, err)
	}
	defer rows.Close()

	var teams []*store.Team
	for rows.Next() {
		team := &store.Team{}
		err := rows.Scan(
			&team.ID, &team.Name, &team.ShortName, &team.Region,
			&team.LogoURL, &team.TeamURL, &team.CreatedAt, &team.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning team: %w", err)
		}
		teams = append(teams, team)
	}

	return teams, rows.Err()
}

// ListByEvent returns all matches stored for an event.
func (r *MatchRepository) ListByEvent(ctx context.Context, eventID int64) ([]*store.Match, error) {
	query := `
		SELECT match_id, url, event_id, series, date, time, patch, picks, bans, decider,
			created_at, updated_at
		FROM matches
		WHERE event_id = $1
		ORDER BY date, match_id
	`

	rows, err := r.db.DB().QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("querying matches for event %d: %w", eventID, err)
	}
	defer rows.Close()

	var matches []*store.Match
	for rows.Next() {
		match := &store.Match{}
		err := rows.Scan(
			&match.MatchID, &match.URL, &match.EventID, &match.Series, &match.Date,
			&match.Time, &match.Patch, &match.Picks, &match.Bans, &match.Decider,
			&match.CreatedAt, &match.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning match: %w", err)
		}
		matches = append(matches, match)
	}

	return matches, rows.Err()
}
