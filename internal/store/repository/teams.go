package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sentinel/vlrstats/internal/store"
)

// TeamRepository handles team data access.
type TeamRepository struct {
	db *store.Database
}

// NewTeamRepository creates a new team repository.
func NewTeamRepository(db *store.Database) *TeamRepository {
	return &TeamRepository{db: db}
}

// Upsert inserts or updates a team keyed by its derived ID, and records
// the full-name binding in team_aliases so a later ID collision between
// two organizations is at least observable.
func (r *TeamRepository) Upsert(ctx context.Context, q store.DBTX, team *store.Team) error {
	query := `
		INSERT INTO teams (id, name, short_name, region, logo_url, team_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			short_name = EXCLUDED.short_name,
			region = EXCLUDED.region,
			logo_url = EXCLUDED.logo_url,
			team_url = EXCLUDED.team_url,
			updated_at = NOW()
	`

	_, err := q.ExecContext(ctx, query,
		team.ID, team.Name, team.ShortName, team.Region, team.LogoURL, team.TeamURL,
	)
	if err != nil {
		return fmt.Errorf("upserting team %q: %w", team.ShortName, err)
	}

	if team.Name.Valid && team.Name.String != "" {
		alias := `
			INSERT INTO team_aliases (team_id, full_name)
			VALUES ($1, $2)
			ON CONFLICT (team_id, full_name) DO NOTHING
		`
		if _, err := q.ExecContext(ctx, alias, team.ID, team.Name.String); err != nil {
			return fmt.Errorf("recording team alias %q: %w", team.Name.String, err)
		}
	}

	return nil
}

// GetByID finds a team by its derived ID.
func (r *TeamRepository) GetByID(ctx context.Context, id int32) (*store.Team, error) {
	query := `
		SELECT id, name, short_name, region, logo_url, team_url, created_at, updated_at
		FROM teams
		WHERE id = $1
	`

	team := &store.Team{}
	err := r.db.DB().QueryRowContext(ctx, query, id).Scan(
		&team.ID, &team.Name, &team.ShortName, &team.Region,
		&team.LogoURL, &team.TeamURL, &team.CreatedAt, &team.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("team not found: %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying team: %w", err)
	}

	return team, nil
}

// Aliases returns every full name recorded against a team ID. More than
// one distinct name means the derived ID has collided (or the org
// rebranded).
func (r *TeamRepository) Aliases(ctx context.Context, teamID int32) ([]string, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT full_name FROM team_aliases WHERE team_id = $1 ORDER BY seen_at`, teamID)
	if err != nil {
		return nil, fmt.Errorf("querying team aliases: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning alias: %w", err)
		}
		names = append(names, name)
	}

	return names, rows.Err()
}
