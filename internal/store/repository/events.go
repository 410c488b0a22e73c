package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sentinel/vlrstats/internal/store"
)

// EventRepository handles event data access.
type EventRepository struct {
	db *store.Database
}

// NewEventRepository creates a new event repository.
func NewEventRepository(db *store.Database) *EventRepository {
	return &EventRepository{db: db}
}

// Upsert inserts or updates an event. The ID is the source site's own and
// is never rewritten; every descriptive field follows the latest scrape.
func (r *EventRepository) Upsert(ctx context.Context, q store.DBTX, event *store.Event) error {
	query := `
		INSERT INTO events (id, url, title, status, prize_pool, start_date, end_date,
			region, event_name, location, thumbnail)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			url = EXCLUDED.url,
			title = EXCLUDED.title,
			status = EXCLUDED.status,
			prize_pool = EXCLUDED.prize_pool,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			region = EXCLUDED.region,
			event_name = EXCLUDED.event_name,
			location = EXCLUDED.location,
			thumbnail = EXCLUDED.thumbnail,
			updated_at = NOW()
	`

	_, err := q.ExecContext(ctx, query,
		event.ID, event.URL, event.Title, event.Status, event.PrizePool,
		event.StartDate, event.EndDate, event.Region, event.EventName,
		event.Location, event.Thumbnail,
	)
	if err != nil {
		return fmt.Errorf("upserting event %d: %w", event.ID, err)
	}

	return nil
}

// GetByID finds an event by its source ID.
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*store.Event, error) {
	query := `
		SELECT id, url, title, status, prize_pool, start_date, end_date,
			region, event_name, location, thumbnail, created_at, updated_at
		FROM events
		WHERE id = $1
	`

	event := &store.Event{}
	err := r.db.DB().QueryRowContext(ctx, query, id).Scan(
		&event.ID, &event.URL, &event.Title, &event.Status, &event.PrizePool,
		&event.StartDate, &event.EndDate, &event.Region, &event.EventName,
		&event.Location, &event.Thumbnail, &event.CreatedAt, &event.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("event not found: %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying event: %w", err)
	}

	return event, nil
}

// List returns events ordered by start date, newest first.
func (r *EventRepository) List(ctx context.Context, limit int) ([]*store.Event, error) {
	query := `
		SELECT id, url, title, status, prize_pool, start_date, end_date,
			region, event_name, location, thumbnail, created_at, updated_at
		FROM events
		ORDER BY start_date DESC NULLS LAST
		LIMIT $1
	`

	rows, err := r.db.DB().QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	var events []*store.Event
	for rows.Next() {
		event := &store.Event{}
		err := rows.Scan(
			&event.ID, &event.URL, &event.Title, &event.Status, &event.PrizePool,
			&event.StartDate, &event.EndDate, &event.Region, &event.EventName,
			&event.Location, &event.Thumbnail, &event.CreatedAt, &event.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		events = append(events, event)
	}

	return events, rows.Err()
}
