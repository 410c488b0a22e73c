package reconcile

import (
	"context"
	"fmt"
	"log"

	"github.com/sentinel/vlrstats/internal/scrape"
	"github.com/sentinel/vlrstats/internal/store"
	"github.com/sentinel/vlrstats/internal/store/repository"
)

// EventReconciler persists season-stage output.
type EventReconciler struct {
	db     *store.Database
	events *repository.EventRepository
}

// NewEventReconciler creates the event reconciler.
func NewEventReconciler(db *store.Database, events *repository.EventRepository) *EventReconciler {
	return &EventReconciler{db: db, events: events}
}

// Save upserts a batch of events, one transaction each. A failed event
// is rolled back and logged; the rest of the batch proceeds.
func (r *EventReconciler) Save(ctx context.Context, events []scrape.Event) (Stats, error) {
	var stats Stats

	for i := range events {
		if err := r.saveOne(ctx, &events[i]); err != nil {
			log.Printf("⚠️  Error saving event %d: %v", events[i].ID, err)
			stats.Failed++
			continue
		}
		stats.Saved++
	}

	log.Printf("✓ Saved %d events (%d failed)", stats.Saved, stats.Failed)

	return stats, nil
}

func (r *EventReconciler) saveOne(ctx context.Context, ev *scrape.Event) error {
	row := &store.Event{
		ID:        ev.ID,
		URL:       nullStr(ev.URL),
		Title:     nullStr(ev.Title),
		Status:    nullStr(ev.Status),
		PrizePool: nullInt64Ptr(ev.PrizePool),
		StartDate: nullDate(ev.StartDate),
		EndDate:   nullDate(ev.EndDate),
		Region:    nullStr(ev.Region),
		EventName: nullStr(ev.EventName),
		Location:  nullStr(ev.Location),
		Thumbnail: nullStr(ev.Thumbnail),
	}

	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := r.events.Upsert(ctx, tx, row); err != nil {
		return err
	}

	return tx.Commit()
}
