// Package pipeline drives the four scraping stages in order: seasons
// yield events, events yield match references, matches yield games, and
// games yield the full stat record. Every stage diffs against the store
// first so an interrupted run resumes where it stopped, and every entity
// is isolated: one bad page is logged and skipped, never fatal.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sentinel/vlrstats/internal/reconcile"
	"github.com/sentinel/vlrstats/internal/scrape"
	"github.com/sentinel/vlrstats/internal/store"
)

// The extraction and persistence surfaces the orchestrator drives.
// Narrow on purpose: tests substitute fakes for whole stages.
type (
	seasonSource interface {
		Extract(ctx context.Context, seasonID string) ([]scrape.Event, error)
	}
	eventSource interface {
		Extract(ctx context.Context, eventID int64) ([]scrape.MatchStub, error)
	}
	matchSource interface {
		Extract(ctx context.Context, matchID int64) (*scrape.Match, []scrape.GameStub, error)
	}
	gameSource interface {
		Extract(ctx context.Context, gameID, matchID int64, teams scrape.GameTeams) (*scrape.GameDetail, error)
	}

	eventSink interface {
		Save(ctx context.Context, events []scrape.Event) (reconcile.Stats, error)
	}
	matchSink interface {
		SaveStubs(ctx context.Context, stubs []scrape.MatchStub) (reconcile.Stats, error)
		SaveMatch(ctx context.Context, match *scrape.Match) error
		DeleteShowmatch(ctx context.Context, matchID int64) error
	}
	gameSink interface {
		SaveStubs(ctx context.Context, stubs []scrape.GameStub) (reconcile.Stats, error)
		SaveDetail(ctx context.Context, detail *scrape.GameDetail) error
	}

	matchIndex interface {
		MatchIDsByEvent(ctx context.Context, eventID int64) (map[int64]bool, error)
		TeamsByMatch(ctx context.Context, matchID int64) ([]*store.Team, error)
	}
	gameIndex interface {
		CollectedGameIDs(ctx context.Context, matchID int64) (map[int64]bool, error)
	}
)

// Config holds the run parameters.
type Config struct {
	// Seasons to walk, e.g. "vct-2024". Processed in order.
	Seasons []string

	// OldestDate drops events that ended before it. Zero means no
	// filter.
	OldestDate time.Time

	// OutputDir receives per-entity JSON snapshots. Empty disables.
	OutputDir string
}

// Deps bundles everything the orchestrator drives.
type Deps struct {
	Seasons seasonSource
	Events  eventSource
	Matches matchSource
	Games   gameSource

	EventSink eventSink
	MatchSink matchSink
	GameSink  gameSink

	MatchIndex matchIndex
	GameIndex  gameIndex

	Notifier Notifier
}

// Orchestrator runs the whole pipeline once, strictly sequentially.
type Orchestrator struct {
	cfg  Config
	deps Deps
	snap *Snapshotter
}

// NewOrchestrator wires a pipeline run.
func NewOrchestrator(cfg Config, deps Deps) *Orchestrator {
	if deps.Notifier == nil {
		deps.Notifier = nopNotifier{}
	}
	return &Orchestrator{
		cfg:  cfg,
		deps: deps,
		snap: NewSnapshotter(cfg.OutputDir),
	}
}

// Run walks every configured season down to the per-game stat tabs.
// Only context cancellation and a completely empty season list abort a
// run; everything else degrades to logged skips.
func (o *Orchestrator) Run(ctx context.Context) error {
	if len(o.cfg.Seasons) == 0 {
		return fmt.Errorf("no seasons configured")
	}

	if err := o.snap.Reset(); err != nil {
		return err
	}

	log.Printf("→ Starting scrape run: %d seasons", len(o.cfg.Seasons))

	events := o.runSeasonStage(ctx)
	if err := ctx.Err(); err != nil {
		return err
	}

	newMatches := o.runEventStage(ctx, events)
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(newMatches) == 0 {
		log.Printf("✓ No new matches to process")
		return nil
	}

	gamesByMatch := o.runMatchStage(ctx, newMatches)
	if err := ctx.Err(); err != nil {
		return err
	}

	o.runGameStage(ctx, gamesByMatch)
	if err := ctx.Err(); err != nil {
		return err
	}

	log.Printf("✓ Scrape run completed")

	return nil
}

// runSeasonStage collects and saves the events of every season.
func (o *Orchestrator) runSeasonStage(ctx context.Context) []scrape.Event {
	var all []scrape.Event

	for i, seasonID := range o.cfg.Seasons {
		if ctx.Err() != nil {
			return all
		}
		log.Printf("→ Processing season %s (%d/%d)", seasonID, i+1, len(o.cfg.Seasons))

		events, err := o.deps.Seasons.Extract(ctx, seasonID)
		if err != nil {
			log.Printf("⚠️  Error processing season %s: %v", seasonID, err)
			continue
		}
		if len(events) == 0 {
			continue
		}

		o.snap.Write(seasonID+"_events", events)

		if _, err := o.deps.EventSink.Save(ctx, events); err != nil {
			log.Printf("⚠️  Error saving events for season %s: %v", seasonID, err)
			continue
		}

		all = append(all, events...)
	}

	o.notify(ctx, "seasons", fmt.Sprintf("%d events collected", len(all)), len(all))

	return all
}

// runEventStage lists each event's completed matches and keeps only the
// ones the store has not seen for that event.
func (o *Orchestrator) runEventStage(ctx context.Context, events []scrape.Event) []scrape.MatchStub {
	var newMatches []scrape.MatchStub

	log.Printf("→ %d events to process", len(events))

	for _, ev := range events {
		if ctx.Err() != nil {
			return newMatches
		}

		stubs, err := o.deps.Events.Extract(ctx, ev.ID)
		if err != nil {
			log.Printf("⚠️  Error processing event %d: %v", ev.ID, err)
			continue
		}

		known, err := o.deps.MatchIndex.MatchIDsByEvent(ctx, ev.ID)
		if err != nil {
			log.Printf("⚠️  Error loading known matches for event %d: %v", ev.ID, err)
			continue
		}

		fresh := stubs[:0:0]
		for _, stub := range stubs {
			if !known[stub.MatchID] {
				fresh = append(fresh, stub)
			}
		}

		log.Printf("→ Event %d: %d known matches, %d new", ev.ID, len(known), len(fresh))

		if len(fresh) == 0 {
			continue
		}

		o.snap.Write(fmt.Sprintf("event_%d_matches", ev.ID), fresh)

		if _, err := o.deps.MatchSink.SaveStubs(ctx, fresh); err != nil {
			log.Printf("⚠️  Error saving match stubs for event %d: %v", ev.ID, err)
			continue
		}

		newMatches = append(newMatches, fresh...)
	}

	o.notify(ctx, "events", fmt.Sprintf("%d new matches found", len(newMatches)), len(newMatches))

	return newMatches
}

// matchGames pairs a match with its shallow game stubs for the final
// stage.
type matchGames struct {
	matchID int64
	games   []scrape.GameStub
}

// runMatchStage parses each new match. Showmatches are purged from the
// store; real matches are saved along with their game stubs.
func (o *Orchestrator) runMatchStage(ctx context.Context, stubs []scrape.MatchStub) []matchGames {
	var collected []matchGames

	log.Printf("→ %d matches to process", len(stubs))

	for _, stub := range stubs {
		if ctx.Err() != nil {
			return collected
		}

		match, games, err := o.deps.Matches.Extract(ctx, stub.MatchID)
		if err != nil {
			log.Printf("⚠️  Error processing match %d: %v", stub.MatchID, err)
			continue
		}

		if match.Showmatch {
			if err := o.deps.MatchSink.DeleteShowmatch(ctx, stub.MatchID); err != nil {
				log.Printf("⚠️  Error removing showmatch %d: %v", stub.MatchID, err)
			}
			continue
		}

		o.snap.Write(fmt.Sprintf("match_%d_details", stub.MatchID), struct {
			*scrape.Match
			Games []scrape.GameStub `json:"games"`
		}{match, games})

		if err := o.deps.MatchSink.SaveMatch(ctx, match); err != nil {
			log.Printf("⚠️  Error saving match %d: %v", stub.MatchID, err)
			continue
		}

		if len(games) == 0 {
			continue
		}
		if _, err := o.deps.GameSink.SaveStubs(ctx, games); err != nil {
			log.Printf("⚠️  Error saving games for match %d: %v", stub.MatchID, err)
			continue
		}

		collected = append(collected, matchGames{matchID: stub.MatchID, games: games})
	}

	total := 0
	for _, mg := range collected {
		total += len(mg.games)
	}
	o.notify(ctx, "matches", fmt.Sprintf("%d games discovered", total), total)

	return collected
}

// runGameStage pulls the full stat record of every game that does not
// already carry player stats.
func (o *Orchestrator) runGameStage(ctx context.Context, batches []matchGames) {
	processed := 0

	for _, mg := range batches {
		if ctx.Err() != nil {
			return
		}

		collected, err := o.deps.GameIndex.CollectedGameIDs(ctx, mg.matchID)
		if err != nil {
			log.Printf("⚠️  Error loading collected games for match %d: %v", mg.matchID, err)
			continue
		}

		teams, err := o.resolveTeams(ctx, mg.matchID)
		if err != nil {
			log.Printf("⚠️  Error resolving teams for match %d: %v", mg.matchID, err)
			continue
		}

		for _, game := range mg.games {
			if ctx.Err() != nil {
				return
			}
			if collected[game.GameID] {
				continue
			}

			detail, err := o.deps.Games.Extract(ctx, game.GameID, mg.matchID, teams)
			if err != nil {
				log.Printf("⚠️  Error processing game %d: %v", game.GameID, err)
				continue
			}

			o.snap.Write(fmt.Sprintf("game_%d_details", game.GameID), detail)

			if err := o.deps.GameSink.SaveDetail(ctx, detail); err != nil {
				log.Printf("⚠️  Error saving game %d: %v", game.GameID, err)
				continue
			}

			processed++
		}
	}

	o.notify(ctx, "games", fmt.Sprintf("%d games collected", processed), processed)
}

// resolveTeams reads the two match participants back from the store in
// slot order, so positional game markup can be attributed.
func (o *Orchestrator) resolveTeams(ctx context.Context, matchID int64) (scrape.GameTeams, error) {
	teams, err := o.deps.MatchIndex.TeamsByMatch(ctx, matchID)
	if err != nil {
		return scrape.GameTeams{}, err
	}
	if len(teams) < 2 {
		return scrape.GameTeams{}, fmt.Errorf("expected 2 teams for match %d, found %d", matchID, len(teams))
	}

	return scrape.GameTeams{
		Team1ID:    teams[0].ID,
		Team2ID:    teams[1].ID,
		Team1Short: teams[0].ShortName,
		Team2Short: teams[1].ShortName,
	}, nil
}

func (o *Orchestrator) notify(ctx context.Context, stage, message string, count int) {
	o.deps.Notifier.Notify(ctx, ProgressEvent{
		Stage:     stage,
		Message:   message,
		Count:     count,
		Timestamp: time.Now().UTC(),
	})
}
