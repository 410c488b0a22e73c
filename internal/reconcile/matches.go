package reconcile

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/sentinel/vlrstats/internal/scrape"
	"github.com/sentinel/vlrstats/internal/store"
	"github.com/sentinel/vlrstats/internal/store/repository"
)

// MatchReconciler persists event-stage stubs and match-stage detail.
type MatchReconciler struct {
	db      *store.Database
	matches *repository.MatchRepository
	teams   *repository.TeamRepository
}

// NewMatchReconciler creates the match reconciler.
func NewMatchReconciler(db *store.Database, matches *repository.MatchRepository, teams *repository.TeamRepository) *MatchReconciler {
	return &MatchReconciler{db: db, matches: matches, teams: teams}
}

// SaveStubs records the bare match references an event listing yields.
// Detail columns of already-known matches are untouched.
func (r *MatchReconciler) SaveStubs(ctx context.Context, stubs []scrape.MatchStub) (Stats, error) {
	var stats Stats

	for _, stub := range stubs {
		if err := r.matches.UpsertStub(ctx, r.db.DB(), stub.MatchID, stub.EventID, stub.URL); err != nil {
			log.Printf("⚠️  Error saving match stub %d: %v", stub.MatchID, err)
			stats.Failed++
			continue
		}
		stats.Saved++
	}

	if stats.Saved > 0 {
		log.Printf("✓ Saved %d match stubs (%d failed)", stats.Saved, stats.Failed)
	}

	return stats, nil
}

// SaveMatch writes a full match record in one transaction: both teams
// with their alias bindings, the match row, and the two match_teams
// rows carrying each team's share of the pick/ban sequence. The match
// page never names the owning event, so the match row is written with a
// null event reference and the stored one survives.
func (r *MatchReconciler) SaveMatch(ctx context.Context, match *scrape.Match) error {
	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	teamIDs := make(map[string]int32, len(match.Teams))
	for i := range match.Teams {
		t := &match.Teams[i]
		id := store.TeamID(t.ShortName)
		teamIDs[t.ShortName] = id

		row := &store.Team{
			ID:        id,
			Name:      nullStr(t.Name),
			ShortName: t.ShortName,
			Region:    nullStr(t.Region),
			LogoURL:   nullStr(t.LogoURL),
			TeamURL:   nullStr(t.TeamURL),
		}
		if err := r.teams.Upsert(ctx, tx, row); err != nil {
			return err
		}
	}

	picks, err := json.Marshal(match.Picks)
	if err != nil {
		return fmt.Errorf("encoding picks: %w", err)
	}
	bans, err := json.Marshal(match.Bans)
	if err != nil {
		return fmt.Errorf("encoding bans: %w", err)
	}

	row := &store.Match{
		MatchID: match.MatchID,
		URL:     nullStr(match.URL),
		Series:  nullStr(match.Series),
		Date:    nullStr(match.Date),
		Time:    nullStr(match.Time),
		Patch:   nullStr(match.Patch),
		Picks:   nullStr(string(picks)),
		Bans:    nullStr(string(bans)),
		Decider: nullStr(match.Decider),
	}
	if err := r.matches.Upsert(ctx, tx, row); err != nil {
		return err
	}

	for i := range match.Teams {
		t := &match.Teams[i]
		teamPicks, teamBans := teamSelections(match, t.ShortName)

		mt := &store.MatchTeam{
			MatchID:  match.MatchID,
			TeamID:   teamIDs[t.ShortName],
			Score:    nullInt(t.Score),
			IsWinner: nullBool(t.IsWinner),
			Picks:    nullStr(teamPicks),
			Bans:     nullStr(teamBans),
		}
		if err := r.matches.UpsertMatchTeam(ctx, tx, mt); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing match %d: %w", match.MatchID, err)
	}

	log.Printf("✓ Saved match %d", match.MatchID)

	return nil
}

// DeleteShowmatch purges a stored match that the detail page revealed to
// be a showmatch. The FK cascade takes its games and stats with it.
func (r *MatchReconciler) DeleteShowmatch(ctx context.Context, matchID int64) error {
	if err := r.matches.Delete(ctx, matchID); err != nil {
		return err
	}
	log.Printf("✓ Removed showmatch %d", matchID)
	return nil
}

// teamSelections collects one team's map names from the full pick/ban
// sequences, encoded as JSON arrays in sequence order.
func teamSelections(match *scrape.Match, shortName string) (picks, bans string) {
	pickMaps := make([]string, 0, len(match.Picks))
	for _, p := range match.Picks {
		if p.Team == shortName {
			pickMaps = append(pickMaps, p.Map)
		}
	}
	banMaps := make([]string, 0, len(match.Bans))
	for _, b := range match.Bans {
		if b.Team == shortName {
			banMaps = append(banMaps, b.Map)
		}
	}

	pj, _ := json.Marshal(pickMaps)
	bj, _ := json.Marshal(banMaps)
	return string(pj), string(bj)
}
