package reconcile

import (
	"context"
	"fmt"
	"log"

	"github.com/sentinel/vlrstats/internal/scrape"
	"github.com/sentinel/vlrstats/internal/store"
	"github.com/sentinel/vlrstats/internal/store/repository"
)

// GameReconciler persists the shallow game stubs from the match stage
// and the full detail records from the game stage.
type GameReconciler struct {
	db      *store.Database
	games   *repository.GameRepository
	players *repository.PlayerRepository
	stats   *repository.StatsRepository
}

// NewGameReconciler creates the game reconciler.
func NewGameReconciler(db *store.Database, games *repository.GameRepository, players *repository.PlayerRepository, stats *repository.StatsRepository) *GameReconciler {
	return &GameReconciler{db: db, games: games, players: players, stats: stats}
}

// SaveStubs writes the per-map rows a match page yields: the game row
// plus one score row per team. One transaction per game.
func (r *GameReconciler) SaveStubs(ctx context.Context, stubs []scrape.GameStub) (Stats, error) {
	var stats Stats

	for i := range stubs {
		if err := r.saveStub(ctx, &stubs[i]); err != nil {
			log.Printf("⚠️  Error saving game %d: %v", stubs[i].GameID, err)
			stats.Failed++
			continue
		}
		stats.Saved++
	}

	if stats.Saved > 0 {
		log.Printf("✓ Saved %d games (%d failed)", stats.Saved, stats.Failed)
	}

	return stats, nil
}

func (r *GameReconciler) saveStub(ctx context.Context, stub *scrape.GameStub) error {
	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	row := &store.Game{
		GameID:   stub.GameID,
		MatchID:  stub.MatchID,
		URL:      nullStr(stub.URL),
		Map:      nullStr(stub.Map),
		Pick:     nullInt32Ptr(stub.Pick),
		Win:      nullInt32Ptr(stub.Win),
		Duration: nullStr(stub.Duration),
	}
	if err := r.games.Upsert(ctx, tx, row); err != nil {
		return err
	}

	for teamID, score := range stub.Scores {
		gs := &store.GameScore{
			GameID:  stub.GameID,
			TeamID:  teamID,
			Score:   nullInt(score.Score),
			TScore:  nullInt(score.T),
			CTScore: nullInt(score.CT),
		}
		if err := r.games.UpsertScore(ctx, tx, gs); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// SaveDetail writes everything the game stage collected in one
// transaction: player identities, their scoreboard lines, the round
// history and both teams' economy rows. Team references are derived
// from short names with the same hash the match stage used, so the
// rows join without a lookup.
func (r *GameReconciler) SaveDetail(ctx context.Context, detail *scrape.GameDetail) error {
	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for i := range detail.Players {
		p := &detail.Players[i]
		playerID := store.PlayerID(p.Name, p.TeamShort)

		if err := r.players.Insert(ctx, tx, &store.Player{ID: playerID, Name: p.Name}); err != nil {
			return err
		}

		ps := playerStatsRow(detail.GameID, playerID, p)
		if err := r.stats.UpsertPlayerStats(ctx, tx, ps); err != nil {
			return err
		}
	}

	for _, round := range detail.Rounds {
		row := &store.RoundHistory{
			GameID:      detail.GameID,
			RoundNumber: round.RoundNumber,
			Winner:      nullInt32Ptr(round.Winner),
			Score:       nullStr(round.Score),
			WinType:     nullStr(round.WinType),
		}
		if err := r.stats.UpsertRound(ctx, tx, row); err != nil {
			return err
		}
	}

	for teamShort, econ := range detail.Economy {
		row := &store.EconomyStats{
			GameID:        detail.GameID,
			TeamID:        store.TeamID(teamShort),
			Pistol:        nullIntPtr(econ.Pistol),
			EcoPlayed:     nullInt(econ.EcoPlayed),
			EcoWon:        nullInt(econ.EcoWon),
			SemiEcoPlayed: nullInt(econ.SemiEcoPlayed),
			SemiEcoWon:    nullInt(econ.SemiEcoWon),
			SemiBuyPlayed: nullInt(econ.SemiBuyPlayed),
			SemiBuyWon:    nullInt(econ.SemiBuyWon),
			FullBuyPlayed: nullInt(econ.FullBuyPlayed),
			FullBuyWon:    nullInt(econ.FullBuyWon),
		}
		if err := r.stats.UpsertEconomy(ctx, tx, row); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing game %d: %w", detail.GameID, err)
	}

	log.Printf("✓ Saved game %d stats", detail.GameID)

	return nil
}

func playerStatsRow(gameID int64, playerID int32, p *scrape.PlayerLine) *store.PlayerStats {
	ps := &store.PlayerStats{
		GameID:       gameID,
		PlayerID:     playerID,
		AgentName:    nullStr(p.AgentName),
		AgentIconURL: nullStr(p.AgentIconURL),
	}

	if p.TeamShort != "" {
		id := store.TeamID(p.TeamShort)
		ps.TeamID = nullInt32Ptr(&id)
	}

	s := &p.Stats

	ps.RatioBoth = nullFloatPtr(s.RatioBoth)
	ps.RatioT = nullFloatPtr(s.RatioT)
	ps.RatioCT = nullFloatPtr(s.RatioCT)

	ps.ACSBoth = nullIntPtr(s.ACSBoth)
	ps.ACST = nullIntPtr(s.ACST)
	ps.ACSCT = nullIntPtr(s.ACSCT)

	ps.KBoth = nullIntPtr(s.KBoth)
	ps.KT = nullIntPtr(s.KT)
	ps.KCT = nullIntPtr(s.KCT)

	ps.DBoth = nullIntPtr(s.DBoth)
	ps.DT = nullIntPtr(s.DT)
	ps.DCT = nullIntPtr(s.DCT)

	ps.ABoth = nullIntPtr(s.ABoth)
	ps.AT = nullIntPtr(s.AT)
	ps.ACT = nullIntPtr(s.ACT)

	ps.KDDiffBoth = nullIntPtr(s.KDDiffBoth)
	ps.KDDiffT = nullIntPtr(s.KDDiffT)
	ps.KDDiffCT = nullIntPtr(s.KDDiffCT)

	ps.KASTBoth = nullFloatPtr(s.KASTBoth)
	ps.KASTT = nullFloatPtr(s.KASTT)
	ps.KASTCT = nullFloatPtr(s.KASTCT)

	ps.ADRBoth = nullFloatPtr(s.ADRBoth)
	ps.ADRT = nullFloatPtr(s.ADRT)
	ps.ADRCT = nullFloatPtr(s.ADRCT)

	ps.HSBoth = nullFloatPtr(s.HSBoth)
	ps.HST = nullFloatPtr(s.HST)
	ps.HSCT = nullFloatPtr(s.HSCT)

	ps.FKBoth = nullIntPtr(s.FKBoth)
	ps.FKT = nullIntPtr(s.FKT)
	ps.FKCT = nullIntPtr(s.FKCT)

	ps.FDBoth = nullIntPtr(s.FDBoth)
	ps.FDT = nullIntPtr(s.FDT)
	ps.FDCT = nullIntPtr(s.FDCT)

	ps.FKDDiffBoth = nullIntPtr(s.FKDDiffBoth)
	ps.FKDDiffT = nullIntPtr(s.FKDDiffT)
	ps.FKDDiffCT = nullIntPtr(s.FKDDiffCT)

	ps.Multikills2K = nullIntPtr(s.Multikills2K)
	ps.Multikills3K = nullIntPtr(s.Multikills3K)
	ps.Multikills4K = nullIntPtr(s.Multikills4K)
	ps.Multikills5K = nullIntPtr(s.Multikills5K)

	ps.Clutches1v1 = nullIntPtr(s.Clutches1v1)
	ps.Clutches1v2 = nullIntPtr(s.Clutches1v2)
	ps.Clutches1v3 = nullIntPtr(s.Clutches1v3)
	ps.Clutches1v4 = nullIntPtr(s.Clutches1v4)
	ps.Clutches1v5 = nullIntPtr(s.Clutches1v5)

	ps.Eco = nullIntPtr(s.Eco)
	ps.Plant = nullIntPtr(s.Plant)
	ps.Defuse = nullIntPtr(s.Defuse)

	return ps
}
