package repository

import (
	"context"
	"fmt"

	"github.com/sentinel/vlrstats/internal/store"
)

// StatsRepository handles the per-game fact tables: player scoreboards,
// round history and team economy.
type StatsRepository struct {
	db *store.Database
}

// NewStatsRepository creates a new stats repository.
func NewStatsRepository(db *store.Database) *StatsRepository {
	return &StatsRepository{db: db}
}

// UpsertPlayerStats saves one player's scoreboard line for a game.
func (r *StatsRepository) UpsertPlayerStats(ctx context.Context, q store.DBTX, ps *store.PlayerStats) error {
	query := `
		INSERT INTO player_stats (
			game_id, player_id, team_id, agent_name, agent_icon_url,
			ratio_both, ratio_t, ratio_ct, acs_both, acs_t, acs_ct,
			k_both, k_t, k_ct, d_both, d_t, d_ct, a_both, a_t, a_ct,
			kddiff_both, kddiff_t, kddiff_ct, kast_both, kast_t, kast_ct,
			adr_both, adr_t, adr_ct, hs_both, hs_t, hs_ct,
			fk_both, fk_t, fk_ct, fd_both, fd_t, fd_ct,
			fkddiff_both, fkddiff_t, fkddiff_ct,
			multikills_2k, multikills_3k, multikills_4k, multikills_5k,
			clutches_1v1, clutches_1v2, clutches_1v3, clutches_1v4, clutches_1v5,
			eco, plant, defuse)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
			$21, $22, $23, $24, $25, $26, $27, $28, $29, $30,
			$31, $32, $33, $34, $35, $36, $37, $38, $39, $40,
			$41, $42, $43, $44, $45, $46, $47, $48, $49, $50,
			$51, $52, $53)
		ON CONFLICT (game_id, player_id) DO UPDATE SET
			team_id = EXCLUDED.team_id,
			agent_name = EXCLUDED.agent_name,
			agent_icon_url = EXCLUDED.agent_icon_url,
			ratio_both = EXCLUDED.ratio_both, ratio_t = EXCLUDED.ratio_t, ratio_ct = EXCLUDED.ratio_ct,
			acs_both = EXCLUDED.acs_both, acs_t = EXCLUDED.acs_t, acs_ct = EXCLUDED.acs_ct,
			k_both = EXCLUDED.k_both, k_t = EXCLUDED.k_t, k_ct = EXCLUDED.k_ct,
			d_both = EXCLUDED.d_both, d_t = EXCLUDED.d_t, d_ct = EXCLUDED.d_ct,
			a_both = EXCLUDED.a_both, a_t = EXCLUDED.a_t, a_ct = EXCLUDED.a_ct,
			kddiff_both = EXCLUDED.kddiff_both, kddiff_t = EXCLUDED.kddiff_t, kddiff_ct = EXCLUDED.kddiff_ct,
			kast_both = EXCLUDED.kast_both, kast_t = EXCLUDED.kast_t, kast_ct = EXCLUDED.kast_ct,
			adr_both = EXCLUDED.adr_both, adr_t = EXCLUDED.adr_t, adr_ct = EXCLUDED.adr_ct,
			hs_both = EXCLUDED.hs_both, hs_t = EXCLUDED.hs_t, hs_ct = EXCLUDED.hs_ct,
			fk_both = EXCLUDED.fk_both, fk_t = EXCLUDED.fk_t, fk_ct = EXCLUDED.fk_ct,
			fd_both = EXCLUDED.fd_both, fd_t = EXCLUDED.fd_t, fd_ct = EXCLUDED.fd_ct,
			fkddiff_both = EXCLUDED.fkddiff_both, fkddiff_t = EXCLUDED.fkddiff_t, fkddiff_ct = EXCLUDED.fkddiff_ct,
			multikills_2k = EXCLUDED.multikills_2k, multikills_3k = EXCLUDED.multikills_3k,
			multikills_4k = EXCLUDED.multikills_4k, multikills_5k = EXCLUDED.multikills_5k,
			clutches_1v1 = EXCLUDED.clutches_1v1, clutches_1v2 = EXCLUDED.clutches_1v2,
			clutches_1v3 = EXCLUDED.clutches_1v3, clutches_1v4 = EXCLUDED.clutches_1v4,
			clutches_1v5 = EXCLUDED.clutches_1v5,
			eco = EXCLUDED.eco, plant = EXCLUDED.plant, defuse = EXCLUDED.defuse
	`

	_, err := q.ExecContext(ctx, query,
		ps.GameID, ps.PlayerID, ps.TeamID, ps.AgentName, ps.AgentIconURL,
		ps.RatioBoth, ps.RatioT, ps.RatioCT, ps.ACSBoth, ps.ACST, ps.ACSCT,
		ps.KBoth, ps.KT, ps.KCT, ps.DBoth, ps.DT, ps.DCT, ps.ABoth, ps.AT, ps.ACT,
		ps.KDDiffBoth, ps.KDDiffT, ps.KDDiffCT, ps.KASTBoth, ps.KASTT, ps.KASTCT,
		ps.ADRBoth, ps.ADRT, ps.ADRCT, ps.HSBoth, ps.HST, ps.HSCT,
		ps.FKBoth, ps.FKT, ps.FKCT, ps.FDBoth, ps.FDT, ps.FDCT,
		ps.FKDDiffBoth, ps.FKDDiffT, ps.FKDDiffCT,
		ps.Multikills2K, ps.Multikills3K, ps.Multikills4K, ps.Multikills5K,
		ps.Clutches1v1, ps.Clutches1v2, ps.Clutches1v3, ps.Clutches1v4, ps.Clutches1v5,
		ps.Eco, ps.Plant, ps.Defuse,
	)
	if err != nil {
		return fmt.Errorf("upserting player stats %d/%d: %w", ps.GameID, ps.PlayerID, err)
	}

	return nil
}

// UpsertRound saves one round of a game's history.
func (r *StatsRepository) UpsertRound(ctx context.Context, q store.DBTX, round *store.RoundHistory) error {
	query := `
		INSERT INTO round_history (game_id, round_number, winner, score, win_type)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (game_id, round_number) DO UPDATE SET
			winner = EXCLUDED.winner,
			score = EXCLUDED.score,
			win_type = EXCLUDED.win_type
	`

	_, err := q.ExecContext(ctx, query,
		round.GameID, round.RoundNumber, round.Winner, round.Score, round.WinType,
	)
	if err != nil {
		return fmt.Errorf("upserting round %d/%d: %w", round.GameID, round.RoundNumber, err)
	}

	return nil
}

// UpsertEconomy saves one team's buy-type breakdown for a game.
func (r *StatsRepository) UpsertEconomy(ctx context.Context, q store.DBTX, es *store.EconomyStats) error {
	query := `
		INSERT INTO economy_stats (game_id, team_id, pistol, eco_played, eco_won,
			semi_eco_played, semi_eco_won, semi_buy_played, semi_buy_won,
			full_buy_played, full_buy_won)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (game_id, team_id) DO UPDATE SET
			pistol = EXCLUDED.pistol,
			eco_played = EXCLUDED.eco_played,
			eco_won = EXCLUDED.eco_won,
			semi_eco_played = EXCLUDED.semi_eco_played,
			semi_eco_won = EXCLUDED.semi_eco_won,
			semi_buy_played = EXCLUDED.semi_buy_played,
			semi_buy_won = EXCLUDED.semi_buy_won,
			full_buy_played = EXCLUDED.full_buy_played,
			full_buy_won = EXCLUDED.full_buy_won
	`

	_, err := q.ExecContext(ctx, query,
		es.GameID, es.TeamID, es.Pistol, es.EcoPlayed, es.EcoWon,
		es.SemiEcoPlayed, es.SemiEcoWon, es.SemiBuyPlayed, es.SemiBuyWon,
		es.FullBuyPlayed, es.FullBuyWon,
	)
	if err != nil {
		return fmt.Errorf("upserting economy stats %d/%d: %w", es.GameID, es.TeamID, err)
	}

	return nil
}

// PlayerStatsByGame returns every scoreboard line stored for a game.
func (r *StatsRepository) PlayerStatsByGame(ctx context.Context, gameID int64) ([]*store.PlayerStats, error) {
	query := `
		SELECT id, game_id, player_id, team_id, agent_name, agent_icon_url,
			ratio_both, ratio_t, ratio_ct, acs_both, acs_t, acs_ct,
			k_both, k_t, k_ct, d_both, d_t, d_ct, a_both, a_t, a_ct,
			kddiff_both, kddiff_t, kddiff_ct, kast_both, kast_t, kast_ct,
			adr_both, adr_t, adr_ct, hs_both, hs_t, hs_ct,
			fk_both, fk_t, fk_ct, fd_both, fd_t, fd_ct,
			fkddiff_both, fkddiff_t, fkddiff_ct,
			multikills_2k, multikills_3k, multikills_4k, multikills_5k,
			clutches_1v1, clutches_1v2, clutches_1v3, clutches_1v4, clutches_1v5,
			eco, plant, defuse
		FROM player_stats
		WHERE game_id = $1
		ORDER BY id
	`

	rows, err := r.db.DB().QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("querying player stats for game %d: %w", gameID, err)
	}
	defer rows.Close()

	var stats []*store.PlayerStats
	for rows.Next() {
		ps := &store.PlayerStats{}
		err := rows.Scan(
			&ps.ID, &ps.GameID, &ps.PlayerID, &ps.TeamID, &ps.AgentName, &ps.AgentIconURL,
			&ps.RatioBoth, &ps.RatioT, &ps.RatioCT, &ps.ACSBoth, &ps.ACST, &ps.ACSCT,
			&ps.KBoth, &ps.KT, &ps.KCT, &ps.DBoth, &ps.DT, &ps.DCT, &ps.ABoth, &ps.AT, &ps.ACT,
			&ps.KDDiffBoth, &ps.KDDiffT, &ps.KDDiffCT, &ps.KASTBoth, &ps.KASTT, &ps.KASTCT,
			&ps.ADRBoth, &ps.ADRT, &ps.ADRCT, &ps.HSBoth, &ps.HST, &ps.HSCT,
			&ps.FKBoth, &ps.FKT, &ps.FKCT, &ps.FDBoth, &ps.FDT, &ps.FDCT,
			&ps.FKDDiffBoth, &ps.FKDDiffT, &ps.FKDDiffCT,
			&ps.Multikills2K, &ps.Multikills3K, &ps.Multikills4K, &ps.Multikills5K,
			&ps.Clutches1v1, &ps.Clutches1v2, &ps.Clutches1v3, &ps.Clutches1v4, &ps.Clutches1v5,
			&ps.Eco, &ps.Plant, &ps.Defuse,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning player stats: %w", err)
		}
		stats = append(stats, ps)
	}

	return stats, rows.Err()
}

// RoundsByGame returns a game's round history in order.
func (r *StatsRepository) RoundsByGame(ctx context.Context, gameID int64) ([]*store.RoundHistory, error) {
	query := `
		SELECT id, game_id, round_number, winner, score, win_type
		FROM round_history
		WHERE game_id = $1
		ORDER BY round_number
	`

	rows, err := r.db.DB().QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("querying rounds for game %d: %w", gameID, err)
	}
	defer rows.Close()

	var rounds []*store.RoundHistory
	for rows.Next() {
		rh := &store.RoundHistory{}
		if err := rows.Scan(&rh.ID, &rh.GameID, &rh.RoundNumber, &rh.Winner, &rh.Score, &rh.WinType); err != nil {
			return nil, fmt.Errorf("scanning round: %w", err)
		}
		rounds = append(rounds, rh)
	}

	return rounds, rows.Err()
}

// EconomyByGame returns both teams' economy rows for a game.
func (r *StatsRepository) EconomyByGame(ctx context.Context, gameID int64) ([]*store.EconomyStats, error) {
	query := `
		SELECT id, game_id, team_id, pistol, eco_played, eco_won,
			semi_eco_played, semi_eco_won, semi_buy_played, semi_buy_won,
			full_buy_played, full_buy_won
		FROM economy_stats
		WHERE game_id = $1
		ORDER BY id
	`

	rows, err := r.db.DB().QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("querying economy for game %d: %w", gameID, err)
	}
	defer rows.Close()

	var stats []*store.EconomyStats
	for rows.Next() {
		es := &store.EconomyStats{}
		err := rows.Scan(
			&es.ID, &es.GameID, &es.TeamID, &es.Pistol, &es.EcoPlayed, &es.EcoWon,
			&es.SemiEcoPlayed, &es.SemiEcoWon, &es.SemiBuyPlayed, &es.SemiBuyWon,
			&es.FullBuyPlayed, &es.FullBuyWon,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning economy stats: %w", err)
		}
		stats = append(stats, es)
	}

	return stats, rows.Err()
}
