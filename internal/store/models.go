package store

import (
	"database/sql"
	"time"
)

// Event is a tournament listed on a season page. The ID is the source
// site's own numeric event ID and never changes; every other field is
// overwritten on re-scrape.
type Event struct {
	ID        int64          `json:"id" db:"id"`
	URL       sql.NullString `json:"url,omitempty" db:"url"`
	Title     sql.NullString `json:"title,omitempty" db:"title"`
	Status    sql.NullString `json:"status,omitempty" db:"status"`
	PrizePool sql.NullInt64  `json:"prize_pool,omitempty" db:"prize_pool"`
	StartDate sql.NullTime   `json:"start_date,omitempty" db:"start_date"`
	EndDate   sql.NullTime   `json:"end_date,omitempty" db:"end_date"`
	Region    sql.NullString `json:"region,omitempty" db:"region"`
	EventName sql.NullString `json:"event_name,omitempty" db:"event_name"`
	Location  sql.NullString `json:"location,omitempty" db:"location"`
	Thumbnail sql.NullString `json:"thumbnail,omitempty" db:"thumbnail"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" db:"updated_at"`
}

// Team is a participating organization. The source has no stable team ID,
// so the primary key is derived from the short name (see TeamID). That
// derived ID is the join key for every downstream stats table.
type Team struct {
	ID        int32          `json:"id" db:"id"`
	Name      sql.NullString `json:"name,omitempty" db:"name"`
	ShortName string         `json:"short_name" db:"short_name"`
	Region    sql.NullString `json:"region,omitempty" db:"region"`
	LogoURL   sql.NullString `json:"logo_url,omitempty" db:"logo_url"`
	TeamURL   sql.NullString `json:"team_url,omitempty" db:"team_url"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" db:"updated_at"`
}

// TeamAlias records a full-name binding observed for a derived team ID.
// Two organizations hashing to the same ID show up here as conflicting
// full names; the table makes collisions visible, it does not resolve
// them.
type TeamAlias struct {
	ID       int64     `json:"id" db:"id"`
	TeamID   int32     `json:"team_id" db:"team_id"`
	FullName string    `json:"full_name" db:"full_name"`
	SeenAt   time.Time `json:"seen_at" db:"seen_at"`
}

// Player identity is a hash of (name, team short name). Two players with
// the same name under the same team tag collide onto one ID — a known
// limitation, recorded rather than solved.
type Player struct {
	ID        int32     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Match is a best-of series. EventID is nullable: a match can be scraped
// before its owning event, and a later match-stage save must never clear
// an event reference assigned by the event stage.
type Match struct {
	MatchID   int64          `json:"match_id" db:"match_id"`
	URL       sql.NullString `json:"url,omitempty" db:"url"`
	EventID   sql.NullInt64  `json:"event_id,omitempty" db:"event_id"`
	Series    sql.NullString `json:"series,omitempty" db:"series"`
	Date      sql.NullString `json:"date,omitempty" db:"date"`
	Time      sql.NullString `json:"time,omitempty" db:"time"`
	Patch     sql.NullString `json:"patch,omitempty" db:"patch"`
	Picks     sql.NullString `json:"picks,omitempty" db:"picks"` // JSON array, source order
	Bans      sql.NullString `json:"bans,omitempty" db:"bans"`   // JSON array, source order
	Decider   sql.NullString `json:"decider,omitempty" db:"decider"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" db:"updated_at"`
}

// MatchTeam links a match to one of its two teams with the series score.
type MatchTeam struct {
	ID       int64          `json:"id" db:"id"`
	MatchID  int64          `json:"match_id" db:"match_id"`
	TeamID   int32          `json:"team_id" db:"team_id"`
	Score    sql.NullInt32  `json:"score,omitempty" db:"score"`
	IsWinner sql.NullBool   `json:"is_winner,omitempty" db:"is_winner"`
	Picks    sql.NullString `json:"picks,omitempty" db:"picks"`
	Bans     sql.NullString `json:"bans,omitempty" db:"bans"`
}

// Game is a single map within a match.
type Game struct {
	GameID    int64          `json:"game_id" db:"game_id"`
	MatchID   int64          `json:"match_id" db:"match_id"`
	URL       sql.NullString `json:"url,omitempty" db:"url"`
	Map       sql.NullString `json:"map,omitempty" db:"map"`
	Pick      sql.NullInt32  `json:"pick,omitempty" db:"pick"` // team that picked the map
	Win       sql.NullInt32  `json:"win,omitempty" db:"win"`   // team that won the map
	Duration  sql.NullString `json:"duration,omitempty" db:"duration"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" db:"updated_at"`
}

// GameScore holds one team's final/attack/defend round counts for a game.
type GameScore struct {
	ID      int64         `json:"id" db:"id"`
	GameID  int64         `json:"game_id" db:"game_id"`
	TeamID  int32         `json:"team_id" db:"team_id"`
	Score   sql.NullInt32 `json:"score,omitempty" db:"score"`
	TScore  sql.NullInt32 `json:"t_score,omitempty" db:"t_score"`
	CTScore sql.NullInt32 `json:"ct_score,omitempty" db:"ct_score"`
}

// EconomyStats is the per-team buy-type breakdown for a game. Eco figures
// are stored post-correction: the source counts the two pistol rounds of
// each half inside the "eco" bucket, so eco_played has 2 subtracted and
// eco_won has the pistol wins subtracted.
type EconomyStats struct {
	ID            int64         `json:"id" db:"id"`
	GameID        int64         `json:"game_id" db:"game_id"`
	TeamID        int32         `json:"team_id" db:"team_id"`
	Pistol        sql.NullInt32 `json:"pistol,omitempty" db:"pistol"`
	EcoPlayed     sql.NullInt32 `json:"eco_played,omitempty" db:"eco_played"`
	EcoWon        sql.NullInt32 `json:"eco_won,omitempty" db:"eco_won"`
	SemiEcoPlayed sql.NullInt32 `json:"semi_eco_played,omitempty" db:"semi_eco_played"`
	SemiEcoWon    sql.NullInt32 `json:"semi_eco_won,omitempty" db:"semi_eco_won"`
	SemiBuyPlayed sql.NullInt32 `json:"semi_buy_played,omitempty" db:"semi_buy_played"`
	SemiBuyWon    sql.NullInt32 `json:"semi_buy_won,omitempty" db:"semi_buy_won"`
	FullBuyPlayed sql.NullInt32 `json:"full_buy_played,omitempty" db:"full_buy_played"`
	FullBuyWon    sql.NullInt32 `json:"full_buy_won,omitempty" db:"full_buy_won"`
}

// RoundHistory is one round of a game. Winner is null when neither marker
// square carried the winner state class.
type RoundHistory struct {
	ID          int64          `json:"id" db:"id"`
	GameID      int64          `json:"game_id" db:"game_id"`
	RoundNumber int            `json:"round_number" db:"round_number"`
	Winner      sql.NullInt32  `json:"winner,omitempty" db:"winner"`
	Score       sql.NullString `json:"score,omitempty" db:"score"`
	WinType     sql.NullString `json:"win_type,omitempty" db:"win_type"`
}

// PlayerStats is the full per-player per-side scoreboard for one game.
// Every stat is nullable: the source renders a non-breaking space where
// it has no data.
type PlayerStats struct {
	ID           int64          `json:"id" db:"id"`
	GameID       int64          `json:"game_id" db:"game_id"`
	PlayerID     int32          `json:"player_id" db:"player_id"`
	TeamID       sql.NullInt32  `json:"team_id,omitempty" db:"team_id"`
	AgentName    sql.NullString `json:"agent_name,omitempty" db:"agent_name"`
	AgentIconURL sql.NullString `json:"agent_icon_url,omitempty" db:"agent_icon_url"`

	RatioBoth sql.NullFloat64 `json:"ratio_both,omitempty" db:"ratio_both"`
	RatioT    sql.NullFloat64 `json:"ratio_t,omitempty" db:"ratio_t"`
	RatioCT   sql.NullFloat64 `json:"ratio_ct,omitempty" db:"ratio_ct"`

	ACSBoth sql.NullInt32 `json:"acs_both,omitempty" db:"acs_both"`
	ACST    sql.NullInt32 `json:"acs_t,omitempty" db:"acs_t"`
	ACSCT   sql.NullInt32 `json:"acs_ct,omitempty" db:"acs_ct"`

	KBoth sql.NullInt32 `json:"k_both,omitempty" db:"k_both"`
	KT    sql.NullInt32 `json:"k_t,omitempty" db:"k_t"`
	KCT   sql.NullInt32 `json:"k_ct,omitempty" db:"k_ct"`

	DBoth sql.NullInt32 `json:"d_both,omitempty" db:"d_both"`
	DT    sql.NullInt32 `json:"d_t,omitempty" db:"d_t"`
	DCT   sql.NullInt32 `json:"d_ct,omitempty" db:"d_ct"`

	ABoth sql.NullInt32 `json:"a_both,omitempty" db:"a_both"`
	AT    sql.NullInt32 `json:"a_t,omitempty" db:"a_t"`
	ACT   sql.NullInt32 `json:"a_ct,omitempty" db:"a_ct"`

	KDDiffBoth sql.NullInt32 `json:"kddiff_both,omitempty" db:"kddiff_both"`
	KDDiffT    sql.NullInt32 `json:"kddiff_t,omitempty" db:"kddiff_t"`
	KDDiffCT   sql.NullInt32 `json:"kddiff_ct,omitempty" db:"kddiff_ct"`

	KASTBoth sql.NullFloat64 `json:"kast_both,omitempty" db:"kast_both"`
	KASTT    sql.NullFloat64 `json:"kast_t,omitempty" db:"kast_t"`
	KASTCT   sql.NullFloat64 `json:"kast_ct,omitempty" db:"kast_ct"`

	ADRBoth sql.NullFloat64 `json:"adr_both,omitempty" db:"adr_both"`
	ADRT    sql.NullFloat64 `json:"adr_t,omitempty" db:"adr_t"`
	ADRCT   sql.NullFloat64 `json:"adr_ct,omitempty" db:"adr_ct"`

	HSBoth sql.NullFloat64 `json:"hs_both,omitempty" db:"hs_both"`
	HST    sql.NullFloat64 `json:"hs_t,omitempty" db:"hs_t"`
	HSCT   sql.NullFloat64 `json:"hs_ct,omitempty" db:"hs_ct"`

	FKBoth sql.NullInt32 `json:"fk_both,omitempty" db:"fk_both"`
	FKT    sql.NullInt32 `json:"fk_t,omitempty" db:"fk_t"`
	FKCT   sql.NullInt32 `json:"fk_ct,omitempty" db:"fk_ct"`

	FDBoth sql.NullInt32 `json:"fd_both,omitempty" db:"fd_both"`
	FDT    sql.NullInt32 `json:"fd_t,omitempty" db:"fd_t"`
	FDCT   sql.NullInt32 `json:"fd_ct,omitempty" db:"fd_ct"`

	FKDDiffBoth sql.NullInt32 `json:"fkddiff_both,omitempty" db:"fkddiff_both"`
	FKDDiffT    sql.NullInt32 `json:"fkddiff_t,omitempty" db:"fkddiff_t"`
	FKDDiffCT   sql.NullInt32 `json:"fkddiff_ct,omitempty" db:"fkddiff_ct"`

	Multikills2K sql.NullInt32 `json:"multikills_2k,omitempty" db:"multikills_2k"`
	Multikills3K sql.NullInt32 `json:"multikills_3k,omitempty" db:"multikills_3k"`
	Multikills4K sql.NullInt32 `json:"multikills_4k,omitempty" db:"multikills_4k"`
	Multikills5K sql.NullInt32 `json:"multikills_5k,omitempty" db:"multikills_5k"`

	Clutches1v1 sql.NullInt32 `json:"clutches_1v1,omitempty" db:"clutches_1v1"`
	Clutches1v2 sql.NullInt32 `json:"clutches_1v2,omitempty" db:"clutches_1v2"`
	Clutches1v3 sql.NullInt32 `json:"clutches_1v3,omitempty" db:"clutches_1v3"`
	Clutches1v4 sql.NullInt32 `json:"clutches_1v4,omitempty" db:"clutches_1v4"`
	Clutches1v5 sql.NullInt32 `json:"clutches_1v5,omitempty" db:"clutches_1v5"`

	// Not side-split on the source.
	Eco    sql.NullInt32 `json:"eco,omitempty" db:"eco"`
	Plant  sql.NullInt32 `json:"plant,omitempty" db:"plant"`
	Defuse sql.NullInt32 `json:"defuse,omitempty" db:"defuse"`
}
