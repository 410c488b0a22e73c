package scrape

// Parsed output of the four stages. These stay close to the markup; the
// reconcilers map them onto store rows.

// Event is one tournament block from a season page.
type Event struct {
	ID        int64  `json:"id"`
	URL       string `json:"url"`
	Title     string `json:"title"`
	Status    string `json:"status"`
	PrizePool *int64 `json:"prize_pool"`
	StartDate string `json:"start_date"` // ISO date or empty
	EndDate   string `json:"end_date"`
	Region    string `json:"region"`
	EventName string `json:"event_name"`
	Location  string `json:"location"`
	Thumbnail string `json:"thumbnail"`
}

// MatchStub is the bare reference harvested from an event's completed
// matches listing. Deep parsing is deferred to the match stage.
type MatchStub struct {
	MatchID int64  `json:"match_id"`
	URL     string `json:"url"`
	EventID int64  `json:"event_id"`
}

// TeamInfo is one of the two participants in a match, in visual slot
// order.
type TeamInfo struct {
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	Region    string `json:"region"`
	LogoURL   string `json:"logo_url"`
	TeamURL   string `json:"team_url"`
	Score     int    `json:"score"`
	IsWinner  bool   `json:"is_winner"`
}

// PickBan is one entry of the map selection sequence.
type PickBan struct {
	Team string `json:"team"`
	Map  string `json:"map"`
}

// Match is the full match-stage output. Showmatch marks a series the
// pipeline must drop entirely.
type Match struct {
	MatchID   int64      `json:"match_id"`
	URL       string     `json:"url"`
	Series    string     `json:"series"`
	Date      string     `json:"date"`
	Time      string     `json:"time"`
	Patch     string     `json:"patch"`
	Picks     []PickBan  `json:"picks"`
	Bans      []PickBan  `json:"bans"`
	Decider   string     `json:"decider"`
	Teams     []TeamInfo `json:"teams"`
	Showmatch bool       `json:"-"`
}

// TeamScore is one team's final/attack/defend round counts for a game.
type TeamScore struct {
	Score int `json:"score"`
	T     int `json:"t"`
	CT    int `json:"ct"`
}

// GameStub is a game reference with the shallow per-map data visible on
// the match page. Scores are keyed by the synthetic team ID so no raw
// name string leaks into join keys.
type GameStub struct {
	GameID   int64               `json:"game_id"`
	MatchID  int64               `json:"match_id"`
	URL      string              `json:"url"`
	Map      string              `json:"map"`
	Pick     *int32              `json:"pick"` // team that picked the map
	Win      *int32              `json:"win"`  // team that won the map
	Duration string              `json:"duration"`
	Scores   map[int32]TeamScore `json:"scores"`
}

// GameTeams carries the two reconciled team identities into the game
// stage, in match slot order. Positional markup (first/second square,
// mod-1/mod-2 classes) resolves against these.
type GameTeams struct {
	Team1ID    int32  `json:"team1_id"`
	Team2ID    int32  `json:"team2_id"`
	Team1Short string `json:"team1_short"`
	Team2Short string `json:"team2_short"`
}

// Round is one entry of a game's round history. Winner is nil when
// neither marker square carried the winner class.
type Round struct {
	RoundNumber int    `json:"round_number"`
	Winner      *int32 `json:"winner"`
	Score       string `json:"score"` // cumulative score snapshot, e.g. "5-3"
	WinType     string `json:"win_type"`
}

// EconomyLine is a team's buy-type breakdown, already corrected for the
// pistol rounds the source folds into the eco bucket.
type EconomyLine struct {
	Pistol        *int `json:"pistol"`
	EcoPlayed     int  `json:"eco_played"`
	EcoWon        int  `json:"eco_won"`
	SemiEcoPlayed int  `json:"semi_eco_played"`
	SemiEcoWon    int  `json:"semi_eco_won"`
	SemiBuyPlayed int  `json:"semi_buy_played"`
	SemiBuyWon    int  `json:"semi_buy_won"`
	FullBuyPlayed int  `json:"full_buy_played"`
	FullBuyWon    int  `json:"full_buy_won"`
}

// PlayerLine is one scoreboard row merged across the overview and
// performance views, joined on (name, team short name).
type PlayerLine struct {
	Name         string    `json:"name"`
	TeamShort    string    `json:"team_short_name"`
	AgentName    string    `json:"agent_name"`
	AgentIconURL string    `json:"agent_icon_url"`
	Stats        StatsLine `json:"stats"`
}

// StatsLine holds every per-player figure. Pointers because the source
// renders a blank or non-breaking space where it has no data.
type StatsLine struct {
	RatioBoth *float64 `json:"ratio_both"`
	RatioT    *float64 `json:"ratio_t"`
	RatioCT   *float64 `json:"ratio_ct"`

	ACSBoth *int `json:"acs_both"`
	ACST    *int `json:"acs_t"`
	ACSCT   *int `json:"acs_ct"`

	KBoth *int `json:"k_both"`
	KT    *int `json:"k_t"`
	KCT   *int `json:"k_ct"`

	DBoth *int `json:"d_both"`
	DT    *int `json:"d_t"`
	DCT   *int `json:"d_ct"`

	ABoth *int `json:"a_both"`
	AT    *int `json:"a_t"`
	ACT   *int `json:"a_ct"`

	KDDiffBoth *int `json:"kddiff_both"`
	KDDiffT    *int `json:"kddiff_t"`
	KDDiffCT   *int `json:"kddiff_ct"`

	KASTBoth *float64 `json:"kast_both"`
	KASTT    *float64 `json:"kast_t"`
	KASTCT   *float64 `json:"kast_ct"`

	ADRBoth *float64 `json:"adr_both"`
	ADRT    *float64 `json:"adr_t"`
	ADRCT   *float64 `json:"adr_ct"`

	HSBoth *float64 `json:"hs_both"`
	HST    *float64 `json:"hs_t"`
	HSCT   *float64 `json:"hs_ct"`

	FKBoth *int `json:"fk_both"`
	FKT    *int `json:"fk_t"`
	FKCT   *int `json:"fk_ct"`

	FDBoth *int `json:"fd_both"`
	FDT    *int `json:"fd_t"`
	FDCT   *int `json:"fd_ct"`

	FKDDiffBoth *int `json:"fkddiff_both"`
	FKDDiffT    *int `json:"fkddiff_t"`
	FKDDiffCT   *int `json:"fkddiff_ct"`

	Multikills2K *int `json:"multikills_2k"`
	Multikills3K *int `json:"multikills_3k"`
	Multikills4K *int `json:"multikills_4k"`
	Multikills5K *int `json:"multikills_5k"`

	Clutches1v1 *int `json:"clutches_1v1"`
	Clutches1v2 *int `json:"clutches_1v2"`
	Clutches1v3 *int `json:"clutches_1v3"`
	Clutches1v4 *int `json:"clutches_1v4"`
	Clutches1v5 *int `json:"clutches_1v5"`

	Eco    *int `json:"eco"`
	Plant  *int `json:"plant"`
	Defuse *int `json:"defuse"`
}

// GameDetail is the merged game-stage output: three views of the same
// game combined into one record.
type GameDetail struct {
	GameID  int64                  `json:"game_id"`
	MatchID int64                  `json:"match_id"`
	Teams   GameTeams              `json:"team_ids"`
	Players []PlayerLine           `json:"players"`
	Rounds  []Round                `json:"round_history"`
	Economy map[string]EconomyLine `json:"economy_stats"` // keyed by team short name
}
