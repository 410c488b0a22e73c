package store

// Schema for the ten scraper tables plus the alias table. Primary keys are
// source-assigned (events, matches, games), derived from names (teams,
// players) or auto-incrementing (the join/fact tables). The unique
// constraints on the fact tables are what make every save an idempotent
// insert-or-replace by natural key.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS events (
		id         BIGINT PRIMARY KEY,
		url        TEXT,
		title      TEXT,
		status     TEXT,
		prize_pool BIGINT,
		start_date DATE,
		end_date   DATE,
		region     TEXT,
		event_name TEXT,
		location   TEXT,
		thumbnail  TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS teams (
		id         INTEGER PRIMARY KEY,
		name       TEXT,
		short_name TEXT NOT NULL,
		region     TEXT,
		logo_url   TEXT,
		team_url   TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS team_aliases (
		id        BIGSERIAL PRIMARY KEY,
		team_id   INTEGER NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
		full_name TEXT NOT NULL,
		seen_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (team_id, full_name)
	)`,

	`CREATE TABLE IF NOT EXISTS players (
		id         INTEGER PRIMARY KEY,
		name       TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS matches (
		match_id   BIGINT PRIMARY KEY,
		url        TEXT,
		event_id   BIGINT REFERENCES events(id),
		series     TEXT,
		date       TEXT,
		time       TEXT,
		patch      TEXT,
		picks      TEXT,
		bans       TEXT,
		decider    TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS match_teams (
		id        BIGSERIAL PRIMARY KEY,
		match_id  BIGINT NOT NULL REFERENCES matches(match_id) ON DELETE CASCADE,
		team_id   INTEGER NOT NULL REFERENCES teams(id),
		score     INTEGER,
		is_winner BOOLEAN,
		picks     TEXT,
		bans      TEXT,
		UNIQUE (match_id, team_id)
	)`,

	`CREATE TABLE IF NOT EXISTS games (
		game_id    BIGINT PRIMARY KEY,
		match_id   BIGINT NOT NULL REFERENCES matches(match_id) ON DELETE CASCADE,
		url        TEXT,
		map        TEXT,
		pick       INTEGER REFERENCES teams(id),
		win        INTEGER REFERENCES teams(id),
		duration   TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS game_scores (
		id       BIGSERIAL PRIMARY KEY,
		game_id  BIGINT NOT NULL REFERENCES games(game_id) ON DELETE CASCADE,
		team_id  INTEGER NOT NULL REFERENCES teams(id),
		score    INTEGER,
		t_score  INTEGER,
		ct_score INTEGER,
		UNIQUE (game_id, team_id)
	)`,

	`CREATE TABLE IF NOT EXISTS economy_stats (
		id              BIGSERIAL PRIMARY KEY,
		game_id         BIGINT NOT NULL REFERENCES games(game_id) ON DELETE CASCADE,
		team_id         INTEGER NOT NULL REFERENCES teams(id),
		pistol          INTEGER,
		eco_played      INTEGER,
		eco_won         INTEGER,
		semi_eco_played INTEGER,
		semi_eco_won    INTEGER,
		semi_buy_played INTEGER,
		semi_buy_won    INTEGER,
		full_buy_played INTEGER,
		full_buy_won    INTEGER,
		UNIQUE (game_id, team_id)
	)`,

	`CREATE TABLE IF NOT EXISTS round_history (
		id           BIGSERIAL PRIMARY KEY,
		game_id      BIGINT NOT NULL REFERENCES games(game_id) ON DELETE CASCADE,
		round_number INTEGER NOT NULL,
		winner       INTEGER REFERENCES teams(id),
		score        TEXT,
		win_type     TEXT,
		UNIQUE (game_id, round_number)
	)`,

	`CREATE TABLE IF NOT EXISTS player_stats (
		id             BIGSERIAL PRIMARY KEY,
		game_id        BIGINT NOT NULL REFERENCES games(game_id) ON DELETE CASCADE,
		player_id      INTEGER NOT NULL REFERENCES players(id),
		team_id        INTEGER REFERENCES teams(id),
		agent_name     TEXT,
		agent_icon_url TEXT,
		ratio_both DOUBLE PRECISION, ratio_t DOUBLE PRECISION, ratio_ct DOUBLE PRECISION,
		acs_both INTEGER, acs_t INTEGER, acs_ct INTEGER,
		k_both INTEGER, k_t INTEGER, k_ct INTEGER,
		d_both INTEGER, d_t INTEGER, d_ct INTEGER,
		a_both INTEGER, a_t INTEGER, a_ct INTEGER,
		kddiff_both INTEGER, kddiff_t INTEGER, kddiff_ct INTEGER,
		kast_both DOUBLE PRECISION, kast_t DOUBLE PRECISION, kast_ct DOUBLE PRECISION,
		adr_both DOUBLE PRECISION, adr_t DOUBLE PRECISION, adr_ct DOUBLE PRECISION,
		hs_both DOUBLE PRECISION, hs_t DOUBLE PRECISION, hs_ct DOUBLE PRECISION,
		fk_both INTEGER, fk_t INTEGER, fk_ct INTEGER,
		fd_both INTEGER, fd_t INTEGER, fd_ct INTEGER,
		fkddiff_both INTEGER, fkddiff_t INTEGER, fkddiff_ct INTEGER,
		multikills_2k INTEGER, multikills_3k INTEGER, multikills_4k INTEGER, multikills_5k INTEGER,
		clutches_1v1 INTEGER, clutches_1v2 INTEGER, clutches_1v3 INTEGER,
		clutches_1v4 INTEGER, clutches_1v5 INTEGER,
		eco INTEGER, plant INTEGER, defuse INTEGER,
		UNIQUE (game_id, player_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_matches_event ON matches(event_id)`,
	`CREATE INDEX IF NOT EXISTS idx_games_match ON games(match_id)`,
	`CREATE INDEX IF NOT EXISTS idx_player_stats_player ON player_stats(player_id)`,
	`CREATE INDEX IF NOT EXISTS idx_player_stats_team ON player_stats(team_id)`,
}

const dropStatements = `
	DROP TABLE IF EXISTS player_stats, round_history, economy_stats,
		game_scores, games, match_teams, matches, players,
		team_aliases, teams, events CASCADE
`
