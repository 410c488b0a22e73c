package scrape

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sentinel/vlrstats/internal/store"
)

func TestParsePickBanNote(t *testing.T) {
	note := "FNC ban Pearl; FNC ban Fracture; FNC pick Lotus; EG pick Split; FNC pick Bind; EG pick Ascent; Haven remains"

	picks, bans, decider := ParsePickBanNote(note)

	require.Equal(t, []PickBan{
		{Team: "FNC", Map: "Lotus"},
		{Team: "EG", Map: "Split"},
		{Team: "FNC", Map: "Bind"},
		{Team: "EG", Map: "Ascent"},
	}, picks)
	require.Equal(t, []PickBan{
		{Team: "FNC", Map: "Pearl"},
		{Team: "FNC", Map: "Fracture"},
	}, bans)
	require.Equal(t, "Haven", decider)
}

func TestParsePickBanNoteMalformed(t *testing.T) {
	picks, bans, decider := ParsePickBanNote("FNC ban; garbage; EG pick Breeze")

	require.Empty(t, bans)
	require.Equal(t, []PickBan{{Team: "EG", Map: "Breeze"}}, picks)
	require.Empty(t, decider)
}

func TestParseMapName(t *testing.T) {
	require.Equal(t, "Ascent", parseMapName("Ascent"))
	require.Equal(t, "Ascent", parseMapName("Ascent PICK"))
	require.Equal(t, "Lotus", parseMapName("Lotus 1:02:33"))
	require.Equal(t, "", parseMapName(""))
}

func TestParseTeams(t *testing.T) {
	html := `<div class="match-header-vs">
		<a class="match-header-link" href="/team/2593/fnatic">
			<img src="//owcdn.net/img/fnc.png">
			<div class="wf-title-med">Fnatic</div>
		</a>
		<div class="match-header-vs-score"><span>3</span><span>:</span><span>1</span></div>
		<a class="match-header-link" href="/team/5248/evil-geniuses">
			<img src="//owcdn.net/img/eg.png">
			<div class="wf-title-med">Evil Geniuses</div>
		</a>
	</div>`

	td, err := LoadTeamsData()
	require.NoError(t, err)

	e := &MatchExtractor{extractor: newExtractor(nil, "https://www.vlr.gg"), teams: td}
	teams := e.parseTeams(docFrom(t, html))

	require.Len(t, teams, 2)

	require.Equal(t, "Fnatic", teams[0].Name)
	require.Equal(t, "FNC", teams[0].ShortName)
	require.Equal(t, "emea", teams[0].Region)
	require.Equal(t, 3, teams[0].Score)
	require.True(t, teams[0].IsWinner)
	require.Equal(t, "https://www.vlr.gg/team/2593/fnatic", teams[0].TeamURL)

	require.Equal(t, "Evil Geniuses", teams[1].Name)
	require.Equal(t, "EG", teams[1].ShortName)
	require.Equal(t, "amer", teams[1].Region)
	require.Equal(t, 1, teams[1].Score)
	require.False(t, teams[1].IsWinner)
}

func TestParseGames(t *testing.T) {
	html := `<div>
		<div class="vm-stats-game" data-game-id="all"></div>
		<div class="vm-stats-game" data-game-id="171001">
			<div class="map">Lotus PICK</div>
			<div class="map-duration">53:12</div>
			<div class="picked mod-2"></div>
			<div class="team">
				<div class="score mod-win">13</div>
				<span class="mod-t">7</span><span class="mod-ct">6</span>
			</div>
			<div class="team">
				<div class="score">8</div>
				<span class="mod-t">3</span><span class="mod-ct">5</span>
			</div>
		</div>
	</div>`

	td, err := LoadTeamsData()
	require.NoError(t, err)

	e := &MatchExtractor{extractor: newExtractor(nil, "https://www.vlr.gg"), teams: td}
	teams := []TeamInfo{{ShortName: "FNC"}, {ShortName: "EG"}}

	games := e.parseGames(docFrom(t, html), 429616, teams)

	require.Len(t, games, 1, "the aggregate block is skipped")
	game := games[0]

	require.Equal(t, int64(171001), game.GameID)
	require.Equal(t, int64(429616), game.MatchID)
	require.Equal(t, "https://www.vlr.gg/429616?game=171001", game.URL)
	require.Equal(t, "Lotus", game.Map)
	require.Equal(t, "53:12", game.Duration)

	fnc := store.TeamID("FNC")
	eg := store.TeamID("EG")

	require.NotNil(t, game.Pick)
	require.Equal(t, eg, *game.Pick, "mod-2 attributes the pick to the second slot")
	require.NotNil(t, game.Win)
	require.Equal(t, fnc, *game.Win, "the first score cell carries the win marker")

	require.Equal(t, TeamScore{Score: 13, T: 7, CT: 6}, game.Scores[fnc])
	require.Equal(t, TeamScore{Score: 8, T: 3, CT: 5}, game.Scores[eg])
}

func TestShowmatchDetection(t *testing.T) {
	// The series text decides; the check is case-insensitive.
	for _, series := range []string{"Showmatch", "showmatch", "Grand Final SHOWMATCH"} {
		require.True(t, isShowmatch(series), series)
	}
	require.False(t, isShowmatch("Playoffs: Grand Final"))
}
