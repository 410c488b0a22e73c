package scrape

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sentinel/vlrstats/internal/store"
)

func TestFindGameBlock(t *testing.T) {
	doc := docFrom(t, `<div>
		<div class="vm-stats-game" data-game-id="all"></div>
		<div class="vm-stats-game" data-game-id="171001"><span id="marker"></span></div>
		<div class="vm-stats-game" data-game-id="171002"></div>
	</div>`)

	sel := findGameBlock(doc, 171001)
	require.NotNil(t, sel)
	require.Equal(t, 1, sel.Find("#marker").Length())

	require.Nil(t, findGameBlock(doc, 999999))
}

func TestParseOverview(t *testing.T) {
	statCell := func(both, t, ct string) string {
		return `<td class="mod-stat"><span class="side mod-both">` + both +
			`</span><span class="side mod-t">` + t +
			`</span><span class="side mod-ct">` + ct + `</span></td>`
	}

	html := `<div class="vm-stats-game" data-game-id="171001"><table class="wf-table-inset">` +
		`<tr><th>Player</th></tr>` +
		`<tr><td class="mod-player"><div class="text-of">Boaster</div><div class="ge-text-light">FNC</div></td>` +
		`<td class="mod-agent"><img title="Sova" src="/img/vlr/game/agents/sova.png"></td>` +
		statCell("1.24", "1.10", "1.38") + // rating
		statCell("250", "240", "260") + // ACS
		statCell("20", "11", "9") + // kills
		statCell("14", "8", "6") + // deaths
		statCell("7", "4", "3") + // assists
		statCell("+6", "+3", "+3") + // K-D
		statCell("72%", "70%", "74%") + // KAST
		statCell("155.3", "150.0", "161.0") + // ADR
		statCell("25%", "22%", "28%") + // HS%
		statCell("3", "2", "1") + // first kills
		statCell("1", "1", "0") + // first deaths
		statCell("+2", "+1", "&#160;") + // FK-FD
		`</tr></table></div>`

	gameSel := findGameBlock(docFrom(t, html), 171001)
	require.NotNil(t, gameSel)

	players := parseOverview(gameSel, "https://www.vlr.gg")
	require.Len(t, players, 1, "the header row carries no stat cells")

	p := players[0]
	require.Equal(t, "Boaster", p.Name)
	require.Equal(t, "FNC", p.TeamShort)
	require.Equal(t, "Sova", p.AgentName)
	require.Equal(t, "https://www.vlr.gg/img/vlr/game/agents/sova.png", p.AgentIconURL)

	require.InDelta(t, 1.24, *p.Stats.RatioBoth, 1e-9)
	require.InDelta(t, 1.38, *p.Stats.RatioCT, 1e-9)
	require.Equal(t, 250, *p.Stats.ACSBoth)
	require.Equal(t, 20, *p.Stats.KBoth)
	require.Equal(t, 14, *p.Stats.DBoth)
	require.Equal(t, 7, *p.Stats.ABoth)
	require.Equal(t, 6, *p.Stats.KDDiffBoth)
	require.InDelta(t, 0.72, *p.Stats.KASTBoth, 1e-9)
	require.InDelta(t, 155.3, *p.Stats.ADRBoth, 1e-9)
	require.InDelta(t, 0.25, *p.Stats.HSBoth, 1e-9)
	require.Equal(t, 3, *p.Stats.FKBoth)
	require.Equal(t, 1, *p.Stats.FDBoth)
	require.Equal(t, 2, *p.Stats.FKDDiffBoth)
	require.Nil(t, p.Stats.FKDDiffCT, "non-breaking space means no data")
}

func TestParseRoundHistory(t *testing.T) {
	html := `<div class="vm-stats-game" data-game-id="171001">
		<div class="vlr-rounds-row-col"><div class="team">FNC</div></div>
		<div class="vlr-rounds-row-col" title="1-0">
			<div class="rnd-num">1</div>
			<div class="rnd-sq mod-win"><img src="/img/vlr/game/round/elim.webp"></div>
			<div class="rnd-sq"></div>
		</div>
		<div class="vlr-rounds-row-col" title="1-1">
			<div class="rnd-num">2</div>
			<div class="rnd-sq"></div>
			<div class="rnd-sq mod-win"><img src="/img/vlr/game/round/defuse.webp"></div>
		</div>
		<div class="vlr-rounds-row-col" title="2-1">
			<div class="rnd-num">3</div>
			<div class="rnd-sq"></div>
			<div class="rnd-sq"></div>
		</div>
		<div class="vlr-rounds-row-col mod-spacing" title="x"></div>
		<div class="vlr-rounds-row-col"></div>
	</div>`

	teams := GameTeams{
		Team1ID:    store.TeamID("FNC"),
		Team2ID:    store.TeamID("EG"),
		Team1Short: "FNC",
		Team2Short: "EG",
	}

	gameSel := findGameBlock(docFrom(t, html), 171001)
	require.NotNil(t, gameSel)

	rounds := parseRoundHistory(gameSel, teams)
	require.Len(t, rounds, 3, "labels, spacers and untitled columns are skipped")

	require.Equal(t, 1, rounds[0].RoundNumber)
	require.Equal(t, "1-0", rounds[0].Score)
	require.NotNil(t, rounds[0].Winner)
	require.Equal(t, teams.Team1ID, *rounds[0].Winner)
	require.Equal(t, "elim", rounds[0].WinType)

	require.Equal(t, 2, rounds[1].RoundNumber)
	require.NotNil(t, rounds[1].Winner)
	require.Equal(t, teams.Team2ID, *rounds[1].Winner)
	require.Equal(t, "defuse", rounds[1].WinType)

	require.Equal(t, 3, rounds[2].RoundNumber)
	require.Nil(t, rounds[2].Winner, "a round with no win marker stays unattributed")
	require.Equal(t, "unknown", rounds[2].WinType)
}

func TestMergePerformanceRows(t *testing.T) {
	sq := func(text string) string { return `<td class="stats-sq">` + text + `</td>` }

	html := `<table class="mod-adv-stats">
		<tr><th>header</th></tr>
		<tr><td class="team"><div>Boaster<div>FNC</div></div></td>` +
		sq("") + // agent column
		sq("3") + sq("1") + sq("") + sq("") + // 2K..5K
		sq(`2<div class="tooltip">round 7</div>`) + sq("") + sq("1") + sq("") + sq("") + // 1v1..1v5
		sq("4") + sq("5") + sq("1") + // eco, plant, defuse
		`</tr></table>`

	table := docFrom(t, html).Find(".mod-adv-stats")
	players := []PlayerLine{
		{Name: "Boaster", TeamShort: "FNC"},
		{Name: "Derke", TeamShort: "FNC"},
	}

	mergePerformanceRows(table, players)

	p := players[0]
	require.Equal(t, 3, *p.Stats.Multikills2K)
	require.Equal(t, 1, *p.Stats.Multikills3K)
	require.Nil(t, p.Stats.Multikills4K)
	require.Equal(t, 2, *p.Stats.Clutches1v1, "tooltip markup inside the cell is ignored")
	require.Equal(t, 1, *p.Stats.Clutches1v3)
	require.Equal(t, 4, *p.Stats.Eco)
	require.Equal(t, 5, *p.Stats.Plant)
	require.Equal(t, 1, *p.Stats.Defuse)

	require.Nil(t, players[1].Stats.Multikills2K, "rows only merge into their own player")
}

func TestParseEconomyRows(t *testing.T) {
	html := `<table class="mod-econ">
		<tr><th>header</th></tr>
		<tr><td class="team">FNC</td>
			<td class="stats-sq">2</td>
			<td class="stats-sq">5 (3)<div class="tooltip">rounds</div></td>
			<td class="stats-sq">3 (1)</td>
			<td class="stats-sq">2 (2)</td>
			<td class="stats-sq">14 (8)</td>
		</tr>
		<tr><td class="team">EG</td>
			<td class="stats-sq">0</td>
			<td class="stats-sq">1 (0)</td>
			<td class="stats-sq">4 (1)</td>
			<td class="stats-sq">3 (0)</td>
			<td class="stats-sq">12 (5)</td>
		</tr>
	</table>`

	economy := make(map[string]EconomyLine)
	parseEconomyRows(docFrom(t, html).Find(".mod-econ"), economy)

	require.Len(t, economy, 2)

	fnc := economy["FNC"]
	require.Equal(t, 2, *fnc.Pistol)
	require.Equal(t, 3, fnc.EcoPlayed, "the two pistol rounds come out of the eco bucket")
	require.Equal(t, 1, fnc.EcoWon, "pistol wins come out of eco wins")
	require.Equal(t, 3, fnc.SemiEcoPlayed)
	require.Equal(t, 1, fnc.SemiEcoWon)
	require.Equal(t, 2, fnc.SemiBuyPlayed)
	require.Equal(t, 2, fnc.SemiBuyWon)
	require.Equal(t, 14, fnc.FullBuyPlayed)
	require.Equal(t, 8, fnc.FullBuyWon)

	eg := economy["EG"]
	require.Equal(t, 0, *eg.Pistol)
	require.Equal(t, 0, eg.EcoPlayed, "corrections never go negative")
	require.Equal(t, 0, eg.EcoWon)
}

func TestClampNonNegative(t *testing.T) {
	require.Equal(t, 0, clampNonNegative(-3))
	require.Equal(t, 0, clampNonNegative(0))
	require.Equal(t, 4, clampNonNegative(4))
}
