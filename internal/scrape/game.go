package scrape

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sentinel/vlrstats/internal/fetch"
)

// GameExtractor collects everything known about one game: the overview
// scoreboard, the round history rendered with it, and the performance
// and economy tabs. Each tab is its own fetch, so a game costs up to
// three paced requests.
type GameExtractor struct {
	extractor
}

// NewGameExtractor creates the game stage.
func NewGameExtractor(client *fetch.Client, baseURL string) *GameExtractor {
	return &GameExtractor{extractor: newExtractor(client, baseURL)}
}

// Extract fetches and merges the three stat views of a game. A missing
// performance or economy tab degrades the record instead of failing it;
// only the overview page is mandatory.
func (e *GameExtractor) Extract(ctx context.Context, gameID, matchID int64, teams GameTeams) (*GameDetail, error) {
	baseURL := fmt.Sprintf("%s/%d?game=%d", e.baseURL, matchID, gameID)
	log.Printf("→ Scraping game stats for game %d in match %d", gameID, matchID)

	doc, err := e.get(ctx, baseURL)
	if err != nil {
		return nil, fmt.Errorf("fetching overview for game %d: %w", gameID, err)
	}

	detail := &GameDetail{
		GameID:  gameID,
		MatchID: matchID,
		Teams:   teams,
		Economy: make(map[string]EconomyLine),
	}

	gameSel := findGameBlock(doc, gameID)
	if gameSel == nil {
		return nil, fmt.Errorf("game %d not found in page %s", gameID, baseURL)
	}

	detail.Players = parseOverview(gameSel, e.baseURL)
	detail.Rounds = parseRoundHistory(gameSel, teams)

	e.parsePerformanceTab(ctx, baseURL, gameID, detail)
	e.parseEconomyTab(ctx, baseURL, gameID, detail)

	return detail, nil
}

// findGameBlock locates the stats block for one game on a page that
// renders every game of the match plus an aggregate block.
func findGameBlock(doc *goquery.Document, gameID int64) *goquery.Selection {
	sel := doc.Find(fmt.Sprintf(`.vm-stats-game[data-game-id="%d"]`, gameID))
	if sel.Length() == 0 {
		return nil
	}
	return sel.First()
}

// parseOverview reads the scoreboard: one row per player with the
// both/attack/defend split of every column.
func parseOverview(gameSel *goquery.Selection, baseURL string) []PlayerLine {
	var players []PlayerLine

	gameSel.Find(".wf-table-inset tr").Each(func(_ int, row *goquery.Selection) {
		stats := row.Find(".mod-stat")
		if stats.Length() == 0 {
			// header row
			return
		}

		player := PlayerLine{
			Name:      cleanText(row.Find(".mod-player .text-of").First()),
			TeamShort: cleanText(row.Find(".mod-player .ge-text-light").First()),
		}

		agent := row.Find(".mod-agent img").First()
		if title, ok := agent.Attr("title"); ok {
			player.AgentName = title
		}
		if src, ok := agent.Attr("src"); ok {
			player.AgentIconURL = baseURL + src
		}

		if stats.Length() >= 12 {
			player.Stats = parseScoreboardStats(stats)
		}

		players = append(players, player)
	})

	return players
}

// parseScoreboardStats reads the twelve scoreboard columns in visual
// order: rating, ACS, K, D, A, K-D, KAST, ADR, HS%, FK, FD, FK-FD.
func parseScoreboardStats(stats *goquery.Selection) StatsLine {
	intCol := func(i int, side string) *int {
		return safeInt(stats.Eq(i).Find(side).First())
	}
	floatCol := func(i int, side string) *float64 {
		return safeFloat(stats.Eq(i).Find(side).First())
	}

	return StatsLine{
		RatioBoth: floatCol(0, ".mod-both"),
		RatioT:    floatCol(0, ".mod-t"),
		RatioCT:   floatCol(0, ".mod-ct"),

		ACSBoth: intCol(1, ".mod-both"),
		ACST:    intCol(1, ".mod-t"),
		ACSCT:   intCol(1, ".mod-ct"),

		KBoth: intCol(2, ".mod-both"),
		KT:    intCol(2, ".mod-t"),
		KCT:   intCol(2, ".mod-ct"),

		DBoth: intCol(3, ".mod-both"),
		DT:    intCol(3, ".mod-t"),
		DCT:   intCol(3, ".mod-ct"),

		ABoth: intCol(4, ".mod-both"),
		AT:    intCol(4, ".mod-t"),
		ACT:   intCol(4, ".mod-ct"),

		KDDiffBoth: intCol(5, ".mod-both"),
		KDDiffT:    intCol(5, ".mod-t"),
		KDDiffCT:   intCol(5, ".mod-ct"),

		KASTBoth: floatCol(6, ".mod-both"),
		KASTT:    floatCol(6, ".mod-t"),
		KASTCT:   floatCol(6, ".mod-ct"),

		ADRBoth: floatCol(7, ".mod-both"),
		ADRT:    floatCol(7, ".mod-t"),
		ADRCT:   floatCol(7, ".mod-ct"),

		HSBoth: floatCol(8, ".mod-both"),
		HST:    floatCol(8, ".mod-t"),
		HSCT:   floatCol(8, ".mod-ct"),

		FKBoth: intCol(9, ".mod-both"),
		FKT:    intCol(9, ".mod-t"),
		FKCT:   intCol(9, ".mod-ct"),

		FDBoth: intCol(10, ".mod-both"),
		FDT:    intCol(10, ".mod-t"),
		FDCT:   intCol(10, ".mod-ct"),

		FKDDiffBoth: intCol(11, ".mod-both"),
		FKDDiffT:    intCol(11, ".mod-t"),
		FKDDiffCT:   intCol(11, ".mod-ct"),
	}
}

// parseRoundHistory reads the round timeline. Each round renders one
// marker square per team; the winner is whichever square carries the
// win class. Overtime spacers, team labels and unplayed rounds are
// skipped.
func parseRoundHistory(gameSel *goquery.Selection, teams GameTeams) []Round {
	var rounds []Round

	gameSel.Find(".vlr-rounds-row-col").Each(func(_ int, sel *goquery.Selection) {
		if sel.Find(".team").Length() > 0 {
			return
		}
		if sel.HasClass("mod-spacing") {
			return
		}
		title, ok := sel.Attr("title")
		if !ok || title == "" {
			return
		}

		round := Round{
			Score:   title,
			WinType: "unknown",
		}

		squares := sel.Find(".rnd-sq")
		if squares.Length() >= 2 {
			// Either square may carry the win marker; a round with
			// neither stays unattributed.
			if squares.Eq(0).HasClass("mod-win") {
				round.Winner = &teams.Team1ID
			} else if squares.Eq(1).HasClass("mod-win") {
				round.Winner = &teams.Team2ID
			}
		}

		if n, err := strconv.Atoi(cleanText(sel.Find(".rnd-num").First())); err == nil {
			round.RoundNumber = n
		}

		// The win-type icon file names the outcome: elim, defuse,
		// boom, time.
		if src, ok := sel.Find(".mod-win img").First().Attr("src"); ok {
			file := src[strings.LastIndex(src, "/")+1:]
			if i := strings.Index(file, "."); i > 0 {
				round.WinType = file[:i]
			}
		}

		rounds = append(rounds, round)
	})

	return rounds
}

// parsePerformanceTab merges multikill, clutch and utility counts into
// the already-parsed scoreboard rows, joined on player name and team.
func (e *GameExtractor) parsePerformanceTab(ctx context.Context, baseURL string, gameID int64, detail *GameDetail) {
	doc, err := e.get(ctx, baseURL+"&tab=performance")
	if err != nil {
		log.Printf("⚠️  Failed to fetch performance tab for game %d: %v", gameID, err)
		return
	}

	gameSel := findGameBlock(doc, gameID)
	if gameSel == nil {
		return
	}

	table := gameSel.Find(".mod-adv-stats").First()
	if table.Length() == 0 {
		return
	}

	mergePerformanceRows(table, detail.Players)
}

func mergePerformanceRows(table *goquery.Selection, players []PlayerLine) {
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		nameCell := row.Find(".team > div").First()
		name := firstTextContent(nameCell)
		if name == "" {
			return
		}
		teamShort := cleanText(nameCell.Children().First())

		stats := row.Find(".stats-sq")
		if stats.Length() < 13 {
			return
		}

		for i := range players {
			p := &players[i]
			if p.Name != name || p.TeamShort != teamShort {
				continue
			}

			p.Stats.Multikills2K = safeIntFromContent(stats.Eq(1))
			p.Stats.Multikills3K = safeIntFromContent(stats.Eq(2))
			p.Stats.Multikills4K = safeIntFromContent(stats.Eq(3))
			p.Stats.Multikills5K = safeIntFromContent(stats.Eq(4))
			p.Stats.Clutches1v1 = safeIntFromContent(stats.Eq(5))
			p.Stats.Clutches1v2 = safeIntFromContent(stats.Eq(6))
			p.Stats.Clutches1v3 = safeIntFromContent(stats.Eq(7))
			p.Stats.Clutches1v4 = safeIntFromContent(stats.Eq(8))
			p.Stats.Clutches1v5 = safeIntFromContent(stats.Eq(9))
			p.Stats.Eco = safeIntFromContent(stats.Eq(10))
			p.Stats.Plant = safeIntFromContent(stats.Eq(11))
			p.Stats.Defuse = safeIntFromContent(stats.Eq(12))
			break
		}
	})
}

// parseEconomyTab reads each team's buy-type rows. The source counts
// the two pistol rounds inside the eco bucket, so eco figures are
// corrected before they leave this package: pistols are subtracted
// from eco played, and pistol wins from eco wins.
func (e *GameExtractor) parseEconomyTab(ctx context.Context, baseURL string, gameID int64, detail *GameDetail) {
	doc, err := e.get(ctx, baseURL+"&tab=economy")
	if err != nil {
		log.Printf("⚠️  Failed to fetch economy tab for game %d: %v", gameID, err)
		return
	}

	gameSel := findGameBlock(doc, gameID)
	if gameSel == nil {
		return
	}

	table := gameSel.Find(".mod-econ").First()
	if table.Length() == 0 {
		return
	}

	parseEconomyRows(table, detail.Economy)
}

func parseEconomyRows(table *goquery.Selection, economy map[string]EconomyLine) {
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		teamCell := row.Find(".team").First()
		if teamCell.Length() == 0 {
			return
		}
		teamShort := cleanText(teamCell)

		stats := row.Find(".stats-sq")
		if stats.Length() < 5 {
			return
		}

		pistol := safeIntFromContent(stats.Eq(0))
		pistolWon := 0
		if pistol != nil {
			pistolWon = *pistol
		}

		line := EconomyLine{Pistol: pistol}

		ecoPlayed, ecoWon := parsePlayedWon(economyCellText(stats.Eq(1)))
		line.EcoPlayed = clampNonNegative(ecoPlayed - 2)
		line.EcoWon = clampNonNegative(ecoWon - pistolWon)

		line.SemiEcoPlayed, line.SemiEcoWon = parsePlayedWon(economyCellText(stats.Eq(2)))
		line.SemiBuyPlayed, line.SemiBuyWon = parsePlayedWon(economyCellText(stats.Eq(3)))
		line.FullBuyPlayed, line.FullBuyWon = parsePlayedWon(economyCellText(stats.Eq(4)))

		economy[teamShort] = line
	})
}

func economyCellText(sel *goquery.Selection) string {
	text := firstTextContent(sel)
	if text == "" {
		return "0 (0)"
	}
	return text
}

func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
