package scrape

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/sentinel/vlrstats/internal/fetch"
	"github.com/sentinel/vlrstats/internal/store"
)

var (
	patchRe   = regexp.MustCompile(`(\d+\.\d+)`)
	mapNameRe = regexp.MustCompile(`[^a-zA-Z]`)
)

// MatchExtractor parses a match page: the series header, both teams
// with their series scores, the pick/ban sequence and the per-map game
// stubs.
type MatchExtractor struct {
	extractor
	teams *TeamsData
}

// NewMatchExtractor creates the match stage.
func NewMatchExtractor(client *fetch.Client, baseURL string, teams *TeamsData) *MatchExtractor {
	return &MatchExtractor{extractor: newExtractor(client, baseURL), teams: teams}
}

// Extract fetches and parses one match page. A showmatch comes back
// with Showmatch set and no games; the caller is expected to purge it.
func (e *MatchExtractor) Extract(ctx context.Context, matchID int64) (*Match, []GameStub, error) {
	url := fmt.Sprintf("%s/%d", e.baseURL, matchID)
	log.Printf("→ Scraping match details for %d: %s", matchID, url)

	doc, err := e.get(ctx, url)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching match %d: %w", matchID, err)
	}

	match := &Match{
		MatchID: matchID,
		URL:     url,
	}

	series := cleanText(doc.Find(".match-header-event-series").First())
	series = strings.NewReplacer("\n", "", "\t", "").Replace(series)
	if isShowmatch(series) {
		log.Printf("→ Skipping showmatch: %d", matchID)
		match.Showmatch = true
		return match, nil, nil
	}
	match.Series = series

	e.parseDateTimePatch(doc, match)
	match.Teams = e.parseTeams(doc)

	if note := doc.Find(".match-header-note").Last(); note.Length() > 0 {
		match.Picks, match.Bans, match.Decider = ParsePickBanNote(cleanText(note))
	}

	games := e.parseGames(doc, matchID, match.Teams)

	return match, games, nil
}

func isShowmatch(series string) bool {
	return strings.Contains(strings.ToLower(series), "showmatch")
}

func (e *MatchExtractor) parseDateTimePatch(doc *goquery.Document, match *Match) {
	header := doc.Find(".match-header-date")
	if header.Length() == 0 {
		return
	}

	dateElem := header.Find(".moment-tz-convert[data-utc-ts]").First()
	if ts, ok := dateElem.Attr("data-utc-ts"); ok {
		if parsed, err := time.Parse("2006-01-02 15:04:05", ts); err == nil {
			match.Date = parsed.Format("2006-01-02")
			match.Time = parsed.Format("15:04:05")
		} else {
			log.Printf("⚠️  Failed to parse timestamp %q: %v", ts, err)
			match.Date = cleanText(dateElem)
		}
	}

	patchElem := header.Find(`div[style*="font-style: italic"]`).First()
	if patchElem.Length() > 0 {
		text := cleanText(patchElem)
		if m := patchRe.FindString(text); m != "" {
			text = m
		}
		match.Patch = text
	}
}

// parseTeams reads both participants off the match header. Series
// scores are the map wins of the best-of, not round counts.
func (e *MatchExtractor) parseTeams(doc *goquery.Document) []TeamInfo {
	var teams []TeamInfo

	header := doc.Find(".match-header-vs")
	if header.Length() == 0 {
		return teams
	}

	scoreSpans := header.Find(".match-header-vs-score span")
	firstScore, secondScore := "", ""
	if scoreSpans.Length() >= 2 {
		firstScore = cleanText(scoreSpans.First())
		secondScore = cleanText(scoreSpans.Last())
	}
	first, errFirst := strconv.Atoi(firstScore)
	second, errSecond := strconv.Atoi(secondScore)
	scoresKnown := errFirst == nil && errSecond == nil

	header.Find(".match-header-link").Each(func(i int, link *goquery.Selection) {
		name := cleanText(link.Find(".wf-title-med").First())
		short := e.teams.ShortName(name)

		info := TeamInfo{
			Name:      name,
			ShortName: short,
			Region:    e.teams.Region(short),
		}

		if src, ok := link.Find("img").First().Attr("src"); ok {
			info.LogoURL = "https:" + src
		}
		if href, ok := link.Attr("href"); ok {
			info.TeamURL = e.baseURL + href
		}

		if i == 0 {
			if errFirst == nil {
				info.Score = first
			}
			info.IsWinner = scoresKnown && first > second
		} else {
			if errSecond == nil {
				info.Score = second
			}
			info.IsWinner = scoresKnown && second > first
		}

		teams = append(teams, info)
	})

	return teams
}

// ParsePickBanNote splits a header note like "FNC ban Pearl; EG pick
// Split; Haven remains" into the ordered pick and ban sequences plus
// the decider map. Tokens that fit neither shape are skipped.
func ParsePickBanNote(text string) (picks, bans []PickBan, decider string) {
	for _, entry := range strings.Split(text, "; ") {
		parts := strings.Split(entry, " ")
		if len(parts) < 3 {
			if len(parts) == 2 && strings.EqualFold(parts[1], "remains") {
				decider = parts[0]
			}
			continue
		}

		team := parts[0]
		action := strings.ToLower(parts[1])
		mapName := strings.Join(parts[2:], " ")

		switch action {
		case "ban":
			bans = append(bans, PickBan{Team: team, Map: mapName})
		case "pick":
			picks = append(picks, PickBan{Team: team, Map: mapName})
		}
	}
	return picks, bans, decider
}

// parseGames reads the shallow per-map blocks: one .vm-stats-game per
// game plus an "all" aggregate block that is skipped.
func (e *MatchExtractor) parseGames(doc *goquery.Document, matchID int64, teams []TeamInfo) []GameStub {
	var games []GameStub

	teamID := func(i int) *int32 {
		if i >= len(teams) || teams[i].ShortName == "" {
			return nil
		}
		id := store.TeamID(teams[i].ShortName)
		return &id
	}

	doc.Find(".vm-stats-game").Each(func(_ int, sel *goquery.Selection) {
		rawID, ok := sel.Attr("data-game-id")
		if !ok || rawID == "all" {
			return
		}
		gameID, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			log.Printf("⚠️  Non-numeric game ID %q in match %d: %v", rawID, matchID, err)
			return
		}

		game := GameStub{
			GameID:  gameID,
			MatchID: matchID,
			URL:     fmt.Sprintf("%s/%d?game=%d", e.baseURL, matchID, gameID),
			Scores:  make(map[int32]TeamScore),
		}

		game.Map = parseMapName(cleanText(sel.Find(".map").First()))

		if sel.Find(".picked.mod-1").Length() > 0 {
			game.Pick = teamID(0)
		} else if sel.Find(".picked.mod-2").Length() > 0 {
			game.Pick = teamID(1)
		}

		scoreElems := sel.Find(".score")
		if scoreElems.Length() >= 2 {
			if scoreElems.Eq(0).HasClass("mod-win") {
				game.Win = teamID(0)
			} else if scoreElems.Eq(1).HasClass("mod-win") {
				game.Win = teamID(1)
			}
		}

		game.Duration = cleanText(sel.Find(".map-duration").First())

		if len(teams) >= 2 && scoreElems.Length() >= 2 {
			teamElems := sel.Find(".team")
			for i := 0; i < 2; i++ {
				id := teamID(i)
				if id == nil {
					continue
				}

				var ts TeamScore
				if n, err := strconv.Atoi(cleanText(scoreElems.Eq(i))); err == nil {
					ts.Score = n
				}
				if i < teamElems.Length() {
					if n, err := strconv.Atoi(cleanText(teamElems.Eq(i).Find(".mod-t").First())); err == nil {
						ts.T = n
					}
					if n, err := strconv.Atoi(cleanText(teamElems.Eq(i).Find(".mod-ct").First())); err == nil {
						ts.CT = n
					}
				}
				game.Scores[*id] = ts
			}
		}

		games = append(games, game)
	})

	return games
}

// parseMapName strips the pick marker and round annotations off the map
// cell, leaving just the map name.
func parseMapName(text string) string {
	text = strings.ReplaceAll(text, " ", "")
	if text == "" {
		return ""
	}
	name := mapNameRe.Split(text, 2)[0]
	if strings.HasSuffix(strings.ToUpper(name), "PICK") {
		name = name[:len(name)-4]
	}
	return strings.TrimSpace(name)
}
