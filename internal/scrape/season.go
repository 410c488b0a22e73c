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
)

// regionSlugs maps the region slug embedded in event URLs to the
// region code stored downstream. Ordered so slug matching is
// deterministic.
var regionSlugs = []struct{ slug, code string }{
	{"americas", "amer"},
	{"emea", "emea"},
	{"pacific", "apac"},
	{"china", "cn"},
}

var (
	yearRe      = regexp.MustCompile(`(\d{4})`)
	prizeRe     = regexp.MustCompile(`([\d,]+)`)
	dayOnlyRe   = regexp.MustCompile(`^\d{1,2} \d{4}$`)
	eventNameRe = regexp.MustCompile(`-(americas|emea|pacific|china)-(.+)`)
)

// SeasonExtractor lists the events of a season page, optionally
// filtered by an oldest end date.
type SeasonExtractor struct {
	extractor

	// OldestDate drops events ending before it when non-zero. Events
	// with an unparseable end date are kept.
	OldestDate time.Time
}

// NewSeasonExtractor creates the season stage.
func NewSeasonExtractor(client *fetch.Client, baseURL string) *SeasonExtractor {
	return &SeasonExtractor{extractor: newExtractor(client, baseURL)}
}

// Extract fetches a season page like "vct-2024" and returns its events.
func (e *SeasonExtractor) Extract(ctx context.Context, seasonID string) ([]Event, error) {
	url := fmt.Sprintf("%s/%s", e.baseURL, seasonID)
	log.Printf("→ Collecting events for season %s: %s", seasonID, url)

	doc, err := e.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetching season %s: %w", seasonID, err)
	}

	year := seasonYear(seasonID)

	var events []Event
	total := 0
	doc.Find(".event-item").Each(func(_ int, sel *goquery.Selection) {
		ev := e.parseEvent(sel, year)
		if ev == nil {
			return
		}
		total++
		if e.keep(ev) {
			events = append(events, *ev)
		}
	})

	if !e.OldestDate.IsZero() {
		log.Printf("✓ Found %d events, %d after %s", total, len(events), e.OldestDate.Format("2006-01-02"))
	} else {
		log.Printf("✓ Found %d events (no date filter)", total)
	}

	return events, nil
}

// keep applies the oldest-date filter. Events with no or unparseable
// end date are kept rather than silently dropped.
func (e *SeasonExtractor) keep(ev *Event) bool {
	if e.OldestDate.IsZero() || ev.EndDate == "" {
		return true
	}
	end, err := time.Parse("2006-01-02", ev.EndDate)
	if err != nil {
		log.Printf("⚠️  Could not parse end date for event %q: %v", ev.Title, err)
		return true
	}
	return !end.Before(e.OldestDate)
}

// seasonYear pulls the year out of a season ID like "vct-2024". Season
// IDs without a year fall back to the current year.
func seasonYear(seasonID string) string {
	if m := yearRe.FindString(seasonID); m != "" {
		return m
	}
	log.Printf("⚠️  Could not extract year from season %q, defaulting to current year", seasonID)
	return strconv.Itoa(time.Now().Year())
}

func (e *SeasonExtractor) parseEvent(sel *goquery.Selection, year string) *Event {
	href, ok := sel.Attr("href")
	if !ok || href == "" {
		log.Printf("⚠️  Event without href found, skipping")
		return nil
	}

	parts := strings.Split(href, "/")
	if len(parts) <= 2 {
		log.Printf("⚠️  Could not extract event ID from href: %s", href)
		return nil
	}
	id, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		log.Printf("⚠️  Non-numeric event ID in href %s: %v", href, err)
		return nil
	}

	startDate, endDate := parseEventDates(sel.Find(".event-item-desc-item.mod-dates"), year)
	region, eventName := parseRegionAndName(href)

	ev := &Event{
		ID:        id,
		URL:       fmt.Sprintf("%s/event/%d", e.baseURL, id),
		Title:     cleanText(sel.Find(".event-item-title")),
		Status:    cleanText(sel.Find(".event-item-desc-item-status")),
		PrizePool: parsePrize(cleanText(sel.Find(".event-item-desc-item.mod-prize"))),
		StartDate: startDate,
		EndDate:   endDate,
		Region:    region,
		EventName: eventName,
		Location:  parseLocation(sel.Find(".event-item-desc-item.mod-location .flag")),
	}

	if src, ok := sel.Find(".event-item-thumb img").Attr("src"); ok {
		ev.Thumbnail = "https:" + src
	}

	return ev
}

// parsePrize extracts the numeric prize pool from text like "$250,000".
func parsePrize(text string) *int64 {
	if text == "" {
		return nil
	}
	m := prizeRe.FindString(strings.ReplaceAll(text, "$", ""))
	if m == "" {
		return nil
	}
	n, err := strconv.ParseInt(strings.ReplaceAll(m, ",", ""), 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

// parseEventDates turns the "DatesJan 10—Feb 2" block into a pair of
// ISO dates. Season pages omit the year, so it is supplied by the
// caller. A second date carrying only a day number inherits the first
// date's month.
func parseEventDates(sel *goquery.Selection, year string) (string, string) {
	if sel.Length() == 0 {
		return "", ""
	}

	text := strings.TrimPrefix(cleanText(sel), "Dates")
	parts := strings.Split(text, "—")

	withYear := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || p == "TBD" {
			withYear = append(withYear, "")
			continue
		}
		withYear = append(withYear, p+" "+year)
	}

	// "Jan 10—20": the second part has no month of its own.
	if len(withYear) == 2 && dayOnlyRe.MatchString(withYear[1]) {
		firstFields := strings.Fields(withYear[0])
		secondFields := strings.Fields(withYear[1])
		if len(firstFields) > 0 && len(secondFields) == 2 {
			withYear[1] = fmt.Sprintf("%s %s %s", firstFields[0], secondFields[0], secondFields[1])
		}
	}

	var formatted []string
	for _, d := range withYear {
		if d == "" {
			continue
		}
		t, err := time.Parse("Jan 2 2006", d)
		if err != nil {
			log.Printf("⚠️  Failed to parse date %q: %v", d, err)
			continue
		}
		formatted = append(formatted, t.Format("2006-01-02"))
	}

	start, end := "", ""
	if len(formatted) > 0 {
		start = formatted[0]
	}
	if len(formatted) > 1 {
		end = formatted[1]
	}
	return start, end
}

// parseRegionAndName derives the region code and the event slug from an
// event URL. International events carry no region slug; champions and
// masters pages are classed "inter", anything else "unknown".
func parseRegionAndName(eventURL string) (string, string) {
	region := ""
	for _, r := range regionSlugs {
		if strings.Contains(eventURL, "-"+r.slug+"-") {
			region = r.code
			break
		}
	}
	if region == "" {
		if strings.Contains(eventURL, "champions") || strings.Contains(eventURL, "masters") {
			region = "inter"
		} else {
			region = "unknown"
		}
	}

	name := ""
	if m := eventNameRe.FindStringSubmatch(eventURL); m != nil {
		name = m[2]
	} else {
		trimmed := strings.TrimRight(eventURL, "/")
		if i := strings.LastIndex(trimmed, "/"); i >= 0 {
			name = trimmed[i+1:]
		} else {
			name = trimmed
		}
	}

	return region, name
}

// parseLocation reads the host country off the flag icon class, e.g.
// "flag mod-us" is "us".
func parseLocation(sel *goquery.Selection) string {
	class, ok := sel.Attr("class")
	if !ok {
		return ""
	}
	for _, c := range strings.Fields(class) {
		if strings.HasPrefix(c, "mod-") {
			return strings.TrimPrefix(c, "mod-")
		}
	}
	return ""
}
