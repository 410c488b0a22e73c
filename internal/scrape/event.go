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

// EventExtractor lists the completed matches of an event. Only the
// match IDs and URLs are read here; the match stage does the deep
// parse.
type EventExtractor struct {
	extractor
}

// NewEventExtractor creates the event stage.
func NewEventExtractor(client *fetch.Client, baseURL string) *EventExtractor {
	return &EventExtractor{extractor: newExtractor(client, baseURL)}
}

// Extract fetches an event's completed-matches listing.
func (e *EventExtractor) Extract(ctx context.Context, eventID int64) ([]MatchStub, error) {
	url := fmt.Sprintf("%s/event/matches/%d?group=completed", e.baseURL, eventID)
	log.Printf("→ Collecting matches for event %d: %s", eventID, url)

	doc, err := e.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetching matches for event %d: %w", eventID, err)
	}

	var matches []MatchStub
	doc.Find(".match-item").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		parts := strings.Split(href, "/")
		if len(parts) < 2 {
			return
		}
		matchID, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			log.Printf("⚠️  Non-numeric match ID in href %s: %v", href, err)
			return
		}
		matches = append(matches, MatchStub{
			MatchID: matchID,
			URL:     fmt.Sprintf("%s/%d", e.baseURL, matchID),
			EventID: eventID,
		})
	})

	log.Printf("✓ Found %d matches for event %d", len(matches), eventID)

	return matches, nil
}
