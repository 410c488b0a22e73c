// Package scrape turns vlr.gg pages into structured records. Four
// extractors mirror the site's drill-down: a season page lists events,
// an event page lists matches, a match page carries the series header
// and its games, and a game's stat tabs carry everything per player,
// round and team economy.
package scrape

import (
	"context"

	"github.com/PuerkitoBio/goquery"

	"github.com/sentinel/vlrstats/internal/fetch"
)

// DefaultBaseURL is the production site root.
const DefaultBaseURL = "https://www.vlr.gg"

// extractor is the shared shape of every pipeline stage: one paced
// fetch client, one site root. The stages differ only in what they
// parse out of the fetched document.
type extractor struct {
	client  *fetch.Client
	baseURL string
}

func newExtractor(client *fetch.Client, baseURL string) extractor {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return extractor{client: client, baseURL: baseURL}
}

func (e *extractor) get(ctx context.Context, url string) (*goquery.Document, error) {
	return e.client.GetDocument(ctx, url)
}
