package scrape

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Cell parsing helpers. The source renders a non-breaking space where it
// has no figure, percentages as "NN%", and stuffs hover tooltips inside
// table cells, so most values need to be pulled from the first text node
// only.

func cleanText(sel *goquery.Selection) string {
	return strings.TrimSpace(sel.Text())
}

// safeInt parses a cell as an int. Blank and non-breaking-space cells
// yield nil. Signed diffs like "+5" parse fine.
func safeInt(sel *goquery.Selection) *int {
	if sel.Length() == 0 {
		return nil
	}
	text := cleanText(sel)
	if text == "\u00a0" || text == "" {
		return nil
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return nil
	}
	return &n
}

// safeFloat parses a cell as a float. Percentages are scaled to [0,1].
func safeFloat(sel *goquery.Selection) *float64 {
	if sel.Length() == 0 {
		return nil
	}
	text := cleanText(sel)
	if text == "\u00a0" || text == "" {
		return nil
	}
	if strings.HasSuffix(text, "%") {
		f, err := strconv.ParseFloat(strings.TrimSuffix(text, "%"), 64)
		if err != nil {
			return nil
		}
		f /= 100.0
		return &f
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil
	}
	return &f
}

// firstTextContent returns the first direct text node of a selection,
// trimmed. Hover tooltips live in child elements and are skipped.
func firstTextContent(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	for n := sel.Nodes[0].FirstChild; n != nil; n = n.NextSibling {
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				return text
			}
		}
	}
	return ""
}

// safeIntFromContent parses the first direct text node of a cell as an
// int, ignoring nested tooltip markup.
func safeIntFromContent(sel *goquery.Selection) *int {
	text := firstTextContent(sel)
	if text == "" {
		return nil
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return nil
	}
	return &n
}

// parsePlayedWon splits a "played (won)" cell like "5 (2)" into its two
// counts. Malformed parts come back as 0.
func parsePlayedWon(text string) (played, won int) {
	text = strings.ReplaceAll(text, "\t", "")
	before, after, _ := strings.Cut(text, "(")
	if n, err := strconv.Atoi(strings.TrimSpace(before)); err == nil {
		played = n
	}
	after = strings.TrimSpace(strings.ReplaceAll(after, ")", ""))
	if n, err := strconv.Atoi(after); err == nil {
		won = n
	}
	return played, won
}
