package scrape

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func docFrom(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestSafeInt(t *testing.T) {
	doc := docFrom(t, `<span id="a">42</span><span id="b">&#160;</span><span id="c"></span><span id="d">+5</span><span id="e">-3</span><span id="f">n/a</span>`)

	require.Equal(t, 42, *safeInt(doc.Find("#a")))
	require.Nil(t, safeInt(doc.Find("#b")), "non-breaking space means no data")
	require.Nil(t, safeInt(doc.Find("#c")))
	require.Equal(t, 5, *safeInt(doc.Find("#d")))
	require.Equal(t, -3, *safeInt(doc.Find("#e")))
	require.Nil(t, safeInt(doc.Find("#f")))
	require.Nil(t, safeInt(doc.Find("#missing")))
}

func TestSafeFloatPercent(t *testing.T) {
	doc := docFrom(t, `<span id="a">72%</span><span id="b">1.24</span><span id="c">&#160;</span>`)

	require.InDelta(t, 0.72, *safeFloat(doc.Find("#a")), 1e-9)
	require.InDelta(t, 1.24, *safeFloat(doc.Find("#b")), 1e-9)
	require.Nil(t, safeFloat(doc.Find("#c")))
}

func TestSafeIntFromContentSkipsTooltips(t *testing.T) {
	doc := docFrom(t, `<div id="cell">3<div class="hover">2k: details</div></div>`)

	require.Equal(t, 3, *safeIntFromContent(doc.Find("#cell")))
}

func TestParsePlayedWon(t *testing.T) {
	played, won := parsePlayedWon("5 (2)")
	require.Equal(t, 5, played)
	require.Equal(t, 2, won)

	played, won = parsePlayedWon("\t12\t(7)")
	require.Equal(t, 12, played)
	require.Equal(t, 7, won)

	played, won = parsePlayedWon("garbage")
	require.Equal(t, 0, played)
	require.Equal(t, 0, won)
}
