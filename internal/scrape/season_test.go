package scrape

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSeasonYear(t *testing.T) {
	require.Equal(t, "2024", seasonYear("vct-2024"))
	require.Equal(t, "2023", seasonYear("vct-2023"))
}

func TestParsePrize(t *testing.T) {
	p := parsePrize("$2,250,000Prize")
	require.NotNil(t, p)
	require.Equal(t, int64(2250000), *p)

	require.Nil(t, parsePrize(""))
	require.Nil(t, parsePrize("TBD"))
}

func TestParseEventDates(t *testing.T) {
	doc := docFrom(t, `<div class="dates">Dates Jan 10—Feb 2</div>`)
	start, end := parseEventDates(doc.Find(".dates"), "2024")
	require.Equal(t, "2024-01-10", start)
	require.Equal(t, "2024-02-02", end)
}

func TestParseEventDatesDayOnlySecond(t *testing.T) {
	// The second date inherits the first date's month.
	doc := docFrom(t, `<div class="dates">Dates Jun 7—22</div>`)
	start, end := parseEventDates(doc.Find(".dates"), "2025")
	require.Equal(t, "2025-06-07", start)
	require.Equal(t, "2025-06-22", end)
}

func TestParseEventDatesTBD(t *testing.T) {
	doc := docFrom(t, `<div class="dates">Dates TBD</div>`)
	start, end := parseEventDates(doc.Find(".dates"), "2024")
	require.Empty(t, start)
	require.Empty(t, end)
}

func TestParseRegionAndName(t *testing.T) {
	region, name := parseRegionAndName("/event/2095/champions-tour-2024-americas-stage-2")
	require.Equal(t, "amer", region)
	require.Equal(t, "stage-2", name)

	region, name = parseRegionAndName("/event/2097/valorant-champions-2024")
	require.Equal(t, "inter", region)
	require.Equal(t, "valorant-champions-2024", name)

	region, _ = parseRegionAndName("/event/2276/champions-tour-2025-pacific-kickoff")
	require.Equal(t, "apac", region)

	region, _ = parseRegionAndName("/event/9999/some-community-cup")
	require.Equal(t, "unknown", region)
}

func TestParseEvent(t *testing.T) {
	html := `<a href="/event/2097/champions-tour-2024-emea-stage-2" class="event-item">
		<div class="event-item-thumb"><img src="//owcdn.net/img/thumb.png"></div>
		<div class="event-item-title">Champions Tour 2024: EMEA Stage 2</div>
		<div class="event-item-desc-item-status">completed</div>
		<div class="event-item-desc-item mod-prize">$250,000 Prize Pool</div>
		<div class="event-item-desc-item mod-dates">DatesJun 8—Jul 14</div>
		<div class="event-item-desc-item mod-location"><i class="flag mod-de"></i></div>
	</a>`

	e := &SeasonExtractor{extractor: newExtractor(nil, "https://www.vlr.gg")}
	ev := e.parseEvent(docFrom(t, html).Find(".event-item"), "2024")

	require.NotNil(t, ev)
	require.Equal(t, int64(2097), ev.ID)
	require.Equal(t, "https://www.vlr.gg/event/2097", ev.URL)
	require.Equal(t, "Champions Tour 2024: EMEA Stage 2", ev.Title)
	require.Equal(t, "completed", ev.Status)
	require.NotNil(t, ev.PrizePool)
	require.Equal(t, int64(250000), *ev.PrizePool)
	require.Equal(t, "2024-06-08", ev.StartDate)
	require.Equal(t, "2024-07-14", ev.EndDate)
	require.Equal(t, "emea", ev.Region)
	require.Equal(t, "stage-2", ev.EventName)
	require.Equal(t, "de", ev.Location)
	require.Equal(t, "https://owcdn.net/img/thumb.png", ev.Thumbnail)
}

func TestOldestDateFilter(t *testing.T) {
	e := &SeasonExtractor{OldestDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}

	require.True(t, e.keep(&Event{EndDate: "2024-07-14"}))
	require.True(t, e.keep(&Event{EndDate: "2024-06-01"}), "boundary date is kept")
	require.False(t, e.keep(&Event{EndDate: "2024-05-20"}))
	require.True(t, e.keep(&Event{EndDate: ""}), "unknown end date is kept")
	require.True(t, e.keep(&Event{EndDate: "not-a-date"}), "unparseable end date is kept")
}
