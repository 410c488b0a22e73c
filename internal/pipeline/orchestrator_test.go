package pipeline

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sentinel/vlrstats/internal/reconcile"
	"github.com/sentinel/vlrstats/internal/scrape"
	"github.com/sentinel/vlrstats/internal/store"
)

// Stage fakes. Each records what it was asked to do so tests can assert
// on the orchestrator's sequencing and diffing, not on parsing.

type fakeSeasons struct {
	events map[string][]scrape.Event
}

func (f *fakeSeasons) Extract(_ context.Context, seasonID string) ([]scrape.Event, error) {
	evs, ok := f.events[seasonID]
	if !ok {
		return nil, fmt.Errorf("unknown season %s", seasonID)
	}
	return evs, nil
}

type fakeEvents struct {
	stubs map[int64][]scrape.MatchStub
}

func (f *fakeEvents) Extract(_ context.Context, eventID int64) ([]scrape.MatchStub, error) {
	return f.stubs[eventID], nil
}

type fakeMatches struct {
	matches   map[int64]*scrape.Match
	games     map[int64][]scrape.GameStub
	extracted []int64
}

func (f *fakeMatches) Extract(_ context.Context, matchID int64) (*scrape.Match, []scrape.GameStub, error) {
	f.extracted = append(f.extracted, matchID)
	m, ok := f.matches[matchID]
	if !ok {
		return nil, nil, fmt.Errorf("no fixture for match %d", matchID)
	}
	return m, f.games[matchID], nil
}

type fakeGames struct {
	extracted []int64
}

func (f *fakeGames) Extract(_ context.Context, gameID, matchID int64, teams scrape.GameTeams) (*scrape.GameDetail, error) {
	f.extracted = append(f.extracted, gameID)
	return &scrape.GameDetail{GameID: gameID, MatchID: matchID, Teams: teams}, nil
}

type fakeEventSink struct {
	saved []scrape.Event
}

func (f *fakeEventSink) Save(_ context.Context, events []scrape.Event) (reconcile.Stats, error) {
	f.saved = append(f.saved, events...)
	return reconcile.Stats{Saved: len(events)}, nil
}

type fakeMatchSink struct {
	stubs   []scrape.MatchStub
	matches []int64
	deleted []int64
}

func (f *fakeMatchSink) SaveStubs(_ context.Context, stubs []scrape.MatchStub) (reconcile.Stats, error) {
	f.stubs = append(f.stubs, stubs...)
	return reconcile.Stats{Saved: len(stubs)}, nil
}

func (f *fakeMatchSink) SaveMatch(_ context.Context, match *scrape.Match) error {
	f.matches = append(f.matches, match.MatchID)
	return nil
}

func (f *fakeMatchSink) DeleteShowmatch(_ context.Context, matchID int64) error {
	f.deleted = append(f.deleted, matchID)
	return nil
}

type fakeGameSink struct {
	stubs   []scrape.GameStub
	details []int64
}

func (f *fakeGameSink) SaveStubs(_ context.Context, stubs []scrape.GameStub) (reconcile.Stats, error) {
	f.stubs = append(f.stubs, stubs...)
	return reconcile.Stats{Saved: len(stubs)}, nil
}

func (f *fakeGameSink) SaveDetail(_ context.Context, detail *scrape.GameDetail) error {
	f.details = append(f.details, detail.GameID)
	return nil
}

type fakeMatchIndex struct {
	known map[int64]map[int64]bool
	teams map[int64][]*store.Team
}

func (f *fakeMatchIndex) MatchIDsByEvent(_ context.Context, eventID int64) (map[int64]bool, error) {
	if m, ok := f.known[eventID]; ok {
		return m, nil
	}
	return map[int64]bool{}, nil
}

func (f *fakeMatchIndex) TeamsByMatch(_ context.Context, matchID int64) ([]*store.Team, error) {
	return f.teams[matchID], nil
}

type fakeGameIndex struct {
	collected map[int64]map[int64]bool
}

func (f *fakeGameIndex) CollectedGameIDs(_ context.Context, matchID int64) (map[int64]bool, error) {
	if m, ok := f.collected[matchID]; ok {
		return m, nil
	}
	return map[int64]bool{}, nil
}

func slotTeams() []*store.Team {
	return []*store.Team{
		{ID: store.TeamID("FNC"), ShortName: "FNC"},
		{ID: store.TeamID("EG"), ShortName: "EG"},
	}
}

func TestRunProcessesOnlyNewMatches(t *testing.T) {
	// The event lists 12 completed matches; 10 are already stored.
	stubs := make([]scrape.MatchStub, 0, 12)
	known := map[int64]bool{}
	for id := int64(1); id <= 12; id++ {
		stubs = append(stubs, scrape.MatchStub{MatchID: id, EventID: 2097})
		if id <= 10 {
			known[id] = true
		}
	}

	matches := &fakeMatches{
		matches: map[int64]*scrape.Match{
			11: {MatchID: 11},
			12: {MatchID: 12},
		},
		games: map[int64][]scrape.GameStub{
			11: {{GameID: 111, MatchID: 11}},
			12: {{GameID: 121, MatchID: 12}},
		},
	}
	matchSink := &fakeMatchSink{}
	gameSink := &fakeGameSink{}
	games := &fakeGames{}

	orch := NewOrchestrator(Config{Seasons: []string{"vct-2024"}}, Deps{
		Seasons: &fakeSeasons{events: map[string][]scrape.Event{
			"vct-2024": {{ID: 2097, Title: "Champions 2024"}},
		}},
		Events:    &fakeEvents{stubs: map[int64][]scrape.MatchStub{2097: stubs}},
		Matches:   matches,
		Games:     games,
		EventSink: &fakeEventSink{},
		MatchSink: matchSink,
		GameSink:  gameSink,
		MatchIndex: &fakeMatchIndex{
			known: map[int64]map[int64]bool{2097: known},
			teams: map[int64][]*store.Team{11: slotTeams(), 12: slotTeams()},
		},
		GameIndex: &fakeGameIndex{},
	})

	require.NoError(t, orch.Run(context.Background()))

	require.ElementsMatch(t, []int64{11, 12}, matches.extracted, "only unseen matches are fetched")
	require.Len(t, matchSink.stubs, 2)
	require.ElementsMatch(t, []int64{11, 12}, matchSink.matches)
	require.ElementsMatch(t, []int64{111, 121}, games.extracted)
	require.ElementsMatch(t, []int64{111, 121}, gameSink.details)
}

func TestRunPurgesShowmatches(t *testing.T) {
	matches := &fakeMatches{
		matches: map[int64]*scrape.Match{
			21: {MatchID: 21, Showmatch: true},
			22: {MatchID: 22},
		},
		games: map[int64][]scrape.GameStub{
			22: {{GameID: 221, MatchID: 22}},
		},
	}
	matchSink := &fakeMatchSink{}
	games := &fakeGames{}

	orch := NewOrchestrator(Config{Seasons: []string{"vct-2024"}}, Deps{
		Seasons: &fakeSeasons{events: map[string][]scrape.Event{
			"vct-2024": {{ID: 3000}},
		}},
		Events: &fakeEvents{stubs: map[int64][]scrape.MatchStub{
			3000: {{MatchID: 21, EventID: 3000}, {MatchID: 22, EventID: 3000}},
		}},
		Matches:   matches,
		Games:     games,
		EventSink: &fakeEventSink{},
		MatchSink: matchSink,
		GameSink:  &fakeGameSink{},
		MatchIndex: &fakeMatchIndex{
			teams: map[int64][]*store.Team{22: slotTeams()},
		},
		GameIndex: &fakeGameIndex{},
	})

	require.NoError(t, orch.Run(context.Background()))

	require.Equal(t, []int64{21}, matchSink.deleted, "the showmatch is removed from the store")
	require.Equal(t, []int64{22}, matchSink.matches, "the showmatch is never saved")
	require.Equal(t, []int64{221}, games.extracted)
}

func TestRunSkipsCollectedGames(t *testing.T) {
	matches := &fakeMatches{
		matches: map[int64]*scrape.Match{31: {MatchID: 31}},
		games: map[int64][]scrape.GameStub{
			31: {
				{GameID: 311, MatchID: 31},
				{GameID: 312, MatchID: 31},
				{GameID: 313, MatchID: 31},
			},
		},
	}
	games := &fakeGames{}
	gameSink := &fakeGameSink{}

	orch := NewOrchestrator(Config{Seasons: []string{"vct-2024"}}, Deps{
		Seasons: &fakeSeasons{events: map[string][]scrape.Event{
			"vct-2024": {{ID: 4000}},
		}},
		Events: &fakeEvents{stubs: map[int64][]scrape.MatchStub{
			4000: {{MatchID: 31, EventID: 4000}},
		}},
		Matches:   matches,
		Games:     games,
		EventSink: &fakeEventSink{},
		MatchSink: &fakeMatchSink{},
		GameSink:  gameSink,
		MatchIndex: &fakeMatchIndex{
			teams: map[int64][]*store.Team{31: slotTeams()},
		},
		GameIndex: &fakeGameIndex{collected: map[int64]map[int64]bool{
			31: {312: true},
		}},
	})

	require.NoError(t, orch.Run(context.Background()))

	require.ElementsMatch(t, []int64{311, 313}, games.extracted, "already-collected games are not refetched")
	require.ElementsMatch(t, []int64{311, 313}, gameSink.details)
	require.Len(t, gameSink.stubs, 3, "stubs are still refreshed for every game")
}

func TestRunAccumulatesAllSeasons(t *testing.T) {
	// Events from every configured season make it to the event stage,
	// not just the last season's.
	eventSink := &fakeEventSink{}
	events := &fakeEvents{stubs: map[int64][]scrape.MatchStub{}}

	orch := NewOrchestrator(Config{Seasons: []string{"vct-2023", "vct-2024"}}, Deps{
		Seasons: &fakeSeasons{events: map[string][]scrape.Event{
			"vct-2023": {{ID: 1001}, {ID: 1002}},
			"vct-2024": {{ID: 2001}},
		}},
		Events:     events,
		Matches:    &fakeMatches{},
		Games:      &fakeGames{},
		EventSink:  eventSink,
		MatchSink:  &fakeMatchSink{},
		GameSink:   &fakeGameSink{},
		MatchIndex: &fakeMatchIndex{},
		GameIndex:  &fakeGameIndex{},
	})

	require.NoError(t, orch.Run(context.Background()))
	require.Len(t, eventSink.saved, 3)
}

func TestRunRequiresSeasons(t *testing.T) {
	orch := NewOrchestrator(Config{}, Deps{})
	require.Error(t, orch.Run(context.Background()))
}

func TestRunFailedSeasonIsSkipped(t *testing.T) {
	eventSink := &fakeEventSink{}

	orch := NewOrchestrator(Config{Seasons: []string{"vct-1999", "vct-2024"}}, Deps{
		Seasons: &fakeSeasons{events: map[string][]scrape.Event{
			"vct-2024": {{ID: 2001}},
		}},
		Events:     &fakeEvents{stubs: map[int64][]scrape.MatchStub{}},
		Matches:    &fakeMatches{},
		Games:      &fakeGames{},
		EventSink:  eventSink,
		MatchSink:  &fakeMatchSink{},
		GameSink:   &fakeGameSink{},
		MatchIndex: &fakeMatchIndex{},
		GameIndex:  &fakeGameIndex{},
	})

	require.NoError(t, orch.Run(context.Background()))
	require.Len(t, eventSink.saved, 1, "a bad season does not abort the run")
}
