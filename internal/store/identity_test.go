package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTeamIDDeterministic(t *testing.T) {
	a := TeamID("FNC")
	b := TeamID("FNC")
	require.Equal(t, a, b)

	require.Equal(t, a, TeamID("  FNC  "), "surrounding whitespace must not change the identity")
}

func TestTeamIDRange(t *testing.T) {
	for _, short := range []string{"FNC", "EG", "PRX", "100T", "", "NAVI"} {
		id := TeamID(short)
		require.GreaterOrEqual(t, id, int32(0))
		require.Less(t, id, int32(1<<31-1))
	}
}

func TestTeamIDDistinguishesShortNames(t *testing.T) {
	require.NotEqual(t, TeamID("FNC"), TeamID("EG"))
	require.NotEqual(t, TeamID("FNC"), TeamID("fnc"))
}

func TestPlayerIDUsesTeamScope(t *testing.T) {
	withFNC := PlayerID("Boaster", "FNC")
	withEG := PlayerID("Boaster", "EG")
	require.NotEqual(t, withFNC, withEG, "same name on different teams must not collide")

	require.Equal(t, withFNC, PlayerID("Boaster", "FNC"))
}

func TestPlayerIDSeparatorMatters(t *testing.T) {
	// The underscore join must keep (ab, c) distinct from (a, bc).
	require.NotEqual(t, PlayerID("ab", "c"), PlayerID("a", "bc"))
}
