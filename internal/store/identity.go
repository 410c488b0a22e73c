package store

import (
	"hash/fnv"
	"strings"
)

// The source site exposes no stable identifier for teams or players, so
// both get a synthetic ID derived from their names. The derivation must be
// a pure function: the same short name has to map to the same ID on every
// run, because the ID is the join key for match_teams, game_scores,
// economy_stats and player_stats.
//
// Known limitation: two different players with the same name under the
// same team tag collide onto one ID. The team_aliases table records the
// full-name bindings seen per team ID so collisions can be spotted after
// the fact; no automatic disambiguation is attempted.

const idModulus = 1<<31 - 1

func deriveID(key string) int32 {
	h := fnv.New32a()
	h.Write([]byte(key))
	return int32(h.Sum32() % idModulus)
}

// TeamID derives the synthetic team ID from the team's short name.
func TeamID(shortName string) int32 {
	return deriveID(strings.TrimSpace(shortName))
}

// PlayerID derives the synthetic player ID from the player name and the
// short name of the team they played the game under.
func PlayerID(name, teamShortName string) int32 {
	return deriveID(strings.TrimSpace(name) + "_" + strings.TrimSpace(teamShortName))
}
