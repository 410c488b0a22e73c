package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateReadOnlyAccepts(t *testing.T) {
	for _, q := range []string{
		"SELECT * FROM matches",
		"select match_id, series from matches where event_id = 2097",
		"  SELECT count(*) FROM player_stats  ",
		"SELECT created_at FROM events", // "create" inside a word is fine
	} {
		require.NoError(t, ValidateReadOnly(q), q)
	}
}

func TestValidateReadOnlyRejects(t *testing.T) {
	for _, q := range []string{
		"",
		"DELETE FROM matches",
		"INSERT INTO matches VALUES (1)",
		"SELECT 1; DROP TABLE matches",
		"UPDATE matches SET series = 'x'",
		"WITH x AS (SELECT 1) SELECT * FROM x",
		"SELECT * FROM matches; SELECT * FROM games",
		"select * from matches where series = 'a' and 1=1 union select 1 where exists (select 1) -- drop",
	} {
		require.Error(t, ValidateReadOnly(q), q)
	}
}

func TestValidateReadOnlyWordBoundaries(t *testing.T) {
	// Keyword embedded in an identifier must not trip the scan.
	require.NoError(t, ValidateReadOnly("SELECT updated_at FROM teams"))
	// Standalone keyword anywhere must.
	require.ErrorIs(t, ValidateReadOnly("SELECT * FROM teams WHERE id IN (DELETE FROM teams RETURNING id)"), ErrNotReadOnly)
}
