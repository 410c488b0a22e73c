package scrape

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed data/teams.json
var teamsJSON []byte

// TeamsData is the bundled reference table mapping full team names to
// the short names used everywhere downstream, plus the short-name
// rosters per competitive region.
type TeamsData struct {
	ShortNames map[string]string   `json:"short_names"`
	Regions    map[string][]string `json:"regions"`
}

// LoadTeamsData decodes the embedded team reference table.
func LoadTeamsData() (*TeamsData, error) {
	var td TeamsData
	if err := json.Unmarshal(teamsJSON, &td); err != nil {
		return nil, fmt.Errorf("decoding embedded teams data: %w", err)
	}
	return &td, nil
}

// ShortName returns the short name for a full team name, or "" when the
// team is not in the table.
func (td *TeamsData) ShortName(fullName string) string {
	return td.ShortNames[fullName]
}

// Region returns the region a short name belongs to, or "unknown".
func (td *TeamsData) Region(shortName string) string {
	if shortName == "" {
		return "unknown"
	}
	for region, teams := range td.Regions {
		for _, t := range teams {
			if t == shortName {
				return region
			}
		}
	}
	return "unknown"
}
