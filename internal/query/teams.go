package query

import (
	"fmt"
	"strings"

	"github.com/fantasydesk/espn-mcp/internal/models"
)

// TeamSelector picks one team by exactly one of: 1-based id, name substring,
// or owner-name substring.
type TeamSelector struct {
	ID    *int
	Name  string
	Owner string
}

// ResolveTeam finds the team a selector names. Substring matches are
// case-insensitive and the first team in snapshot order wins.
func ResolveTeam(league *models.League, sel TeamSelector) (*models.Team, error) {
	switch {
	case sel.ID != nil:
		id := *sel.ID
		if id < 1 || id > len(league.Teams) {
			return nil, fmt.Errorf("%w: team_id must be between 1 and %d", ErrInvalidInput, len(league.Teams))
		}
		return league.Teams[id-1], nil

	case sel.Name != "":
		name := strings.ToLower(sel.Name)
		for _, t := range league.Teams {
			if strings.Contains(strings.ToLower(t.Name), name) {
				return t, nil
			}
		}
		return nil, fmt.Errorf("%w: team with name containing %q not found in league %d", ErrNotFound, sel.Name, league.ID)

	case sel.Owner != "":
		owner := strings.ToLower(sel.Owner)
		for _, t := range league.Teams {
			for _, o := range t.Owners {
				full := strings.ToLower(o.FirstName + " " + o.LastName + " " + o.DisplayName)
				if strings.Contains(full, owner) {
					return t, nil
				}
			}
		}
		return nil, fmt.Errorf("%w: team with owner containing %q not found in league %d", ErrNotFound, sel.Owner, league.ID)

	default:
		return nil, fmt.Errorf("%w: provide team_id, team_name, or owner to identify the team", ErrInvalidInput)
	}
}
