package query

import (
	"fmt"
	"strings"

	"github.com/fantasydesk/espn-mcp/internal/models"
)

// maxWeek is the regular-plus-playoff week ceiling ESPN leagues run to.
const maxWeek = 17

// ValidateWeek rejects weeks outside [1, 17].
func ValidateWeek(week int) error {
	if week < 1 || week > maxWeek {
		return fmt.Errorf("%w: week must be between 1 and %d", ErrInvalidInput, maxWeek)
	}
	return nil
}

// DefaultWeek is the week used when the caller omits one: the previous week,
// when final scores are in. The in-progress week is queried by explicit
// argument only.
func DefaultWeek(league *models.League) int {
	return league.CurrentWeek - 1
}

// MatchupWinner derives HOME, AWAY, or TIE from the scores. A bye is never a
// tie: the away side's 0 is synthesized, not a real score, so the home team
// wins even at 0-0.
func MatchupWinner(b *models.BoxScore) string {
	if b.AwayTeam == nil {
		return "HOME"
	}
	switch {
	case b.HomeScore > b.AwayScore:
		return "HOME"
	case b.AwayScore > b.HomeScore:
		return "AWAY"
	default:
		return "TIE"
	}
}

// Competitor selects a matchup either by team id or by free text matched
// against "<team name> (<owner name>)" on either side.
type Competitor struct {
	TeamID int
	Text   string
}

// FilterMatchupsByCompetitors scans the matchups once per selector, in
// selector order, and returns each matched matchup once. A matchup named by
// two selectors keeps the position of its first match.
func FilterMatchupsByCompetitors(matchups []*models.BoxScore, competitors []Competitor) []*models.BoxScore {
	var filtered []*models.BoxScore
	seen := make(map[*models.BoxScore]bool)

	for _, c := range competitors {
		m := findMatchup(matchups, c)
		if m != nil && !seen[m] {
			seen[m] = true
			filtered = append(filtered, m)
		}
	}
	return filtered
}

func findMatchup(matchups []*models.BoxScore, c Competitor) *models.BoxScore {
	for _, m := range matchups {
		if c.TeamID != 0 {
			if m.HomeTeam != nil && m.HomeTeam.ID == c.TeamID {
				return m
			}
			if m.AwayTeam != nil && m.AwayTeam.ID == c.TeamID {
				return m
			}
			continue
		}

		term := strings.ToLower(c.Text)
		if strings.Contains(strings.ToLower(sideLabel(m.HomeTeam)), term) {
			return m
		}
		if strings.Contains(strings.ToLower(sideLabel(m.AwayTeam)), term) {
			return m
		}
	}
	return nil
}

func sideLabel(team *models.Team) string {
	if team == nil {
		return "BYE"
	}
	return fmt.Sprintf("%s (%s)", team.Name, team.OwnerName())
}
