package query

import (
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/fantasydesk/espn-mcp/internal/models"
)

// FindPlayer scans rosters in team order for a case-insensitive substring
// match on the player's name. First match wins.
func FindPlayer(league *models.League, name string) (*models.Player, *models.Team, error) {
	term := strings.ToLower(name)
	for _, team := range league.Teams {
		for _, p := range team.Roster {
			if strings.Contains(strings.ToLower(p.Name), term) {
				return p, team, nil
			}
		}
	}
	return nil, nil, fmt.Errorf("%w: player %q not found in league %d", ErrNotFound, name, league.ID)
}

// FindPlayerFuzzy finds the rostered player whose name is most similar to
// the search term, tolerating misspellings. Similarity below 0.7 is no match.
func FindPlayerFuzzy(league *models.League, name string) (*models.Player, *models.Team, bool) {
	var bestPlayer *models.Player
	var bestTeam *models.Team
	bestScore := -1.0
	const threshold = 0.7

	for _, team := range league.Teams {
		for _, p := range team.Roster {
			fullName := strings.ToLower(p.Name)
			distance := fuzzy.LevenshteinDistance(strings.ToLower(name), fullName)
			maxLen := float64(max(len(name), len(fullName)))
			if maxLen == 0 {
				continue
			}
			similarity := 1 - float64(distance)/maxLen

			if similarity > threshold && similarity > bestScore {
				bestScore = similarity
				bestPlayer = p
				bestTeam = team
			}
		}
	}

	return bestPlayer, bestTeam, bestPlayer != nil
}

// PlayerToMonitor is a starting player carrying an injury designation.
type PlayerToMonitor struct {
	Name         string `json:"name"`
	Position     string `json:"position"`
	InjuryStatus string `json:"injury_status"`
}

type TeamMonitorReport struct {
	TeamName string            `json:"team_name"`
	Players  []PlayerToMonitor `json:"players"`
}

// PlayersToMonitor lists each team's starters who are questionable, doubtful,
// or out.
func PlayersToMonitor(league *models.League) []TeamMonitorReport {
	var report []TeamMonitorReport
	for _, team := range league.Teams {
		teamReport := TeamMonitorReport{TeamName: team.Name}
		for _, p := range team.Roster {
			if p.Starter && needsMonitoring(p.InjuryStatus) {
				teamReport.Players = append(teamReport.Players, PlayerToMonitor{
					Name:         p.Name,
					Position:     p.Position,
					InjuryStatus: p.InjuryStatus,
				})
			}
		}
		if len(teamReport.Players) > 0 {
			report = append(report, teamReport)
		}
	}
	return report
}

func needsMonitoring(status string) bool {
	return status == "QUESTIONABLE" || status == "DOUBTFUL" || status == "OUT"
}
