package query

import "github.com/fantasydesk/espn-mcp/internal/models"

// PlayerLine is one lineup entry in a detailed matchup. The optional totals
// are pointers so "absent" and "present" are explicit in the schema; they are
// only populated for nonzero values, matching what existing consumers expect.
type PlayerLine struct {
	Name                       string           `json:"name"`
	Position                   string           `json:"position"`
	ProTeam                    string           `json:"proTeam"`
	InjuryStatus               string           `json:"injuryStatus"`
	SeasonTotalPoints          *float64         `json:"season_total_points,omitempty"`
	ProjectedSeasonTotalPoints *float64         `json:"projected_season_total_points,omitempty"`
	LineupSlot                 string           `json:"lineupSlot"`
	SeasonStats                *models.StatLine `json:"season_stats,omitempty"`
	WeeklyStats                *models.StatLine `json:"weekly_stats,omitempty"`
	ProjectedStats             *models.StatLine `json:"projected_stats,omitempty"`
}

// ShapeLineup projects a lineup's stat blocks for one week. The shape is
// decided by whether the requested week is the league's live week: the live
// week carries season, weekly, and projected lines; a historical week carries
// the weekly line only.
func ShapeLineup(lineup []*models.Player, week, currentWeek int) []PlayerLine {
	shaped := make([]PlayerLine, 0, len(lineup))
	for _, p := range lineup {
		shaped = append(shaped, shapePlayer(p, week, week == currentWeek))
	}
	return shaped
}

func shapePlayer(p *models.Player, week int, isCurrentWeek bool) PlayerLine {
	line := PlayerLine{
		Name:                       p.Name,
		Position:                   p.Position,
		ProTeam:                    p.ProTeam,
		InjuryStatus:               p.InjuryStatus,
		LineupSlot:                 p.LineupSlot,
		SeasonTotalPoints:          nonzero(p.TotalPoints),
		ProjectedSeasonTotalPoints: nonzero(p.ProjectedTotalPoints),
	}

	if !p.HasStats() {
		return line
	}

	if isCurrentWeek {
		season := p.SeasonStats
		weekly := p.WeekStats[week]
		projected := p.WeekProjections[week]
		line.SeasonStats = &season
		line.WeeklyStats = &weekly
		line.ProjectedStats = &projected
	} else if weekly, ok := p.WeekStats[week]; ok {
		line.WeeklyStats = &weekly
	}

	return line
}

// RosterPlayer is one roster entry with the live-week stat blocks, labeled
// the way the roster tool has always reported them.
type RosterPlayer struct {
	Name                       string          `json:"name"`
	Position                   string          `json:"position"`
	ProTeam                    string          `json:"proTeam"`
	InjuryStatus               string          `json:"injuryStatus"`
	SeasonTotalPoints          *float64        `json:"season_total_points,omitempty"`
	ProjectedSeasonTotalPoints *float64        `json:"projected_season_total_points,omitempty"`
	SeasonStats                models.StatLine `json:"season_stats"`
	CurrentWeekStats           models.StatLine `json:"current_week_stats"`
	NextWeekProjectedStats     models.StatLine `json:"next_week_projected_stats"`
}

// ShapeRoster projects a team's roster against the league's live week.
func ShapeRoster(team *models.Team, currentWeek int) []RosterPlayer {
	roster := make([]RosterPlayer, 0, len(team.Roster))
	for _, p := range team.Roster {
		roster = append(roster, RosterPlayer{
			Name:                       p.Name,
			Position:                   p.Position,
			ProTeam:                    p.ProTeam,
			InjuryStatus:               p.InjuryStatus,
			SeasonTotalPoints:          nonzero(p.TotalPoints),
			ProjectedSeasonTotalPoints: nonzero(p.ProjectedTotalPoints),
			SeasonStats:                p.SeasonStats,
			CurrentWeekStats:           p.WeekStats[currentWeek],
			NextWeekProjectedStats:     p.WeekProjections[currentWeek],
		})
	}
	return roster
}

func nonzero(v float64) *float64 {
	if v == 0 {
		return nil
	}
	return &v
}
