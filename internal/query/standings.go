package query

import (
	"sort"

	"github.com/fantasydesk/espn-mcp/internal/models"
)

type StandingsRow struct {
	Rank          int            `json:"rank"`
	TeamID        int            `json:"team_id"`
	TeamName      string         `json:"team_name"`
	Owners        []models.Owner `json:"owner"`
	Wins          int            `json:"wins"`
	Losses        int            `json:"losses"`
	PointsFor     float64        `json:"points_for"`
	PointsAgainst float64        `json:"points_against"`
}

// Standings ranks teams by wins then points-for, both descending. Teams tied
// on both keep their snapshot order.
func Standings(league *models.League) []StandingsRow {
	teams := make([]*models.Team, len(league.Teams))
	copy(teams, league.Teams)

	sort.SliceStable(teams, func(i, j int) bool {
		if teams[i].Wins != teams[j].Wins {
			return teams[i].Wins > teams[j].Wins
		}
		return teams[i].PointsFor > teams[j].PointsFor
	})

	rows := make([]StandingsRow, len(teams))
	for i, t := range teams {
		rows[i] = StandingsRow{
			Rank:          i + 1,
			TeamID:        t.ID,
			TeamName:      t.Name,
			Owners:        t.Owners,
			Wins:          t.Wins,
			Losses:        t.Losses,
			PointsFor:     t.PointsFor,
			PointsAgainst: t.PointsAgainst,
		}
	}
	return rows
}
