package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/fantasydesk/espn-mcp/internal/models"
)

type API struct {
	client *Client
}

func NewAPI(client *Client) *API {
	return &API{client: client}
}

// FetchLeague retrieves a full league snapshot: settings, membership, team
// records and current rosters. Credentials may be empty for public leagues.
func (a *API) FetchLeague(ctx context.Context, leagueID, year int, cred models.Credential) (*models.League, error) {
	var resp LeagueResponse
	endpoint := fmt.Sprintf("/seasons/%d/segments/0/leagues/%d", year, leagueID)
	params := map[string]string{
		"view": "mSettings,mTeam,mRoster,mMatchup",
	}

	if err := a.client.Get(ctx, endpoint, params, nil, cred, &resp); err != nil {
		return nil, fmt.Errorf("fetching league %d: %w", leagueID, err)
	}

	return buildLeague(&resp, year), nil
}

// FetchBoxScores retrieves the matchups for one week, with full lineups for
// both sides. Box scores are not part of the snapshot and are fetched fresh
// on every call.
func (a *API) FetchBoxScores(ctx context.Context, league *models.League, week int, cred models.Credential) ([]*models.BoxScore, error) {
	var resp ScoreboardResponse
	endpoint := fmt.Sprintf("/seasons/%d/segments/0/leagues/%d", league.Year, league.ID)
	params := map[string]string{
		"view":            "mMatchupScore,mScoreboard",
		"scoringPeriodId": fmt.Sprintf("%d", week),
	}

	filters := map[string]interface{}{
		"schedule": map[string]interface{}{
			"filterMatchupPeriodIds": map[string]interface{}{
				"value": []int{week},
			},
		},
	}

	filtersJSON, err := json.Marshal(filters)
	if err != nil {
		return nil, fmt.Errorf("error marshalling filters: %w", err)
	}

	headers := map[string]string{
		"x-fantasy-filter": string(filtersJSON),
	}

	if err := a.client.Get(ctx, endpoint, params, headers, cred, &resp); err != nil {
		return nil, fmt.Errorf("fetching box scores for week %d: %w", week, err)
	}

	boxScores := make([]*models.BoxScore, 0, len(resp.Schedule))
	for _, match := range resp.Schedule {
		home := league.Team(match.Home.TeamID)
		if home == nil {
			// Undecided playoff slots have no home team assigned yet.
			continue
		}
		box := &models.BoxScore{
			HomeTeam:   home,
			HomeScore:  matchScore(match.Home),
			HomeLineup: buildLineup(match.Home.RosterForCurrentScoringPeriod.Entries),
		}
		if match.Away.TeamID != 0 {
			box.AwayTeam = league.Team(match.Away.TeamID)
			box.AwayScore = matchScore(match.Away)
			box.AwayLineup = buildLineup(match.Away.RosterForCurrentScoringPeriod.Entries)
		}
		boxScores = append(boxScores, box)
	}

	return boxScores, nil
}

func matchScore(side TeamScore) float64 {
	score := side.TotalPointsLive
	if score == 0 {
		score = side.TotalPoints
	}
	return math.Round(score*100) / 100
}

func buildLeague(resp *LeagueResponse, year int) *models.League {
	members := make(map[string]models.Owner, len(resp.Members))
	for _, m := range resp.Members {
		members[m.ID] = models.Owner{
			FirstName:   m.FirstName,
			LastName:    m.LastName,
			DisplayName: m.DisplayName,
		}
	}

	league := &models.League{
		ID:          resp.ID,
		Year:        year,
		Name:        resp.Settings.Name,
		ScoringType: resp.Settings.ScoringSettings.ScoringType,
		CurrentWeek: resp.Status.CurrentMatchupPeriod,
		NFLWeek:     resp.ScoringPeriodID,
	}

	for _, t := range resp.Teams {
		team := &models.Team{
			ID:            t.ID,
			Name:          t.Name,
			Abbreviation:  t.Abbreviation,
			Wins:          t.Record.Overall.Wins,
			Losses:        t.Record.Overall.Losses,
			Ties:          t.Record.Overall.Ties,
			PointsFor:     t.Record.Overall.PointsFor,
			PointsAgainst: t.Record.Overall.PointsAgainst,
			Acquisitions:  t.TransactionCounter.Acquisitions,
			Drops:         t.TransactionCounter.Drops,
			Trades:        t.TransactionCounter.Trades,
			PlayoffSeed:   t.PlayoffSeed,
			FinalStanding: t.RankCalculatedFinal,
		}
		for _, ownerID := range t.OwnerIDs {
			if owner, ok := members[ownerID]; ok {
				team.Owners = append(team.Owners, owner)
			}
		}
		team.Roster = buildLineup(t.Roster.Entries)
		league.Teams = append(league.Teams, team)
	}

	for _, match := range resp.Schedule {
		if home := league.Team(match.Home.TeamID); home != nil {
			home.Outcomes = append(home.Outcomes, outcome(match.Winner, true))
		}
		if match.Away.TeamID != 0 {
			if away := league.Team(match.Away.TeamID); away != nil {
				away.Outcomes = append(away.Outcomes, outcome(match.Winner, false))
			}
		}
	}

	return league
}

func outcome(winner string, home bool) string {
	switch winner {
	case "HOME":
		if home {
			return "W"
		}
		return "L"
	case "AWAY":
		if home {
			return "L"
		}
		return "W"
	case "TIE":
		return "T"
	default:
		return "U"
	}
}

func buildLineup(entries []RosterEntry) []*models.Player {
	players := make([]*models.Player, 0, len(entries))
	for _, entry := range entries {
		players = append(players, buildPlayer(entry))
	}
	return players
}

func buildPlayer(entry RosterEntry) *models.Player {
	p := entry.PlayerPoolEntry.Player
	player := &models.Player{
		ID:              p.ID,
		Name:            p.FullName,
		Position:        positionName(p.DefaultPositionID),
		ProTeam:         proTeamName(p.ProTeamID),
		Injured:         p.Injured,
		InjuryStatus:    p.InjuryStatus,
		LineupSlot:      lineupSlotName(entry.LineupSlotID),
		Starter:         isStartingSlot(entry.LineupSlotID),
		WeekStats:       make(map[int]models.StatLine),
		WeekProjections: make(map[int]models.StatLine),
	}

	for _, stat := range p.Stats {
		line := models.StatLine{
			Points:    stat.AppliedTotal,
			Breakdown: stat.AppliedStats,
		}
		switch {
		case stat.ScoringPeriodID == 0 && stat.StatSourceID == 0:
			player.TotalPoints = stat.AppliedTotal
			player.SeasonStats = line
		case stat.ScoringPeriodID == 0 && stat.StatSourceID == 1:
			player.ProjectedTotalPoints = stat.AppliedTotal
		case stat.StatSourceID == 0:
			player.WeekStats[stat.ScoringPeriodID] = line
		case stat.StatSourceID == 1:
			player.WeekProjections[stat.ScoringPeriodID] = line
		}
	}

	return player
}

func positionName(positionID int) string {
	positions := map[int]string{
		1: "QB", 2: "RB", 3: "WR", 4: "TE", 5: "K", 16: "D/ST",
	}
	if pos, ok := positions[positionID]; ok {
		return pos
	}
	return "Unknown"
}

func proTeamName(proTeamID int) string {
	teams := map[int]string{
		1: "ATL", 2: "BUF", 3: "CHI", 4: "CIN", 5: "CLE", 6: "DAL", 7: "DEN", 8: "DET",
		9: "GB", 10: "TEN", 11: "IND", 12: "KC", 13: "LV", 14: "LAR", 15: "MIA", 16: "MIN",
		17: "NE", 18: "NO", 19: "NYG", 20: "NYJ", 21: "PHI", 22: "ARI", 23: "PIT", 24: "LAC",
		25: "SF", 26: "SEA", 27: "TB", 28: "WSH", 29: "CAR", 30: "JAX", 33: "BAL", 34: "HOU",
	}

	if team, ok := teams[proTeamID]; ok {
		return team
	}

	return "Unknown"
}

func lineupSlotName(slotID int) string {
	switch slotID {
	case 0:
		return "QB"
	case 2:
		return "RB"
	case 4:
		return "WR"
	case 6:
		return "TE"
	case 16:
		return "D/ST"
	case 17:
		return "K"
	case 20:
		return "Bench"
	case 21:
		return "IR"
	case 23:
		return "FLEX"
	default:
		return "Unknown"
	}
}

func isStartingSlot(slotID int) bool {
	startingSlots := map[int]bool{
		0:  true,  // QB
		2:  true,  // RB
		4:  true,  // WR
		6:  true,  // TE
		16: true,  // D/ST
		17: true,  // K
		20: false, // Bench
		21: false, // IR
		23: true,  // FLEX
	}
	return startingSlots[slotID]
}
