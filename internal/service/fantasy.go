package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fantasydesk/espn-mcp/internal/leaguecache"
	"github.com/fantasydesk/espn-mcp/internal/models"
	"github.com/fantasydesk/espn-mcp/internal/query"
	"github.com/fantasydesk/espn-mcp/internal/session"
)

// FantasyService owns the session store and league cache and exposes one
// method per tool operation. Year 0 means the current season.
type FantasyService struct {
	sessions    *session.Store
	cache       *leaguecache.Cache
	defaultYear int
	now         func() time.Time
}

func NewFantasyService(sessions *session.Store, cache *leaguecache.Cache, defaultYear int) *FantasyService {
	return &FantasyService{
		sessions:    sessions,
		cache:       cache,
		defaultYear: defaultYear,
		now:         time.Now,
	}
}

// season resolves a year argument. Before July the football season still
// belongs to the previous calendar year.
func (s *FantasyService) season(year int) int {
	if year != 0 {
		return year
	}
	if s.defaultYear != 0 {
		return s.defaultYear
	}
	now := s.now()
	y := now.Year()
	if now.Month() < time.July {
		y--
	}
	return y
}

func (s *FantasyService) Authenticate(sessionID, espnS2, swid string) {
	s.sessions.Store(sessionID, models.Credential{ESPNS2: espnS2, SWID: swid})
	slog.Info("Stored credentials", "session", sessionID)
}

func (s *FantasyService) Logout(sessionID string) {
	s.sessions.Clear(sessionID)
	slog.Info("Cleared credentials", "session", sessionID)
}

type LeagueInfo struct {
	Name        string   `json:"name"`
	Year        int      `json:"year"`
	CurrentWeek int      `json:"current_week"`
	NFLWeek     int      `json:"nfl_week"`
	TeamCount   int      `json:"team_count"`
	Teams       []string `json:"teams"`
	ScoringType string   `json:"scoring_type"`
}

func (s *FantasyService) LeagueInfo(ctx context.Context, sessionID string, leagueID, year int) (*LeagueInfo, error) {
	league, err := s.cache.Get(ctx, sessionID, leagueID, s.season(year))
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(league.Teams))
	for _, t := range league.Teams {
		names = append(names, t.Name)
	}

	return &LeagueInfo{
		Name:        league.Name,
		Year:        league.Year,
		CurrentWeek: league.CurrentWeek,
		NFLWeek:     league.NFLWeek,
		TeamCount:   len(league.Teams),
		Teams:       names,
		ScoringType: league.ScoringType,
	}, nil
}

type TeamInfo struct {
	TeamID        int            `json:"team_id"`
	TeamName      string         `json:"team_name"`
	Owners        []models.Owner `json:"owner"`
	Wins          int            `json:"wins"`
	Losses        int            `json:"losses"`
	Ties          int            `json:"ties"`
	PointsFor     float64        `json:"points_for"`
	PointsAgainst float64        `json:"points_against"`
	Acquisitions  int            `json:"acquisitions"`
	Drops         int            `json:"drops"`
	Trades        int            `json:"trades"`
	PlayoffSeed   int            `json:"playoff_seed"`
	FinalStanding int            `json:"final_standing"`
	Outcomes      []string       `json:"outcomes"`
}

func (s *FantasyService) TeamInfo(ctx context.Context, sessionID string, leagueID, year int, sel query.TeamSelector) (*TeamInfo, error) {
	league, err := s.cache.Get(ctx, sessionID, leagueID, s.season(year))
	if err != nil {
		return nil, err
	}

	team, err := query.ResolveTeam(league, sel)
	if err != nil {
		return nil, err
	}

	return &TeamInfo{
		TeamID:        team.ID,
		TeamName:      team.Name,
		Owners:        team.Owners,
		Wins:          team.Wins,
		Losses:        team.Losses,
		Ties:          team.Ties,
		PointsFor:     team.PointsFor,
		PointsAgainst: team.PointsAgainst,
		Acquisitions:  team.Acquisitions,
		Drops:         team.Drops,
		Trades:        team.Trades,
		PlayoffSeed:   team.PlayoffSeed,
		FinalStanding: team.FinalStanding,
		Outcomes:      team.Outcomes,
	}, nil
}

type TeamRoster struct {
	TeamName string               `json:"team_name"`
	Owners   []models.Owner       `json:"owner"`
	Wins     int                  `json:"wins"`
	Losses   int                  `json:"losses"`
	Roster   []query.RosterPlayer `json:"roster"`
}

func (s *FantasyService) TeamRoster(ctx context.Context, sessionID string, leagueID, teamID, year int) (*TeamRoster, error) {
	league, err := s.cache.Get(ctx, sessionID, leagueID, s.season(year))
	if err != nil {
		return nil, err
	}

	team, err := query.ResolveTeam(league, query.TeamSelector{ID: &teamID})
	if err != nil {
		return nil, err
	}

	return &TeamRoster{
		TeamName: team.Name,
		Owners:   team.Owners,
		Wins:     team.Wins,
		Losses:   team.Losses,
		Roster:   query.ShapeRoster(team, league.NFLWeek),
	}, nil
}

type PlayerStats struct {
	Name              string                  `json:"name"`
	Position          string                  `json:"position"`
	Team              string                  `json:"team"`
	Points            float64                 `json:"points"`
	ProjectedPoints   float64                 `json:"projected_points"`
	Injured           bool                    `json:"injured"`
	SeasonStats       models.StatLine         `json:"season_stats"`
	WeeklyStats       map[int]models.StatLine `json:"weekly_stats,omitempty"`
	WeeklyProjections map[int]models.StatLine `json:"weekly_projections,omitempty"`
}

func (s *FantasyService) PlayerStats(ctx context.Context, sessionID string, leagueID int, playerName string, year int) (*PlayerStats, error) {
	league, err := s.cache.Get(ctx, sessionID, leagueID, s.season(year))
	if err != nil {
		return nil, err
	}

	player, _, err := query.FindPlayer(league, playerName)
	if err != nil {
		return nil, err
	}

	return &PlayerStats{
		Name:              player.Name,
		Position:          player.Position,
		Team:              player.ProTeam,
		Points:            player.TotalPoints,
		ProjectedPoints:   player.ProjectedTotalPoints,
		Injured:           player.Injured,
		SeasonStats:       player.SeasonStats,
		WeeklyStats:       player.WeekStats,
		WeeklyProjections: player.WeekProjections,
	}, nil
}

func (s *FantasyService) Standings(ctx context.Context, sessionID string, leagueID, year int) ([]query.StandingsRow, error) {
	league, err := s.cache.Get(ctx, sessionID, leagueID, s.season(year))
	if err != nil {
		return nil, err
	}
	return query.Standings(league), nil
}

type MatchupSummary struct {
	HomeTeamID        int     `json:"home_team_id"`
	HomeTeam          string  `json:"home_team"`
	HomeTeamOwnerName string  `json:"home_team_owner_name"`
	HomeScore         float64 `json:"home_score"`
	AwayTeamID        *int    `json:"away_team_id"`
	AwayTeam          string  `json:"away_team"`
	AwayTeamOwnerName string  `json:"away_team_owner_name,omitempty"`
	AwayScore         float64 `json:"away_score"`
	Winner            string  `json:"winner"`
}

func (s *FantasyService) WeeklyMatchups(ctx context.Context, sessionID string, leagueID int, week *int, year int) ([]MatchupSummary, error) {
	league, err := s.cache.Get(ctx, sessionID, leagueID, s.season(year))
	if err != nil {
		return nil, err
	}

	w := query.DefaultWeek(league)
	if week != nil {
		w = *week
	} else {
		slog.Info("No week provided, using previous week", "week", w)
	}
	if err := query.ValidateWeek(w); err != nil {
		return nil, err
	}

	boxScores, err := s.cache.BoxScores(ctx, sessionID, leagueID, league.Year, w)
	if err != nil {
		return nil, err
	}

	summaries := make([]MatchupSummary, 0, len(boxScores))
	for _, b := range boxScores {
		if b.HomeTeam == nil {
			continue
		}
		summaries = append(summaries, buildSummary(b))
	}
	return summaries, nil
}

func buildSummary(b *models.BoxScore) MatchupSummary {
	summary := MatchupSummary{
		HomeTeamID:        b.HomeTeam.ID,
		HomeTeam:          b.HomeTeam.Name,
		HomeTeamOwnerName: b.HomeTeam.OwnerName(),
		HomeScore:         b.HomeScore,
		AwayTeam:          "BYE",
		Winner:            query.MatchupWinner(b),
	}
	if b.AwayTeam != nil {
		awayID := b.AwayTeam.ID
		summary.AwayTeamID = &awayID
		summary.AwayTeam = b.AwayTeam.Name
		summary.AwayTeamOwnerName = b.AwayTeam.OwnerName()
		summary.AwayScore = b.AwayScore
	}
	return summary
}

type DetailedMatchup struct {
	MatchupSummary
	HomeLineup []query.PlayerLine `json:"home_lineup"`
	AwayLineup []query.PlayerLine `json:"away_lineup"`
}

func (s *FantasyService) DetailedMatchups(ctx context.Context, sessionID string, leagueID int, competitors []query.Competitor, week *int, year int) ([]DetailedMatchup, error) {
	if len(competitors) == 0 {
		return nil, fmt.Errorf("%w: no competitors provided; provide a list of team ids or names to filter matchups by", query.ErrInvalidInput)
	}

	league, err := s.cache.Get(ctx, sessionID, leagueID, s.season(year))
	if err != nil {
		return nil, err
	}

	w := query.DefaultWeek(league)
	if week != nil {
		w = *week
	}
	if err := query.ValidateWeek(w); err != nil {
		return nil, err
	}

	boxScores, err := s.cache.BoxScores(ctx, sessionID, leagueID, league.Year, w)
	if err != nil {
		return nil, err
	}

	filtered := query.FilterMatchupsByCompetitors(boxScores, competitors)

	detailed := make([]DetailedMatchup, 0, len(filtered))
	for _, b := range filtered {
		if b.HomeTeam == nil {
			continue
		}
		d := DetailedMatchup{
			MatchupSummary: buildSummary(b),
			HomeLineup:     query.ShapeLineup(b.HomeLineup, w, league.CurrentWeek),
			AwayLineup:     []query.PlayerLine{},
		}
		if b.AwayTeam != nil {
			d.AwayLineup = query.ShapeLineup(b.AwayLineup, w, league.CurrentWeek)
		}
		detailed = append(detailed, d)
	}
	return detailed, nil
}

type WhoHasResult struct {
	Found             bool    `json:"found"`
	PlayerName        string  `json:"player_name"`
	TeamName          string  `json:"team_name,omitempty"`
	TeamID            int     `json:"team_id,omitempty"`
	Position          string  `json:"position,omitempty"`
	ProTeam           string  `json:"pro_team,omitempty"`
	InjuryStatus      string  `json:"injury_status,omitempty"`
	LineupSlot        string  `json:"lineup_slot,omitempty"`
	SeasonTotalPoints float64 `json:"season_total_points,omitempty"`
}

func (s *FantasyService) WhoHasPlayer(ctx context.Context, sessionID string, leagueID int, playerName string, year int) (*WhoHasResult, error) {
	league, err := s.cache.Get(ctx, sessionID, leagueID, s.season(year))
	if err != nil {
		return nil, err
	}

	player, team, found := query.FindPlayerFuzzy(league, playerName)
	if !found {
		return &WhoHasResult{Found: false, PlayerName: playerName}, nil
	}

	return &WhoHasResult{
		Found:             true,
		PlayerName:        player.Name,
		TeamName:          team.Name,
		TeamID:            team.ID,
		Position:          player.Position,
		ProTeam:           player.ProTeam,
		InjuryStatus:      player.InjuryStatus,
		LineupSlot:        player.LineupSlot,
		SeasonTotalPoints: player.TotalPoints,
	}, nil
}

func (s *FantasyService) PlayersToMonitor(ctx context.Context, sessionID string, leagueID, year int) ([]query.TeamMonitorReport, error) {
	league, err := s.cache.Get(ctx, sessionID, leagueID, s.season(year))
	if err != nil {
		return nil, err
	}
	return query.PlayersToMonitor(league), nil
}
