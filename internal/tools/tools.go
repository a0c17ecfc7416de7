package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/fantasydesk/espn-mcp/internal/api/espn"
	"github.com/fantasydesk/espn-mcp/internal/query"
	"github.com/fantasydesk/espn-mcp/internal/service"
)

// SessionID scopes credentials and cached leagues. The current deployment
// runs a single fixed session; the stores underneath support more.
const SessionID = "default_session"

const authRequiredMessage = "This appears to be a private league. Please use the authenticate tool first with your ESPN_S2 and SWID cookies to access private leagues."

type AuthenticateArgs struct {
	ESPNS2 string `json:"espn_s2" jsonschema:"The ESPN_S2 cookie value from your ESPN account (required)"`
	SWID   string `json:"swid" jsonschema:"The SWID cookie value from your ESPN account (required)"`
}

type LogoutArgs struct{}

type LeagueArgs struct {
	LeagueID int `json:"league_id" jsonschema:"ESPN fantasy football league id (required)"`
	Year     int `json:"year,omitempty" jsonschema:"Season year (0 = current season)"`
}

type TeamInfoArgs struct {
	LeagueID int    `json:"league_id" jsonschema:"ESPN fantasy football league id (required)"`
	TeamID   *int   `json:"team_id,omitempty" jsonschema:"Team id to search for (1-based, usually 1-12)"`
	TeamName string `json:"team_name,omitempty" jsonschema:"Team name to search for (case-insensitive substring)"`
	Owner    string `json:"owner,omitempty" jsonschema:"Owner name to search for (case-insensitive substring)"`
	Year     int    `json:"year,omitempty" jsonschema:"Season year (0 = current season)"`
}

type TeamRosterArgs struct {
	LeagueID int `json:"league_id" jsonschema:"ESPN fantasy football league id (required)"`
	TeamID   int `json:"team_id" jsonschema:"Team id (1-based, usually 1-12) (required)"`
	Year     int `json:"year,omitempty" jsonschema:"Season year (0 = current season)"`
}

type PlayerArgs struct {
	LeagueID   int    `json:"league_id" jsonschema:"ESPN fantasy football league id (required)"`
	PlayerName string `json:"player_name" jsonschema:"Name of the player to search for (required)"`
	Year       int    `json:"year,omitempty" jsonschema:"Season year (0 = current season)"`
}

type MatchupsArgs struct {
	LeagueID int  `json:"league_id" jsonschema:"ESPN fantasy football league id (required)"`
	Week     *int `json:"week,omitempty" jsonschema:"Week number (omit for the previous week)"`
	Year     int  `json:"year,omitempty" jsonschema:"Season year (0 = current season)"`
}

type DetailedMatchupArgs struct {
	LeagueID    int   `json:"league_id" jsonschema:"ESPN fantasy football league id (required)"`
	Competitors []any `json:"competitors" jsonschema:"Team ids or team/owner names to filter matchups by (required)"`
	Week        *int  `json:"week,omitempty" jsonschema:"Week number (omit for the previous week)"`
	Year        int   `json:"year,omitempty" jsonschema:"Season year (0 = current season)"`
}

// Register wires every tool onto the server. Handlers never return a Go
// error for domain failures; every failure becomes a descriptive string so
// nothing faults past the tool boundary.
func Register(server *mcp.Server, svc *service.FantasyService) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "authenticate",
		Description: "Store ESPN authentication credentials for this session. Done automatically on server start when a secrets file exists.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args AuthenticateArgs) (*mcp.CallToolResult, any, error) {
		svc.Authenticate(SessionID, args.ESPNS2, args.SWID)
		return textResult("Authentication successful. Your credentials are stored for this session only."), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "logout",
		Description: "Clear stored authentication credentials for this session.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args LogoutArgs) (*mcp.CallToolResult, any, error) {
		svc.Logout(SessionID)
		return textResult("Authentication credentials have been cleared."), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_league_info",
		Description: "Get basic information about a fantasy football league.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args LeagueArgs) (*mcp.CallToolResult, any, error) {
		if args.LeagueID == 0 {
			return requiredError("league_id"), nil, nil
		}
		info, err := svc.LeagueInfo(ctx, SessionID, args.LeagueID, args.Year)
		return result(info, err, "retrieving league")
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_league_standings",
		Description: "Get current standings for a league, ranked by record and points scored.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args LeagueArgs) (*mcp.CallToolResult, any, error) {
		if args.LeagueID == 0 {
			return requiredError("league_id"), nil, nil
		}
		standings, err := svc.Standings(ctx, SessionID, args.LeagueID, args.Year)
		return result(standings, err, "retrieving league standings")
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_team_info",
		Description: "Get a team's general information using its id, team name, or owner's name. Must include one of the three. Includes points scored, transactions, and weekly outcomes.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args TeamInfoArgs) (*mcp.CallToolResult, any, error) {
		if args.LeagueID == 0 {
			return requiredError("league_id"), nil, nil
		}
		sel := query.TeamSelector{ID: args.TeamID, Name: args.TeamName, Owner: args.Owner}
		info, err := svc.TeamInfo(ctx, SessionID, args.LeagueID, args.Year, sel)
		return result(info, err, "retrieving team info")
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_team_roster",
		Description: "Get a team's current roster with season, current-week, and projected stats for every player.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args TeamRosterArgs) (*mcp.CallToolResult, any, error) {
		if args.LeagueID == 0 {
			return requiredError("league_id"), nil, nil
		}
		roster, err := svc.TeamRoster(ctx, SessionID, args.LeagueID, args.TeamID, args.Year)
		return result(roster, err, "retrieving team roster")
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_player_stats",
		Description: "Get stats for a specific rostered player, matched by name substring.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args PlayerArgs) (*mcp.CallToolResult, any, error) {
		if args.LeagueID == 0 {
			return requiredError("league_id"), nil, nil
		}
		if args.PlayerName == "" {
			return requiredError("player_name"), nil, nil
		}
		stats, err := svc.PlayerStats(ctx, SessionID, args.LeagueID, args.PlayerName, args.Year)
		return result(stats, err, "retrieving player stats")
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_weekly_matchups",
		Description: "Get basic matchup information for all matchups in a specific week, including team names, owners, scores, and winners.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args MatchupsArgs) (*mcp.CallToolResult, any, error) {
		if args.LeagueID == 0 {
			return requiredError("league_id"), nil, nil
		}
		matchups, err := svc.WeeklyMatchups(ctx, SessionID, args.LeagueID, args.Week, args.Year)
		return result(matchups, err, "retrieving matchup information")
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_detailed_matchup_info",
		Description: "Get detailed matchup information for a specific week and list of competitors, including lineups and player stats.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args DetailedMatchupArgs) (*mcp.CallToolResult, any, error) {
		if args.LeagueID == 0 {
			return requiredError("league_id"), nil, nil
		}
		competitors, err := parseCompetitors(args.Competitors)
		if err != nil {
			return toolError(err, "retrieving matchup information"), nil, nil
		}
		matchups, err := svc.DetailedMatchups(ctx, SessionID, args.LeagueID, competitors, args.Week, args.Year)
		return result(matchups, err, "retrieving matchup information")
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "who_has_player",
		Description: "Find which team has a player, tolerating misspelled names.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args PlayerArgs) (*mcp.CallToolResult, any, error) {
		if args.LeagueID == 0 {
			return requiredError("league_id"), nil, nil
		}
		if args.PlayerName == "" {
			return requiredError("player_name"), nil, nil
		}
		res, err := svc.WhoHasPlayer(ctx, SessionID, args.LeagueID, args.PlayerName, args.Year)
		return result(res, err, "searching for player")
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_players_to_monitor",
		Description: "List each team's starters carrying an injury designation (questionable, doubtful, or out).",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args LeagueArgs) (*mcp.CallToolResult, any, error) {
		if args.LeagueID == 0 {
			return requiredError("league_id"), nil, nil
		}
		report, err := svc.PlayersToMonitor(ctx, SessionID, args.LeagueID, args.Year)
		return result(report, err, "retrieving players to monitor")
	})
}

// parseCompetitors coerces the mixed id/name selector list. JSON numbers
// arrive as float64.
func parseCompetitors(raw []any) ([]query.Competitor, error) {
	competitors := make([]query.Competitor, 0, len(raw))
	for _, v := range raw {
		switch c := v.(type) {
		case float64:
			competitors = append(competitors, query.Competitor{TeamID: int(c)})
		case int:
			competitors = append(competitors, query.Competitor{TeamID: c})
		case string:
			competitors = append(competitors, query.Competitor{Text: c})
		default:
			return nil, fmt.Errorf("%w: competitors must be team ids or names, got %T", query.ErrInvalidInput, v)
		}
	}
	return competitors, nil
}

func result(v any, err error, op string) (*mcp.CallToolResult, any, error) {
	if err != nil {
		return toolError(err, op), nil, nil
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError(err, op), nil, nil
	}
	return textResult(string(b)), nil, nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func toolError(err error, op string) *mcp.CallToolResult {
	text := fmt.Sprintf("Error %s: %v", op, err)
	if espn.IsAuthError(err) {
		text = authRequiredMessage
	}
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func requiredError(field string) *mcp.CallToolResult {
	return toolError(fmt.Errorf("%w: %s is required", query.ErrInvalidInput, field), "validating arguments")
}
