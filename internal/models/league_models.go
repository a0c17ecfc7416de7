package models

// Credential holds the ESPN auth cookies for one session. Both fields empty
// means public-league access.
type Credential struct {
	ESPNS2 string
	SWID   string
}

func (c Credential) Empty() bool {
	return c.ESPNS2 == "" && c.SWID == ""
}

// League is an immutable snapshot of one league/year. Box scores are fetched
// on demand and are not part of the snapshot.
type League struct {
	ID          int
	Year        int
	Name        string
	ScoringType string
	CurrentWeek int // current matchup period
	NFLWeek     int // current NFL scoring period
	Teams       []*Team
}

// Team returns the team with the given 1-based id, or nil.
func (l *League) Team(id int) *Team {
	for _, t := range l.Teams {
		if t.ID == id {
			return t
		}
	}
	return nil
}

type Owner struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DisplayName string `json:"displayName"`
}

func (o Owner) FullName() string {
	return o.FirstName + " " + o.LastName
}

type Team struct {
	ID            int
	Name          string
	Abbreviation  string
	Owners        []Owner
	Wins          int
	Losses        int
	Ties          int
	PointsFor     float64
	PointsAgainst float64
	Acquisitions  int
	Drops         int
	Trades        int
	PlayoffSeed   int
	FinalStanding int
	Outcomes      []string // W/L/T/U per matchup period, in schedule order
	Roster        []*Player
}

// OwnerName is the primary owner's full name, empty for unowned teams.
func (t *Team) OwnerName() string {
	if len(t.Owners) == 0 {
		return ""
	}
	return t.Owners[0].FullName()
}

// StatLine is one applied stat block: total fantasy points plus the
// per-category breakdown.
type StatLine struct {
	Points    float64            `json:"points"`
	Breakdown map[string]float64 `json:"breakdown,omitempty"`
}

type Player struct {
	ID                   int
	Name                 string
	Position             string
	ProTeam              string
	InjuryStatus         string
	Injured              bool
	LineupSlot           string
	Starter              bool
	TotalPoints          float64 // season actual
	ProjectedTotalPoints float64 // season projection
	SeasonStats          StatLine
	WeekStats            map[int]StatLine // actuals keyed by scoring period
	WeekProjections      map[int]StatLine // projections keyed by scoring period
}

// HasStats reports whether the provider returned any stat block at all for
// the player. Players on bye or newly added can come back empty.
func (p *Player) HasStats() bool {
	return p.TotalPoints != 0 || len(p.SeasonStats.Breakdown) > 0 ||
		len(p.WeekStats) > 0 || len(p.WeekProjections) > 0
}

// BoxScore is one weekly matchup. A nil AwayTeam is a bye; the away score is
// forced to 0 in that case.
type BoxScore struct {
	HomeTeam   *Team
	AwayTeam   *Team
	HomeScore  float64
	AwayScore  float64
	HomeLineup []*Player
	AwayLineup []*Player
}
