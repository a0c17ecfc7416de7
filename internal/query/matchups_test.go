package query

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fantasydesk/espn-mcp/internal/models"
)

func TestValidateWeek(t *testing.T) {
	for _, week := range []int{1, 9, 17} {
		assert.NoError(t, ValidateWeek(week))
	}
	for _, week := range []int{0, 18, -3} {
		err := ValidateWeek(week)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestDefaultWeek(t *testing.T) {
	assert.Equal(t, 7, DefaultWeek(&models.League{CurrentWeek: 8}))
}

func TestMatchupWinner(t *testing.T) {
	home := &models.Team{ID: 1, Name: "Home"}
	away := &models.Team{ID: 2, Name: "Away"}

	t.Run("HomeWins", func(t *testing.T) {
		b := &models.BoxScore{HomeTeam: home, AwayTeam: away, HomeScore: 101.5, AwayScore: 87.4}
		assert.Equal(t, "HOME", MatchupWinner(b))
	})

	t.Run("AwayWins", func(t *testing.T) {
		b := &models.BoxScore{HomeTeam: home, AwayTeam: away, HomeScore: 87.4, AwayScore: 101.5}
		assert.Equal(t, "AWAY", MatchupWinner(b))
	})

	t.Run("EqualScoresTie", func(t *testing.T) {
		b := &models.BoxScore{HomeTeam: home, AwayTeam: away, HomeScore: 87.4, AwayScore: 87.4}
		assert.Equal(t, "TIE", MatchupWinner(b))
	})

	t.Run("ZeroZeroWithBothPresentTie", func(t *testing.T) {
		b := &models.BoxScore{HomeTeam: home, AwayTeam: away}
		assert.Equal(t, "TIE", MatchupWinner(b))
	})

	t.Run("ByeIsNeverATie", func(t *testing.T) {
		b := &models.BoxScore{HomeTeam: home, HomeScore: 0, AwayScore: 0}
		assert.Equal(t, "HOME", MatchupWinner(b))
	})
}

func weekMatchups() []*models.BoxScore {
	teams := []*models.Team{
		{ID: 1, Name: "UGF Pandas", Owners: []models.Owner{{FirstName: "Alice", LastName: "Smith"}}},
		{ID: 2, Name: "Beyond Cursed", Owners: []models.Owner{{FirstName: "Bob", LastName: "Jones"}}},
		{ID: 7, Name: "Coach Dad", Owners: []models.Owner{{FirstName: "Dana", LastName: "Smith"}}},
		{ID: 8, Name: "Team Vince", Owners: []models.Owner{{FirstName: "Vince", LastName: "Lee"}}},
	}
	return []*models.BoxScore{
		{HomeTeam: teams[0], AwayTeam: teams[1], HomeScore: 90, AwayScore: 80},
		{HomeTeam: teams[2], AwayTeam: teams[3], HomeScore: 70, AwayScore: 95},
	}
}

func TestFilterMatchupsByID(t *testing.T) {
	matchups := weekMatchups()

	filtered := FilterMatchupsByCompetitors(matchups, []Competitor{{TeamID: 8}})
	assert.Len(t, filtered, 1)
	assert.Same(t, matchups[1], filtered[0])
}

func TestFilterMatchupsByText(t *testing.T) {
	matchups := weekMatchups()

	// matches "Coach Dad (Dana Smith)" on the home side
	filtered := FilterMatchupsByCompetitors(matchups, []Competitor{{Text: "dana"}})
	assert.Len(t, filtered, 1)
	assert.Same(t, matchups[1], filtered[0])

	// owner text matches the first matchup in scan order
	filtered = FilterMatchupsByCompetitors(matchups, []Competitor{{Text: "smith"}})
	assert.Len(t, filtered, 1)
	assert.Same(t, matchups[0], filtered[0])
}

func TestFilterMatchupsDeduplicates(t *testing.T) {
	matchups := weekMatchups()

	// both selectors hit the same matchup; it appears once
	filtered := FilterMatchupsByCompetitors(matchups, []Competitor{{TeamID: 7}, {Text: "Vince"}})
	assert.Len(t, filtered, 1)
	assert.Same(t, matchups[1], filtered[0])
}

func TestFilterMatchupsPreservesFirstMatchOrder(t *testing.T) {
	matchups := weekMatchups()

	filtered := FilterMatchupsByCompetitors(matchups, []Competitor{{TeamID: 7}, {Text: "Pandas"}})
	assert.Len(t, filtered, 2)
	assert.Same(t, matchups[1], filtered[0])
	assert.Same(t, matchups[0], filtered[1])
}

func TestFilterMatchupsNoMatch(t *testing.T) {
	filtered := FilterMatchupsByCompetitors(weekMatchups(), []Competitor{{TeamID: 99}, {Text: "ghosts"}})
	assert.Empty(t, filtered)
}

func TestFilterMatchupsAtMostOnePerSelector(t *testing.T) {
	filtered := FilterMatchupsByCompetitors(weekMatchups(), []Competitor{{TeamID: 7}, {Text: "Smith"}})
	assert.LessOrEqual(t, len(filtered), 2)
}
