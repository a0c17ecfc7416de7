package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fantasydesk/espn-mcp/internal/models"
)

func testLeague() *models.League {
	return &models.League{
		ID:          4242,
		Year:        2025,
		CurrentWeek: 8,
		Teams: []*models.Team{
			{
				ID: 1, Name: "UGF Pandas", Wins: 5, PointsFor: 100,
				Owners: []models.Owner{{FirstName: "Alice", LastName: "Smith", DisplayName: "asmith"}},
			},
			{
				ID: 2, Name: "Beyond Cursed", Wins: 5, PointsFor: 120,
				Owners: []models.Owner{{FirstName: "Bob", LastName: "Jones", DisplayName: "bjones99"}},
			},
			{
				ID: 3, Name: "Stairway to Evans", Wins: 6, PointsFor: 10,
				Owners: []models.Owner{{FirstName: "Carol", LastName: "Nguyen", DisplayName: "cnguyen"}},
			},
		},
	}
}

func intPtr(v int) *int { return &v }

func TestResolveTeamByID(t *testing.T) {
	league := testLeague()

	team, err := ResolveTeam(league, TeamSelector{ID: intPtr(2)})
	require.NoError(t, err)
	assert.Equal(t, "Beyond Cursed", team.Name)
}

func TestResolveTeamByIDOutOfRange(t *testing.T) {
	league := testLeague()

	for _, id := range []int{0, 4, -1} {
		_, err := ResolveTeam(league, TeamSelector{ID: intPtr(id)})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Contains(t, err.Error(), "between 1 and 3")
	}
}

func TestResolveTeamByName(t *testing.T) {
	league := testLeague()

	team, err := ResolveTeam(league, TeamSelector{Name: "cursed"})
	require.NoError(t, err)
	assert.Equal(t, 2, team.ID)

	_, err = ResolveTeam(league, TeamSelector{Name: "no such team"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveTeamByNameFirstMatchWins(t *testing.T) {
	league := testLeague()
	league.Teams[2].Name = "Cursed Again"

	team, err := ResolveTeam(league, TeamSelector{Name: "cursed"})
	require.NoError(t, err)
	assert.Equal(t, 2, team.ID)
}

func TestResolveTeamByOwner(t *testing.T) {
	league := testLeague()

	team, err := ResolveTeam(league, TeamSelector{Owner: "bjones"})
	require.NoError(t, err)
	assert.Equal(t, 2, team.ID)

	// matches against first, last, and display names
	team, err = ResolveTeam(league, TeamSelector{Owner: "NGUYEN"})
	require.NoError(t, err)
	assert.Equal(t, 3, team.ID)

	_, err = ResolveTeam(league, TeamSelector{Owner: "nobody"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveTeamNoSelector(t *testing.T) {
	_, err := ResolveTeam(testLeague(), TeamSelector{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "team_id")
	assert.Contains(t, err.Error(), "team_name")
	assert.Contains(t, err.Error(), "owner")
}
