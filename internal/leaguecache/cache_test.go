package leaguecache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fantasydesk/espn-mcp/internal/models"
	"github.com/fantasydesk/espn-mcp/internal/session"
)

type fakeProvider struct {
	mu         sync.Mutex
	fetches    int64
	err        error
	lastCred   models.Credential
	teamNames  []string
	boxFetches int64
}

func (f *fakeProvider) FetchLeague(ctx context.Context, leagueID, year int, cred models.Credential) (*models.League, error) {
	atomic.AddInt64(&f.fetches, 1)
	f.mu.Lock()
	f.lastCred = cred
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	names := f.teamNames
	if names == nil {
		names = []string{"Team One", "Team Two"}
	}
	league := &models.League{ID: leagueID, Year: year, CurrentWeek: 5}
	for i, name := range names {
		league.Teams = append(league.Teams, &models.Team{ID: i + 1, Name: name})
	}
	return league, nil
}

func (f *fakeProvider) FetchBoxScores(ctx context.Context, league *models.League, week int, cred models.Credential) ([]*models.BoxScore, error) {
	atomic.AddInt64(&f.boxFetches, 1)
	if f.err != nil {
		return nil, f.err
	}
	return []*models.BoxScore{{HomeTeam: league.Teams[0], HomeScore: 100}}, nil
}

func TestGetCachesSnapshot(t *testing.T) {
	provider := &fakeProvider{}
	cache := New(provider, session.NewStore())

	first, err := cache.Get(context.Background(), "sess", 1234, 2025)
	require.NoError(t, err)

	second, err := cache.Get(context.Background(), "sess", 1234, 2025)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.EqualValues(t, 1, atomic.LoadInt64(&provider.fetches))
}

func TestDistinctCredentialsGetDistinctEntries(t *testing.T) {
	provider := &fakeProvider{}
	sessions := session.NewStore()
	cache := New(provider, sessions)

	first, err := cache.Get(context.Background(), "sess", 1234, 2025)
	require.NoError(t, err)
	assert.True(t, provider.lastCred.Empty())

	sessions.Store("sess", models.Credential{ESPNS2: "s2", SWID: "swid"})
	second, err := cache.Get(context.Background(), "sess", 1234, 2025)
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.EqualValues(t, 2, atomic.LoadInt64(&provider.fetches))
	assert.Equal(t, "s2", provider.lastCred.ESPNS2)

	// back to the original credential set hits the first entry again
	sessions.Clear("sess")
	third, err := cache.Get(context.Background(), "sess", 1234, 2025)
	require.NoError(t, err)
	assert.Same(t, first, third)
	assert.EqualValues(t, 2, atomic.LoadInt64(&provider.fetches))
}

func TestKeyStringSeparatesCredentialFields(t *testing.T) {
	a := key{leagueID: 1, year: 2025, espnS2: "a|b", swid: "c"}
	b := key{leagueID: 1, year: 2025, espnS2: "a", swid: "b|c"}
	assert.NotEqual(t, a.String(), b.String())
}

func TestDistinctLeaguesAndYearsGetDistinctEntries(t *testing.T) {
	provider := &fakeProvider{}
	cache := New(provider, session.NewStore())

	a, err := cache.Get(context.Background(), "sess", 1234, 2025)
	require.NoError(t, err)
	b, err := cache.Get(context.Background(), "sess", 1234, 2024)
	require.NoError(t, err)
	c, err := cache.Get(context.Background(), "sess", 5678, 2025)
	require.NoError(t, err)

	assert.NotSame(t, a, b)
	assert.NotSame(t, a, c)
	assert.EqualValues(t, 3, atomic.LoadInt64(&provider.fetches))
}

func TestTeamNamesTrimmed(t *testing.T) {
	provider := &fakeProvider{teamNames: []string{"  Padded Name  ", "Clean"}}
	cache := New(provider, session.NewStore())

	league, err := cache.Get(context.Background(), "sess", 1234, 2025)
	require.NoError(t, err)

	assert.Equal(t, "Padded Name", league.Teams[0].Name)
	assert.Equal(t, "Clean", league.Teams[1].Name)
}

func TestFailedFetchIsNotCached(t *testing.T) {
	provider := &fakeProvider{err: errors.New("401 Private league")}
	cache := New(provider, session.NewStore())

	_, err := cache.Get(context.Background(), "sess", 1234, 2025)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")

	// the next call retries from scratch
	provider.err = nil
	_, err = cache.Get(context.Background(), "sess", 1234, 2025)
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt64(&provider.fetches))
}

func TestConcurrentMissesFetchOnce(t *testing.T) {
	provider := &fakeProvider{}
	cache := New(provider, session.NewStore())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := cache.Get(context.Background(), "sess", 1234, 2025)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt64(&provider.fetches))
}

func TestBoxScoresNotCached(t *testing.T) {
	provider := &fakeProvider{}
	cache := New(provider, session.NewStore())

	_, err := cache.BoxScores(context.Background(), "sess", 1234, 2025, 3)
	require.NoError(t, err)
	_, err = cache.BoxScores(context.Background(), "sess", 1234, 2025, 3)
	require.NoError(t, err)

	assert.EqualValues(t, 1, atomic.LoadInt64(&provider.fetches))
	assert.EqualValues(t, 2, atomic.LoadInt64(&provider.boxFetches))
}
