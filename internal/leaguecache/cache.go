package leaguecache

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/fantasydesk/espn-mcp/internal/models"
	"github.com/fantasydesk/espn-mcp/internal/session"
)

// Provider is the league data source. Implemented by espn.API; tests swap in
// counting fakes.
type Provider interface {
	FetchLeague(ctx context.Context, leagueID, year int, cred models.Credential) (*models.League, error)
	FetchBoxScores(ctx context.Context, league *models.League, week int, cred models.Credential) ([]*models.BoxScore, error)
}

// key identifies one cached snapshot. Credentials are part of the key so a
// session that re-authenticates, or queries the same league without auth,
// never sees a snapshot fetched under different cookies.
type key struct {
	leagueID int
	year     int
	espnS2   string
	swid     string
}

// String is the singleflight key. Credentials are quoted so a separator
// inside a cookie value cannot collide with another key.
func (k key) String() string {
	return fmt.Sprintf("%d|%d|%q|%q", k.leagueID, k.year, k.espnS2, k.swid)
}

// Cache memoizes league snapshots per (league, year, credential). There is no
// eviction and no TTL: a season's league composition is effectively static
// within a process lifetime.
type Cache struct {
	sessions *session.Store
	provider Provider
	group    singleflight.Group

	mu      sync.RWMutex
	leagues map[key]*models.League
}

func New(provider Provider, sessions *session.Store) *Cache {
	return &Cache{
		sessions: sessions,
		provider: provider,
		leagues:  make(map[key]*models.League),
	}
}

// Get returns the cached snapshot for the session's credentials, fetching it
// once on a miss. Concurrent misses for the same key collapse into a single
// provider call; distinct keys fetch in parallel. A failed fetch leaves no
// cache entry, so the next call retries from scratch.
func (c *Cache) Get(ctx context.Context, sessionID string, leagueID, year int) (*models.League, error) {
	cred, _ := c.sessions.Lookup(sessionID)
	k := key{leagueID: leagueID, year: year, espnS2: cred.ESPNS2, swid: cred.SWID}

	c.mu.RLock()
	league, ok := c.leagues[k]
	c.mu.RUnlock()
	if ok {
		return league, nil
	}

	v, err, _ := c.group.Do(k.String(), func() (interface{}, error) {
		c.mu.RLock()
		league, ok := c.leagues[k]
		c.mu.RUnlock()
		if ok {
			return league, nil
		}

		slog.Info("Fetching league", "league_id", leagueID, "year", year)
		league, err := c.provider.FetchLeague(ctx, leagueID, year, cred)
		if err != nil {
			return nil, err
		}

		// The raw provider data can pad team names with whitespace.
		for _, t := range league.Teams {
			t.Name = strings.TrimSpace(t.Name)
		}

		c.mu.Lock()
		c.leagues[k] = league
		c.mu.Unlock()
		return league, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.League), nil
}

// BoxScores fetches one week's matchups under the session's credentials. Box
// scores are not cached; only the league snapshot is.
func (c *Cache) BoxScores(ctx context.Context, sessionID string, leagueID, year, week int) ([]*models.BoxScore, error) {
	league, err := c.Get(ctx, sessionID, leagueID, year)
	if err != nil {
		return nil, err
	}
	cred, _ := c.sessions.Lookup(sessionID)
	return c.provider.FetchBoxScores(ctx, league, week, cred)
}
