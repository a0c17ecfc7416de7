package session

import (
	"sync"

	"github.com/fantasydesk/espn-mcp/internal/models"
)

// Store keeps per-session ESPN credentials. Cookie validity is never checked
// here; the provider rejects bad cookies at fetch time.
type Store struct {
	mu    sync.RWMutex
	creds map[string]models.Credential
}

func NewStore() *Store {
	return &Store{creds: make(map[string]models.Credential)}
}

// Store overwrites any prior credential for the session.
func (s *Store) Store(sessionID string, cred models.Credential) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds[sessionID] = cred
}

// Clear removes the session's credential. Clearing an absent session is a
// no-op.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.creds, sessionID)
}

func (s *Store) Lookup(sessionID string) (models.Credential, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cred, ok := s.creds[sessionID]
	return cred, ok
}
