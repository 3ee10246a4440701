// Package session keeps per-user test progress in memory. A session
// belongs to exactly one browser via its cookie id and is never shared,
// so a plain map with a TTL sweep is all the state management needed.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jakob/vocabdrill/internal/logger"
	"github.com/jakob/vocabdrill/internal/models"
)

type entry struct {
	session   *models.TestSession
	expiresAt time.Time
}

type Store struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]entry
	log      *logger.Logger
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:      ttl,
		sessions: make(map[string]entry),
		log:      logger.Default().WithPrefix("session"),
	}
}

// Create stores a new session and returns its generated id.
func (s *Store) Create(sess *models.TestSession) string {
	id := uuid.NewString()
	sess.ID = id

	s.mu.Lock()
	s.sessions[id] = entry{session: sess, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()

	s.log.Debug("session created: id=%s, terms=%d", id, len(sess.TermKeys))
	return id
}

// Get returns the session for id, or nil when absent or expired.
func (s *Store) Get(id string) *models.TestSession {
	s.mu.RLock()
	e, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok || time.Now().After(e.expiresAt) {
		return nil
	}
	return e.session
}

// Put stores sess under id and refreshes its TTL.
func (s *Store) Put(id string, sess *models.TestSession) {
	sess.ID = id

	s.mu.Lock()
	s.sessions[id] = entry{session: sess, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()
}

// Delete removes the session for id.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	s.log.Debug("session deleted: id=%s", id)
}

// Len returns the number of stored sessions, expired or not.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// StartJanitor sweeps expired sessions until ctx is cancelled.
func (s *Store) StartJanitor(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				s.log.Debug("session janitor stopped")
				return
			case <-ticker.C:
				s.sweep()
			}
		}
	}()
}

func (s *Store) sweep() {
	now := time.Now()
	s.mu.Lock()
	removed := 0
	for id, e := range s.sessions {
		if now.After(e.expiresAt) {
			delete(s.sessions, id)
			removed++
		}
	}
	s.mu.Unlock()
	if removed > 0 {
		s.log.Debug("session janitor removed %d expired sessions", removed)
	}
}
