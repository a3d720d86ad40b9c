package bot

import (
	"sync"
	"time"

	"github.com/IJTechs/namedu-backend/internal/domain"
	"github.com/IJTechs/namedu-backend/internal/metrics"
)

// SessionStore holds one in-progress dialogue per originating chat.
//
// Updates for one bot arrive serially, so handlers never race on a single
// session; the mutex protects the map itself because several bots (and the
// HTTP layer's shutdown path) run concurrently in one process.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*domain.Session
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionStore creates a store. A zero ttl disables expiry.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[int64]*domain.Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Begin starts a fresh session for the chat, overwriting any session that
// already exists. One chat holds at most one dialogue.
func (s *SessionStore) Begin(chatID int64) *domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[chatID]; !exists {
		metrics.DialogueSessionsActive.Inc()
	}

	session := &domain.Session{
		ChatID:    chatID,
		Step:      domain.StepTitle,
		UpdatedAt: s.now(),
	}
	s.sessions[chatID] = session
	return session
}

// Get returns the chat's session, refreshing its activity timestamp.
// A session idle beyond the ttl is discarded as if it never existed.
func (s *SessionStore) Get(chatID int64) (*domain.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[chatID]
	if !ok {
		return nil, false
	}

	if s.ttl > 0 && s.now().Sub(session.UpdatedAt) > s.ttl {
		delete(s.sessions, chatID)
		metrics.DialogueSessionsActive.Dec()
		return nil, false
	}

	session.UpdatedAt = s.now()
	return session, true
}

// Delete removes the chat's session if present.
func (s *SessionStore) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[chatID]; ok {
		delete(s.sessions, chatID)
		metrics.DialogueSessionsActive.Dec()
	}
}

// Len returns the number of active sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
