package service

import (
	"pixbot/internal/core/domain"
	"sync"
)

// SessionStore holds one session per chat. It only guards the map itself;
// callers serialize work per key, see Serializer.
type SessionStore struct {
	sessions map[domain.SessionKey]domain.Session
	mutex    sync.RWMutex
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[domain.SessionKey]domain.Session)}
}

// Get returns the session for key, creating an idle one on first use.
func (s *SessionStore) Get(key domain.SessionKey) domain.Session {
	s.mutex.RLock()
	session, ok := s.sessions[key]
	s.mutex.RUnlock()

	if ok {
		return session
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if session, ok = s.sessions[key]; ok {
		return session
	}

	s.sessions[key] = session
	return session
}

// Lookup returns the session for key without creating one.
func (s *SessionStore) Lookup(key domain.SessionKey) (domain.Session, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	session, ok := s.sessions[key]
	return session, ok
}

func (s *SessionStore) Update(key domain.SessionKey, session domain.Session) {
	s.mutex.Lock()
	s.sessions[key] = session
	s.mutex.Unlock()
}

func (s *SessionStore) Clear(key domain.SessionKey) {
	s.mutex.Lock()
	delete(s.sessions, key)
	s.mutex.Unlock()
}

func (s *SessionStore) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.sessions)
}
