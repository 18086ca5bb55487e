package session

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

// Store holds the active HTTP sessions keyed by id.
type Store struct {
	sessions map[string]*Session
	mu       sync.RWMutex
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
	}
}

// Create registers a new session under a fresh random id.
func (st *Store) Create() *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	id := uuid.NewString()
	for st.sessions[id] != nil {
		id = uuid.NewString()
	}

	s := newSession(id)
	st.sessions[id] = s
	return s
}

// Get looks a session up by id and marks it as accessed.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	s.Touch()
	return s, nil
}

// Remove closes a session and forgets its id.
func (st *Store) Remove(id string) error {
	st.mu.Lock()
	s, ok := st.sessions[id]
	if ok {
		delete(st.sessions, id)
	}
	st.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	s.close()
	return nil
}

// List returns the active sessions, oldest first.
func (st *Store) List() []*Session {
	st.mu.RLock()
	result := make([]*Session, 0, len(st.sessions))
	for _, s := range st.sessions {
		result = append(result, s)
	}
	st.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

// Count returns the number of active sessions
func (st *Store) Count() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// CleanupExpired removes sessions that haven't been accessed within maxAge
// and returns their ids.
func (st *Store) CleanupExpired(maxAge time.Duration) []string {
	cutoff := time.Now().Add(-maxAge)

	st.mu.Lock()
	var expired []*Session
	for id, s := range st.sessions {
		if s.LastAccessedAt().Before(cutoff) {
			delete(st.sessions, id)
			expired = append(expired, s)
		}
	}
	st.mu.Unlock()

	ids := make([]string, 0, len(expired))
	for _, s := range expired {
		s.close()
		ids = append(ids, s.id)
	}
	sort.Strings(ids)
	return ids
}
