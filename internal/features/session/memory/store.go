// Package memory is the default session store: a mutex-guarded map that
// lives and dies with the process.
package memory

import (
	"context"
	"sync"

	"election-tracker-backend/internal/features/session"
)

type Store struct {
	mu       sync.RWMutex
	sessions map[string]*session.Session
}

func New() *Store {
	return &Store{sessions: make(map[string]*session.Session)}
}

func (s *Store) Get(ctx context.Context, userID string) (*session.Session, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[userID]
	return sess, ok, nil
}

func (s *Store) Put(ctx context.Context, sess *session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.UserID] = sess
	return nil
}

func (s *Store) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}

func (s *Store) Each(ctx context.Context, fn func(*session.Session) bool) error {
	s.mu.RLock()
	snapshot := make([]*session.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		snapshot = append(snapshot, sess)
	}
	s.mu.RUnlock()

	for _, sess := range snapshot {
		if !fn(sess) {
			return nil
		}
	}
	return nil
}
