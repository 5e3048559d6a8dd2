// Package memory keeps sessions in process memory. Used by tests and
// local runs; state is gone when the process exits.
package memory

import (
	"context"
	"sync"

	"github.com/tventura/mibot/internal/domain"
)

type Store struct {
	mu       sync.RWMutex
	sessions map[domain.UserID]*domain.Session
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[domain.UserID]*domain.Session),
	}
}

// Load returns a copy of the stored session, or a fresh empty one for a
// user that has never talked to the bot.
func (s *Store) Load(ctx context.Context, userID domain.UserID) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return domain.NewSession(), nil
	}
	return sess.Clone(), nil
}

// Save stores a copy, so later mutations by the caller do not leak in.
func (s *Store) Save(ctx context.Context, userID domain.UserID, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[userID] = session.Clone()
	return nil
}

func (s *Store) Close() error {
	return nil
}
