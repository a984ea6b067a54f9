package session

import (
	"context"
	"sync"
	"time"

	"vitrin/internal/models"
)

// MemoryStore keeps sessions in a map with a periodic TTL sweep. It is meant
// for development and tests; sessions do not survive a restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
	stop     chan struct{}
	stopOnce sync.Once
}

// NewMemoryStore returns a store sweeping expired sessions every interval.
// Pass a non-positive interval to disable the sweeper (tests).
func NewMemoryStore(sweepInterval time.Duration) *MemoryStore {
	s := &MemoryStore{
		sessions: make(map[string]models.Session),
		stop:     make(chan struct{}),
	}
	if sweepInterval > 0 {
		go s.janitor(sweepInterval)
	}
	return s
}

func (s *MemoryStore) Create(_ context.Context, sess *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.Token] = *sess
	return nil
}

func (s *MemoryStore) Get(_ context.Context, token string) (*models.Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if sess.Expired(time.Now()) {
		_ = s.Delete(context.Background(), token)
		return nil, nil
	}
	return &sess, nil
}

func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

// Close stops the sweeper goroutine. Safe to call more than once.
func (s *MemoryStore) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *MemoryStore) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for token, sess := range s.sessions {
				if sess.Expired(now) {
					delete(s.sessions, token)
				}
			}
			s.mu.Unlock()
		}
	}
}
