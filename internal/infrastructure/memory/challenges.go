package memory

import (
	"context"
	"sync"
	"time"

	"github.com/event-ops-api/internal/domain"
)

// ChallengeStore is the volatile login-challenge backend: a mutex-guarded
// map of identity to challenge. Suitable for a single instance only; a
// multi-instance deployment must use the redis or dynamo backend since
// requests can land on any replica.
type ChallengeStore struct {
	mu         sync.Mutex
	challenges map[string]domain.Challenge
}

func NewChallengeStore() *ChallengeStore {
	return &ChallengeStore{challenges: make(map[string]domain.Challenge)}
}

// Put stores or overwrites the active challenge for identity.
func (s *ChallengeStore) Put(ctx context.Context, identity, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.challenges[identity] = domain.Challenge{
		Identity:  identity,
		Code:      code,
		ExpiresAt: time.Now().Add(ttl).Unix(),
	}
	return nil
}

// Get returns the current challenge for identity, expired or not; expiry
// policy belongs to the verifier. Returns domain.ErrNoChallenge when none
// is stored.
func (s *ChallengeStore) Get(ctx context.Context, identity string) (*domain.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.challenges[identity]
	if !ok {
		return nil, domain.ErrNoChallenge
	}
	out := c
	return &out, nil
}

func (s *ChallengeStore) Remove(ctx context.Context, identity string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.challenges, identity)
	return nil
}
