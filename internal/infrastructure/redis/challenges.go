package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/event-ops-api/internal/config"
	"github.com/event-ops-api/internal/domain"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "otp:"

// ChallengeStore is the Redis-backed login-challenge backend. Challenges
// are JSON values under otp:<identity> with the TTL enforced by Redis
// itself, so every replica sees the same outstanding challenge.
type ChallengeStore struct {
	client *redis.Client
}

func NewChallengeStore(cfg *config.Config) *ChallengeStore {
	return &ChallengeStore{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		}),
	}
}

func (s *ChallengeStore) Put(ctx context.Context, identity, code string, ttl time.Duration) error {
	c := domain.Challenge{
		Identity:  identity,
		Code:      code,
		ExpiresAt: time.Now().Add(ttl).Unix(),
	}
	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal challenge: %w", err)
	}
	return s.client.Set(ctx, keyPrefix+identity, payload, ttl).Err()
}

func (s *ChallengeStore) Get(ctx context.Context, identity string) (*domain.Challenge, error) {
	payload, err := s.client.Get(ctx, keyPrefix+identity).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNoChallenge
	}
	if err != nil {
		return nil, fmt.Errorf("redis get challenge: %w", err)
	}
	var c domain.Challenge
	if err := json.Unmarshal(payload, &c); err != nil {
		return nil, fmt.Errorf("unmarshal challenge: %w", err)
	}
	return &c, nil
}

func (s *ChallengeStore) Remove(ctx context.Context, identity string) error {
	return s.client.Del(ctx, keyPrefix+identity).Err()
}
