package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/event-ops-api/internal/domain"
	"github.com/event-ops-api/internal/pkg/id"
)

// Signer mints and verifies session artifacts. Backed by the RS256
// provider in production; mocked in tests.
type Signer interface {
	Sign(userID, email, role, sessionID string) (string, error)
	TTL() time.Duration
}

// Store persists session records so artifacts can be revoked early.
type Store interface {
	Put(ctx context.Context, s *domain.Session) error
	Get(ctx context.Context, sessionID string) (*domain.Session, error)
	Revoke(ctx context.Context, sessionID string) error
}

// UserStore resolves the user behind a session record.
type UserStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

// IssueResult carries the minted artifact and its backing record.
type IssueResult struct {
	Artifact string
	Session  *domain.Session
}

type Service interface {
	// Issue exchanges a verified identity for a 14-day session artifact.
	// Only ever called after a successful OTP verification.
	Issue(ctx context.Context, vi *domain.VerifiedIdentity) (*IssueResult, error)

	// Current resolves a session record, rejecting revoked or expired
	// sessions and sessions whose user has been disabled meanwhile.
	Current(ctx context.Context, sessionID string) (*domain.Session, error)

	// End revokes the session so its artifact stops verifying.
	End(ctx context.Context, sessionID string) error
}

type service struct {
	store  Store
	users  UserStore
	signer Signer
}

func NewService(store Store, users UserStore, signer Signer) Service {
	return &service{store: store, users: users, signer: signer}
}

func (s *service) Issue(ctx context.Context, vi *domain.VerifiedIdentity) (*IssueResult, error) {
	if s.signer == nil {
		return nil, fmt.Errorf("session signer not configured: %w", domain.ErrProviderUnavailable)
	}
	now := time.Now().UTC()
	sess := &domain.Session{
		SessionID: id.New(),
		UserID:    vi.UserID,
		ExpiresAt: now.Add(s.signer.TTL()).Unix(),
		Enable:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Put(ctx, sess); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	artifact, err := s.signer.Sign(vi.UserID, vi.Email, vi.Role, sess.SessionID)
	if err != nil {
		return nil, fmt.Errorf("sign session artifact: %w", domain.ErrProviderUnavailable)
	}
	return &IssueResult{Artifact: artifact, Session: sess}, nil
}

func (s *service) Current(ctx context.Context, sessionID string) (*domain.Session, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !sess.Enable {
		return nil, fmt.Errorf("session revoked: %w", domain.ErrUnauthorized)
	}
	if sess.ExpiresAt < time.Now().Unix() {
		return nil, fmt.Errorf("session expired: %w", domain.ErrUnauthorized)
	}
	u, err := s.users.Get(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("session user gone: %w", domain.ErrUnauthorized)
		}
		return nil, err
	}
	if !u.Enable {
		return nil, fmt.Errorf("session user disabled: %w", domain.ErrUnauthorized)
	}
	sess.User = u
	return sess, nil
}

func (s *service) End(ctx context.Context, sessionID string) error {
	return s.store.Revoke(ctx, sessionID)
}
