package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/event-ops-api/internal/config"
	"github.com/event-ops-api/internal/domain"
	"github.com/event-ops-api/internal/pkg/otp"
	"github.com/sethvargo/go-retry"
)

// ChallengeStore holds one outstanding login code per identity. Put
// overwrites, Get returns domain.ErrNoChallenge when absent, Remove
// deletes. Backends: memory, redis, dynamo.
type ChallengeStore interface {
	Put(ctx context.Context, identity, code string, ttl time.Duration) error
	Get(ctx context.Context, identity string) (*domain.Challenge, error)
	Remove(ctx context.Context, identity string) error
}

// Directory is the external system of record for identities. Read-only
// from this service's point of view.
type Directory interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// Mailer delivers login codes out of band.
type Mailer interface {
	SendEmail(to, subject, body string) error
}

type RequestChallengeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type SubmitChallengeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

// ChallengeIssued reports the outcome of a RequestChallenge call.
// DeliveryDegraded is set when the code was stored but the mail channel
// failed; the code is still usable.
type ChallengeIssued struct {
	DeliveryDegraded bool
}

type Service interface {
	// RequestChallenge looks the identity up in the directory, mints a
	// fresh six-digit code with a ten-minute TTL, stores it (replacing
	// any prior code for the identity) and mails it.
	RequestChallenge(ctx context.Context, email string) (*ChallengeIssued, error)

	// SubmitChallenge checks the submitted code against the stored one.
	// The first successful match consumes the challenge; an expired
	// challenge is removed on detection.
	SubmitChallenge(ctx context.Context, email, code string) (*domain.VerifiedIdentity, error)
}

type service struct {
	store             ChallengeStore
	directory         Directory
	mailer            Mailer
	codeTTL           time.Duration
	onDeliveryFailure string

	// perIdentity serialises issue/verify for the same identity so a
	// verify can never observe a half-replaced challenge.
	perIdentity sync.Map // email -> *sync.Mutex
}

type ServiceDeps struct {
	Store             ChallengeStore
	Directory         Directory
	Mailer            Mailer
	CodeTTL           time.Duration
	OnDeliveryFailure string // config.DeliveryDegrade | config.DeliveryFail
}

func NewService(deps ServiceDeps) Service {
	ttl := deps.CodeTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	policy := deps.OnDeliveryFailure
	if policy == "" {
		policy = config.DeliveryDegrade
	}
	return &service{
		store:             deps.Store,
		directory:         deps.Directory,
		mailer:            deps.Mailer,
		codeTTL:           ttl,
		onDeliveryFailure: policy,
	}
}

func (s *service) lock(identity string) *sync.Mutex {
	mu, _ := s.perIdentity.LoadOrStore(identity, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func (s *service) RequestChallenge(ctx context.Context, email string) (*ChallengeIssued, error) {
	// Directory lookup is an idempotent read, so it is the only external
	// call worth retrying. Delivery and session issuance are never
	// retried (duplicate mails, duplicate artifacts).
	var user *domain.User
	backoff := retry.WithMaxRetries(2, retry.NewConstant(200*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		u, err := s.directory.GetByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return err // known absence, no point retrying
			}
			return retry.RetryableError(err)
		}
		user = u
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("email %q not in directory: %w", email, domain.ErrUnknownIdentity)
		}
		return nil, fmt.Errorf("directory lookup: %w", err)
	}
	if !user.Enable {
		return nil, fmt.Errorf("account disabled: %w", domain.ErrUnknownIdentity)
	}

	code, err := otp.NewCode()
	if err != nil {
		return nil, err
	}

	mu := s.lock(email)
	mu.Lock()
	err = s.store.Put(ctx, email, code, s.codeTTL)
	mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("store challenge: %w", err)
	}

	body := fmt.Sprintf("Your login code is %s. It expires in %d minutes.", code, int(s.codeTTL.Minutes()))
	if err := s.mailer.SendEmail(email, "Your login code", body); err != nil {
		// The challenge stays stored and usable either way; the policy
		// decides whether the caller sees this as a failure.
		slog.Warn("login code delivery failed", "email", email, "err", err)
		if s.onDeliveryFailure == config.DeliveryFail {
			return nil, fmt.Errorf("send login code: %w", domain.ErrDeliveryDegraded)
		}
		return &ChallengeIssued{DeliveryDegraded: true}, nil
	}
	return &ChallengeIssued{}, nil
}

func (s *service) SubmitChallenge(ctx context.Context, email, code string) (*domain.VerifiedIdentity, error) {
	mu := s.lock(email)
	mu.Lock()
	defer mu.Unlock()

	c, err := s.store.Get(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNoChallenge) {
			return nil, domain.ErrNoChallenge
		}
		return nil, fmt.Errorf("load challenge: %w", err)
	}

	if time.Now().Unix() > c.ExpiresAt {
		if err := s.store.Remove(ctx, email); err != nil {
			slog.Warn("failed to remove expired challenge", "email", email, "err", err)
		}
		return nil, domain.ErrChallengeExpired
	}

	if !otp.Match(c.Code, code) {
		// Mismatch leaves the challenge intact: retryable until TTL.
		return nil, domain.ErrCodeMismatch
	}

	// Single use: consume before anything else can match it.
	if err := s.store.Remove(ctx, email); err != nil {
		return nil, fmt.Errorf("consume challenge: %w", err)
	}

	// Re-fetch in case the identity was removed between issue and verify.
	u, err := s.directory.GetByEmail(ctx, email)
	if err != nil || !u.Enable {
		return nil, fmt.Errorf("identity gone after verification: %w", domain.ErrUnknownIdentity)
	}

	return &domain.VerifiedIdentity{
		UserID: u.UserID,
		Email:  u.Email,
		Name:   u.Name,
		Role:   u.Role,
	}, nil
}
