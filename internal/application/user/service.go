package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/event-ops-api/internal/domain"
	"github.com/event-ops-api/internal/pkg/id"
	"github.com/event-ops-api/internal/pkg/validate"
)

type Store interface {
	Put(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
	SoftDelete(ctx context.Context, userID string) error
	ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.User, string, error)
}

// SessionRevoker tears down live sessions when a user is disabled.
type SessionRevoker interface {
	RevokeByUser(ctx context.Context, userID string) error
}

type Service interface {
	Create(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error)
	Get(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID string, req domain.UpdateUserRequest, isAdmin bool) (*domain.User, error)
	Disable(ctx context.Context, userID string) error
	List(ctx context.Context, limit int32, cursor string) ([]domain.User, string, error)
}

type service struct {
	store    Store
	sessions SessionRevoker
}

func NewService(store Store, sessions SessionRevoker) Service {
	return &service{store: store, sessions: sessions}
}

func (s *service) Create(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	if _, err := s.store.GetByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	now := time.Now().UTC()
	u := &domain.User{
		UserID:    id.New(),
		Email:     req.Email,
		Name:      req.Name,
		Role:      req.Role,
		Enable:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Put(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.store.Get(ctx, userID)
}

func (s *service) Update(ctx context.Context, userID string, req domain.UpdateUserRequest, isAdmin bool) (*domain.User, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.PhotoKey != nil {
		updates["photo_key"] = *req.PhotoKey
	}
	// Role and enable changes are admin-only.
	if req.Role != nil {
		if !isAdmin {
			return nil, fmt.Errorf("only admins may change roles: %w", domain.ErrForbidden)
		}
		updates["role"] = *req.Role
	}
	if req.Enable != nil {
		if !isAdmin {
			return nil, fmt.Errorf("only admins may enable or disable accounts: %w", domain.ErrForbidden)
		}
		updates["enable"] = *req.Enable
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update: %w", domain.ErrBadRequest)
	}
	if err := s.store.Update(ctx, userID, updates); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, userID)
}

func (s *service) Disable(ctx context.Context, userID string) error {
	if err := s.store.SoftDelete(ctx, userID); err != nil {
		return err
	}
	// A disabled directory record must not keep a live session.
	return s.sessions.RevokeByUser(ctx, userID)
}

func (s *service) List(ctx context.Context, limit int32, cursor string) ([]domain.User, string, error) {
	if limit <= 0 || limit > 100 {
		limit = 25
	}
	return s.store.ScanPage(ctx, limit, cursor)
}
