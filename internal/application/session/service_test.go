package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/event-ops-api/internal/domain"
)

// --- mocks ---

type mockStore struct{ mock.Mock }

func (m *mockStore) Put(ctx context.Context, s *domain.Session) error {
	return m.Called(ctx, s).Error(0)
}
func (m *mockStore) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	args := m.Called(ctx, sessionID)
	if s, _ := args.Get(0).(*domain.Session); s != nil {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockStore) Revoke(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockSigner struct{ mock.Mock }

func (m *mockSigner) Sign(userID, email, role, sessionID string) (string, error) {
	args := m.Called(userID, email, role, sessionID)
	return args.String(0), args.Error(1)
}
func (m *mockSigner) TTL() time.Duration {
	return 14 * 24 * time.Hour
}

func verifiedAlice() *domain.VerifiedIdentity {
	return &domain.VerifiedIdentity{UserID: "u1", Email: "alice@example.com", Name: "Alice", Role: domain.RoleAdmin}
}

// --- Issue ---

func TestIssue_HappyPath(t *testing.T) {
	store := &mockStore{}
	store.On("Put", mock.Anything, mock.AnythingOfType("*domain.Session")).Return(nil)
	signer := &mockSigner{}
	signer.On("Sign", "u1", "alice@example.com", domain.RoleAdmin, mock.AnythingOfType("string")).Return("artifact-jwt", nil)

	svc := NewService(store, &mockUserStore{}, signer)
	res, err := svc.Issue(context.Background(), verifiedAlice())

	require.NoError(t, err)
	assert.Equal(t, "artifact-jwt", res.Artifact)
	assert.Equal(t, "u1", res.Session.UserID)
	assert.NotEmpty(t, res.Session.SessionID)
	assert.True(t, res.Session.Enable)

	// 14-day expiry, give or take the test's own runtime.
	want := time.Now().Add(14 * 24 * time.Hour).Unix()
	assert.InDelta(t, want, res.Session.ExpiresAt, 5)
	store.AssertExpectations(t)
	signer.AssertExpectations(t)
}

func TestIssue_NoSigner(t *testing.T) {
	svc := NewService(&mockStore{}, &mockUserStore{}, nil)
	_, err := svc.Issue(context.Background(), verifiedAlice())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrProviderUnavailable))
}

func TestIssue_PersistFails(t *testing.T) {
	store := &mockStore{}
	store.On("Put", mock.Anything, mock.Anything).Return(errors.New("dynamo down"))
	signer := &mockSigner{}

	svc := NewService(store, &mockUserStore{}, signer)
	_, err := svc.Issue(context.Background(), verifiedAlice())

	require.Error(t, err)
	signer.AssertNotCalled(t, "Sign", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Current ---

func activeSession() *domain.Session {
	return &domain.Session{
		SessionID: "s1",
		UserID:    "u1",
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
		Enable:    true,
	}
}

func TestCurrent_HappyPath_AttachesUser(t *testing.T) {
	store := &mockStore{}
	store.On("Get", mock.Anything, "s1").Return(activeSession(), nil)
	users := &mockUserStore{}
	users.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1", Email: "alice@example.com", Enable: true}, nil)

	svc := NewService(store, users, &mockSigner{})
	sess, err := svc.Current(context.Background(), "s1")

	require.NoError(t, err)
	require.NotNil(t, sess.User)
	assert.Equal(t, "alice@example.com", sess.User.Email)
}

func TestCurrent_Revoked(t *testing.T) {
	revoked := activeSession()
	revoked.Enable = false
	store := &mockStore{}
	store.On("Get", mock.Anything, "s1").Return(revoked, nil)

	svc := NewService(store, &mockUserStore{}, &mockSigner{})
	_, err := svc.Current(context.Background(), "s1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestCurrent_Expired(t *testing.T) {
	expired := activeSession()
	expired.ExpiresAt = time.Now().Add(-time.Minute).Unix()
	store := &mockStore{}
	store.On("Get", mock.Anything, "s1").Return(expired, nil)

	svc := NewService(store, &mockUserStore{}, &mockSigner{})
	_, err := svc.Current(context.Background(), "s1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestCurrent_UserDisabledMeanwhile(t *testing.T) {
	store := &mockStore{}
	store.On("Get", mock.Anything, "s1").Return(activeSession(), nil)
	users := &mockUserStore{}
	users.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1", Enable: false}, nil)

	svc := NewService(store, users, &mockSigner{})
	_, err := svc.Current(context.Background(), "s1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestCurrent_UserGone(t *testing.T) {
	store := &mockStore{}
	store.On("Get", mock.Anything, "s1").Return(activeSession(), nil)
	users := &mockUserStore{}
	users.On("Get", mock.Anything, "u1").Return(nil, domain.ErrNotFound)

	svc := NewService(store, users, &mockSigner{})
	_, err := svc.Current(context.Background(), "s1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

// --- End ---

func TestEnd_RevokesStore(t *testing.T) {
	store := &mockStore{}
	store.On("Revoke", mock.Anything, "s1").Return(nil)

	svc := NewService(store, &mockUserStore{}, &mockSigner{})
	require.NoError(t, svc.End(context.Background(), "s1"))
	store.AssertExpectations(t)
}
