package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/event-ops-api/internal/domain"
)

type mockStore struct{ mock.Mock }

func (m *mockStore) Put(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *mockStore) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockStore) Update(ctx context.Context, userID string, updates map[string]interface{}) error {
	return m.Called(ctx, userID, updates).Error(0)
}
func (m *mockStore) SoftDelete(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}
func (m *mockStore) ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.User, string, error) {
	args := m.Called(ctx, limit, cursor)
	users, _ := args.Get(0).([]domain.User)
	return users, args.String(1), args.Error(2)
}

type mockRevoker struct{ mock.Mock }

func (m *mockRevoker) RevokeByUser(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func strPtr(s string) *string { return &s }

// --- Create ---

func TestCreate_HappyPath(t *testing.T) {
	store := &mockStore{}
	store.On("GetByEmail", mock.Anything, "bob@example.com").Return(nil, domain.ErrNotFound)
	store.On("Put", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	svc := NewService(store, &mockRevoker{})
	u, err := svc.Create(context.Background(), domain.CreateUserRequest{
		Email: "bob@example.com",
		Name:  "Bob",
		Role:  domain.RoleStaff,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, u.UserID)
	assert.True(t, u.Enable)
	assert.Equal(t, domain.RoleStaff, u.Role)
	store.AssertExpectations(t)
}

func TestCreate_DuplicateEmail(t *testing.T) {
	store := &mockStore{}
	store.On("GetByEmail", mock.Anything, "bob@example.com").Return(&domain.User{UserID: "u9"}, nil)

	svc := NewService(store, &mockRevoker{})
	_, err := svc.Create(context.Background(), domain.CreateUserRequest{
		Email: "bob@example.com",
		Name:  "Bob",
		Role:  domain.RoleStaff,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestCreate_InvalidRole(t *testing.T) {
	svc := NewService(&mockStore{}, &mockRevoker{})
	_, err := svc.Create(context.Background(), domain.CreateUserRequest{
		Email: "bob@example.com",
		Name:  "Bob",
		Role:  "superuser",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

// --- Update ---

func TestUpdate_RoleChangeRequiresAdmin(t *testing.T) {
	svc := NewService(&mockStore{}, &mockRevoker{})
	_, err := svc.Update(context.Background(), "u1", domain.UpdateUserRequest{
		Role: strPtr(domain.RoleAdmin),
	}, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestUpdate_AdminCanChangeRole(t *testing.T) {
	store := &mockStore{}
	store.On("Update", mock.Anything, "u1", map[string]interface{}{"role": domain.RoleAdmin}).Return(nil)
	store.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1", Role: domain.RoleAdmin}, nil)

	svc := NewService(store, &mockRevoker{})
	u, err := svc.Update(context.Background(), "u1", domain.UpdateUserRequest{
		Role: strPtr(domain.RoleAdmin),
	}, true)

	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, u.Role)
	store.AssertExpectations(t)
}

func TestUpdate_NameChangeAllowedForSelf(t *testing.T) {
	store := &mockStore{}
	store.On("Update", mock.Anything, "u1", map[string]interface{}{"name": "New Name"}).Return(nil)
	store.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1", Name: "New Name"}, nil)

	svc := NewService(store, &mockRevoker{})
	u, err := svc.Update(context.Background(), "u1", domain.UpdateUserRequest{
		Name: strPtr("New Name"),
	}, false)

	require.NoError(t, err)
	assert.Equal(t, "New Name", u.Name)
}

func TestUpdate_NoFields(t *testing.T) {
	svc := NewService(&mockStore{}, &mockRevoker{})
	_, err := svc.Update(context.Background(), "u1", domain.UpdateUserRequest{}, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

// --- Disable ---

func TestDisable_RevokesSessions(t *testing.T) {
	store := &mockStore{}
	store.On("SoftDelete", mock.Anything, "u1").Return(nil)
	revoker := &mockRevoker{}
	revoker.On("RevokeByUser", mock.Anything, "u1").Return(nil)

	svc := NewService(store, revoker)
	require.NoError(t, svc.Disable(context.Background(), "u1"))

	store.AssertExpectations(t)
	revoker.AssertExpectations(t)
}

func TestDisable_SoftDeleteFails_NoRevoke(t *testing.T) {
	store := &mockStore{}
	store.On("SoftDelete", mock.Anything, "u1").Return(domain.ErrNotFound)
	revoker := &mockRevoker{}

	svc := NewService(store, revoker)
	err := svc.Disable(context.Background(), "u1")

	require.Error(t, err)
	revoker.AssertNotCalled(t, "RevokeByUser", mock.Anything, mock.Anything)
}

// --- List ---

func TestList_ClampsLimit(t *testing.T) {
	store := &mockStore{}
	store.On("ScanPage", mock.Anything, int32(25), "").Return([]domain.User{}, "", nil)

	svc := NewService(store, &mockRevoker{})
	_, _, err := svc.List(context.Background(), 0, "")
	require.NoError(t, err)

	_, _, err = svc.List(context.Background(), 500, "")
	require.NoError(t, err)
	store.AssertNumberOfCalls(t, "ScanPage", 2)
}
