package drone

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

func (m *mockStore) Get(ctx context.Context, droneID string) (*domain.Drone, error) {
	args := m.Called(ctx, droneID)
	if d, _ := args.Get(0).(*domain.Drone); d != nil {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockStore) Scan(ctx context.Context) ([]domain.Drone, error) {
	args := m.Called(ctx)
	ds, _ := args.Get(0).([]domain.Drone)
	return ds, args.Error(1)
}
func (m *mockStore) Update(ctx context.Context, droneID string, updates map[string]interface{}) error {
	return m.Called(ctx, droneID, updates).Error(0)
}

func droneWithStatus(status string) *domain.Drone {
	return &domain.Drone{DroneID: "d1", Status: status, Battery: 80}
}

// --- UpdateTelemetry ---

func TestUpdateTelemetry_BatteryAndStatus(t *testing.T) {
	store := &mockStore{}
	store.On("Get", mock.Anything, "d1").Return(droneWithStatus(domain.DroneDeployed), nil)
	status := domain.DroneCharging
	battery := 15
	store.On("Update", mock.Anything, "d1", map[string]interface{}{
		"status":  status,
		"battery": battery,
	}).Return(nil)

	svc := NewService(store)
	_, err := svc.UpdateTelemetry(context.Background(), "d1", domain.DroneTelemetryRequest{
		Status:  &status,
		Battery: &battery,
	})

	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestUpdateTelemetry_InvalidStatus(t *testing.T) {
	svc := NewService(&mockStore{})
	bad := "crashed"
	_, err := svc.UpdateTelemetry(context.Background(), "d1", domain.DroneTelemetryRequest{Status: &bad})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestUpdateTelemetry_NoFields(t *testing.T) {
	store := &mockStore{}
	store.On("Get", mock.Anything, "d1").Return(droneWithStatus(domain.DroneDeployed), nil)

	svc := NewService(store)
	_, err := svc.UpdateTelemetry(context.Background(), "d1", domain.DroneTelemetryRequest{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

// --- Recall ---

func TestRecall_DeployedGoesReturning(t *testing.T) {
	store := &mockStore{}
	store.On("Get", mock.Anything, "d1").Return(droneWithStatus(domain.DroneDeployed), nil).Once()
	store.On("Update", mock.Anything, "d1", map[string]interface{}{"status": domain.DroneReturning}).Return(nil)
	store.On("Get", mock.Anything, "d1").Return(droneWithStatus(domain.DroneReturning), nil).Once()

	svc := NewService(store)
	d, err := svc.Recall(context.Background(), "d1")

	require.NoError(t, err)
	assert.Equal(t, domain.DroneReturning, d.Status)
	store.AssertExpectations(t)
}

func TestRecall_OfflineConflicts(t *testing.T) {
	store := &mockStore{}
	store.On("Get", mock.Anything, "d1").Return(droneWithStatus(domain.DroneOffline), nil)

	svc := NewService(store)
	_, err := svc.Recall(context.Background(), "d1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecall_ChargingIsNoop(t *testing.T) {
	store := &mockStore{}
	store.On("Get", mock.Anything, "d1").Return(droneWithStatus(domain.DroneCharging), nil)

	svc := NewService(store)
	d, err := svc.Recall(context.Background(), "d1")

	require.NoError(t, err)
	assert.Equal(t, domain.DroneCharging, d.Status)
	store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}
