package incident

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

func (m *mockStore) Put(ctx context.Context, inc *domain.Incident) error {
	return m.Called(ctx, inc).Error(0)
}
func (m *mockStore) Get(ctx context.Context, incidentID string) (*domain.Incident, error) {
	args := m.Called(ctx, incidentID)
	if inc, _ := args.Get(0).(*domain.Incident); inc != nil {
		return inc, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockStore) Scan(ctx context.Context) ([]domain.Incident, error) {
	args := m.Called(ctx)
	incs, _ := args.Get(0).([]domain.Incident)
	return incs, args.Error(1)
}
func (m *mockStore) Update(ctx context.Context, incidentID string, updates map[string]interface{}) error {
	return m.Called(ctx, incidentID, updates).Error(0)
}

type mockZoneStore struct{ mock.Mock }

func (m *mockZoneStore) Get(ctx context.Context, zoneID string) (*domain.Zone, error) {
	args := m.Called(ctx, zoneID)
	if z, _ := args.Get(0).(*domain.Zone); z != nil {
		return z, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockPhotos struct{ mock.Mock }

func (m *mockPhotos) UploadBase64(ctx context.Context, filename, base64Data, uploaderID string) (*domain.File, error) {
	args := m.Called(ctx, filename, base64Data, uploaderID)
	if f, _ := args.Get(0).(*domain.File); f != nil {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockAlerter struct{ mock.Mock }

func (m *mockAlerter) PublishAlert(ctx context.Context, subject, message string) error {
	return m.Called(ctx, subject, message).Error(0)
}

func knownZone(zs *mockZoneStore) {
	zs.On("Get", mock.Anything, "zone-a").Return(&domain.Zone{ZoneID: "zone-a", Name: "Main Stage"}, nil)
}

// --- Report ---

func TestReport_HappyPath(t *testing.T) {
	store := &mockStore{}
	store.On("Put", mock.Anything, mock.AnythingOfType("*domain.Incident")).Return(nil)
	zs := &mockZoneStore{}
	knownZone(zs)

	svc := NewService(store, zs, &mockPhotos{}, nil)
	inc, err := svc.Report(context.Background(), "u1", domain.ReportIncidentRequest{
		Type:        domain.IncidentMedical,
		Severity:    domain.SeverityHigh,
		ZoneID:      "zone-a",
		Description: "collapsed attendee near front barrier",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, inc.IncidentID)
	assert.Equal(t, domain.IncidentNew, inc.Status)
	assert.Equal(t, "u1", inc.ReportedBy)
	store.AssertExpectations(t)
}

func TestReport_UnknownZone(t *testing.T) {
	zs := &mockZoneStore{}
	zs.On("Get", mock.Anything, "zone-x").Return(nil, domain.ErrNotFound)
	store := &mockStore{}

	svc := NewService(store, zs, &mockPhotos{}, nil)
	_, err := svc.Report(context.Background(), "u1", domain.ReportIncidentRequest{
		Type:        domain.IncidentTechnical,
		Severity:    domain.SeverityLow,
		ZoneID:      "zone-x",
		Description: "smoke behind food stalls",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
	store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestReport_CriticalBroadcastsAlert(t *testing.T) {
	store := &mockStore{}
	store.On("Put", mock.Anything, mock.Anything).Return(nil)
	zs := &mockZoneStore{}
	knownZone(zs)
	alerter := &mockAlerter{}
	alerter.On("PublishAlert", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := NewService(store, zs, &mockPhotos{}, alerter)
	_, err := svc.Report(context.Background(), "u1", domain.ReportIncidentRequest{
		Type:        domain.IncidentSecurity,
		Severity:    domain.SeverityCritical,
		ZoneID:      "zone-a",
		Description: "crowd pressure building at the barrier",
	})

	require.NoError(t, err)
	alerter.AssertExpectations(t)
}

func TestReport_BroadcastFailureDoesNotFailReport(t *testing.T) {
	store := &mockStore{}
	store.On("Put", mock.Anything, mock.Anything).Return(nil)
	zs := &mockZoneStore{}
	knownZone(zs)
	alerter := &mockAlerter{}
	alerter.On("PublishAlert", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("sns down"))

	svc := NewService(store, zs, &mockPhotos{}, alerter)
	_, err := svc.Report(context.Background(), "u1", domain.ReportIncidentRequest{
		Type:        domain.IncidentSecurity,
		Severity:    domain.SeverityCritical,
		ZoneID:      "zone-a",
		Description: "crowd pressure building at the barrier",
	})

	require.NoError(t, err)
}

func TestReport_NonCriticalDoesNotBroadcast(t *testing.T) {
	store := &mockStore{}
	store.On("Put", mock.Anything, mock.Anything).Return(nil)
	zs := &mockZoneStore{}
	knownZone(zs)
	alerter := &mockAlerter{}

	svc := NewService(store, zs, &mockPhotos{}, alerter)
	_, err := svc.Report(context.Background(), "u1", domain.ReportIncidentRequest{
		Type:        domain.IncidentLostItem,
		Severity:    domain.SeverityLow,
		ZoneID:      "zone-a",
		Description: "lost backpack near gate 3",
	})

	require.NoError(t, err)
	alerter.AssertNotCalled(t, "PublishAlert", mock.Anything, mock.Anything, mock.Anything)
}

func TestReport_WithPhoto(t *testing.T) {
	store := &mockStore{}
	store.On("Put", mock.Anything, mock.Anything).Return(nil)
	zs := &mockZoneStore{}
	knownZone(zs)
	photos := &mockPhotos{}
	photos.On("UploadBase64", mock.Anything, "smoke.jpg", "aGVsbG8=", "u1").
		Return(&domain.File{FileID: "f1", Key: "files/u1/f1-smoke.jpg"}, nil)

	svc := NewService(store, zs, photos, nil)
	inc, err := svc.Report(context.Background(), "u1", domain.ReportIncidentRequest{
		Type:        domain.IncidentTechnical,
		Severity:    domain.SeverityHigh,
		ZoneID:      "zone-a",
		Description: "smoke behind food stalls",
		PhotoBase64: "aGVsbG8=",
		PhotoName:   "smoke.jpg",
	})

	require.NoError(t, err)
	assert.Equal(t, "files/u1/f1-smoke.jpg", inc.PhotoKey)
	photos.AssertExpectations(t)
}

// --- Update ---

func TestUpdate_StatusTransition(t *testing.T) {
	store := &mockStore{}
	existing := &domain.Incident{IncidentID: "i1", Status: domain.IncidentNew}
	store.On("Get", mock.Anything, "i1").Return(existing, nil)
	store.On("Update", mock.Anything, "i1", map[string]interface{}{"status": domain.IncidentInvestigating}).Return(nil)

	svc := NewService(store, &mockZoneStore{}, &mockPhotos{}, nil)
	status := domain.IncidentInvestigating
	_, err := svc.Update(context.Background(), "i1", domain.UpdateIncidentRequest{Status: &status})

	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestUpdate_UnknownIncident(t *testing.T) {
	store := &mockStore{}
	store.On("Get", mock.Anything, "i9").Return(nil, domain.ErrNotFound)

	svc := NewService(store, &mockZoneStore{}, &mockPhotos{}, nil)
	status := domain.IncidentResolved
	_, err := svc.Update(context.Background(), "i9", domain.UpdateIncidentRequest{Status: &status})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
