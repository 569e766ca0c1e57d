package incident

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	fileapp "github.com/event-ops-api/internal/application/file"
	"github.com/event-ops-api/internal/domain"
	"github.com/event-ops-api/internal/pkg/id"
	"github.com/event-ops-api/internal/pkg/validate"
)

type Store interface {
	Put(ctx context.Context, inc *domain.Incident) error
	Get(ctx context.Context, incidentID string) (*domain.Incident, error)
	Scan(ctx context.Context) ([]domain.Incident, error)
	Update(ctx context.Context, incidentID string, updates map[string]interface{}) error
}

// ZoneStore confirms the referenced zone exists before a report lands.
type ZoneStore interface {
	Get(ctx context.Context, zoneID string) (*domain.Zone, error)
}

// Alerter broadcasts critical incidents to the ops channel. Nil-safe in
// the service: an unconfigured topic just skips the broadcast.
type Alerter interface {
	PublishAlert(ctx context.Context, subject, message string) error
}

// Photos stores report photos; fileapp.Service in production.
type Photos interface {
	UploadBase64(ctx context.Context, filename, base64Data, uploaderID string) (*domain.File, error)
}

type Service interface {
	Report(ctx context.Context, reporterID string, req domain.ReportIncidentRequest) (*domain.Incident, error)
	Get(ctx context.Context, incidentID string) (*domain.Incident, error)
	List(ctx context.Context) ([]domain.Incident, error)
	Update(ctx context.Context, incidentID string, req domain.UpdateIncidentRequest) (*domain.Incident, error)
}

type service struct {
	store   Store
	zones   ZoneStore
	photos  Photos
	alerter Alerter
}

func NewService(store Store, zones ZoneStore, photos Photos, alerter Alerter) Service {
	return &service{store: store, zones: zones, photos: photos, alerter: alerter}
}

func (s *service) Report(ctx context.Context, reporterID string, req domain.ReportIncidentRequest) (*domain.Incident, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	if _, err := s.zones.Get(ctx, req.ZoneID); err != nil {
		return nil, fmt.Errorf("zone %q: %w", req.ZoneID, domain.ErrBadRequest)
	}

	photoKey := ""
	if req.PhotoBase64 != "" {
		name := req.PhotoName
		if name == "" {
			name = "incident.jpg"
		}
		f, err := s.photos.UploadBase64(ctx, name, req.PhotoBase64, reporterID)
		if err != nil {
			return nil, fmt.Errorf("upload incident photo: %w", err)
		}
		photoKey = f.Key
	}

	now := time.Now().UTC()
	inc := &domain.Incident{
		IncidentID:  id.New(),
		Type:        req.Type,
		Severity:    req.Severity,
		Status:      domain.IncidentNew,
		ZoneID:      req.ZoneID,
		Description: req.Description,
		PhotoKey:    photoKey,
		ReportedBy:  reporterID,
		ReportedAt:  now,
		UpdatedAt:   now,
	}
	if err := s.store.Put(ctx, inc); err != nil {
		return nil, err
	}

	if inc.Severity == domain.SeverityCritical {
		s.broadcast(ctx, inc)
	}
	return inc, nil
}

// broadcast publishes a critical-incident alert. Broadcast failure never
// fails the report itself.
func (s *service) broadcast(ctx context.Context, inc *domain.Incident) {
	if s.alerter == nil {
		return
	}
	subject := fmt.Sprintf("CRITICAL %s incident in %s", inc.Type, inc.ZoneID)
	msg := fmt.Sprintf("%s\n\nIncident %s reported at %s:\n%s",
		subject, inc.IncidentID, inc.ReportedAt.Format(time.RFC3339), inc.Description)
	if err := s.alerter.PublishAlert(ctx, subject, msg); err != nil {
		slog.Warn("incident alert broadcast failed", "incident_id", inc.IncidentID, "err", err)
	}
}

func (s *service) Get(ctx context.Context, incidentID string) (*domain.Incident, error) {
	return s.store.Get(ctx, incidentID)
}

func (s *service) List(ctx context.Context) ([]domain.Incident, error) {
	return s.store.Scan(ctx)
}

func (s *service) Update(ctx context.Context, incidentID string, req domain.UpdateIncidentRequest) (*domain.Incident, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	if _, err := s.store.Get(ctx, incidentID); err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Severity != nil {
		updates["severity"] = *req.Severity
	}
	if req.AssignedAgent != nil {
		updates["assigned_agent"] = *req.AssignedAgent
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update: %w", domain.ErrBadRequest)
	}
	if err := s.store.Update(ctx, incidentID, updates); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, incidentID)
}

var _ Photos = (fileapp.Service)(nil)
