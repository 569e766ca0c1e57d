package zone

import (
	"context"
	"fmt"

	"github.com/event-ops-api/internal/domain"
	"github.com/event-ops-api/internal/pkg/validate"
)

type Store interface {
	Scan(ctx context.Context) ([]domain.Zone, error)
	Get(ctx context.Context, zoneID string) (*domain.Zone, error)
	Update(ctx context.Context, zoneID string, updates map[string]interface{}) error
}

type Service interface {
	List(ctx context.Context) ([]domain.Zone, error)
	Get(ctx context.Context, zoneID string) (*domain.Zone, error)
	UpdateTelemetry(ctx context.Context, zoneID string, req domain.ZoneTelemetryRequest) (*domain.Zone, error)
}

type service struct {
	store Store
}

func NewService(store Store) Service {
	return &service{store: store}
}

func (s *service) List(ctx context.Context) ([]domain.Zone, error) {
	return s.store.Scan(ctx)
}

func (s *service) Get(ctx context.Context, zoneID string) (*domain.Zone, error) {
	return s.store.Get(ctx, zoneID)
}

func (s *service) UpdateTelemetry(ctx context.Context, zoneID string, req domain.ZoneTelemetryRequest) (*domain.Zone, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	z, err := s.store.Get(ctx, zoneID)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if req.Occupancy != nil {
		if *req.Occupancy > z.Capacity {
			return nil, fmt.Errorf("occupancy %d exceeds capacity %d: %w", *req.Occupancy, z.Capacity, domain.ErrBadRequest)
		}
		updates["occupancy"] = *req.Occupancy
	}
	if req.WaitTimeMin != nil {
		updates["wait_time_minutes"] = *req.WaitTimeMin
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.CrowdDensity != nil {
		updates["crowd_density"] = *req.CrowdDensity
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("no telemetry fields given: %w", domain.ErrBadRequest)
	}
	if err := s.store.Update(ctx, zoneID, updates); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, zoneID)
}
