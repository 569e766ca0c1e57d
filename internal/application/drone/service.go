package drone

import (
	"context"
	"fmt"

	"github.com/event-ops-api/internal/domain"
	"github.com/event-ops-api/internal/pkg/validate"
)

type Store interface {
	Get(ctx context.Context, droneID string) (*domain.Drone, error)
	Scan(ctx context.Context) ([]domain.Drone, error)
	Update(ctx context.Context, droneID string, updates map[string]interface{}) error
}

type Service interface {
	List(ctx context.Context) ([]domain.Drone, error)
	Get(ctx context.Context, droneID string) (*domain.Drone, error)
	UpdateTelemetry(ctx context.Context, droneID string, req domain.DroneTelemetryRequest) (*domain.Drone, error)

	// Recall orders the drone back to base. Offline drones can't take
	// the order; drones already charging at base ignore it.
	Recall(ctx context.Context, droneID string) (*domain.Drone, error)
}

type service struct {
	store Store
}

func NewService(store Store) Service {
	return &service{store: store}
}

func (s *service) List(ctx context.Context) ([]domain.Drone, error) {
	return s.store.Scan(ctx)
}

func (s *service) Get(ctx context.Context, droneID string) (*domain.Drone, error) {
	return s.store.Get(ctx, droneID)
}

func (s *service) UpdateTelemetry(ctx context.Context, droneID string, req domain.DroneTelemetryRequest) (*domain.Drone, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	if _, err := s.store.Get(ctx, droneID); err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Battery != nil {
		updates["battery"] = *req.Battery
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("no telemetry fields given: %w", domain.ErrBadRequest)
	}
	if err := s.store.Update(ctx, droneID, updates); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, droneID)
}

func (s *service) Recall(ctx context.Context, droneID string) (*domain.Drone, error) {
	d, err := s.store.Get(ctx, droneID)
	if err != nil {
		return nil, err
	}
	switch d.Status {
	case domain.DroneOffline:
		return nil, fmt.Errorf("drone %s is offline: %w", droneID, domain.ErrConflict)
	case domain.DroneCharging, domain.DroneReturning:
		return d, nil
	}
	if err := s.store.Update(ctx, droneID, map[string]interface{}{"status": domain.DroneReturning}); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, droneID)
}
