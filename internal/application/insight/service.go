package insight

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/event-ops-api/internal/domain"
	"github.com/event-ops-api/internal/infrastructure/genai"
	"github.com/event-ops-api/internal/pkg/validate"
)

// Flow names on the hosted prompt runner.
const (
	flowWeather         = "weather-insights"
	flowSentiment       = "social-sentiment"
	flowGarbage         = "garbage-alerts"
	flowIncidentRouting = "incident-routing"
	flowSmartLocation   = "smart-location"
)

// Alerter mirrors garbage-overflow detections onto the ops channel.
type Alerter interface {
	PublishAlert(ctx context.Context, subject, message string) error
}

type Service interface {
	Weather(ctx context.Context) (*domain.WeatherInsights, error)
	Sentiment(ctx context.Context, req domain.SentimentRequest) (*domain.SentimentReport, error)
	GarbageAlerts(ctx context.Context, req domain.GarbageAlertRequest) (*domain.GarbageAlert, error)
	IncidentRouting(ctx context.Context, req domain.IncidentRoutingRequest) (*domain.IncidentRouting, error)
	SmartLocation(ctx context.Context, req domain.SmartLocationRequest) (*domain.SmartLocation, error)
}

type service struct {
	runner  genai.Runner
	alerter Alerter
}

func NewService(runner genai.Runner, alerter Alerter) Service {
	return &service{runner: runner, alerter: alerter}
}

// run executes a flow and validates the model's output; the runner's JSON
// is never trusted as-is.
func (s *service) run(ctx context.Context, flow string, in, out interface{}) error {
	if s.runner == nil {
		return fmt.Errorf("insight runner not configured: %w", domain.ErrProviderUnavailable)
	}
	if in != nil {
		if err := validate.Struct(in); err != nil {
			return fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
		}
	}
	if err := s.runner.Run(ctx, flow, in, out); err != nil {
		return err
	}
	if err := validate.Struct(out); err != nil {
		return fmt.Errorf("flow %s returned malformed output: %v: %w", flow, err, domain.ErrProviderUnavailable)
	}
	return nil
}

func (s *service) Weather(ctx context.Context) (*domain.WeatherInsights, error) {
	var out domain.WeatherInsights
	if err := s.run(ctx, flowWeather, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *service) Sentiment(ctx context.Context, req domain.SentimentRequest) (*domain.SentimentReport, error) {
	var out domain.SentimentReport
	if err := s.run(ctx, flowSentiment, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *service) GarbageAlerts(ctx context.Context, req domain.GarbageAlertRequest) (*domain.GarbageAlert, error) {
	var out domain.GarbageAlert
	if err := s.run(ctx, flowGarbage, req, &out); err != nil {
		return nil, err
	}
	if out.IsOverflowing && s.alerter != nil {
		subject := fmt.Sprintf("Garbage overflow in %s", req.ZoneID)
		if err := s.alerter.PublishAlert(ctx, subject, out.AlertMessage); err != nil {
			slog.Warn("garbage alert broadcast failed", "zone_id", req.ZoneID, "err", err)
		}
	}
	return &out, nil
}

func (s *service) IncidentRouting(ctx context.Context, req domain.IncidentRoutingRequest) (*domain.IncidentRouting, error) {
	var out domain.IncidentRouting
	if err := s.run(ctx, flowIncidentRouting, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *service) SmartLocation(ctx context.Context, req domain.SmartLocationRequest) (*domain.SmartLocation, error) {
	var out domain.SmartLocation
	if err := s.run(ctx, flowSmartLocation, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
