package http

import (
	"github.com/event-ops-api/internal/application/auth"
	"github.com/event-ops-api/internal/application/insight"
	"github.com/event-ops-api/internal/infrastructure/dynamo"
	"github.com/event-ops-api/internal/infrastructure/genai"
	jwtinfra "github.com/event-ops-api/internal/infrastructure/jwt"
	s3infra "github.com/event-ops-api/internal/infrastructure/s3"
	"github.com/event-ops-api/internal/infrastructure/smtp"
)

// Deps holds all infrastructure dependencies for the router. Optional
// providers (JWT, mailer, alerter, insight runner) may be nil; the router
// degrades the affected routes instead of failing to start.
type Deps struct {
	UserRepo       *dynamo.UserRepo
	SessionRepo    *dynamo.SessionRepo
	ZoneRepo       *dynamo.ZoneRepo
	IncidentRepo   *dynamo.IncidentRepo
	DroneRepo      *dynamo.DroneRepo
	FileRepo       *dynamo.FileRepo
	ChallengeStore auth.ChallengeStore
	S3Store        *s3infra.Store
	Mailer         smtp.Mailer
	Alerter        insight.Alerter
	InsightRunner  genai.Runner
	JWTProvider    *jwtinfra.Provider
}
