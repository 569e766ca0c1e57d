package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/event-ops-api/internal/application/auth"
	"github.com/event-ops-api/internal/application/drone"
	fileapp "github.com/event-ops-api/internal/application/file"
	"github.com/event-ops-api/internal/application/incident"
	"github.com/event-ops-api/internal/application/insight"
	"github.com/event-ops-api/internal/application/session"
	"github.com/event-ops-api/internal/application/user"
	"github.com/event-ops-api/internal/application/zone"
	"github.com/event-ops-api/internal/config"
	"github.com/event-ops-api/internal/domain"
	"github.com/event-ops-api/internal/transport/http/handler"
	appmiddleware "github.com/event-ops-api/internal/transport/http/middleware"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
	} else {
		authMw = func(next http.Handler) http.Handler { return next }
	}

	// 5 requests/second, burst of 10 — applied to the login endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	var signer session.Signer
	if deps.JWTProvider != nil {
		signer = deps.JWTProvider
	}

	sessionSvc := session.NewService(deps.SessionRepo, deps.UserRepo, signer)
	authSvc := auth.NewService(auth.ServiceDeps{
		Store:             deps.ChallengeStore,
		Directory:         deps.UserRepo,
		Mailer:            deps.Mailer,
		CodeTTL:           cfg.OTPTTL,
		OnDeliveryFailure: cfg.OTPDeliveryFailure,
	})
	userSvc := user.NewService(deps.UserRepo, deps.SessionRepo)
	zoneSvc := zone.NewService(deps.ZoneRepo)
	droneSvc := drone.NewService(deps.DroneRepo)
	fileSvc := fileapp.NewService(deps.S3Store, deps.FileRepo)
	incidentSvc := incident.NewService(deps.IncidentRepo, deps.ZoneRepo, fileSvc, deps.Alerter)
	insightSvc := insight.NewService(deps.InsightRunner, deps.Alerter)

	authH := handler.NewAuthHandler(authSvc, sessionSvc, cfg.IsProduction())
	userH := handler.NewUserHandler(userSvc)
	zoneH := handler.NewZoneHandler(zoneSvc)
	incidentH := handler.NewIncidentHandler(incidentSvc)
	droneH := handler.NewDroneHandler(droneSvc)
	insightH := handler.NewInsightHandler(insightSvc)
	fileH := handler.NewFileHandler(fileSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health", handler.Health)
		r.With(sensitiveRL.Limit).Post("/auth/otp/request", authH.RequestCode)
		r.With(sensitiveRL.Limit).Post("/auth/otp/verify", authH.VerifyCode)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/sessions", authH.Current)
			r.Post("/sessions/logout", authH.Logout)

			// Any authenticated user
			r.Get("/users/{userID}", userH.Get)
			r.Put("/users/{userID}", userH.Update)
			r.Get("/zones", zoneH.List)
			r.Get("/zones/{zoneID}", zoneH.Get)
			r.Get("/incidents", incidentH.List)
			r.Post("/incidents", incidentH.Report)
			r.Get("/incidents/{incidentID}", incidentH.Get)
			r.Put("/incidents/{incidentID}", incidentH.Update)
			r.Get("/drones", droneH.List)
			r.Get("/drones/{droneID}", droneH.Get)
			r.Get("/insights/weather", insightH.Weather)
			r.Post("/insights/sentiment", insightH.Sentiment)
			r.Post("/insights/garbage-alerts", insightH.GarbageAlerts)
			r.Post("/insights/incident-routing", insightH.IncidentRouting)
			r.Post("/insights/smart-location", insightH.SmartLocation)
			r.Post("/files", fileH.Upload)
			r.Get("/files/{fileID}/url", fileH.URL)
			r.Delete("/files/{fileID}", fileH.Delete)

			// Admin-only routes
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleAdmin))

				r.Get("/users", userH.List)
				r.Post("/users", userH.Create)
				r.Delete("/users/{userID}", userH.Disable)

				r.Put("/zones/{zoneID}/telemetry", zoneH.UpdateTelemetry)
				r.Put("/drones/{droneID}/telemetry", droneH.UpdateTelemetry)
				r.Post("/drones/{droneID}/recall", droneH.Recall)
			})
		})
	})

	return r
}
