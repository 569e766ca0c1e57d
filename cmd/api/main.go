package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/event-ops-api/internal/application/auth"
	"github.com/event-ops-api/internal/application/insight"
	"github.com/event-ops-api/internal/config"
	"github.com/event-ops-api/internal/infrastructure/dynamo"
	"github.com/event-ops-api/internal/infrastructure/genai"
	jwtinfra "github.com/event-ops-api/internal/infrastructure/jwt"
	"github.com/event-ops-api/internal/infrastructure/memory"
	redisinfra "github.com/event-ops-api/internal/infrastructure/redis"
	s3infra "github.com/event-ops-api/internal/infrastructure/s3"
	"github.com/event-ops-api/internal/infrastructure/smtp"
	"github.com/event-ops-api/internal/infrastructure/sns"
	transporthttp "github.com/event-ops-api/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist) and
	// seed the default venue zones.
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)
	zoneRepo := dynamo.NewZoneRepo(dynamoClient, cfg.DynamoTables.Zones)
	dynamo.SeedZones(context.Background(), zoneRepo)

	// JWT provider (optional — graceful fallback if keys are missing).
	var jwtProvider *jwtinfra.Provider
	if p, err := jwtinfra.NewProvider(cfg); err == nil {
		jwtProvider = p
	} else {
		log.Printf("WARN: JWT provider not available: %v", err)
	}

	// Login-code store, selected by OTP_STORE.
	var challenges auth.ChallengeStore
	switch cfg.OTPStore {
	case config.OTPStoreRedis:
		challenges = redisinfra.NewChallengeStore(cfg)
	case config.OTPStoreDynamo:
		challenges = dynamo.NewChallengeRepo(dynamoClient, cfg.DynamoTables.Challenges)
	default:
		challenges = memory.NewChallengeStore()
	}
	log.Printf("login-code store: %s", cfg.OTPStore)

	// S3 store.
	s3Client := s3infra.NewClient(cfg)
	s3Store := s3infra.NewStore(s3Client, cfg.S3BucketName)

	// SMTP mailer.
	mailer := smtp.NewMailer(cfg)

	// SNS alert publisher (optional — graceful fallback).
	var alerter insight.Alerter
	if pub, err := sns.NewPublisher(cfg); err == nil {
		alerter = pub
	} else {
		log.Printf("WARN: SNS alert publisher not available: %v", err)
	}

	// Hosted prompt runner (optional — insight routes return 502 without it).
	var runner genai.Runner
	if rc, err := genai.NewClient(cfg); err == nil {
		runner = rc
	} else {
		log.Printf("WARN: insight runner not available: %v", err)
	}

	deps := &transporthttp.Deps{
		UserRepo:       dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users),
		SessionRepo:    dynamo.NewSessionRepo(dynamoClient, cfg.DynamoTables.Sessions),
		ZoneRepo:       zoneRepo,
		IncidentRepo:   dynamo.NewIncidentRepo(dynamoClient, cfg.DynamoTables.Incidents),
		DroneRepo:      dynamo.NewDroneRepo(dynamoClient, cfg.DynamoTables.Drones),
		FileRepo:       dynamo.NewFileRepo(dynamoClient, cfg.DynamoTables.Files),
		ChallengeStore: challenges,
		S3Store:        s3Store,
		Mailer:         mailer,
		Alerter:        alerter,
		InsightRunner:  runner,
		JWTProvider:    jwtProvider,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
