package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// OTP store backends.
const (
	OTPStoreMemory = "memory"
	OTPStoreRedis  = "redis"
	OTPStoreDynamo = "dynamo"
)

// Delivery-failure policies for the OTP issuer. "degrade" stores the code
// and reports a degraded delivery; "fail" rejects the request outright.
const (
	DeliveryDegrade = "degrade"
	DeliveryFail    = "fail"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables
	S3BucketName   string
	SNSAlertTopic  string // ops alert topic ARN; empty disables broadcasts

	SessionPrivateKeyPath string
	SessionPublicKeyPath  string
	SessionTTL            time.Duration

	OTPStore           string // memory | redis | dynamo
	OTPTTL             time.Duration
	OTPDeliveryFailure string // degrade | fail
	RedisAddr          string
	RedisPassword      string

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	InsightRunnerURL     string
	InsightRunnerTimeout time.Duration

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Users      string
	Sessions   string
	Zones      string
	Incidents  string
	Drones     string
	Files      string
	Challenges string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Users:      getEnv("DYNAMO_TABLE_USERS", "users"),
			Sessions:   getEnv("DYNAMO_TABLE_SESSIONS", "sessions"),
			Zones:      getEnv("DYNAMO_TABLE_ZONES", "zones"),
			Incidents:  getEnv("DYNAMO_TABLE_INCIDENTS", "incidents"),
			Drones:     getEnv("DYNAMO_TABLE_DRONES", "drones"),
			Files:      getEnv("DYNAMO_TABLE_FILES", "files"),
			Challenges: getEnv("DYNAMO_TABLE_CHALLENGES", "login_challenges"),
		},
		S3BucketName:  getEnv("S3_BUCKET_NAME", "event-ops-files"),
		SNSAlertTopic: getEnv("SNS_ALERT_TOPIC_ARN", ""),

		SessionPrivateKeyPath: getEnv("SESSION_PRIVATE_KEY_PATH", "./private_key.pem"),
		SessionPublicKeyPath:  getEnv("SESSION_PUBLIC_KEY_PATH", "./public_key.pem"),
		SessionTTL:            time.Duration(getEnvInt("SESSION_TTL_DAYS", 14)) * 24 * time.Hour,

		OTPStore:           getEnv("OTP_STORE", OTPStoreMemory),
		OTPTTL:             time.Duration(getEnvInt("OTP_TTL_MINUTES", 10)) * time.Minute,
		OTPDeliveryFailure: getEnv("OTP_DELIVERY_FAILURE", DeliveryDegrade),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@example.com"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		InsightRunnerURL:     getEnv("INSIGHT_RUNNER_URL", ""),
		InsightRunnerTimeout: time.Duration(getEnvInt("INSIGHT_RUNNER_TIMEOUT_SECONDS", 30)) * time.Second,

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

// IsProduction reports whether the app runs with production hardening
// (secure cookies).
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
