// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetRateLimitRPS() float64
	GetRateLimitBurst() int
}

// RedisConfig provides settings for the session stores.
type RedisConfig interface {
	GetRedisURL() string
}

// AdminConfig provides settings for the admin session guard.
type AdminConfig interface {
	GetAdminUsername() string
	GetAdminPassword() string
	GetAdminPasswordHash() string
	GetAdminJWTSecret() string
	GetAdminSessionTTL() time.Duration
}

// WizardConfig provides settings for kiosk wizard sessions.
type WizardConfig interface {
	GetWizardSessionTTL() time.Duration
	GetPublicBaseURL() string
}

// MinIOConfig provides settings for MinIO S3-compatible storage.
type MinIOConfig interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinIOMaxFileSize() int64
	GetMinioBucketDocuments() string
	IsMinIOEnabled() bool
}

// TelemetryConfig provides settings for OpenTelemetry tracing.
type TelemetryConfig interface {
	GetOTLPEndpoint() string
	GetOTLPInsecure() bool
	GetServiceName() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                  string
	HTTPAddr             string
	DatabaseURL          string
	RedisURL             string
	CORSAllowAll         bool
	CORSOrigins          []string
	RateLimitRPS         float64
	RateLimitBurst       int
	AdminUsername        string
	AdminPassword        string
	AdminPasswordHash    string
	AdminJWTSecret       string
	AdminSessionTTL      time.Duration
	WizardSessionTTL     time.Duration
	PublicBaseURL        string
	MinIOEndpoint        string
	MinIOAccessKey       string
	MinIOSecretKey       string
	MinIOUseSSL          bool
	MinIOMaxFileSize     int64
	MinioBucketDocuments string
	OTLPEndpoint         string
	OTLPInsecure         bool
	ServiceName          string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetRateLimitRPS() float64 { return c.RateLimitRPS }
func (c *Config) GetRateLimitBurst() int   { return c.RateLimitBurst }

// RedisConfig implementation
func (c *Config) GetRedisURL() string { return c.RedisURL }

// AdminConfig implementation
func (c *Config) GetAdminUsername() string          { return c.AdminUsername }
func (c *Config) GetAdminPassword() string          { return c.AdminPassword }
func (c *Config) GetAdminPasswordHash() string      { return c.AdminPasswordHash }
func (c *Config) GetAdminJWTSecret() string         { return c.AdminJWTSecret }
func (c *Config) GetAdminSessionTTL() time.Duration { return c.AdminSessionTTL }

// WizardConfig implementation
func (c *Config) GetWizardSessionTTL() time.Duration { return c.WizardSessionTTL }
func (c *Config) GetPublicBaseURL() string           { return c.PublicBaseURL }

// MinIOConfig implementation
func (c *Config) GetMinIOEndpoint() string        { return c.MinIOEndpoint }
func (c *Config) GetMinIOAccessKey() string       { return c.MinIOAccessKey }
func (c *Config) GetMinIOSecretKey() string       { return c.MinIOSecretKey }
func (c *Config) GetMinIOUseSSL() bool            { return c.MinIOUseSSL }
func (c *Config) GetMinIOMaxFileSize() int64      { return c.MinIOMaxFileSize }
func (c *Config) GetMinioBucketDocuments() string { return c.MinioBucketDocuments }
func (c *Config) IsMinIOEnabled() bool            { return c.MinIOEndpoint != "" }

// TelemetryConfig implementation
func (c *Config) GetOTLPEndpoint() string { return c.OTLPEndpoint }
func (c *Config) GetOTLPInsecure() bool   { return c.OTLPInsecure }
func (c *Config) GetServiceName() string  { return c.ServiceName }

// =============================================================================
// Loading
// =============================================================================

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	env := getEnv("APP_ENV", "development")

	adminTTL, err := parseDuration("ADMIN_SESSION_TTL", "0")
	if err != nil {
		return nil, err
	}
	wizardTTL, err := parseDuration("WIZARD_SESSION_TTL", "12h")
	if err != nil {
		return nil, err
	}
	rps, err := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "20"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
	}
	burst, err := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "40"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
	}
	maxFileSize, err := strconv.ParseInt(getEnv("MINIO_MAX_FILE_SIZE", "10485760"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid MINIO_MAX_FILE_SIZE: %w", err)
	}

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173"))
	corsAllowAll := getEnvBool("CORS_ALLOW_ALL", false)
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                  env,
		HTTPAddr:             getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		RedisURL:             os.Getenv("REDIS_URL"),
		CORSAllowAll:         corsAllowAll,
		CORSOrigins:          corsOrigins,
		RateLimitRPS:         rps,
		RateLimitBurst:       burst,
		AdminUsername:        getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:        getEnv("ADMIN_PASSWORD", "123"),
		AdminPasswordHash:    os.Getenv("ADMIN_PASSWORD_HASH"),
		AdminJWTSecret:       os.Getenv("ADMIN_JWT_SECRET"),
		AdminSessionTTL:      adminTTL,
		WizardSessionTTL:     wizardTTL,
		PublicBaseURL:        strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:5173"), "/"),
		MinIOEndpoint:        os.Getenv("MINIO_ENDPOINT"),
		MinIOAccessKey:       os.Getenv("MINIO_ACCESS_KEY"),
		MinIOSecretKey:       os.Getenv("MINIO_SECRET_KEY"),
		MinIOUseSSL:          getEnvBool("MINIO_USE_SSL", false),
		MinIOMaxFileSize:     maxFileSize,
		MinioBucketDocuments: getEnv("MINIO_BUCKET_DOCUMENTS", "customer-documents"),
		OTLPEndpoint:         os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OTLPInsecure:         getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", false),
		ServiceName:          getEnv("OTEL_SERVICE_NAME", "dmt-kiosk-api"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.AdminJWTSecret == "" {
		if !strings.EqualFold(env, "development") {
			return nil, fmt.Errorf("ADMIN_JWT_SECRET is required outside development")
		}
		cfg.AdminJWTSecret = "dev-admin-secret"
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}

func parseDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func containsWildcard(values []string) bool {
	for _, v := range values {
		if v == "*" {
			return true
		}
	}
	return false
}
