package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Ledger backends selectable through LEDGER_BACKEND.
const (
	BackendS3       = "s3"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Lead pipeline
	PersistLeads  bool
	LedgerBackend string
	LeadsBucket   string
	LeadsPrefix   string
	Timezone      string

	// AWS
	AWSRegion           string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	AWSEndpointOverride string

	// Alternate ledger backends
	RedisAddr     string
	RedisPassword string
	RedisTLS      bool
	DatabaseURL   string

	// Local HTTP server
	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int

	// MetricsOrigins are the lead origins reported as their own metric label.
	MetricsOrigins []string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		PersistLeads:  getEnvAsBool("PERSIST_LEADS", true),
		LedgerBackend: strings.ToLower(strings.TrimSpace(getEnv("LEDGER_BACKEND", BackendS3))),
		LeadsBucket:   getEnv("LEADS_BUCKET", ""),
		LeadsPrefix:   getEnv("LEADS_PREFIX", "leads/"),
		Timezone:      getEnv("LEADS_TIMEZONE", "Local"),

		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_OVERRIDE", ""),

		RedisAddr:     getEnv("REDIS_ADDR", "redis:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),
		DatabaseURL:   getEnv("DATABASE_URL", ""),

		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS"),
		MetricsOrigins:     getEnvAsList("METRICS_ORIGINS"),
		RateLimitRPS:       getEnvAsFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 20),
	}
}

// Validate checks the settings required by the selected ledger backend when
// leads are persisted.
func (c *Config) Validate() error {
	if !c.PersistLeads {
		return nil
	}
	return c.ValidateBackend()
}

// ValidateBackend checks the ledger backend settings regardless of
// PersistLeads. Anything that opens the ledger, including read-only routes,
// needs them.
func (c *Config) ValidateBackend() error {
	switch c.LedgerBackend {
	case BackendS3:
		if strings.TrimSpace(c.LeadsBucket) == "" {
			return fmt.Errorf("config: LEADS_BUCKET is required for the %s ledger", BackendS3)
		}
	case BackendRedis:
		if strings.TrimSpace(c.RedisAddr) == "" {
			return fmt.Errorf("config: REDIS_ADDR is required for the %s ledger", BackendRedis)
		}
	case BackendPostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return fmt.Errorf("config: DATABASE_URL is required for the %s ledger", BackendPostgres)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("config: unknown LEDGER_BACKEND %q", c.LedgerBackend)
	}
	return nil
}

// Location resolves Timezone; "Local" (or empty) is the process clock's zone.
func (c *Config) Location() (*time.Location, error) {
	tz := strings.TrimSpace(c.Timezone)
	if tz == "" || strings.EqualFold(tz, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("config: invalid LEADS_TIMEZONE %q: %w", tz, err)
	}
	return loc, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated variable, dropping blank entries.
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
