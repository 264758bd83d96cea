// Package config loads paylink configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Duplicate reference policies for the transaction store
const (
	DuplicatePolicyOverwrite = "overwrite"
	DuplicatePolicyReject    = "reject"
)

// Idempotency cache backends
const (
	IdempotencyBackendMemory   = "memory"
	IdempotencyBackendBolt     = "bolt"
	IdempotencyBackendPostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	Server      ServerConfig
	Logger      LoggerConfig
	Database    DatabaseConfig
	App         AppConfig
	Provider    ProviderConfig
	Idempotency IdempotencyConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database connection configuration.
// Only used by the postgres idempotency backend.
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	ConnMaxLifetime time.Duration
	MaxOpenConns    int
	MaxIdleConns    int
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Currency           string
	DuplicatePolicy    string
	DefaultDescription string
	CORSAllowedOrigin  string
	MinAmountCents     int64
	MaxAmountCents     int64
}

// ProviderConfig holds payment provider credentials and endpoints
type ProviderConfig struct {
	ClientID        string
	ClientSecret    string
	AuthURL         string
	APIURL          string
	Audience        string
	WebhookURL      string
	RedirectBaseURL string
	TokenTimeout    time.Duration
	RequestTimeout  time.Duration
	LinkValidity    time.Duration
}

// IdempotencyConfig holds configuration for the Idempotency-Key response cache
type IdempotencyConfig struct {
	Backend       string
	BoltPath      string
	PurgeSchedule string
	TTL           time.Duration
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level string // debug, info, warn, error
}

// Load loads configuration from environment variables with sensible defaults.
// A .env file in the working directory is read first when present; variables
// already set in the environment win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to read .env file", "error", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "10000"),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", "15s"),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", "30s"),
			IdleTimeout:     getEnvAsDuration("SERVER_IDLE_TIMEOUT", "60s"),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", "30s"),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			DBName:          getEnv("DB_NAME", "paylink"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 2),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", "5m"),
		},
		App: AppConfig{
			Currency:           strings.ToUpper(getEnv("PAYLINK_CURRENCY", "USD")),
			DuplicatePolicy:    strings.ToLower(getEnv("DUPLICATE_REFERENCE_POLICY", DuplicatePolicyOverwrite)),
			DefaultDescription: getEnv("DEFAULT_PRODUCT_NAME", "Renta de Vehículo"),
			CORSAllowedOrigin:  getEnv("CORS_ALLOWED_ORIGIN", "*"),
			MinAmountCents:     getEnvAsInt64("MIN_AMOUNT_CENTS", 100),
			MaxAmountCents:     getEnvAsInt64("MAX_AMOUNT_CENTS", 100000),
		},
		Provider: ProviderConfig{
			ClientID:        os.Getenv("WOMPI_CLIENT_ID"),
			ClientSecret:    os.Getenv("WOMPI_CLIENT_SECRET"),
			AuthURL:         getEnv("WOMPI_AUTH_URL", "https://id.wompi.sv/"),
			APIURL:          getEnv("WOMPI_API_URL", "https://api.wompi.sv/v1/"),
			Audience:        getEnv("WOMPI_AUDIENCE", "wompi_api"),
			WebhookURL:      getEnv("WEBHOOK_URL", "https://rideandbuypay.onrender.com/webhook/wompi"),
			RedirectBaseURL: getEnv("REDIRECT_BASE_URL", "https://rideandbuypay.onrender.com"),
			TokenTimeout:    getEnvAsDuration("WOMPI_TOKEN_TIMEOUT", "10s"),
			RequestTimeout:  getEnvAsDuration("WOMPI_REQUEST_TIMEOUT", "15s"),
			LinkValidity:    getEnvAsDuration("WOMPI_LINK_VALIDITY", "24h"),
		},
		Idempotency: IdempotencyConfig{
			Backend:       strings.ToLower(getEnv("IDEMPOTENCY_BACKEND", IdempotencyBackendMemory)),
			BoltPath:      getEnv("IDEMPOTENCY_BOLT_PATH", "idempotency.db"),
			PurgeSchedule: getEnv("IDEMPOTENCY_PURGE_SCHEDULE", "@every 10m"),
			TTL:           getEnvAsDuration("IDEMPOTENCY_TTL", "24h"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port cannot be empty")
	}

	if len(c.App.Currency) != 3 {
		return fmt.Errorf("currency must be a 3-letter ISO code, got %q", c.App.Currency)
	}
	if c.App.MinAmountCents < 0 {
		return fmt.Errorf("min amount cannot be negative")
	}
	if c.App.MaxAmountCents < c.App.MinAmountCents {
		return fmt.Errorf("max amount (%d) must be >= min amount (%d)", c.App.MaxAmountCents, c.App.MinAmountCents)
	}
	if c.App.DuplicatePolicy != DuplicatePolicyOverwrite && c.App.DuplicatePolicy != DuplicatePolicyReject {
		return fmt.Errorf("invalid duplicate reference policy: %s (must be overwrite or reject)", c.App.DuplicatePolicy)
	}

	if c.Provider.AuthURL == "" || c.Provider.APIURL == "" {
		return fmt.Errorf("provider auth and api urls cannot be empty")
	}

	switch c.Idempotency.Backend {
	case IdempotencyBackendMemory:
	case IdempotencyBackendBolt:
		if c.Idempotency.BoltPath == "" {
			return fmt.Errorf("bolt path cannot be empty for the bolt idempotency backend")
		}
	case IdempotencyBackendPostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("database host cannot be empty")
		}
		if c.Database.DBName == "" {
			return fmt.Errorf("database name cannot be empty")
		}
	default:
		return fmt.Errorf("invalid idempotency backend: %s (must be memory, bolt, or postgres)", c.Idempotency.Backend)
	}
	if c.Idempotency.TTL <= 0 {
		return fmt.Errorf("idempotency ttl must be positive")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	return nil
}

// HasProviderCredentials reports whether client credentials are configured.
func (c *ProviderConfig) HasProviderCredentials() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// DSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Redacted returns a copy of the configuration that is safe to print.
func (c *Config) Redacted() Config {
	out := *c
	out.Provider.ClientID = redact(c.Provider.ClientID)
	out.Provider.ClientSecret = redact(c.Provider.ClientSecret)
	out.Database.Password = redact(c.Database.Password)
	return out
}

func redact(secret string) string {
	if secret == "" {
		return "MISSING"
	}
	if len(secret) <= 8 {
		return "***"
	}
	return secret[:8] + "..."
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		// Fallback to parsing the default if provided value is invalid
		duration, err = time.ParseDuration(defaultValue)
		if err != nil {
			return 0
		}
	}
	return duration
}
