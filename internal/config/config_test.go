package config

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: "10000"},
		App: AppConfig{
			Currency:        "USD",
			DuplicatePolicy: DuplicatePolicyOverwrite,
			MinAmountCents:  100,
			MaxAmountCents:  100000,
		},
		Provider: ProviderConfig{
			AuthURL: "https://id.example.test/",
			APIURL:  "https://api.example.test/v1/",
		},
		Idempotency: IdempotencyConfig{
			Backend: IdempotencyBackendMemory,
			TTL:     time.Hour,
		},
		Logger: LoggerConfig{Level: "info"},
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("WOMPI_CLIENT_ID", "")
	t.Setenv("MIN_AMOUNT_CENTS", "")
	t.Setenv("MAX_AMOUNT_CENTS", "")
	t.Setenv("IDEMPOTENCY_BACKEND", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("PAYLINK_CURRENCY", "")
	t.Setenv("DUPLICATE_REFERENCE_POLICY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "USD", cfg.App.Currency)
	assert.Equal(t, int64(100), cfg.App.MinAmountCents)
	assert.Equal(t, int64(100000), cfg.App.MaxAmountCents)
	assert.Equal(t, DuplicatePolicyOverwrite, cfg.App.DuplicatePolicy)
	assert.Equal(t, IdempotencyBackendMemory, cfg.Idempotency.Backend)
	assert.Equal(t, 15*time.Second, cfg.Provider.RequestTimeout)
	assert.False(t, cfg.Provider.HasProviderCredentials())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("MIN_AMOUNT_CENTS", "500")
	t.Setenv("MAX_AMOUNT_CENTS", "5000")
	t.Setenv("DUPLICATE_REFERENCE_POLICY", "REJECT")
	t.Setenv("PAYLINK_CURRENCY", "eur")
	t.Setenv("WOMPI_TOKEN_TIMEOUT", "not-a-duration")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(500), cfg.App.MinAmountCents)
	assert.Equal(t, int64(5000), cfg.App.MaxAmountCents)
	assert.Equal(t, DuplicatePolicyReject, cfg.App.DuplicatePolicy)
	assert.Equal(t, "EUR", cfg.App.Currency)
	assert.Equal(t, 10*time.Second, cfg.Provider.TokenTimeout, "invalid duration falls back to default")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		mutate  func(*Config)
		name    string
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "empty port", mutate: func(c *Config) { c.Server.Port = "" }, wantErr: true},
		{name: "bad currency", mutate: func(c *Config) { c.App.Currency = "DOLLARS" }, wantErr: true},
		{name: "negative min", mutate: func(c *Config) { c.App.MinAmountCents = -1 }, wantErr: true},
		{name: "max below min", mutate: func(c *Config) { c.App.MaxAmountCents = 50 }, wantErr: true},
		{name: "equal bounds", mutate: func(c *Config) { c.App.MaxAmountCents = 100 }},
		{name: "unknown policy", mutate: func(c *Config) { c.App.DuplicatePolicy = "merge" }, wantErr: true},
		{name: "unknown backend", mutate: func(c *Config) { c.Idempotency.Backend = "redis" }, wantErr: true},
		{name: "bolt without path", mutate: func(c *Config) { c.Idempotency.Backend = IdempotencyBackendBolt }, wantErr: true},
		{
			name: "postgres with database",
			mutate: func(c *Config) {
				c.Idempotency.Backend = IdempotencyBackendPostgres
				c.Database.Host = "localhost"
				c.Database.DBName = "paylink"
			},
		},
		{name: "postgres without database", mutate: func(c *Config) { c.Idempotency.Backend = IdempotencyBackendPostgres }, wantErr: true},
		{name: "zero ttl", mutate: func(c *Config) { c.Idempotency.TTL = 0 }, wantErr: true},
		{name: "bad log level", mutate: func(c *Config) { c.Logger.Level = "verbose" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRedacted(t *testing.T) {
	cfg := validConfig()
	cfg.Provider.ClientID = "abcdefghijklmnop"
	cfg.Provider.ClientSecret = ""
	cfg.Database.Password = "short"

	out := cfg.Redacted()

	assert.Equal(t, "abcdefgh...", out.Provider.ClientID)
	assert.Equal(t, "MISSING", out.Provider.ClientSecret)
	assert.Equal(t, "***", out.Database.Password)
	assert.Equal(t, "abcdefghijklmnop", cfg.Provider.ClientID, "original must be untouched")
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLogLevel("debug").String())
	assert.Equal(t, "WARN", parseLogLevel("warning").String())
	assert.Equal(t, "INFO", parseLogLevel("nonsense").String())
}

func TestNewLoggerTo(t *testing.T) {
	var buf bytes.Buffer
	cfg := LoggerConfig{Level: "warn"}
	logger := cfg.NewLoggerTo(&buf)

	logger.Info("dropped")
	logger.Warn("kept", "reference", "R-1")

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, `"msg":"kept"`)
	assert.Contains(t, out, `"service":"paylink"`)
	assert.Contains(t, out, `"reference":"R-1"`)
}
