package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/swms/swms-console/internal/auth"
)

// Config holds runtime configuration for the application.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development"`
	AppAddr           string        `envconfig:"APP_ADDR" default:":8080"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"15s"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"30s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`

	RedisAddr     string        `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	SessionSecret string        `envconfig:"SESSION_SECRET" required:"true"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"24h"`

	CSRFSecret string `envconfig:"CSRF_SECRET" required:"true"`

	APIURL     string        `envconfig:"SWMS_API_URL" default:"http://127.0.0.1:8081"`
	APITimeout time.Duration `envconfig:"SWMS_API_TIMEOUT" default:"15s"`

	UnknownRole string `envconfig:"AUTH_UNKNOWN_ROLE" default:"reject"`

	RateLimitPerMinute int `envconfig:"RATE_LIMIT_PER_MINUTE" default:"60"`

	unknownRole auth.UnknownRolePolicy
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.SessionSecret == "" {
		return nil, errors.New("session secret must be provided")
	}
	if cfg.CSRFSecret == "" {
		return nil, errors.New("csrf secret must be provided")
	}
	if cfg.APIURL == "" {
		return nil, errors.New("swms api url must be provided")
	}
	policy, err := auth.ParseUnknownRolePolicy(cfg.UnknownRole)
	if err != nil {
		return nil, fmt.Errorf("AUTH_UNKNOWN_ROLE: %w", err)
	}
	cfg.unknownRole = policy
	if cfg.RateLimitPerMinute <= 0 {
		return nil, errors.New("rate limit per minute must be positive")
	}
	return &cfg, nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}

// UnknownRolePolicy returns the parsed AUTH_UNKNOWN_ROLE policy.
func (c *Config) UnknownRolePolicy() auth.UnknownRolePolicy {
	if c == nil || c.unknownRole == "" {
		return auth.RejectUnknownRole
	}
	return c.unknownRole
}
