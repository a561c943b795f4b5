package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

// Snack source identifiers recognized by SNACK_SOURCE.
const (
	SourceAPI    = "api"
	SourceStatic = "static"
)

type Config struct {
	AppEnv      string `env:"APP_ENV" default:"development"`
	Port        string `env:"PORT" default:"8080"`
	DatabaseURL string `env:"DATABASE_URL"`
	RedisURL    string `env:"REDIS_URL"`

	SessionSecret string `env:"SESSION_SECRET"`

	SnackSource  string `env:"SNACK_SOURCE"`
	SnackAPIBase string `env:"SNACK_API_BASE" default:"https://api-snacks.nerderylabs.com/v1"`
	SnackAPIKey  string `env:"SNACK_API_KEY"`

	NominationsPerMonth int           `env:"NOMINATIONS_PER_MONTH" default:"1"`
	VotesPerMonth       int           `env:"VOTES_PER_MONTH" default:"3"`
	QuotaCacheTTL       time.Duration `env:"QUOTA_CACHE_TTL" default:"5m"`

	TimeZone string `env:"TIME_ZONE" default:"UTC"`

	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`

	location *time.Location
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	required := map[string]string{
		"DATABASE_URL":   cfg.DatabaseURL,
		"REDIS_URL":      cfg.RedisURL,
		"SESSION_SECRET": cfg.SessionSecret,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("%s is required", name)
		}
	}

	if cfg.NominationsPerMonth < 1 {
		return errors.New("NOMINATIONS_PER_MONTH must be at least 1")
	}
	if cfg.VotesPerMonth < 1 {
		return errors.New("VOTES_PER_MONTH must be at least 1")
	}
	if cfg.QuotaCacheTTL <= 0 {
		return errors.New("QUOTA_CACHE_TTL must be positive")
	}

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return fmt.Errorf("TIME_ZONE is not a valid IANA time zone: %w", err)
	}
	cfg.location = loc

	return nil
}

// Location returns the process time zone used for calendar-month windows.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}
