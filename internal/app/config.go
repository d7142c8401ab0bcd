package app

import (
	"errors"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the application.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development"`
	AppAddr           string        `envconfig:"APP_ADDR" default:":8080"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"15s"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"30s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	WordPressBaseURL string        `envconfig:"WP_BASE_URL" required:"true"`
	WordPressTimeout time.Duration `envconfig:"WP_TIMEOUT" default:"20s"`

	TrackerBaseURL  string `envconfig:"TRACKER_BASE_URL" default:"https://app.flottaincloud.it"`
	TrackerUsername string `envconfig:"TRACKER_USERNAME"`
	TrackerToken    string `envconfig:"TRACKER_TOKEN"`

	RedisAddr    string        `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	PositionTTL  time.Duration `envconfig:"POSITION_TTL" default:"5m"`
	RefreshCron  string        `envconfig:"POSITION_REFRESH_CRON" default:"*/2 * * * *"`
	RateLimit    int           `envconfig:"RATE_LIMIT" default:"120"`
	RateInterval time.Duration `envconfig:"RATE_INTERVAL" default:"1m"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.WordPressBaseURL == "" {
		return nil, errors.New("wordpress base url must be provided")
	}
	return &cfg, nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}

// TrackerConfigured reports whether fleet-tracking credentials are present.
func (c *Config) TrackerConfigured() bool {
	return c != nil && c.TrackerUsername != "" && c.TrackerToken != ""
}
