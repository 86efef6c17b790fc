package api

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port               string        `envconfig:"PORT" default:"8080"`
	Environment        string        `envconfig:"ENVIRONMENT" default:"development"`
	PostgresDSN        string        `envconfig:"POSTGRES_DSN"`
	RedisURL           string        `envconfig:"REDIS_URL"`
	IdempotencyTTL     time.Duration `envconfig:"IDEMPOTENCY_TTL" default:"24h"`
	TemporalAddress    string        `envconfig:"TEMPORAL_ADDRESS" default:"localhost:7233"`
	TemporalNamespace  string        `envconfig:"TEMPORAL_NAMESPACE" default:"default"`
	TemporalDisabled   bool          `envconfig:"TEMPORAL_DISABLED"`
	DemoOwnerID        int64         `envconfig:"DEMO_OWNER_ID" default:"1"`
	SeedDemoData       bool          `envconfig:"SEED_DEMO_DATA" default:"true"`
	CORSAllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

// LoadConfig reads an optional .env file, then the environment, applies defaults and
// validates basic constraints. Variables already set in the environment win over .env.
func LoadConfig(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	cfg.PostgresDSN = strings.TrimSpace(cfg.PostgresDSN)
	cfg.RedisURL = strings.TrimSpace(cfg.RedisURL)
	if cfg.DemoOwnerID <= 0 {
		return Config{}, fmt.Errorf("DEMO_OWNER_ID must be a positive integer")
	}
	if cfg.IdempotencyTTL <= 0 {
		return Config{}, fmt.Errorf("IDEMPOTENCY_TTL must be positive")
	}
	return cfg, nil
}

// Addr is the listen address derived from Port.
func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}
