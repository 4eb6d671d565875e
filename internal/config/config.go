package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog/log"
)

// devSessionSecret is only used when SESSION_SECRET is not set. It exists so
// the app can start in local development; production deployments must inject
// their own secret.
const devSessionSecret = "se-portal-dev-secret"

// Config holds the application configuration.
type Config struct {
	ServerPort    int    `env:"PORT" envDefault:"8080"`
	Testing       bool   `env:"SE_PORTAL_TESTING" envDefault:"false"`
	DatabasePath  string `env:"DATABASE_PATH"`
	SessionSecret string `env:"SESSION_SECRET"`
}

// Load parses configuration from environment variables.
//
// The Testing toggle selects which sqlite file is used when DATABASE_PATH is
// not set explicitly, so test runs never touch the production database.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("error parsing environment config: %w", err)
	}

	if cfg.DatabasePath == "" {
		if cfg.Testing {
			cfg.DatabasePath = "./test_database.sqlite"
		} else {
			cfg.DatabasePath = "./database.sqlite"
		}
	}

	if cfg.SessionSecret == "" {
		log.Warn().Msg("SESSION_SECRET is not set, falling back to the development secret; do not run production like this")
		cfg.SessionSecret = devSessionSecret
	}

	return cfg, nil
}
