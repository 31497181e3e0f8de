// Package config reads service settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds the settings of the HTTP service.
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`
	// DatabaseURL is optional; without it donor and project lookups are
	// unavailable and the service only scores submitted activity.
	DatabaseURL   string        `env:"DATABASE_URL"`
	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	CacheTTL      time.Duration `env:"CACHE_TTL" envDefault:"5m"`
	Profile       string        `env:"SCORING_PROFILE" envDefault:"default"`
	MatchingPool  float64       `env:"MATCHING_POOL" envDefault:"0"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
}

// LoadConfig parses the environment into a Config.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config.LoadConfig: %w", err)
	}
	if cfg.CacheTTL < 0 {
		return nil, fmt.Errorf("config.LoadConfig: CACHE_TTL must not be negative")
	}
	if cfg.MatchingPool < 0 {
		return nil, fmt.Errorf("config.LoadConfig: MATCHING_POOL must not be negative")
	}
	return &cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.HTTPPort
}
