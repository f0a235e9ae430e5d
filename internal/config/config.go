package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port            int    `env:"PORT" envDefault:"8000"`
	LogLevel        string `env:"LOG_LEVEL" envDefault:"info"`
	CORSOrigin      string `env:"CORS_ORIGIN" envDefault:"http://localhost:3000"`
	RateLimitPerMin int    `env:"RATE_LIMIT_PER_MINUTE" envDefault:"60"`
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.RateLimitPerMin <= 0 {
		cfg.RateLimitPerMin = DefaultRateLimitPerMin
	}
	return &cfg, nil
}
