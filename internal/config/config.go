package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath   string     `env:"DB_PATH" envDefault:"data/imposter.db"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	SPADir   string     `env:"SPA_DIR" envDefault:""`

	// RedisURL enables the cross-device score distribution when set.
	// Empty means the feature is off; the game itself never needs Redis.
	RedisURL string `env:"REDIS_URL" envDefault:""`

	AdminUser     string `env:"ADMIN_USER" envDefault:"gogigi"`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"GoGigi1"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
