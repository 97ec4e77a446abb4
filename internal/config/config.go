package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// APIBaseURL is the root of the remote REST API the sync layer talks to.
	APIBaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:8080"`
	// HTTPTimeout bounds every request. Zero means no timeout, which is the
	// default the original client shipped with.
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"0"`
	// ActivePlayerID identifies the local user's profile. Defaults to the
	// stub server's seeded player.
	ActivePlayerID string     `env:"ACTIVE_PLAYER_ID" envDefault:"p-ana"`
	LogLevel       slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`

	// Stub server settings, unused by the client itself.
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath   string `env:"DB_PATH" envDefault:"matchup.db"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
