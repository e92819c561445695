package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=5000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	BotToken string `env:"BOT_TOKEN, required"`

	// File-backed state. Paths are relative to the working directory unless
	// absolute.
	KeysPath   string `env:"KEYS_PATH,   default=keys.json"`
	OrdersPath string `env:"ORDERS_PATH, default=orders.json"`
	LogPath    string `env:"LOG_PATH,    default=bot.log"`

	NotifyWorkers int `env:"NOTIFY_WORKERS, default=4"`

	Redis RedisConfig
}

// RedisConfig configures the optional duplicate-submission guard. An empty
// address disables it.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
