package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	APIURL      string `env:"API_URL,        default=http://localhost:3000"`
	TimeoutMS   int    `env:"API_TIMEOUT_MS, default=10000"`
	Debug       bool   `env:"DEBUG,          default=false"`
	AppName     string `env:"APP_NAME,       default=StayFinder"`
	Environment string `env:"ENVIRONMENT,    default=development"`
	LogLevel    string `env:"LOG_LEVEL,      default=info"`

	Session SessionConfig
}

// SessionConfig selects where the durable session (access token + profile)
// lives. Redis wins when an address is set, otherwise files under Dir.
type SessionConfig struct {
	Dir       string `env:"SESSION_DIR,        default=.stayfinder"`
	RedisAddr string `env:"SESSION_REDIS_ADDR"`
	RedisDB   int    `env:"SESSION_REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// Timeout returns the transport request timeout.
func (c *Config) Timeout() time.Duration {
	if c.TimeoutMS <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutMS) * time.Millisecond
}
