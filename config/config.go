package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type Config struct {
	Port string

	// RedisAddr selects the Redis result cache; empty means in-memory.
	RedisAddr string
	CacheTTL  time.Duration

	EvalTimeout time.Duration
	LogLevel    zerolog.Level

	// GRPCAddr enables the gRPC health service when set.
	GRPCAddr string
}

func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getDuration(k string, def time.Duration) (time.Duration, error) {
	v := getEnv(k, "")
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", k, v, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s %q: must not be negative", k, v)
	}
	return d, nil
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		RedisAddr: getEnv("REDIS_ADDR", ""),
		GRPCAddr:  getEnv("GRPC_ADDR", ""),
	}

	var err error
	if cfg.CacheTTL, err = getDuration("CACHE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.EvalTimeout, err = getDuration("EVAL_TIMEOUT", 2*time.Second); err != nil {
		return nil, err
	}

	level := getEnv("LOG_LEVEL", "info")
	if cfg.LogLevel, err = zerolog.ParseLevel(strings.ToLower(level)); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
	}

	return cfg, nil
}

// Addr is the HTTP listen address.
func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}
