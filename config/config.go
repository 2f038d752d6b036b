// Package config loads the service configuration: built-in defaults, then an
// optional YAML file, then a .env file and the process environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/ghodss/yaml"
	"github.com/joho/godotenv"
)

// Duration reads "30s" style values from both YAML and the environment.
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

type Config struct {
	Port      string `json:"port" env:"PORT"`
	LogLevel  string `json:"log_level" env:"LOG_LEVEL"`
	LogFormat string `json:"log_format" env:"LOG_FORMAT"`

	RateLimit       int      `json:"rate_limit" env:"RATE_LIMIT"`
	RateLimitWindow Duration `json:"rate_limit_window" env:"RATE_LIMIT_WINDOW"`

	// Where calculated plans are stored: "memory" or "sqlite".
	PlanBackend string `json:"plan_backend" env:"PLAN_BACKEND"`
	SQLitePath  string `json:"sqlite_path" env:"SQLITE_PATH"`

	// Where calculated plans are cached: "memory" or "redis".
	CacheBackend string   `json:"cache_backend" env:"CACHE_BACKEND"`
	RedisAddr    string   `json:"redis_addr" env:"REDIS_ADDR"`
	CacheTTL     Duration `json:"cache_ttl" env:"CACHE_TTL"`
	// Size cap and sweep interval of the memory cache.
	CacheMaxEntries    int      `json:"cache_max_entries" env:"CACHE_MAX_ENTRIES"`
	CacheSweepInterval Duration `json:"cache_sweep_interval" env:"CACHE_SWEEP_INTERVAL"`
}

func Default() Config {
	return Config{
		Port:            "8080",
		LogLevel:        "info",
		LogFormat:       "text",
		RateLimit:       5,
		RateLimitWindow: Duration(time.Minute),
		PlanBackend:     "memory",
		SQLitePath:      "./data/plans.db",
		CacheBackend:    "memory",
		RedisAddr:       "localhost:6379",
		CacheTTL:        Duration(time.Hour),

		CacheMaxEntries:    1000,
		CacheSweepInterval: Duration(10 * time.Minute),
	}
}

// Load starts from Default and applies path (skipped when empty or
// missing), then .env and the environment. Values set explicitly, zero
// included, win over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file %s: %w", path, err)
			}
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.RateLimit < 1 {
		problems = append(problems, fmt.Sprintf("invalid rate limit %d: must be at least 1", c.RateLimit))
	}
	if c.RateLimitWindow.Std() < time.Second {
		problems = append(problems, fmt.Sprintf("invalid rate limit window %v: must be at least 1 second", c.RateLimitWindow.Std()))
	}

	switch c.PlanBackend {
	case "memory":
	case "sqlite":
		if c.SQLitePath == "" {
			problems = append(problems, "SQLite path cannot be empty when using the sqlite plan backend")
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid plan backend '%s': must be one of [memory sqlite]", c.PlanBackend))
	}

	switch c.CacheBackend {
	case "memory":
	case "redis":
		if _, _, err := net.SplitHostPort(c.RedisAddr); err != nil {
			problems = append(problems, fmt.Sprintf("invalid redis address '%s': %v", c.RedisAddr, err))
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid cache backend '%s': must be one of [memory redis]", c.CacheBackend))
	}
	if c.CacheTTL.Std() < 0 {
		problems = append(problems, fmt.Sprintf("invalid cache ttl %v: cannot be negative", c.CacheTTL.Std()))
	}
	if c.CacheMaxEntries < 1 {
		problems = append(problems, fmt.Sprintf("invalid cache max entries %d: must be at least 1", c.CacheMaxEntries))
	}
	if c.CacheSweepInterval.Std() < time.Second {
		problems = append(problems, fmt.Sprintf("invalid cache sweep interval %v: must be at least 1 second", c.CacheSweepInterval.Std()))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}
