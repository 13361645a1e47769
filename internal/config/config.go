// Package config loads server settings from the environment and an
// optional YAML file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	redisstorage "github.com/mcoot/tictactoe-go/internal/storage/redis"
)

// Config is the server configuration. Environment variables override
// values read from a file.
type Config struct {
	LogLevel   string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info" env-description:"debug, info, warn or error"`
	ThinkDelay time.Duration `yaml:"think-delay" env:"THINK_DELAY" env-default:"200ms" env-description:"Pause before each bot move"`
	HTTP       HTTP          `yaml:"http"`
	Storage    Storage       `yaml:"storage"`
}

// HTTP holds listener settings
type HTTP struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"" env-description:"Interface to listen on"`
	Port int    `yaml:"port" env:"HTTP_PORT" env-default:"8080" env-description:"Port to listen on"`
}

// Storage selects and configures the snapshot store
type Storage struct {
	Type       string        `yaml:"type" env:"STORAGE_TYPE" env-default:"memory" env-description:"memory or redis"`
	RedisURL   string        `yaml:"redis-url" env:"REDIS_URL" env-description:"Redis URL, required for redis storage"`
	SessionTTL time.Duration `yaml:"session-ttl" env:"SESSION_TTL" env-default:"24h" env-description:"How long idle sessions are kept"`
}

// Load reads configuration from path, or from the environment alone when
// path is empty
func Load(path string) (*Config, error) {
	cfg := &Config{}

	var err error
	if path == "" {
		err = cleanenv.ReadEnv(cfg)
	} else {
		err = cleanenv.ReadConfig(path, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad is Load that panics on error
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Validate checks values the struct tags cannot express and normalises
// the storage type
func (c *Config) Validate() error {
	var errs []error
	c.Storage.Type = strings.ToLower(c.Storage.Type)
	if c.HTTP.Port < 1 || c.HTTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("HTTP_PORT %d out of range", c.HTTP.Port))
	}
	switch c.Storage.Type {
	case "memory":
	case "redis":
		if c.Storage.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL required when STORAGE_TYPE=redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORAGE_TYPE %q must be memory or redis", c.Storage.Type))
	}
	if c.ThinkDelay < 0 {
		errs = append(errs, errors.New("THINK_DELAY must not be negative"))
	}
	if c.Storage.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// SlogLevel parses LogLevel
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// RedisConfig builds the redis storage settings
func (c *Config) RedisConfig() redisstorage.Config {
	cfg := redisstorage.DefaultConfig()
	cfg.URL = c.Storage.RedisURL
	cfg.SessionTTL = c.Storage.SessionTTL
	return cfg
}

// Usage describes every environment variable
func Usage() string {
	text, err := cleanenv.GetDescription(&Config{}, nil)
	if err != nil {
		return ""
	}
	return text
}
