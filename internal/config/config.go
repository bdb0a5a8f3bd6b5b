// Package config loads runtime settings from defaults, an optional YAML
// file and the environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Store backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config holds everything except the LLM settings, which are read by
// llm.ConfigFromEnv.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Store  StoreConfig  `yaml:"store"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig configures the catalog HTTP service.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"readTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// StoreConfig selects where progress and preferences are kept.
type StoreConfig struct {
	Backend string      `yaml:"backend"`
	Path    string      `yaml:"path"` // empty means the default XDG path
	Redis   RedisConfig `yaml:"redis"`
}

// RedisConfig configures the redis slot backend.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:         "",
			Port:         3001,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Store: StoreConfig{
			Backend: BackendSQLite,
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "studyy",
			},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadDotEnv reads .env from the working directory if present. Variables
// already set in the environment win.
func LoadDotEnv() error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and STUDYY_* environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("STUDYY_HOST"); v != "" {
		cfg.Server.Host = v
	}
	// PORT is honoured for compatibility with hosting platforms; STUDYY_PORT wins.
	for _, key := range []string{"PORT", "STUDYY_PORT"} {
		if v := os.Getenv(key); v != "" {
			port, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("STUDYY_STORE"); v != "" {
		cfg.Store.Backend = strings.ToLower(v)
	}
	if v := os.Getenv("STUDYY_DB"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("STUDYY_REDIS_ADDR"); v != "" {
		cfg.Store.Redis.Addr = v
	}
	if v := os.Getenv("STUDYY_REDIS_PASSWORD"); v != "" {
		cfg.Store.Redis.Password = v
	}
	if v := os.Getenv("STUDYY_REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("STUDYY_REDIS_DB: %w", err)
		}
		cfg.Store.Redis.DB = db
	}
	if v := os.Getenv("STUDYY_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("STUDYY_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	return nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		errs = append(errs, errors.New("server timeouts must not be negative"))
	}
	switch c.Store.Backend {
	case BackendSQLite:
	case BackendRedis:
		if c.Store.Redis.Addr == "" {
			errs = append(errs, errors.New("store.redis.addr is required for the redis backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("store.backend %q must be sqlite or redis", c.Store.Backend))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q must be debug, info, warn or error", c.Log.Level))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q must be text or json", c.Log.Format))
	}
	return errors.Join(errs...)
}
