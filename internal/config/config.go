package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/simibol/planpoint/internal/domain"
	"github.com/simibol/planpoint/internal/scheduler"
)

// Notification state backends.
const (
	NotifyStoreSQLite = "sqlite"
	NotifyStoreRedis  = "redis"
)

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Config holds everything the planpoint binary needs to wire itself.
type Config struct {
	DBPath            string                   `yaml:"db_path"`
	LogLevel          string                   `yaml:"log_level"`
	LogFormat         string                   `yaml:"log_format"`
	Timezone          string                   `yaml:"timezone"`
	HTTPAddr          string                   `yaml:"http_addr"`
	NotificationStore string                   `yaml:"notification_store"`
	Redis             RedisConfig              `yaml:"redis"`
	Weights           scheduler.ScoringWeights `yaml:"weights"`
	Preferences       domain.PreferencesInput  `yaml:"preferences"`
}

// DefaultConfig returns a Config storing everything in ~/.planpoint and
// scheduling in the local time zone.
func DefaultConfig() Config {
	dbPath := "planpoint.db"
	if home, err := os.UserHomeDir(); err == nil {
		dbPath = filepath.Join(home, ".planpoint", "planpoint.db")
	}
	return Config{
		DBPath:            dbPath,
		LogLevel:          "info",
		LogFormat:         "text",
		Timezone:          "Local",
		HTTPAddr:          "127.0.0.1:8080",
		NotificationStore: NotifyStoreSQLite,
		Redis:             RedisConfig{Addr: "localhost:6379"},
		Weights:           scheduler.DefaultWeights(),
	}
}

// Load layers defaults, the YAML file named by PLANPOINT_CONFIG, and
// environment overrides, then validates the result.
func Load() (Config, error) {
	cfg := DefaultConfig()

	if path := strings.TrimSpace(os.Getenv("PLANPOINT_CONFIG")); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// loadFile overlays the fields present in the file. Weights given in the
// file replace the defaults term by term.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PLANPOINT_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("PLANPOINT_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("PLANPOINT_LOG_FORMAT"); v != "" {
		c.LogFormat = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("PLANPOINT_TZ"); v != "" {
		c.Timezone = v
	}
	if v := os.Getenv("PLANPOINT_HTTP_ADDR"); v != "" {
		c.HTTPAddr = v
	}
	if v := os.Getenv("PLANPOINT_NOTIFY_STORE"); v != "" {
		c.NotificationStore = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("REDIS_DB must be an integer, got %q", v)
		}
		c.Redis.DB = n
	}
	return nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("db_path must not be empty")
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json, got %q", c.LogFormat)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	switch c.NotificationStore {
	case NotifyStoreSQLite:
	case NotifyStoreRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis.addr is required when notification_store is redis")
		}
	default:
		return fmt.Errorf("notification_store must be %q or %q, got %q", NotifyStoreSQLite, NotifyStoreRedis, c.NotificationStore)
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("redis.db must not be negative")
	}
	return nil
}

// Location resolves Timezone. "Local" and empty mean the host zone.
func (c Config) Location() (*time.Location, error) {
	switch c.Timezone {
	case "", "Local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}
