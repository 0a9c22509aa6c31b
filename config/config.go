package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. BILLBOARD_SERVER_PORT.
const EnvPrefix = "BILLBOARD"

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server" envconfig:"SERVER"`
	Storage    StorageConfig    `yaml:"storage" envconfig:"STORAGE"`
	Push       PushConfig       `yaml:"push" envconfig:"PUSH"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool" envconfig:"WORKER_POOL"`
	Map        MapConfig        `yaml:"map" envconfig:"MAP"`
	Log        LogConfig        `yaml:"log" envconfig:"LOG"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT"`
	RateLimitPerSec float64       `yaml:"rate_limit_per_sec" envconfig:"RATE_LIMIT_PER_SEC"`
	RateLimitBurst  int           `yaml:"rate_limit_burst" envconfig:"RATE_LIMIT_BURST"`
	CacheTTLSeconds int           `yaml:"cache_ttl_seconds" envconfig:"CACHE_TTL_SECONDS"`
	CacheTTL        time.Duration `yaml:"-" ignored:"true"`
}

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// StorageConfig selects and configures the blob store backend.
type StorageConfig struct {
	Driver                 string      `yaml:"driver" envconfig:"DRIVER"`
	DSN                    string      `yaml:"dsn" envconfig:"DSN"`
	MaxOpenConns           int         `yaml:"max_open_conns" envconfig:"MAX_OPEN_CONNS"`
	MaxIdleConns           int         `yaml:"max_idle_conns" envconfig:"MAX_IDLE_CONNS"`
	ConnMaxLifetimeMinutes int         `yaml:"conn_max_lifetime_minutes" envconfig:"CONN_MAX_LIFETIME_MINUTES"`
	UserKey                string      `yaml:"user_key" envconfig:"USER_KEY"`
	CatalogKey             string      `yaml:"catalog_key" envconfig:"CATALOG_KEY"`
	Redis                  RedisConfig `yaml:"redis" envconfig:"REDIS"`
}

// RedisConfig holds the connection settings for the redis driver.
type RedisConfig struct {
	Addr     string `yaml:"addr" envconfig:"ADDR"`
	Password string `yaml:"password" envconfig:"PASSWORD"`
	DB       int    `yaml:"db" envconfig:"DB"`
	Prefix   string `yaml:"prefix" envconfig:"PREFIX"`
}

// PushConfig holds the VAPID keys for web push notifications.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key" envconfig:"VAPID_PUBLIC_KEY"`
	PrivateKey string `yaml:"vapid_private_key" envconfig:"VAPID_PRIVATE_KEY"`
	Subject    string `yaml:"subject" envconfig:"SUBJECT"`
	TTL        int    `yaml:"ttl" envconfig:"TTL"`
}

// Enabled reports whether both VAPID keys are configured.
func (p PushConfig) Enabled() bool {
	return p.PublicKey != "" && p.PrivateKey != ""
}

// WorkerPoolConfig holds the configuration for the notification worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size" envconfig:"SIZE"`
}

// MapConfig configures map preview links.
type MapConfig struct {
	BaseURL string `yaml:"base_url" envconfig:"BASE_URL"`
	Zoom    int    `yaml:"zoom" envconfig:"ZOOM"`
}

// LogConfig configures the global logger.
type LogConfig struct {
	Level   string `yaml:"level" envconfig:"LEVEL"`
	Console bool   `yaml:"console" envconfig:"CONSOLE"`
}

// Load reads the configuration from the given path, applies BILLBOARD_*
// environment overrides and fills in defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// FromEnv builds a configuration from environment variables alone, for
// running without a config file.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns a configuration with every default applied, suitable for
// tests and for running without a config file.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 30
	}
	cfg.Server.CacheTTL = time.Duration(cfg.Server.CacheTTLSeconds) * time.Second

	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = DriverMemory
	}
	if cfg.Storage.UserKey == "" {
		cfg.Storage.UserKey = "bb_user"
	}
	if cfg.Storage.CatalogKey == "" {
		cfg.Storage.CatalogKey = "bb_billboards"
	}
	if cfg.Storage.Redis.Addr == "" {
		cfg.Storage.Redis.Addr = "localhost:6379"
	}

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}

	if cfg.WorkerPool.Size <= 0 {
		log.Info().Msg("worker_pool.size is not set or invalid; defaulting to 1")
		cfg.WorkerPool.Size = 1
	}

	if cfg.Map.BaseURL == "" {
		cfg.Map.BaseURL = "https://www.openstreetmap.org/"
	}
	if cfg.Map.Zoom <= 0 {
		cfg.Map.Zoom = 14
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}
