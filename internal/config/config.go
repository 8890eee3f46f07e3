// Package config provides centralized configuration for choreboard: built-in
// defaults, an optional YAML file and environment overrides, applied in that
// order.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/manav03panchal/choreboard/internal/logging"
	"github.com/manav03panchal/choreboard/internal/storage"
)

// MemoryDatabase is the database path that selects in-memory storage.
const MemoryDatabase = ":memory:"

// Config holds all configuration values.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`
	Tasks   TasksConfig   `yaml:"tasks"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	// Addr is the listen address.
	// Default: ":3001"
	Addr string `yaml:"addr"`

	// ReadTimeout bounds reading a whole request.
	// Default: 10s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout bounds writing a response.
	// Default: 10s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// ShutdownTimeout is how long in-flight requests get on shutdown.
	// Default: 5s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// CORSOrigins are the allowed browser origins.
	// Default: ["*"]
	CORSOrigins []string `yaml:"cors_origins"`
}

// StorageConfig selects and locates the storage backend.
type StorageConfig struct {
	// Driver is badger, sqlite or postgres.
	// Default: "badger"
	Driver string `yaml:"driver"`

	// Path is the badger directory or sqlite file. Empty uses the XDG data dir.
	Path string `yaml:"path"`

	// DSN is the postgres connection string.
	DSN string `yaml:"dsn"`

	// InMemory keeps all data in memory.
	InMemory bool `yaml:"in_memory"`
}

// LoggingConfig holds logger configuration.
type LoggingConfig struct {
	// Level is debug, info, warn or error.
	// Default: "info"
	Level string `yaml:"level"`

	// JSON selects JSON log lines.
	JSON bool `yaml:"json"`
}

// TasksConfig holds task defaults.
type TasksConfig struct {
	// DefaultTypes are offered before any stored task type.
	DefaultTypes []string `yaml:"default_types"`

	// DefaultDuration is the duration in minutes for new tasks.
	// Default: 30
	DefaultDuration int `yaml:"default_duration"`
}

// DefaultTaskTypes are the built-in chore types.
func DefaultTaskTypes() []string {
	return []string{
		"Empty dishwasher",
		"Fill dishwasher",
		"Fill laundry",
		"Fold laundry",
		"Cook meal",
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":3001",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			CORSOrigins:     []string{"*"},
		},
		Storage: StorageConfig{
			Driver: "badger",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Tasks: TasksConfig{
			DefaultTypes:    DefaultTaskTypes(),
			DefaultDuration: 30,
		},
	}
}

// DefaultPath returns the default config file location following XDG.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "choreboard", "config.yaml")
}

// Load builds the configuration from defaults, the YAML file at path and
// the environment. An empty path reads DefaultPath if it exists; an explicit
// path must exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := cfg.decode(data); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
	default:
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg.loadFromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// loadFromEnv loads configuration overrides from environment variables.
// Unparseable values are ignored.
func (c *Config) loadFromEnv() {
	// Server configuration
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Addr = ":" + v
	}
	if v := os.Getenv("CHOREBOARD_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("CHOREBOARD_SHUTDOWN_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Server.ShutdownTimeout = d
		}
	}

	// Storage configuration
	if v := os.Getenv("CHOREBOARD_STORE"); v != "" {
		c.Storage.Driver = v
	}
	if v := os.Getenv("CHOREBOARD_DATABASE"); v != "" {
		c.SetDatabase(v)
	}
	if v := os.Getenv("CHOREBOARD_DSN"); v != "" {
		c.Storage.DSN = v
	}

	// Logging configuration
	if v := os.Getenv("CHOREBOARD_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("CHOREBOARD_LOG_JSON"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Logging.JSON = b
		}
	}
}

// SetDatabase points storage at path, or at memory for ":memory:".
func (c *Config) SetDatabase(path string) {
	if path == MemoryDatabase {
		c.Storage.InMemory = true
		c.Storage.Path = ""
		return
	}
	c.Storage.InMemory = false
	c.Storage.Path = path
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if _, _, err := net.SplitHostPort(c.Server.Addr); err != nil {
		return fmt.Errorf("config: server.addr %q: %w", c.Server.Addr, err)
	}
	if c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("config: server.shutdown_timeout must not be negative")
	}
	driver, err := storage.ParseDriver(c.Storage.Driver)
	if err != nil {
		return fmt.Errorf("config: storage.driver: %w", err)
	}
	if driver == storage.DriverPostgres && c.Storage.DSN == "" {
		return fmt.Errorf("config: storage.dsn is required for postgres")
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("config: logging.level: %w", err)
	}
	if c.Tasks.DefaultDuration <= 0 {
		return fmt.Errorf("config: tasks.default_duration must be positive")
	}
	return nil
}

// StoreOptions converts the storage section into store options.
func (c *Config) StoreOptions() storage.Options {
	return storage.Options{
		Driver:   storage.Driver(c.Storage.Driver),
		Path:     c.Storage.Path,
		DSN:      c.Storage.DSN,
		InMemory: c.Storage.InMemory,
	}
}

// LogConfig converts the logging section into logger configuration.
func (c *Config) LogConfig() logging.Config {
	cfg := logging.DefaultConfig()
	if level, err := logging.ParseLevel(c.Logging.Level); err == nil {
		cfg.Level = level
	}
	cfg.JSON = c.Logging.JSON
	return cfg
}
