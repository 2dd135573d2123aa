// Package config loads the application configuration.
// Values come from an optional YAML file, then a .env file, then the
// environment; later sources override earlier ones.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ichikawacraice/dt-money/internal/infrastructure/logger"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Store backends
const (
	StoreBadger = "badger"
	StoreSQLite = "sqlite"
	StoreRemote = "remote"
)

// Config represents the application configuration.
type Config struct {
	Addr        string        `yaml:"addr"`
	Store       string        `yaml:"store"`
	DataDir     string        `yaml:"data_dir"`
	SQLitePath  string        `yaml:"sqlite_path"`
	APIURL      string        `yaml:"api_url"`
	HTTPTimeout time.Duration `yaml:"http_timeout"`
	LogLevel    string        `yaml:"log_level"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Addr:        ":8080",
		Store:       StoreBadger,
		DataDir:     "./data",
		APIURL:      "http://localhost:3333",
		HTTPTimeout: 10 * time.Second,
		LogLevel:    string(logger.InfoLevel),
	}
}

// Load builds the configuration.
// configPath names an optional YAML file; when empty, DTMONEY_CONFIG is used.
// A .env file in the working directory is loaded if present.
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if configPath == "" {
		configPath = os.Getenv("DTMONEY_CONFIG")
	}
	if configPath != "" {
		if err := cfg.loadYAML(configPath); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if cfg.SQLitePath == "" {
		cfg.SQLitePath = filepath.Join(cfg.DataDir, "dtmoney.db")
	}

	return cfg, nil
}

func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.Addr, "DTMONEY_ADDR")
	setString(&c.Store, "DTMONEY_STORE")
	setString(&c.DataDir, "DTMONEY_DATA_DIR")
	setString(&c.SQLitePath, "DTMONEY_SQLITE_PATH")
	setString(&c.APIURL, "DTMONEY_API_URL")
	setString(&c.LogLevel, "DTMONEY_LOG_LEVEL")

	if v := os.Getenv("DTMONEY_HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid DTMONEY_HTTP_TIMEOUT: %w", err)
		}
		c.HTTPTimeout = d
	}

	return nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	var problems []string

	switch c.Store {
	case StoreBadger:
		if c.DataDir == "" {
			problems = append(problems, "data_dir is required for the badger store")
		}
	case StoreSQLite:
		if c.SQLitePath == "" {
			problems = append(problems, "sqlite_path is required for the sqlite store")
		}
	case StoreRemote:
		if c.APIURL == "" {
			problems = append(problems, "api_url is required for the remote store")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown store %q (want badger, sqlite or remote)", c.Store))
	}

	if c.Addr == "" {
		problems = append(problems, "addr is required")
	}
	if c.HTTPTimeout <= 0 {
		problems = append(problems, "http_timeout must be positive")
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}

// Level returns the parsed log level, INFO when unset or invalid
func (c *Config) Level() logger.Level {
	lvl, err := logger.ParseLevel(c.LogLevel)
	if err != nil {
		return logger.InfoLevel
	}
	return lvl
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
