// Package config provides application configuration management with support for
// TOML files, environment variable overrides, and configuration overlays.
package config

import (
	"fmt"
	"os"

	"github.com/caresign/caresign/pkg/logging"
	"github.com/caresign/caresign/pkg/middleware"
	"github.com/pelletier/go-toml/v2"
)

const (
	// BaseConfigFile is the primary configuration file name.
	BaseConfigFile = "config.toml"

	// OverlayConfigPattern is the file name pattern for environment-specific overlays.
	OverlayConfigPattern = "config.%s.toml"

	// EnvServiceEnv specifies the environment name for configuration overlays.
	EnvServiceEnv = "CARESIGN_ENV"
)

var loggingEnv = &logging.Env{
	Level:  "CARESIGN_LOG_LEVEL",
	Format: "CARESIGN_LOG_FORMAT",
}

var corsEnv = &middleware.CORSEnv{
	Enabled:          "CARESIGN_CORS_ENABLED",
	Origins:          "CARESIGN_CORS_ORIGINS",
	AllowedMethods:   "CARESIGN_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "CARESIGN_CORS_ALLOWED_HEADERS",
	AllowCredentials: "CARESIGN_CORS_ALLOW_CREDENTIALS",
}

// Config represents the root service configuration.
type Config struct {
	Server   ServerConfig          `toml:"server"`
	Database DatabaseConfig        `toml:"database"`
	Logging  logging.Config        `toml:"logging"`
	CORS     middleware.CORSConfig `toml:"cors"`
	Storage  StorageConfig         `toml:"storage"`
	Signing  SigningConfig         `toml:"signing"`
}

// Load reads and parses the base configuration file, applies any
// environment-specific overlay, and finalizes the result.
func Load(path string) (*Config, error) {
	cfg, err := load(path)
	if err != nil {
		return nil, err
	}

	if overlay := overlayPath(); overlay != "" {
		o, err := load(overlay)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", overlay, err)
		}
		cfg.Merge(o)
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *Config) Finalize() error {
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Logging.Finalize(loggingEnv); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Storage.Finalize(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Signing.Finalize(); err != nil {
		return fmt.Errorf("signing: %w", err)
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Logging.Merge(&overlay.Logging)
	c.CORS.Merge(&overlay.CORS)
	c.Storage.Merge(&overlay.Storage)
	c.Signing.Merge(&overlay.Signing)
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvServiceEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
