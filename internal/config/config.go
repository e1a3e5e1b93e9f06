// Package config provides configuration loading and validation from environment variables.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration for the console server.
type Config struct {
	ListenAddr string `envconfig:"LISTEN_ADDR" default:":3000"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"` // debug, info, warn, error

	MongoURI      string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDatabase string `envconfig:"MONGO_DB" default:"acs_console"`

	// NBIURL is the base URL of the upstream ACS northbound API.
	NBIURL string `envconfig:"NBI_URL" default:"http://localhost:7557"`

	// JWTSecret signs session tokens. Required.
	JWTSecret string `envconfig:"JWT_SECRET"`

	// WebDist is the directory holding the built single-page app.
	WebDist string `envconfig:"WEB_DIST" default:"dist"`
}

// Load parses configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &cfg, nil
}

// Validate checks all configuration constraints.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is required")
	}
	return nil
}
