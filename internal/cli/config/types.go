// Package config provides configuration management for the leapodbc CLI.
//
// This package extends the shared connection settings from internal/config
// with CLI-specific fields (verbosity, output mode) and the layered loader.
package config

import (
	sharedcfg "github.com/leapstack-labs/leapodbc/internal/config"
)

// ConnectionSettings is an alias for the shared connection configuration.
type ConnectionSettings = sharedcfg.ConnectionSettings

// Config holds all CLI configuration options.
type Config struct {
	Environment  string                        `koanf:"environment"`
	Verbose      bool                          `koanf:"verbose"`
	OutputFormat string                        `koanf:"output"`
	Connection   *ConnectionSettings           `koanf:"connection"`
	Environments map[string]ConnectionSettings `koanf:"environments"`

	// ProjectRoot is the directory the config file was found in.
	ProjectRoot string `koanf:"-"`
}

// Default configuration values.
const (
	DefaultEnv    = sharedcfg.DefaultEnvironment
	DefaultOutput = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Connection == nil {
		c.Connection = &ConnectionSettings{}
	}
	return c.Connection.Validate()
}
