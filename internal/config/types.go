// Package config provides shared connection configuration types for leapodbc.
// This package is decoupled from CLI concerns so library callers can load a
// connection from the same YAML file the CLI reads.
package config

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapodbc/pkg/bridge"
	"github.com/leapstack-labs/leapodbc/pkg/core"
)

// ConnectionSettings holds one database connection as written in leapodbc.yaml.
type ConnectionSettings struct {
	Driver string `koanf:"driver"` // pgx, sqlite, duckdb

	// DSN is handed to the driver verbatim.
	DSN string `koanf:"dsn"`

	// ConnectionString is an ODBC-style "Server=...;UID=...;PWD=..." string.
	ConnectionString string `koanf:"connection_string"`

	EmulateBooleans  bool   `koanf:"emulate_booleans"`
	SchemaSearchPath string `koanf:"schema_search_path"`

	// Params holds dialect-specific options (e.g. redshift boolean_masquerade).
	Params map[string]any `koanf:"params"`
}

// ToConnectionConfig converts the settings into the form pkg/adapter expects.
func (c *ConnectionSettings) ToConnectionConfig() core.ConnectionConfig {
	if c == nil {
		return core.ConnectionConfig{}
	}
	return core.ConnectionConfig{
		Driver:           strings.ToLower(c.Driver),
		DSN:              c.DSN,
		ConnectionString: c.ConnectionString,
		EmulateBooleans:  c.EmulateBooleans,
		SchemaSearchPath: c.SchemaSearchPath,
		Params:           c.Params,
	}
}

// Validate checks that the driver is known and that there is something to
// connect to.
func (c *ConnectionSettings) Validate() error {
	if c.Driver == "" {
		return fmt.Errorf("connection driver is required")
	}

	// The bridge registry is the single source of truth for drivers.
	if !bridge.IsRegistered(strings.ToLower(c.Driver)) {
		return &bridge.UnknownDriverError{
			Name:      c.Driver,
			Available: bridge.ListDrivers(),
		}
	}

	return nil
}

// FileConfig is the subset of leapodbc.yaml that library callers need.
type FileConfig struct {
	Connection   *ConnectionSettings           `koanf:"connection"`
	Environment  string                        `koanf:"environment"`
	Environments map[string]ConnectionSettings `koanf:"environments"`
}

// Resolve returns the connection for env (or the file's default environment)
// merged over the base connection.
func (f *FileConfig) Resolve(env string) *ConnectionSettings {
	if env == "" {
		env = f.Environment
	}
	base := f.Connection
	if override, ok := f.Environments[env]; ok && env != "" {
		base = MergeConnection(base, &override)
	}
	if base == nil {
		base = &ConnectionSettings{}
	}
	return base
}

// MergeConnection merges override into base. Non-empty override fields win.
// Params are merged key by key. Neither argument is modified.
func MergeConnection(base, override *ConnectionSettings) *ConnectionSettings {
	if base == nil && override == nil {
		return nil
	}
	if base == nil {
		out := *override
		return &out
	}
	out := *base
	if override == nil {
		return &out
	}

	if override.Driver != "" {
		out.Driver = override.Driver
	}
	if override.DSN != "" {
		out.DSN = override.DSN
	}
	if override.ConnectionString != "" {
		out.ConnectionString = override.ConnectionString
	}
	if override.SchemaSearchPath != "" {
		out.SchemaSearchPath = override.SchemaSearchPath
	}
	// A bool cannot express "unset"; an environment can only turn emulation on.
	if override.EmulateBooleans {
		out.EmulateBooleans = true
	}

	if len(override.Params) > 0 {
		params := make(map[string]any, len(base.Params)+len(override.Params))
		for k, v := range base.Params {
			params[k] = v
		}
		for k, v := range override.Params {
			params[k] = v
		}
		out.Params = params
	}

	return &out
}
