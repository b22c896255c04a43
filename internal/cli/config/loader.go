package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	intconfig "github.com/leapstack-labs/leapodbc/internal/config"
	"github.com/spf13/pflag"
)

// loggerKey is used to store logger in context.
type loggerKey struct{}

// maxUpwardSearchLevels limits how far up the directory tree to search for config files.
const maxUpwardSearchLevels = 10

// envPrefix is the prefix of environment variables read by the loader.
const envPrefix = "LEAPODBC_"

// Package-level koanf instance and config file tracking
var (
	k              = koanf.New(".")
	configFileUsed string
	currentConfig  *Config
)

// flagKeys maps flag names onto config keys where they differ from the
// kebab-to-snake default.
var flagKeys = map[string]string{
	"driver":             "connection.driver",
	"dsn":                "connection.dsn",
	"connection-string":  "connection.connection_string",
	"emulate-booleans":   "connection.emulate_booleans",
	"schema-search-path": "connection.schema_search_path",
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// findConfigFile finds the config file to use.
// Priority: explicit path > leapodbc.yaml/.yml in cwd or a parent directory
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	root := intconfig.FindProjectRoot(cwd, maxUpwardSearchLevels)
	if root == "" {
		return ""
	}
	return intconfig.FindConfigFile(root)
}

// ResetConfig resets the koanf instance. Used for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
	currentConfig = nil
}

// LoadConfig loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	return LoadConfigWithEnv(cfgFile, "", flags)
}

// LoadConfigWithEnv loads configuration and resolves the connection for the
// named environment. An empty envOverride uses the configured environment.
func LoadConfigWithEnv(cfgFile string, envOverride string, flags *pflag.FlagSet) (*Config, error) {
	k = koanf.New(".")

	// 1. Load defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"environment":       DefaultEnv,
		"verbose":           false,
		"output":            DefaultOutput,
		"connection.driver": intconfig.DefaultDriver,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Find and load config file
	configFileUsed = findConfigFile(cfgFile)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// 3. Load environment variables (LEAPODBC_ prefix)
	// Transform: LEAPODBC_CONNECTION__DSN -> connection.dsn, LEAPODBC_VERBOSE -> verbose
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Load flags (highest priority - overrides env vars and config file)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only load flags that were explicitly set
			if !f.Changed {
				return "", nil
			}
			if key, ok := flagKeys[f.Name]; ok {
				return key, posflag.FlagVal(flags, f)
			}
			// Handled by the caller rather than the config tree
			if f.Name == "config" || f.Name == "env" {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if configFileUsed != "" {
		cfg.ProjectRoot = filepath.Dir(configFileUsed)
	}

	// 6. Merge the selected environment over the base connection
	envName := cfg.Environment
	if envOverride != "" {
		envName = envOverride
	}
	if envName != "" && cfg.Environments != nil {
		if override, ok := cfg.Environments[envName]; ok {
			cfg.Connection = intconfig.MergeConnection(cfg.Connection, &override)
		} else if envOverride != "" {
			return nil, fmt.Errorf("environment %q not found in %s", envOverride, configFileUsed)
		}
	}
	if cfg.Connection == nil {
		cfg.Connection = &ConnectionSettings{}
	}
	intconfig.ApplyDefaults(cfg.Connection)

	expandConnectionEnvVars(cfg.Connection)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid connection configuration: %w", err)
	}

	currentConfig = &cfg

	return &cfg, nil
}

// envKey maps LEAPODBC_SECTION__KEY onto section.key.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// GetCurrentConfig returns the currently loaded configuration.
// This is available after LoadConfig or LoadConfigWithEnv is called.
func GetCurrentConfig() *Config {
	return currentConfig
}

// LoggerKey returns the context key used for storing the logger.
// This allows the commands package to retrieve the logger from context
// without creating an import cycle with the cli package.
func LoggerKey() interface{} {
	return loggerKey{}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}

// expandEnvVars expands ${VAR} patterns in a string with environment variable values.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match // Return original if not found
	})
}

// expandConnectionEnvVars expands environment variables in fields that
// usually carry credentials.
func expandConnectionEnvVars(c *ConnectionSettings) {
	if c == nil {
		return
	}
	c.DSN = expandEnvVars(c.DSN)
	c.ConnectionString = expandEnvVars(c.ConnectionString)
	c.SchemaSearchPath = expandEnvVars(c.SchemaSearchPath)
}
