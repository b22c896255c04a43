package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/leapodbc/internal/cli/config"
	"github.com/leapstack-labs/leapodbc/internal/cli/output"
	"github.com/leapstack-labs/leapodbc/pkg/adapter"
	"github.com/leapstack-labs/leapodbc/pkg/bridge"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the loaded configuration.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat)),
	}
}

// Connect opens the configured connection and wraps it in an adapter.
// The returned cleanup function must be called (typically via defer).
func (c *CommandContext) Connect(ctx context.Context) (*adapter.Adapter, func(), error) {
	cc := c.Cfg.Connection.ToConnectionConfig()

	conn, err := bridge.Open(ctx, cc, c.Logger)
	if err != nil {
		return nil, nil, err
	}

	a, err := adapter.Open(ctx, conn, conn, cc, c.Logger)
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("failed to initialize connection: %w", err)
	}

	return a, func() { _ = a.Close() }, nil
}

// getConfig returns the current configuration, or the defaults when the
// command runs outside the root command (as in tests).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return &config.Config{
		Environment:  config.DefaultEnv,
		OutputFormat: config.DefaultOutput,
		Connection:   &config.ConnectionSettings{Driver: "pgx"},
	}
}
