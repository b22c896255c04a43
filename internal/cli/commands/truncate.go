package commands

import (
	"context"
	"fmt"

	"github.com/leapstack-labs/leapodbc/pkg/adapter"
	"github.com/spf13/cobra"
)

// NewTruncateCommand creates the truncate command.
func NewTruncateCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "truncate [table...]",
		Short: "Truncate tables",
		Long: `Truncate the named tables, or with --all every non-empty table outside
the system schemas (the usual reset between test runs).

Dialects without catalog support truncate every base table in the current
schema when --all is given.`,
		Example: `  leapodbc truncate public.orders public.order_items
  leapodbc truncate --all --env test`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == (len(args) > 0) {
				return fmt.Errorf("give either table names or --all")
			}

			cmdCtx := NewCommandContext(cmd)
			ctx := cmd.Context()

			a, cleanup, err := cmdCtx.Connect(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var done []string
			if all {
				done, err = a.TruncateTables(ctx, nil)
			} else {
				done, err = truncateNamed(ctx, a, args)
			}
			for _, name := range done {
				cmdCtx.Logger.Debug("truncated", "table", name)
			}
			if err != nil {
				if len(done) > 0 {
					cmdCtx.Renderer.Warning("truncated %d tables before failing", len(done))
				}
				return err
			}
			if len(done) == 0 {
				cmdCtx.Renderer.Warning("no tables to truncate")
				return nil
			}
			cmdCtx.Renderer.Success("truncated %d tables", len(done))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Truncate every non-empty table")

	return cmd
}

// truncateNamed truncates exactly the given tables, whatever the dialect's
// bulk behavior is.
func truncateNamed(ctx context.Context, a *adapter.Adapter, names []string) ([]string, error) {
	for i, name := range names {
		if err := a.TruncateTable(ctx, name); err != nil {
			return names[:i], fmt.Errorf("failed to truncate %s: %w", name, err)
		}
	}
	return names, nil
}
