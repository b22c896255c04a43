package commands

import (
	"context"

	"github.com/leapstack-labs/leapodbc/pkg/adapter"
	"github.com/leapstack-labs/leapodbc/pkg/dialect"
	"github.com/spf13/cobra"
)

// NewDDLCommand creates the ddl command group.
func NewDDLCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ddl",
		Short: "Run dialect-specific schema statements",
		Long: `Run schema statements generated by the connection's dialect.

Operations the dialect does not support fail with an unsupported operation
error (for example, Redshift cannot change a column's type or default).`,
	}

	var opts dialect.DatabaseOptions
	var connLimit int
	createDB := ddlCommand("create-database <name>", "Create a database", 1,
		func(ctx context.Context, a *adapter.Adapter, args []string) error {
			return a.CreateDatabase(ctx, args[0], opts)
		})
	createDB.Flags().StringVar(&opts.Owner, "owner", "", "Database owner")
	createDB.Flags().IntVar(&connLimit, "connection-limit", 0, "Maximum concurrent connections (0 for unlimited)")
	createDB.PreRun = func(cmd *cobra.Command, _ []string) {
		if cmd.Flags().Changed("connection-limit") {
			opts.ConnectionLimit = dialect.IntPtr(connLimit)
		}
	}

	cmd.AddCommand(
		createDB,
		ddlCommand("drop-database <name>", "Drop a database", 1,
			func(ctx context.Context, a *adapter.Adapter, args []string) error {
				return a.DropDatabase(ctx, args[0])
			}),
		ddlCommand("rename-table <table> <new-name>", "Rename a table", 2,
			func(ctx context.Context, a *adapter.Adapter, args []string) error {
				return a.RenameTable(ctx, args[0], args[1])
			}),
		ddlCommand("change-column <table> <column> <type>", "Change a column's type", 3,
			func(ctx context.Context, a *adapter.Adapter, args []string) error {
				return a.ChangeColumn(ctx, args[0], args[1], args[2])
			}),
		ddlCommand("change-column-default <table> <column> <default>", "Change a column's default", 3,
			func(ctx context.Context, a *adapter.Adapter, args []string) error {
				return a.ChangeColumnDefault(ctx, args[0], args[1], args[2])
			}),
		ddlCommand("rename-column <table> <column> <new-name>", "Rename a column", 3,
			func(ctx context.Context, a *adapter.Adapter, args []string) error {
				return a.RenameColumn(ctx, args[0], args[1], args[2])
			}),
		ddlCommand("remove-index <table> <index>", "Drop an index", 2,
			func(ctx context.Context, a *adapter.Adapter, args []string) error {
				return a.RemoveIndex(ctx, args[0], args[1])
			}),
		ddlCommand("rename-index <table> <index> <new-name>", "Rename an index", 3,
			func(ctx context.Context, a *adapter.Adapter, args []string) error {
				return a.RenameIndex(ctx, args[0], args[1], args[2])
			}),
	)

	return cmd
}

func ddlCommand(use, short string, nargs int, run func(context.Context, *adapter.Adapter, []string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd)
			ctx := cmd.Context()

			a, cleanup, err := cmdCtx.Connect(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := run(ctx, a, args); err != nil {
				return err
			}
			cmdCtx.Renderer.Success("%s done", cmd.Name())
			return nil
		},
	}
}
