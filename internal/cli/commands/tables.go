package commands

import (
	"github.com/spf13/cobra"
)

// NewTablesCommand creates the tables command.
func NewTablesCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "tables [schema]",
		Short: "List tables on the schema search path",
		Long: `List the ordinary tables visible on the current schema search path, or in
the given schema. With --all, views and materialized views are included.

Requires a dialect with catalog support (e.g. redshift).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd)
			ctx := cmd.Context()

			a, cleanup, err := cmdCtx.Connect(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			schema := ""
			if len(args) == 1 {
				schema = args[0]
			}

			list := a.Tables
			header := "table"
			if all {
				list = a.DataSources
				header = "data_source"
			}
			names, err := list(ctx, schema)
			if err != nil {
				return err
			}
			return cmdCtx.Renderer.List(header, names)
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include views and materialized views")

	return cmd
}

// NewExistsCommand creates the exists command.
func NewExistsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "exists <table>",
		Short: "Check whether a table, view or materialized view exists",
		Long: `Check whether a relation exists. A name of the form schema.table is looked
up in that schema; a bare name is looked up on the schema search path.
Exits with an error when the relation does not exist.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd)
			ctx := cmd.Context()

			a, cleanup, err := cmdCtx.Connect(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			ok, err := a.TableExists(ctx, args[0])
			if err != nil {
				return err
			}
			if !ok {
				return &NotFoundError{Name: args[0]}
			}
			cmdCtx.Renderer.Success("%s exists", args[0])
			return nil
		},
	}
}

// NotFoundError is returned by exists when the relation is missing.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return "relation " + e.Name + " does not exist"
}
