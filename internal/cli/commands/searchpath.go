package commands

import (
	"github.com/spf13/cobra"
)

// NewSearchPathCommand creates the search-path command.
func NewSearchPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search-path [PATH]",
		Short: "Show or set the schema search path",
		Long: `Print the session's schema search path. When PATH is given it is applied
first, which is mostly useful to check that a path is accepted.

Requires a dialect with search path support (e.g. redshift).`,
		Example: `  leapodbc search-path
  leapodbc search-path '"$user", public, analytics'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd)
			ctx := cmd.Context()

			a, cleanup, err := cmdCtx.Connect(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if len(args) == 1 {
				if err := a.SetSchemaSearchPath(ctx, args[0]); err != nil {
					return err
				}
			}

			path, err := a.SchemaSearchPath(ctx)
			if err != nil {
				return err
			}
			cmdCtx.Renderer.Println(path)
			return nil
		},
	}
}
