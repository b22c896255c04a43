package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/leapstack-labs/leapodbc/internal/cli/output"
	"github.com/spf13/cobra"
)

// QueryOptions holds options for the query command.
type QueryOptions struct {
	Input  string
	Raw    bool
	Value  bool
	Values bool
	Exec   bool
}

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	opts := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "query [SQL]",
		Short: "Run SQL through the connection adapter",
		Long: `Run a statement on the configured connection and print the decoded result.

Every cell passes through the connection's coercion policy: timestamps are
formatted with millisecond precision, FLOAT and REAL values are normalized and
boolean columns (including the Redshift masquerade) decode to true/false.

SQL is read from the arguments, from --input, or from piped stdin.`,
		Example: `  # Decoded result set
  leapodbc query "SELECT id, active FROM users"

  # Literal text of the first column
  leapodbc query --values "SELECT name FROM users"

  # Run a statement that returns no rows
  leapodbc query --exec "DELETE FROM sessions"

  # Output as JSON
  leapodbc query "SELECT * FROM orders" -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Read SQL from file")
	cmd.Flags().BoolVar(&opts.Raw, "raw", false, "Print the text form of each value instead of the typed value")
	cmd.Flags().BoolVar(&opts.Value, "value", false, "Print only the first value of the first row")
	cmd.Flags().BoolVar(&opts.Values, "values", false, "Print the literal text of the first column")
	cmd.Flags().BoolVar(&opts.Exec, "exec", false, "Execute without fetching rows")
	cmd.MarkFlagsMutuallyExclusive("raw", "value", "values", "exec")

	return cmd
}

func runQuery(cmd *cobra.Command, args []string, opts *QueryOptions) error {
	sqlText, err := readSQL(cmd.InOrStdin(), args, opts.Input)
	if err != nil {
		return err
	}

	cmdCtx := NewCommandContext(cmd)
	ctx := cmd.Context()

	a, cleanup, err := cmdCtx.Connect(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	r := cmdCtx.Renderer

	switch {
	case opts.Exec:
		if err := a.Execute(ctx, sqlText); err != nil {
			return err
		}
		r.Success("statement executed")
		return nil

	case opts.Value:
		v, err := a.SelectValue(ctx, sqlText)
		if err != nil {
			return err
		}
		r.Println(output.FormatValue(v))
		return nil

	case opts.Values:
		values, err := a.SelectValues(ctx, sqlText)
		if err != nil {
			return err
		}
		rows := make([][]any, len(values))
		for i, v := range values {
			rows[i] = []any{v}
		}
		return r.Table([]string{"value"}, rows)

	default:
		res, err := a.SelectAll(ctx, sqlText)
		if err != nil {
			return err
		}
		rows := make([][]any, len(res.Rows))
		for i, row := range res.Rows {
			rows[i] = []any(row)
		}
		if opts.Raw {
			rows = a.Encode(rows)
		}
		return r.Table(res.ColumnNames(), rows)
	}
}

// readSQL picks the statement from args, a file, or piped stdin.
func readSQL(stdin io.Reader, args []string, input string) (string, error) {
	var sqlText string

	switch {
	case len(args) > 0:
		sqlText = strings.Join(args, " ")
	case input != "":
		content, err := os.ReadFile(input)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		sqlText = string(content)
	case !output.IsTerminal(stdin):
		content, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		sqlText = string(content)
	}

	sqlText = strings.TrimSpace(sqlText)
	if sqlText == "" {
		return "", fmt.Errorf("no SQL given\nHint: pass it as an argument, with --input, or on stdin")
	}
	return sqlText, nil
}
