package commands

import (
	"fmt"

	"github.com/leapstack-labs/leapodbc/internal/cli/output"
	"github.com/leapstack-labs/leapodbc/pkg/adapter"
	"github.com/leapstack-labs/leapodbc/pkg/metadata"
	"github.com/spf13/cobra"
)

// connectionInfo is the structured form of the info command's output.
type connectionInfo struct {
	ConnectionID      string            `json:"connection_id" yaml:"connection_id"`
	Dialect           string            `json:"dialect" yaml:"dialect"`
	EmulateBooleans   bool              `json:"emulate_booleans" yaml:"emulate_booleans"`
	UpcaseIdentifiers bool              `json:"upcase_identifiers" yaml:"upcase_identifiers"`
	BooleanTrue       string            `json:"boolean_true" yaml:"boolean_true"`
	BooleanFalse      string            `json:"boolean_false" yaml:"boolean_false"`
	Metadata          map[string]string `json:"metadata" yaml:"metadata"`
}

func describeConnection(a *adapter.Adapter) connectionInfo {
	policy := a.Policy()
	t, f := policy.BooleanLiterals()
	return connectionInfo{
		ConnectionID:      a.ID(),
		Dialect:           a.Dialect().Name(),
		EmulateBooleans:   policy.EmulateBooleans(),
		UpcaseIdentifiers: a.UpcaseIdentifiers(),
		BooleanTrue:       t,
		BooleanFalse:      f,
		Metadata:          a.Metadata().Map(),
	}
}

// NewInfoCommand creates the info command.
func NewInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show driver metadata and the selected dialect",
		Long: `Connect and print the metadata snapshot read from the driver, the dialect
selected for it and the coercion settings in effect.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContext(cmd)
			ctx := cmd.Context()

			a, cleanup, err := cmdCtx.Connect(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			info := describeConnection(a)
			r := cmdCtx.Renderer
			switch r.EffectiveMode() {
			case output.ModeJSON:
				return r.JSON(info)
			case output.ModeYAML:
				return r.YAML(info)
			}

			rows := [][]any{
				{"connection_id", info.ConnectionID},
				{"dialect", info.Dialect},
				{"emulate_booleans", info.EmulateBooleans},
				{"upcase_identifiers", info.UpcaseIdentifiers},
				{"boolean_literals", fmt.Sprintf("%s/%s", info.BooleanTrue, info.BooleanFalse)},
			}
			for _, key := range metadata.Keys {
				rows = append(rows, []any{key.String(), info.Metadata[key.String()]})
			}
			return r.Table([]string{"key", "value"}, rows)
		},
	}
}
