package redshift

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	"github.com/leapstack-labs/leapodbc/pkg/coerce"
)

// Params holds Redshift-specific connection options.
// Parsed from core.ConnectionConfig.Params using mapstructure.
type Params struct {
	// EmulateBooleans treats SMALLINT columns as booleans. Overrides the
	// connection-level setting when present.
	EmulateBooleans *bool `mapstructure:"emulate_booleans"`

	// BooleanMasquerade overrides the VARCHAR shape the driver uses for
	// boolean columns. Disabled entirely with masquerade_disabled.
	BooleanMasquerade *MasqueradeParams `mapstructure:"boolean_masquerade"`

	MasqueradeDisabled bool `mapstructure:"masquerade_disabled"`
}

// MasqueradeParams describes a masquerading column shape.
type MasqueradeParams struct {
	Length    int `mapstructure:"length"`
	Precision int `mapstructure:"precision"`
	Scale     int `mapstructure:"scale"`
}

// ParseParams decodes the dialect parameters. Unknown keys are rejected.
func ParseParams(raw map[string]any) (*Params, error) {
	params := &Params{}
	if len(raw) == 0 {
		return params, nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           params,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create params decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid redshift params: %w", err)
	}
	return params, nil
}

// options converts the parameters into policy options.
func (p *Params) options() []coerce.Option {
	opts := []coerce.Option{coerce.WithEmulation()}
	switch {
	case p.MasqueradeDisabled:
		opts = append(opts, coerce.WithoutMasquerade())
	case p.BooleanMasquerade != nil:
		m := coerce.DefaultMasquerade
		m.Length = p.BooleanMasquerade.Length
		m.Precision = p.BooleanMasquerade.Precision
		m.Scale = p.BooleanMasquerade.Scale
		opts = append(opts, coerce.WithMasquerade(m))
	}
	return opts
}
