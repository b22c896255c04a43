// Package coerce translates between driver-reported result values and the
// typed values an application works with.
//
// Decoding dispatches per value on the column's driver type code and a small
// set of dialect heuristics; encoding ("uncasting") renders typed values as the
// driver text embedded in literal SQL. Both directions are pure functions of
// their inputs and a Policy.
package coerce

import "github.com/leapstack-labs/leapodbc/pkg/core"

// Masquerade describes a character column shape that a warehouse driver uses
// to report boolean columns.
type Masquerade struct {
	TypeCode  core.TypeCode
	Length    int
	Precision int
	Scale     int
}

// DefaultMasquerade matches VARCHAR(5) columns with precision 5 and scale 0.
var DefaultMasquerade = Masquerade{
	TypeCode:  core.TypeVarchar,
	Length:    5,
	Precision: 5,
	Scale:     0,
}

// Matches reports whether col has exactly the masquerade shape.
func (m Masquerade) Matches(col core.ColumnDescriptor) bool {
	return col.TypeCode == m.TypeCode &&
		col.LengthIs(m.Length) &&
		col.PrecisionIs(m.Precision) &&
		col.ScaleIs(m.Scale)
}

// Literal text for encoded booleans. Decode accepts these for BIT and
// emulated SMALLINT columns, so encoded rows read back unchanged.
const (
	TrueLiteral  = "1"
	FalseLiteral = "0"
)

// Policy is the immutable set of per-connection coercion flags.
// Reconfiguration returns a new Policy; values already decoded are unaffected.
type Policy struct {
	emulateBooleans   bool
	allowEmulation    bool
	masquerade        Masquerade
	masqueradeEnabled bool
}

// Option configures a Policy.
type Option func(*Policy)

// WithEmulation allows the EmulateBooleans flag to take effect.
// Dialects without SMALLINT boolean emulation leave it off.
func WithEmulation() Option {
	return func(p *Policy) { p.allowEmulation = true }
}

// WithMasquerade overrides the masquerade shape.
func WithMasquerade(m Masquerade) Option {
	return func(p *Policy) {
		p.masquerade = m
		p.masqueradeEnabled = true
	}
}

// WithoutMasquerade disables the masquerade heuristic.
func WithoutMasquerade() Option {
	return func(p *Policy) { p.masqueradeEnabled = false }
}

// NewPolicy creates a policy with the default masquerade heuristic enabled.
func NewPolicy(opts ...Option) Policy {
	p := Policy{
		masquerade:        DefaultMasquerade,
		masqueradeEnabled: true,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// WithEmulateBooleans returns a copy of p with the flag set.
// The flag is ignored when the policy does not allow emulation.
func (p Policy) WithEmulateBooleans(on bool) Policy {
	p.emulateBooleans = on
	return p
}

// EmulateBooleans reports whether SMALLINT columns are decoded as booleans.
func (p Policy) EmulateBooleans() bool {
	return p.allowEmulation && p.emulateBooleans
}

// AllowsEmulation reports whether the policy honours EmulateBooleans.
func (p Policy) AllowsEmulation() bool {
	return p.allowEmulation
}

// BooleanLiterals returns the encode-direction text for true and false. The
// pair is the same with or without emulation.
func (p Policy) BooleanLiterals() (string, string) {
	return TrueLiteral, FalseLiteral
}

// IsMasquerade reports whether col looks like a boolean-as-string column.
func (p Policy) IsMasquerade(col core.ColumnDescriptor) bool {
	return p.masqueradeEnabled && p.masquerade.Matches(col)
}

// IsStrictBoolean reports whether every non-null value of col must be a
// boolean literal.
func (p Policy) IsStrictBoolean(col core.ColumnDescriptor) bool {
	if col.TypeCode == core.TypeBit {
		return true
	}
	return p.EmulateBooleans() && col.TypeCode == core.TypeSmallint
}
