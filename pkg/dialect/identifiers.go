package dialect

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizationStrategy defines how unquoted identifiers are normalized.
type NormalizationStrategy int

const (
	// NormLowercase normalizes unquoted identifiers to lowercase (default SQL behavior).
	NormLowercase NormalizationStrategy = iota
	// NormUppercase normalizes unquoted identifiers to uppercase (Snowflake, Oracle).
	NormUppercase
	// NormCaseSensitive preserves identifier case exactly.
	NormCaseSensitive
)

// IdentifierConfig defines how identifiers are quoted and normalized.
type IdentifierConfig struct {
	Quote         string                // Quote character: ", `, [
	QuoteEnd      string                // End quote character (usually same as Quote, ] for [)
	Escape        string                // Escape sequence: "", ``, ]]
	Normalization NormalizationStrategy // How to normalize unquoted identifiers
}

// DoubleQuoted is the ANSI identifier configuration.
var DoubleQuoted = IdentifierConfig{
	Quote:         `"`,
	QuoteEnd:      `"`,
	Escape:        `""`,
	Normalization: NormLowercase,
}

// IdentifiersFor builds an identifier configuration from a driver-reported
// quote character. Empty or blank characters fall back to DoubleQuoted.
func IdentifiersFor(quote string, norm NormalizationStrategy) IdentifierConfig {
	quote = strings.TrimSpace(quote)
	switch quote {
	case "":
		cfg := DoubleQuoted
		cfg.Normalization = norm
		return cfg
	case "[":
		return IdentifierConfig{Quote: "[", QuoteEnd: "]", Escape: "]]", Normalization: norm}
	default:
		return IdentifierConfig{Quote: quote, QuoteEnd: quote, Escape: quote + quote, Normalization: norm}
	}
}

// NormalizeName normalizes an unquoted identifier according to the configured strategy.
func (c IdentifierConfig) NormalizeName(name string) string {
	switch c.Normalization {
	case NormUppercase:
		return cases.Upper(language.Und).String(name)
	case NormLowercase:
		return cases.Lower(language.Und).String(name)
	default:
		return name
	}
}

// IsQuoted reports whether name is already wrapped in the quote characters.
func (c IdentifierConfig) IsQuoted(name string) bool {
	return len(name) >= len(c.Quote)+len(c.QuoteEnd) &&
		strings.HasPrefix(name, c.Quote) &&
		strings.HasSuffix(name, c.QuoteEnd)
}

// QuoteIdentifier quotes a single identifier. Already-quoted input is returned unchanged.
func (c IdentifierConfig) QuoteIdentifier(name string) string {
	if c.IsQuoted(name) {
		return name
	}
	// Escape any existing quote end characters in the name (e.g., " -> "")
	escaped := strings.ReplaceAll(name, c.QuoteEnd, c.Escape)
	return c.Quote + escaped + c.QuoteEnd
}

// Unquote strips the quote characters and unescapes embedded quotes.
func (c IdentifierConfig) Unquote(name string) string {
	if !c.IsQuoted(name) {
		return name
	}
	inner := name[len(c.Quote) : len(name)-len(c.QuoteEnd)]
	return strings.ReplaceAll(inner, c.Escape, c.QuoteEnd)
}

// SplitQualified splits name on the first '.' that is not inside quotes.
// ok is false when the name has no schema part.
func (c IdentifierConfig) SplitQualified(name string) (schema, table string, ok bool) {
	inQuote := false
	for i := 0; i < len(name); i++ {
		switch {
		case !inQuote && strings.HasPrefix(name[i:], c.Quote):
			inQuote = true
			i += len(c.Quote) - 1
		case inQuote && strings.HasPrefix(name[i:], c.QuoteEnd):
			inQuote = false
			i += len(c.QuoteEnd) - 1
		case !inQuote && name[i] == '.':
			return name[:i], name[i+1:], true
		}
	}
	return "", name, false
}

// QuoteTableName quotes a possibly schema-qualified table name. Each half is
// quoted independently, so pre-quoted halves are kept and the operation is
// idempotent.
func (c IdentifierConfig) QuoteTableName(name string) string {
	schema, table, ok := c.SplitQualified(name)
	if !ok {
		return c.QuoteIdentifier(table)
	}
	return c.QuoteIdentifier(schema) + "." + c.QuoteIdentifier(table)
}

// QuoteString quotes a SQL string literal.
func QuoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
