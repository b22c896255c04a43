// Package metadata caches the driver capability strings read once per
// physical connection.
package metadata

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/leapodbc/pkg/core"
	"golang.org/x/text/cases"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/language"
)

// Keys is the fixed, ordered list of capability keys fetched for a snapshot.
var Keys = []core.InfoKey{
	core.InfoDBMSName,
	core.InfoDBMSVersion,
	core.InfoIdentifierCase,
	core.InfoQuotedIdentifierCase,
	core.InfoIdentifierQuoteChar,
	core.InfoMaxIdentifierLen,
	core.InfoMaxTableNameLen,
	core.InfoUserName,
	core.InfoDatabaseName,
}

// Snapshot holds the capability values reported by the driver.
type Snapshot struct {
	DBMSName             string
	DBMSVersion          string
	IdentifierCase       string
	QuotedIdentifierCase string
	IdentifierQuoteChar  string
	MaxIdentifierLen     string
	MaxTableNameLen      string
	UserName             string
	DatabaseName         string
}

// Fetch reads every key in Keys from src and builds a snapshot.
func Fetch(ctx context.Context, src core.InfoSource) (*Snapshot, error) {
	s := &Snapshot{}
	for _, key := range Keys {
		v, err := src.GetInfo(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", key, err)
		}
		s.set(key, FixEncoding(v))
	}
	return s, nil
}

func (s *Snapshot) set(key core.InfoKey, v string) {
	switch key {
	case core.InfoDBMSName:
		s.DBMSName = v
	case core.InfoDBMSVersion:
		s.DBMSVersion = v
	case core.InfoIdentifierCase:
		s.IdentifierCase = v
	case core.InfoQuotedIdentifierCase:
		s.QuotedIdentifierCase = v
	case core.InfoIdentifierQuoteChar:
		s.IdentifierQuoteChar = v
	case core.InfoMaxIdentifierLen:
		s.MaxIdentifierLen = v
	case core.InfoMaxTableNameLen:
		s.MaxTableNameLen = v
	case core.InfoUserName:
		s.UserName = v
	case core.InfoDatabaseName:
		s.DatabaseName = v
	}
}

// Value returns the snapshot value for key.
func (s *Snapshot) Value(key core.InfoKey) string {
	switch key {
	case core.InfoDBMSName:
		return s.DBMSName
	case core.InfoDBMSVersion:
		return s.DBMSVersion
	case core.InfoIdentifierCase:
		return s.IdentifierCase
	case core.InfoQuotedIdentifierCase:
		return s.QuotedIdentifierCase
	case core.InfoIdentifierQuoteChar:
		return s.IdentifierQuoteChar
	case core.InfoMaxIdentifierLen:
		return s.MaxIdentifierLen
	case core.InfoMaxTableNameLen:
		return s.MaxTableNameLen
	case core.InfoUserName:
		return s.UserName
	case core.InfoDatabaseName:
		return s.DatabaseName
	default:
		return ""
	}
}

// Map returns the snapshot keyed by SQL_ constant name.
func (s *Snapshot) Map() map[string]string {
	m := make(map[string]string, len(Keys))
	for _, key := range Keys {
		m[key.String()] = s.Value(key)
	}
	return m
}

// UpcaseIdentifiers reports whether the DBMS folds unquoted identifiers to upper case.
func (s *Snapshot) UpcaseIdentifiers() bool {
	n, err := strconv.Atoi(strings.TrimSpace(s.IdentifierCase))
	return err == nil && n == core.IdentifierCaseUpper
}

// FoldIdentifier applies the DBMS case-folding rule to an unquoted identifier.
func (s *Snapshot) FoldIdentifier(name string) string {
	if s.UpcaseIdentifiers() {
		return cases.Upper(language.Und).String(name)
	}
	n, err := strconv.Atoi(strings.TrimSpace(s.IdentifierCase))
	if err == nil && n == core.IdentifierCaseLower {
		return cases.Lower(language.Und).String(name)
	}
	return name
}

// QuoteChar returns the identifier quote character, defaulting to a double quote.
func (s *Snapshot) QuoteChar() string {
	if q := strings.TrimSpace(s.IdentifierQuoteChar); q != "" {
		return q
	}
	return `"`
}

// MaxIdentifierLength returns the parsed SQL_MAX_IDENTIFIER_LEN, or 0 when unknown.
func (s *Snapshot) MaxIdentifierLength() int {
	n, err := strconv.Atoi(strings.TrimSpace(s.MaxIdentifierLen))
	if err != nil {
		return 0
	}
	return n
}

// FixEncoding repairs values whose UTF-16LE bytes leaked through as a byte
// string, which happens with drivers running in unicode mode.
func FixEncoding(v string) string {
	if !looksUTF16LE(v) {
		return v
	}
	decoded, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().String(v)
	if err != nil {
		return v
	}
	return decoded
}

// looksUTF16LE detects even-length strings where every odd byte is NUL, or
// strings that are not valid UTF-8 at all but decode as UTF-16LE pairs.
func looksUTF16LE(v string) bool {
	if len(v) < 2 || len(v)%2 != 0 {
		return false
	}
	zeros := 0
	for i := 1; i < len(v); i += 2 {
		if v[i] == 0 {
			zeros++
		}
	}
	if zeros == len(v)/2 {
		return true
	}
	return !utf8.ValidString(v) && zeros > 0
}
