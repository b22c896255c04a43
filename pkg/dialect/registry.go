package dialect

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/leapstack-labs/leapodbc/pkg/metadata"
)

// Factory builds a dialect for a connection's metadata snapshot.
type Factory func(*metadata.Snapshot) Dialect

type entry struct {
	name    string
	pattern *regexp.Regexp
	factory Factory
}

// Dialect registry
var (
	registryMu sync.RWMutex
	registry   []entry
	fallback   *entry
)

// Register adds a dialect factory selected when the DBMS name matches pattern.
// Called by dialect implementations in their init() functions.
// Patterns are tried in registration order.
func Register(name string, pattern *regexp.Regexp, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	name = strings.ToLower(name)
	for i := range registry {
		if registry[i].name == name {
			registry[i] = entry{name: name, pattern: pattern, factory: factory}
			return
		}
	}
	registry = append(registry, entry{name: name, pattern: pattern, factory: factory})
}

// RegisterFallback sets the dialect used when no pattern matches.
func RegisterFallback(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	fallback = &entry{name: strings.ToLower(name), factory: factory}
}

// For selects the dialect for snap by its DBMS name.
func For(snap *metadata.Snapshot) (Dialect, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	name := ""
	if snap != nil {
		name = snap.DBMSName
	}
	for _, e := range registry {
		if e.pattern != nil && e.pattern.MatchString(name) {
			return e.factory(snap), nil
		}
	}
	if fallback == nil {
		return nil, &UnknownDialectError{DBMSName: name, Available: listLocked()}
	}
	return fallback.factory(snap), nil
}

// Lookup returns a dialect factory by registered name.
func Lookup(name string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	name = strings.ToLower(name)
	for _, e := range registry {
		if e.name == name {
			return e.factory, true
		}
	}
	if fallback != nil && fallback.name == name {
		return fallback.factory, true
	}
	return nil, false
}

// List returns all registered dialect names (sorted).
func List() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return listLocked()
}

func listLocked() []string {
	names := make([]string, 0, len(registry)+1)
	for _, e := range registry {
		names = append(names, e.name)
	}
	if fallback != nil {
		names = append(names, fallback.name)
	}
	sort.Strings(names)
	return names
}

// UnknownDialectError is returned when no dialect serves a DBMS name and no
// fallback is registered.
type UnknownDialectError struct {
	DBMSName  string
	Available []string
}

func (e *UnknownDialectError) Error() string {
	return fmt.Sprintf("no dialect for DBMS %q\nAvailable dialects: %v\nHint: import a pkg/dialects/* package", e.DBMSName, e.Available)
}
