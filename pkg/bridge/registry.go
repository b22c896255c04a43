package bridge

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/leapstack-labs/leapodbc/pkg/core"
)

// Driver describes how to reach a database through database/sql.
type Driver struct {
	// Name is the registered driver name used in configuration.
	Name string

	// SQLDriver is the database/sql driver name passed to sql.Open.
	SQLDriver string

	// DSN builds a data source name from an ODBC connection string's attributes.
	DSN func(attrs map[string]string) (string, error)

	// Info holds fixed capability strings.
	Info map[core.InfoKey]string

	// InfoQueries holds single-value queries answering capability keys.
	InfoQueries map[core.InfoKey]string
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Driver)
)

// Register adds a driver to the registry.
// Called by driver definitions in their init() functions.
func Register(d Driver) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[d.Name] = d
}

// Get retrieves a driver by name.
func Get(name string) (Driver, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	d, ok := registry[name]
	return d, ok
}

// ListDrivers returns all registered driver names (sorted).
func ListDrivers() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if a driver is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[name]
	return ok
}

// ResolveDSN returns cfg.DSN, or builds one from cfg.ConnectionString.
func ResolveDSN(d Driver, cfg core.ConnectionConfig) (string, error) {
	if cfg.DSN != "" {
		return cfg.DSN, nil
	}
	attrs, err := ParseConnectionString(cfg.ConnectionString)
	if err != nil {
		return "", err
	}
	if d.DSN == nil {
		return "", fmt.Errorf("driver %s requires a dsn", d.Name)
	}
	return d.DSN(attrs)
}

// Open connects using the driver named in cfg.
// The logger parameter is kept on the connection (nil uses discard logger).
func Open(ctx context.Context, cfg core.ConnectionConfig, logger *slog.Logger) (*Conn, error) {
	if cfg.Driver == "" {
		return nil, fmt.Errorf("driver not specified")
	}
	d, ok := Get(cfg.Driver)
	if !ok {
		return nil, &UnknownDriverError{
			Name:      cfg.Driver,
			Available: ListDrivers(),
		}
	}
	dsn, err := ResolveDSN(d, cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid connection settings: %w", err)
	}
	db, err := openDB(ctx, d, dsn)
	if err != nil {
		return nil, err
	}
	return NewConn(db, d, cfg, dsn, logger), nil
}

// NewConn wraps an open database handle.
func NewConn(db *sql.DB, d Driver, cfg core.ConnectionConfig, dsn string, logger *slog.Logger) *Conn {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Conn{DB: db, Driver: d, Cfg: cfg, Logger: logger, dsn: dsn}
}

// UnknownDriverError is returned when an unknown driver is requested.
type UnknownDriverError struct {
	Name      string
	Available []string
}

func (e *UnknownDriverError) Error() string {
	return fmt.Sprintf("unknown driver %q\nAvailable drivers: %v\nHint: Check connection.driver in leapodbc.yaml", e.Name, e.Available)
}
