// Package adapter provides the connection-level adapter that an ORM talks to.
//
// An Adapter composes a statement executor, the connection's metadata
// snapshot, the dialect selected for its DBMS and the current coercion policy.
// Every result passes through the policy's decoder before it is returned, and
// every typed value bound into SQL passes through its encoder.
package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/leapstack-labs/leapodbc/pkg/coerce"
	"github.com/leapstack-labs/leapodbc/pkg/core"
	"github.com/leapstack-labs/leapodbc/pkg/dialect"
	"github.com/leapstack-labs/leapodbc/pkg/metadata"
)

// Adapter is one logical database connection.
//
// Statements are not serialized here; callers (typically a pool) must not run
// two statements on one Adapter at the same time. The mutable flags are
// guarded so readers always observe a consistent policy.
type Adapter struct {
	exec   core.Executor
	info   core.InfoSource
	cfg    core.ConnectionConfig
	base   *slog.Logger
	logger *slog.Logger

	mu               sync.RWMutex
	id               string
	snapshot         *metadata.Snapshot
	dialect          dialect.Dialect
	policy           coerce.Policy
	searchPath       string
	searchPathCached bool
}

// Open builds an adapter over an established connection: it reads the
// metadata snapshot, selects the dialect, derives the coercion policy and
// applies the configured schema search path.
// The logger parameter may be nil (uses discard logger).
func Open(ctx context.Context, exec core.Executor, info core.InfoSource, cfg core.ConnectionConfig, logger *slog.Logger) (*Adapter, error) {
	if exec == nil {
		return nil, core.ErrNotConnected
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if info == nil {
		if src, ok := exec.(core.InfoSource); ok {
			info = src
		}
	}

	a := &Adapter{exec: exec, info: info, cfg: cfg, base: logger}
	if err := a.initialize(ctx); err != nil {
		return nil, err
	}
	a.logger.Info("connection opened",
		slog.String("dbms", a.snapshot.DBMSName),
		slog.Bool("emulate_booleans", a.policy.EmulateBooleans()))
	return a, nil
}

// initialize (re)reads connection state and applies configured defaults.
func (a *Adapter) initialize(ctx context.Context) error {
	snap := &metadata.Snapshot{}
	if a.info != nil {
		var err error
		snap, err = metadata.Fetch(ctx, a.info)
		if err != nil {
			return fmt.Errorf("failed to read database metadata: %w", err)
		}
	}

	d, err := dialect.For(snap)
	if err != nil {
		return err
	}
	policy, err := d.Policy(a.cfg)
	if err != nil {
		return fmt.Errorf("invalid %s configuration: %w", d.Name(), err)
	}

	id := uuid.NewString()
	a.mu.Lock()
	a.id = id
	a.snapshot = snap
	a.dialect = d
	a.policy = policy
	a.searchPath = ""
	a.searchPathCached = false
	a.logger = a.base.With(slog.String("connection_id", id), slog.String("dialect", d.Name()))
	a.mu.Unlock()

	if a.cfg.SchemaSearchPath != "" {
		if err := a.SetSchemaSearchPath(ctx, a.cfg.SchemaSearchPath); err != nil {
			return fmt.Errorf("failed to apply schema search path: %w", err)
		}
	}
	return nil
}

// Reconnect re-establishes the physical connection when the executor supports
// it, then resets every flag to its configured default and re-reads the
// metadata snapshot. Decoding depends only on descriptors and the policy, so a
// reconnect inside an open transaction leaves decoded values unaffected.
func (a *Adapter) Reconnect(ctx context.Context) error {
	if r, ok := a.exec.(core.Reconnector); ok {
		if err := r.Reconnect(ctx); err != nil {
			return fmt.Errorf("failed to reconnect: %w", err)
		}
	}
	prev := a.ID()
	if err := a.initialize(ctx); err != nil {
		return err
	}
	a.log().Info("connection reset", slog.String("previous_connection_id", prev))
	return nil
}

// ID identifies the current physical connection in logs.
func (a *Adapter) ID() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.id
}

// Metadata returns the snapshot read when the connection was opened.
func (a *Adapter) Metadata() *metadata.Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.snapshot
}

// Dialect returns the dialect selected for this connection.
func (a *Adapter) Dialect() dialect.Dialect {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.dialect
}

// Policy returns the current coercion policy.
func (a *Adapter) Policy() coerce.Policy {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.policy
}

// Config returns the configuration the adapter was opened with.
func (a *Adapter) Config() core.ConnectionConfig { return a.cfg }

// UpcaseIdentifiers reports whether the DBMS folds unquoted identifiers to upper case.
func (a *Adapter) UpcaseIdentifiers() bool {
	return a.Metadata().UpcaseIdentifiers()
}

// EmulateBooleans reports whether SMALLINT columns decode as booleans.
func (a *Adapter) EmulateBooleans() bool {
	return a.Policy().EmulateBooleans()
}

// SetEmulateBooleans swaps in a policy with the flag changed. Results already
// decoded keep their values.
func (a *Adapter) SetEmulateBooleans(on bool) {
	a.mu.Lock()
	a.policy = a.policy.WithEmulateBooleans(on)
	effective := a.policy.EmulateBooleans()
	a.mu.Unlock()

	a.log().Debug("emulate booleans changed", slog.Bool("requested", on), slog.Bool("effective", effective))
}

func (a *Adapter) log() *slog.Logger {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.logger
}

// Close closes the executor when it supports closing.
func (a *Adapter) Close() error {
	if c, ok := a.exec.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
