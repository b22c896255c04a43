package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/leapodbc/pkg/core"
	"github.com/leapstack-labs/leapodbc/pkg/dialect"
)

// userSchema is the search path entry naming the session user's schema.
const userSchema = "$user"

func (a *Adapter) catalog(operation string) (dialect.Catalog, error) {
	d := a.Dialect()
	c, ok := d.(dialect.Catalog)
	if !ok {
		return nil, &core.UnsupportedOperationError{Dialect: d.Name(), Operation: operation}
	}
	return c, nil
}

// SchemaSearchPath returns the session search path, querying it on first use.
func (a *Adapter) SchemaSearchPath(ctx context.Context) (string, error) {
	a.mu.RLock()
	path, cached := a.searchPath, a.searchPathCached
	a.mu.RUnlock()
	if cached {
		return path, nil
	}

	c, err := a.catalog("schema_search_path")
	if err != nil {
		return "", err
	}
	_, rows, err := a.exec.FetchRows(ctx, c.ShowSearchPath())
	if err != nil {
		return "", fmt.Errorf("failed to read search path: %w", err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 && rows[0][0] != nil {
		switch v := rows[0][0].(type) {
		case string:
			path = v
		case []byte:
			path = string(v)
		default:
			path = fmt.Sprint(v)
		}
	}

	a.mu.Lock()
	a.searchPath, a.searchPathCached = path, true
	a.mu.Unlock()
	return path, nil
}

// SetSchemaSearchPath sets the session search path and caches it. The SET is
// always sent: a rolled back transaction or a raw Execute can change the
// session path behind the cache.
func (a *Adapter) SetSchemaSearchPath(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}

	c, err := a.catalog("schema_search_path")
	if err != nil {
		return err
	}
	if err := a.exec.Execute(ctx, c.SetSearchPath(path)); err != nil {
		return fmt.Errorf("failed to set search path: %w", err)
	}

	a.mu.Lock()
	a.searchPath, a.searchPathCached = path, true
	a.mu.Unlock()
	a.log().Debug("search path set", slog.String("path", path))
	return nil
}

// WithSchemaSearchPath runs fn with the search path switched to schema and
// restores the previous path afterwards, whether fn fails or not. An empty
// schema runs fn unchanged.
func (a *Adapter) WithSchemaSearchPath(ctx context.Context, schema string, fn func(ctx context.Context) error) (err error) {
	if schema == "" {
		return fn(ctx)
	}
	old, err := a.SchemaSearchPath(ctx)
	if err != nil {
		return err
	}
	if err := a.SetSchemaSearchPath(ctx, schema); err != nil {
		return err
	}
	defer func() {
		if restoreErr := a.SetSchemaSearchPath(ctx, QuoteSearchPath(old)); restoreErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to restore search path: %w", restoreErr))
		}
	}()
	return fn(ctx)
}

// QuoteSearchPath quotes the $user entry of a search path as read back from
// the session, so the path can be resubmitted.
func QuoteSearchPath(path string) string {
	parts := strings.Split(path, ",")
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == userSchema {
			p = `"` + userSchema + `"`
		}
		parts[i] = p
	}
	return strings.Join(parts, ", ")
}
