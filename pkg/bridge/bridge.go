// Package bridge connects the adapter to databases through database/sql.
//
// A Conn implements core.Executor, core.InfoSource and core.Reconnector on top
// of a registered driver. Result columns are described with ODBC type codes and
// capability strings are synthesized from driver queries, so the adapter sees
// the same shapes an ODBC driver manager would report.
package bridge

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/leapstack-labs/leapodbc/pkg/core"
)

// Conn is a single physical database connection.
type Conn struct {
	DB     *sql.DB
	Driver Driver
	Cfg    core.ConnectionConfig
	Logger *slog.Logger

	dsn string
	mu  sync.Mutex
}

var (
	_ core.Executor    = (*Conn)(nil)
	_ core.InfoSource  = (*Conn)(nil)
	_ core.Reconnector = (*Conn)(nil)
)

// Close closes the database connection.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.DB != nil {
		if c.Logger != nil {
			c.Logger.Debug("closing database connection", slog.String("driver", c.Driver.Name))
		}
		err := c.DB.Close()
		c.DB = nil
		return err
	}
	return nil
}

func (c *Conn) db() (*sql.DB, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.DB == nil {
		return nil, core.ErrNotConnected
	}
	return c.DB, nil
}

// Execute runs a statement that doesn't return rows.
func (c *Conn) Execute(ctx context.Context, sqlStr string) error {
	db, err := c.db()
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, sqlStr); err != nil {
		return fmt.Errorf("failed to execute SQL: %w", &core.StatementInvalidError{SQL: sqlStr, Err: err})
	}
	return nil
}

// FetchRows runs a query and returns its column descriptors and raw rows.
func (c *Conn) FetchRows(ctx context.Context, sqlStr string) ([]core.ColumnDescriptor, []core.RawRow, error) {
	db, err := c.db()
	if err != nil {
		return nil, nil, err
	}
	rows, err := db.QueryContext(ctx, sqlStr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to execute query: %w", &core.StatementInvalidError{SQL: sqlStr, Err: err})
	}
	defer func() { _ = rows.Close() }()

	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read column types: %w", err)
	}
	cols := make([]core.ColumnDescriptor, len(types))
	for i, ct := range types {
		cols[i] = describe(ct)
	}

	var out []core.RawRow
	for rows.Next() {
		values := make(core.RawRow, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, fmt.Errorf("failed to scan row: %w", err)
		}
		out = append(out, values)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating rows: %w", &core.StatementInvalidError{SQL: sqlStr, Err: err})
	}
	return cols, out, nil
}

// GetInfo returns a capability string. Keys the driver cannot answer return
// an empty string.
func (c *Conn) GetInfo(ctx context.Context, key core.InfoKey) (string, error) {
	if v, ok := c.Driver.Info[key]; ok {
		return v, nil
	}
	query, ok := c.Driver.InfoQueries[key]
	if !ok {
		return "", nil
	}
	db, err := c.db()
	if err != nil {
		return "", err
	}
	var v sql.NullString
	if err := db.QueryRowContext(ctx, query).Scan(&v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to query %s: %w", key, err)
	}
	return v.String, nil
}

// Reconnect replaces the physical connection with a fresh one.
func (c *Conn) Reconnect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.DB != nil {
		_ = c.DB.Close()
		c.DB = nil
	}
	db, err := openDB(ctx, c.Driver, c.dsn)
	if err != nil {
		return err
	}
	c.DB = db
	if c.Logger != nil {
		c.Logger.Debug("reconnected", slog.String("driver", c.Driver.Name))
	}
	return nil
}

// IsConnected returns true if the database connection is established.
func (c *Conn) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.DB != nil
}

// openDB opens and pings a pool limited to one connection, so session state
// such as the search path stays on one physical connection.
func openDB(ctx context.Context, d Driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(d.SQLDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", d.Name, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", d.Name, err)
	}
	return db, nil
}
