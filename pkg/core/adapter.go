package core

import "context"

// Executor is the statement-level collaborator provided by the driver bridge.
// Implementations run one statement at a time per connection.
type Executor interface {
	// Execute runs a statement that returns no rows.
	Execute(ctx context.Context, sql string) error

	// FetchRows runs a query and returns its column descriptors and raw rows.
	FetchRows(ctx context.Context, sql string) ([]ColumnDescriptor, []RawRow, error)
}

// InfoSource exposes driver capability strings (SQLGetInfo).
type InfoSource interface {
	GetInfo(ctx context.Context, key InfoKey) (string, error)
}

// Reconnector is implemented by executors that can re-establish their
// physical connection.
type Reconnector interface {
	Reconnect(ctx context.Context) error
}

// ConnectionConfig is the configuration accepted when a connection is opened.
type ConnectionConfig struct {
	// Driver selects the bridge driver (e.g., "pgx", "sqlite", "duckdb").
	Driver string

	// DSN is passed to the driver verbatim.
	DSN string

	// ConnectionString is an ODBC-style "Key=Value;..." string, used when DSN is empty.
	ConnectionString string

	// EmulateBooleans treats every SMALLINT column as boolean-valued.
	EmulateBooleans bool

	// SchemaSearchPath, when set, is applied immediately after connecting.
	SchemaSearchPath string

	// Params holds dialect-specific options.
	Params map[string]any
}
