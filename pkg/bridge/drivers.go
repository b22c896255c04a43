package bridge

import (
	"github.com/leapstack-labs/leapodbc/pkg/core"

	_ "github.com/jackc/pgx/v5/stdlib"  // pgx driver
	_ "github.com/marcboeker/go-duckdb" // duckdb driver
	_ "modernc.org/sqlite"              // sqlite driver
)

// Registered driver names.
const (
	DriverPgx    = "pgx"
	DriverSQLite = "sqlite"
	DriverDuckDB = "duckdb"
)

// Postgres and Redshift both speak the PostgreSQL wire protocol. Redshift
// reports itself in version().
var pgxDriver = Driver{
	Name:      DriverPgx,
	SQLDriver: "pgx",
	DSN:       PostgresDSN,
	Info: map[core.InfoKey]string{
		core.InfoIdentifierQuoteChar:  `"`,
		core.InfoIdentifierCase:       "2",
		core.InfoQuotedIdentifierCase: "3",
		core.InfoMaxIdentifierLen:     "63",
		core.InfoMaxTableNameLen:      "63",
	},
	InfoQueries: map[core.InfoKey]string{
		core.InfoDBMSName:     "SELECT CASE WHEN version() ILIKE '%redshift%' THEN 'Redshift' ELSE 'PostgreSQL' END",
		core.InfoDBMSVersion:  "SHOW server_version",
		core.InfoDatabaseName: "SELECT current_database()",
		core.InfoUserName:     "SELECT current_user",
	},
}

var sqliteDriver = Driver{
	Name:      DriverSQLite,
	SQLDriver: "sqlite",
	DSN:       fileDSN,
	Info: map[core.InfoKey]string{
		core.InfoDBMSName:             "SQLite",
		core.InfoDatabaseName:         "main",
		core.InfoIdentifierQuoteChar:  `"`,
		core.InfoIdentifierCase:       "4",
		core.InfoQuotedIdentifierCase: "3",
	},
	InfoQueries: map[core.InfoKey]string{
		core.InfoDBMSVersion: "SELECT sqlite_version()",
	},
}

var duckdbDriver = Driver{
	Name:      DriverDuckDB,
	SQLDriver: "duckdb",
	DSN:       fileDSN,
	Info: map[core.InfoKey]string{
		core.InfoDBMSName:             "DuckDB",
		core.InfoIdentifierQuoteChar:  `"`,
		core.InfoIdentifierCase:       "4",
		core.InfoQuotedIdentifierCase: "3",
	},
	InfoQueries: map[core.InfoKey]string{
		core.InfoDBMSVersion:  "SELECT version()",
		core.InfoDatabaseName: "SELECT current_database()",
	},
}

func init() {
	Register(pgxDriver)
	Register(sqliteDriver)
	Register(duckdbDriver)
}

// fileDSN reads the database path from the Database attribute, defaulting to
// an in-memory database.
func fileDSN(attrs map[string]string) (string, error) {
	if path := lookup(attrs, "Database", "DBQ", "Path"); path != "" {
		return path, nil
	}
	return ":memory:", nil
}
