package config

// Default configuration values.
const (
	DefaultDriver      = "pgx"
	DefaultEnvironment = "dev"
)

// ApplyDefaults fills in the driver when none was configured.
func ApplyDefaults(c *ConnectionSettings) {
	if c == nil {
		return
	}
	if c.Driver == "" {
		c.Driver = DefaultDriver
	}
}
