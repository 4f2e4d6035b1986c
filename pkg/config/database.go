package config

import (
	"fmt"
	"strings"
	"time"
)

// Supported storage engines.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

const defaultDatabaseTimeout = 5 * time.Second

type DatabaseConfig struct {
	Driver  string        `koanf:"driver"`
	URL     string        `koanf:"url"`
	Timeout time.Duration `koanf:"timeout"`
}

// String returns a string representation of the database configuration with credentials masked.
func (c *DatabaseConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Database ---\n")
	b.WriteString(fmt.Sprintf("  driver: %s\n", c.Driver))
	b.WriteString(fmt.Sprintf("  url: %s\n", MaskURL(c.URL)))
	b.WriteString(fmt.Sprintf("  timeout: %s\n", c.Timeout))
	return b.String()
}

func (c *DatabaseConfig) Validate() error {
	if c.Driver == "" {
		c.Driver = DriverSQLite
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultDatabaseTimeout
	}
	switch c.Driver {
	case DriverMemory:
		return nil
	case DriverSQLite:
		if c.URL == "" {
			return fmt.Errorf("database URL (sqlite file path) is not configured")
		}
		return nil
	case DriverPostgres:
		if c.URL == "" {
			return fmt.Errorf("database URL is not configured")
		}
		if !isValidPostgresURL(c.URL) {
			return fmt.Errorf("database URL must start with 'postgres://': %s", MaskURL(c.URL))
		}
		return nil
	default:
		return fmt.Errorf("unsupported database driver: %q", c.Driver)
	}
}

// MaskURL hides the credentials part of a connection URL.
func MaskURL(url string) string {
	if url == "" {
		return "<not configured>"
	}
	parts := strings.Split(url, "@")
	if len(parts) == 2 {
		return "****@" + parts[1]
	}
	if isValidPostgresURL(url) {
		return "****"
	}
	return url
}

// isValidPostgresURL checks if the provided URL is a valid PostgreSQL URL
func isValidPostgresURL(url string) bool {
	return strings.HasPrefix(url, "postgres://") ||
		strings.HasPrefix(url, "postgresql://")
}
