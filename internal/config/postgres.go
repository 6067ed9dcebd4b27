package config

import (
	"fmt"
	"strings"
)

// PostgresConfig holds connection settings for the run results store
type PostgresConfig struct {
	User     string
	Password string
	Database string
	Host     string
	Port     string
	SSLMode  string
}

// LoadPostgresConfig loads the results store settings from environment variables.
// Host, user and database are required; everything else has a default.
func LoadPostgresConfig(getenv func(string) string) (*PostgresConfig, error) {
	config := &PostgresConfig{
		User:     getenv("POSTGRES_USER"),
		Password: getenv("POSTGRES_PASSWORD"),
		Database: getenv("POSTGRES_DB"),
		Host:     getenv("POSTGRES_HOSTNAME"),
		Port:     getenv("POSTGRES_PORT"),
		SSLMode:  getenv("POSTGRES_SSLMODE"),
	}

	if config.User == "" {
		return nil, fmt.Errorf("POSTGRES_USER is required")
	}
	if config.Database == "" {
		return nil, fmt.Errorf("POSTGRES_DB is required")
	}
	if config.Host == "" {
		return nil, fmt.Errorf("POSTGRES_HOSTNAME is required")
	}
	if config.Port == "" {
		config.Port = "5432"
	}
	if config.SSLMode == "" {
		config.SSLMode = "disable"
	}

	return config, nil
}

// ConnectionString returns a lib/pq keyword/value connection string with
// every value quoted
func (c *PostgresConfig) ConnectionString() string {
	parts := []string{
		"host=" + quoteValue(c.Host),
		"port=" + quoteValue(c.Port),
		"user=" + quoteValue(c.User),
		"dbname=" + quoteValue(c.Database),
		"sslmode=" + quoteValue(c.SSLMode),
	}
	if c.Password != "" {
		parts = append(parts, "password="+quoteValue(c.Password))
	}
	return strings.Join(parts, " ")
}

var valueEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

func quoteValue(v string) string {
	return "'" + valueEscaper.Replace(v) + "'"
}
