// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Alexei Skarin

package config

import "fmt"

// Supported database drivers.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

// Config is the top-level configuration container for applications embedding
// the validation engine. It is populated by merging values from environment
// variables and an optional JSON or YAML file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type Config struct {
	// DB holds the relational database connection settings.
	DB DBConfig `envPrefix:"DB_" json:"db" yaml:"db"`

	// FilePath is the optional path to a JSON or YAML configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables.
	// Populated via the CONFIG environment variable.
	FilePath string `env:"CONFIG" json:"-" yaml:"-"`
}

// DBConfig holds the database connection settings consumed by the store
// connectors.
type DBConfig struct {
	// Driver selects the SQL backend: "pgx" or "sqlite3".
	Driver string `env:"DRIVER" json:"driver" yaml:"driver"`

	// DSN is the driver-specific connection string.
	DSN string `env:"DSN" json:"dsn" yaml:"dsn"`

	// MaxOpenConns caps the connection pool; zero keeps the driver default.
	MaxOpenConns int `env:"MAX_OPEN_CONNS" json:"max_open_conns" yaml:"max_open_conns"`

	// MaxIdleConns caps idle pooled connections; zero keeps the driver default.
	MaxIdleConns int `env:"MAX_IDLE_CONNS" json:"max_idle_conns" yaml:"max_idle_conns"`
}

// validate checks the merged configuration for values the store connectors
// cannot work with.
func (c *Config) validate() error {
	switch c.DB.Driver {
	case DriverPostgres, DriverSQLite:
	case "":
		return fmt.Errorf("%w: driver is required", ErrInvalidDBConfigs)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedDriver, c.DB.Driver)
	}

	if c.DB.DSN == "" {
		return fmt.Errorf("%w: dsn is required", ErrInvalidDBConfigs)
	}
	if c.DB.MaxOpenConns < 0 || c.DB.MaxIdleConns < 0 {
		return fmt.Errorf("%w: connection limits must not be negative", ErrInvalidDBConfigs)
	}

	return nil
}
