package config

import "errors"

// Validation errors returned by [Config.validate] when the merged
// configuration is incomplete or invalid.
var (
	// ErrInvalidDBConfigs indicates invalid database settings
	// (for example, an empty DSN or negative pool limits).
	ErrInvalidDBConfigs = errors.New("invalid database configuration")

	// ErrUnsupportedDriver indicates a database driver this module has no
	// connector for.
	ErrUnsupportedDriver = errors.New("unsupported database driver")

	// ErrUnsupportedFileFormat indicates a configuration file whose
	// extension is neither JSON nor YAML.
	ErrUnsupportedFileFormat = errors.New("unsupported config file format")
)
