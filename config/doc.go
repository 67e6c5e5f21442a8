// Package config loads the database connection settings consumed by the
// store connectors.
//
// Configuration is assembled from two layers: environment variables (parsed
// with caarlos0/env) and an optional JSON or YAML file named by the CONFIG
// environment variable. Layers are merged with mergo, environment values
// winning, and the merged result is validated before use.
package config
