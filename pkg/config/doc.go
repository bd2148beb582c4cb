// Package config handles configuration management for varsub.
// It supports loading configuration from multiple sources including
// embedded defaults, TOML files, .env files, environment variables and
// command-line flags.
package config
