// Package config builds the server configuration snapshot: bind address,
// public URL, application signing keys, and the cron toggle with its task
// table.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables, with defaults for unset ones
//  2. Command-line flags
//  3. JSON config file
//
// [Build] is the environment-only builder; [GetServerConfig] runs all
// layers. Neither fails because a variable is missing or malformed: a bad
// value keeps its default and is reported by [ServerConfig.Validate], which a
// consumer calls where it needs a usable config.
package config
