// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"net"
	"reflect"
	"slices"
	"strconv"

	"github.com/MKhiriev/go-server-config/internal/crontasks"
	"github.com/MKhiriev/go-server-config/internal/environment"
	"github.com/MKhiriev/go-server-config/internal/logger"
)

// Defaults applied when the matching variable is unset.
const (
	DefaultHost      = "0.0.0.0"
	DefaultPort      = 1337
	DefaultPublicURL = "http://localhost:1337"
)

// ServerConfig is the server configuration snapshot. A new value is built on
// every load and is not modified afterwards; treat it as read-only.
type ServerConfig struct {
	// Host is the network bind address.
	// Env: HOST
	Host string

	// Port is the network bind port.
	// Env: PORT
	Port int

	// PublicURL is the externally advertised base URL.
	// Env: PUBLIC_URL
	PublicURL string

	// App holds application secrets.
	App App

	// Cron holds the cron subsystem toggle and task table.
	Cron Cron

	// JSONFilePath is the optional path to a JSON configuration file merged
	// on top of environment variables and flags.
	// Env: CONFIG, flags: -c / -config
	JSONFilePath string

	// problems are values the builder replaced with defaults; reported by
	// Validate.
	problems []error
}

// App holds application-level secrets.
type App struct {
	// Keys are the signing keys, in order. Nil when APP_KEYS is unset;
	// rejecting that is up to the consumer (see [ServerConfig.Validate]).
	// Env: APP_KEYS
	Keys Keys
}

// Cron holds the configuration handed to the cron subsystem.
type Cron struct {
	// Enabled is always true.
	Enabled bool

	// Tasks is the task table supplied by the caller, passed through as is.
	Tasks crontasks.Tasks
}

// Build produces a ServerConfig from e alone. Unset variables take their
// defaults. A value that cannot be coerced (e.g. PORT=abc) takes its default
// too; it is logged to log as a warning and reported later by
// [ServerConfig.Validate], never returned from here.
func Build(e environment.Env, tasks crontasks.Tasks, log *logger.Logger) (*ServerConfig, error) {
	return newConfigBuilder(tasks, log).
		withEnv(e).
		build()
}

// GetServerConfig loads and merges the server configuration from all
// sources in the following priority order (last source wins for non-zero
// fields):
//  1. Environment variables from e
//  2. Command-line flags from args
//  3. JSON file (path resolved from sources 1 and 2)
//
// tasks becomes Cron.Tasks unchanged. Malformed environment values are
// handled as in [Build]; flag and JSON errors fail the load.
func GetServerConfig(e environment.Env, tasks crontasks.Tasks, args []string, log *logger.Logger) (*ServerConfig, error) {
	return newConfigBuilder(tasks, log).
		withEnv(e).
		withFlags(args).
		withJSON().
		build()
}

// Address returns Host and Port joined as "host:port".
func (cfg *ServerConfig) Address() string {
	return net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
}

// Equal reports whether cfg and other hold the same values. Task tables are
// compared by identity, not by content.
func (cfg *ServerConfig) Equal(other *ServerConfig) bool {
	if cfg == nil || other == nil {
		return cfg == other
	}

	return cfg.Host == other.Host &&
		cfg.Port == other.Port &&
		cfg.PublicURL == other.PublicURL &&
		cfg.JSONFilePath == other.JSONFilePath &&
		slices.Equal(cfg.App.Keys, other.App.Keys) &&
		cfg.Cron.Enabled == other.Cron.Enabled &&
		sameTasks(cfg.Cron.Tasks, other.Cron.Tasks) &&
		slices.EqualFunc(cfg.problems, other.problems, sameError)
}

func sameError(a, b error) bool {
	return a.Error() == b.Error()
}

func sameTasks(a, b crontasks.Tasks) bool {
	return reflect.ValueOf(a).UnsafePointer() == reflect.ValueOf(b).UnsafePointer()
}
