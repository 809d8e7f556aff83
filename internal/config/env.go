// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/MKhiriev/go-server-config/internal/environment"
)

// parseEnv builds the environment layer of the configuration.
//
//	HOST       string, default DefaultHost
//	PORT       int,    default DefaultPort
//	PUBLIC_URL string, default DefaultPublicURL
//	APP_KEYS   list,   no default
//	CONFIG     JSON config file path, optional
//
// The returned config is never nil. When PORT is set but not an integer it
// holds DefaultPort and the error describes the rejected value.
func parseEnv(e environment.Env) (*ServerConfig, error) {
	port, err := e.Int("PORT", DefaultPort)
	if err != nil {
		err = fmt.Errorf("error getting env configs: %w", err)
	}

	return &ServerConfig{
		Host:      e.Get("HOST", DefaultHost),
		Port:      port,
		PublicURL: e.Get("PUBLIC_URL", DefaultPublicURL),
		App: App{
			Keys: e.Array("APP_KEYS"),
		},
		JSONFilePath: e.Get("CONFIG", ""),
	}, err
}
