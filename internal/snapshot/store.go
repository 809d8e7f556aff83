// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package snapshot

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/MKhiriev/go-server-config/internal/config"
	"github.com/MKhiriev/go-server-config/internal/logger"
)

// Store holds the current configuration snapshot.
//
// Reads through [Store.Current] are lock-free. Reloads are serialized.
type Store struct {
	loader  Loader
	logger  *logger.Logger
	current atomic.Pointer[config.ServerConfig]

	mu          sync.Mutex
	subscribers []Subscriber
}

// New loads the initial snapshot and returns a Store holding it.
func New(loader Loader, log *logger.Logger) (*Store, error) {
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("error loading initial config: %w", err)
	}
	if cfg == nil {
		return nil, errNilConfig
	}

	s := &Store{
		loader: loader,
		logger: log,
	}
	s.current.Store(cfg)

	log.Info().Object("config", cfg).Msg("config loaded")

	return s, nil
}

// Current returns the snapshot in effect. Callers must treat it as
// read-only.
func (s *Store) Current() *config.ServerConfig {
	return s.current.Load()
}

// Subscribe registers sub for notifications on later reloads.
func (s *Store) Subscribe(sub Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subscribers = append(s.subscribers, sub)
}

// Reload builds a new snapshot. When loading fails the previous snapshot stays
// current and the error is returned. When the new snapshot equals the current
// one nothing is published and changed is false.
func (s *Store) Reload() (changed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.loader.Load()
	if err != nil {
		s.logger.Error().Err(err).Msg("config reload failed, keeping previous config")
		return false, fmt.Errorf("error reloading config: %w", err)
	}
	if next == nil {
		return false, errNilConfig
	}

	if next.Equal(s.current.Load()) {
		s.logger.Debug().Msg("config unchanged")
		return false, nil
	}

	s.current.Store(next)
	s.logger.Info().Object("config", next).Msg("config reloaded")

	for _, sub := range s.subscribers {
		sub.OnReload(next)
	}

	return true, nil
}
