// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
)

// Validate checks that cfg is usable for serving. The builders never call
// it: a missing APP_KEYS is a consumer's problem, reported here.
//
// Returns nil if the configuration is valid, or all problems joined. Values
// the builder replaced with defaults wrap [environment.ErrMalformedValue];
// the rest wrap one of [ErrMissingAppKeys], [ErrInvalidPort] or
// [ErrInvalidPublicURL].
func (cfg *ServerConfig) Validate() error {
	errs := slices.Clone(cfg.problems)

	if len(cfg.App.Keys) == 0 {
		errs = append(errs, ErrMissingAppKeys)
	}
	for i, key := range cfg.App.Keys {
		if key == "" {
			errs = append(errs, fmt.Errorf("%w: key #%d is empty", ErrMissingAppKeys, i))
		}
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrInvalidPort, cfg.Port))
	}

	u, err := url.Parse(cfg.PublicURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidPublicURL, cfg.PublicURL))
	}

	return errors.Join(errs...)
}
