// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package environment

import (
	"fmt"
	"maps"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Env is an immutable view over a set of environment variables.
//
// The zero value is an empty environment: every accessor returns its
// default.
type Env struct {
	vars map[string]string
}

// FromOS snapshots the current process environment.
func FromOS() Env {
	return New(os.Environ())
}

// New builds an Env from "NAME=value" pairs in the format returned by
// os.Environ. Pairs without "=" are ignored; on duplicates the last wins.
func New(environ []string) Env {
	vars := make(map[string]string, len(environ))
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		vars[name] = value
	}

	return Env{vars: vars}
}

// FromMap builds an Env from a copy of vars.
func FromMap(vars map[string]string) Env {
	return Env{vars: maps.Clone(vars)}
}

// Map returns a copy of the variables held by e.
func (e Env) Map() map[string]string {
	if e.vars == nil {
		return map[string]string{}
	}

	return maps.Clone(e.vars)
}

// Lookup reports the raw value of name and whether it is set. A variable set
// to the empty string is present.
func (e Env) Lookup(name string) (string, bool) {
	value, ok := e.vars[name]
	return value, ok
}

// Get returns the value of name, or def when it is unset.
func (e Env) Get(name, def string) string {
	if value, ok := e.Lookup(name); ok {
		return value
	}

	return def
}

type intValue struct {
	Value int `env:"VALUE"`
}

// Int returns name coerced to an int, or def when it is unset.
//
// A value that is present but is not an integer, the empty string included,
// yields def together with an error wrapping [ErrMalformedValue].
func (e Env) Int(name string, def int) (int, error) {
	raw, ok := e.Lookup(name)
	if !ok {
		return def, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return def, fmt.Errorf("%w: %s is empty", ErrMalformedValue, name)
	}

	parsed, err := env.ParseAsWithOptions[intValue](env.Options{
		Environment: map[string]string{"VALUE": value},
	})
	if err != nil {
		return def, fmt.Errorf("%w: %s=%q: %w", ErrMalformedValue, name, raw, err)
	}

	return parsed.Value, nil
}

// Array returns name split with [SplitList], or nil when it is unset. An
// empty value is a list of one empty item.
func (e Env) Array(name string) []string {
	raw, ok := e.Lookup(name)
	if !ok {
		return nil
	}

	return SplitList(raw)
}

// SplitList splits a delimited list such as `a,b`, `[a, b]` or
// `["a","b"]`. A surrounding pair of brackets is dropped, items are split
// on commas and every item is trimmed of spaces and double quotes.
func SplitList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]") {
		raw = raw[1 : len(raw)-1]
	}

	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		items = append(items, strings.Trim(strings.TrimSpace(part), `"`))
	}

	return items
}
