// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crontasks

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"
	_ "time/tzdata"

	"github.com/robfig/cron/v3"
)

// Handler is the job executed when a task's rule fires.
type Handler func(ctx context.Context) error

// Task binds a schedule rule to a handler.
type Task struct {
	// Rule is a cron expression with optional leading seconds field
	// (e.g. "0 0 * * *", "*/30 * * * * *") or a descriptor such as
	// "@hourly" or "@every 10m".
	Rule string

	// TZ is an IANA time zone name the rule is evaluated in.
	// Empty means the scheduler's local zone.
	TZ string

	// Handler is the job itself.
	Handler Handler
}

// Tasks is the task table handed to the cron subsystem, keyed by task id.
type Tasks map[string]Task

var ruleParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Names returns the task ids in sorted order.
func (t Tasks) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

// Validate checks every task in the table and returns all problems joined.
// It does not schedule anything.
func (t Tasks) Validate() error {
	var errs []error
	for _, name := range t.Names() {
		if err := t[name].validate(); err != nil {
			errs = append(errs, fmt.Errorf("task %q: %w", name, err))
		}
	}

	return errors.Join(errs...)
}

func (task Task) validate() error {
	if task.Handler == nil {
		return ErrNoHandler
	}

	if _, err := ruleParser.Parse(task.Rule); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidRule, task.Rule, err)
	}

	if task.TZ != "" {
		if _, err := time.LoadLocation(task.TZ); err != nil {
			return fmt.Errorf("%w: %q: %w", ErrInvalidTimezone, task.TZ, err)
		}
	}

	return nil
}
