// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crontasks

import (
	"fmt"
	"os"
	"strings"

	"github.com/MKhiriev/go-server-config/internal/environment"
	"gopkg.in/yaml.v3"
)

// scheduleFile is the on-disk layout read by [LoadSchedule]:
//
//	tasks:
//	  cleanup:
//	    rule: "0 3 * * *"
//	    tz: Europe/Berlin
//	    handler: cleanup
type scheduleFile struct {
	Tasks map[string]scheduleEntry `yaml:"tasks"`
}

type scheduleEntry struct {
	Rule    string `yaml:"rule"`
	TZ      string `yaml:"tz"`
	Handler string `yaml:"handler"`
}

// LoadSchedule reads a YAML schedule file and binds each entry to a handler
// from registry, producing a validated task table.
//
// An entry without "handler" uses its own id as the handler name. The rule of
// a task can be overridden with CRON_<ID>_RULE, where <ID> is the task id
// upper-cased with "-" and "." replaced by "_". Entries without "tz" take
// CRON_TZ when it is set.
func LoadSchedule(path string, registry map[string]Handler, e environment.Env) (Tasks, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading schedule file: %w", err)
	}

	var file scheduleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("error decoding schedule file: %w", err)
	}

	defaultTZ := e.Get("CRON_TZ", "")
	tasks := make(Tasks, len(file.Tasks))
	for id, entry := range file.Tasks {
		handlerName := entry.Handler
		if handlerName == "" {
			handlerName = id
		}

		handler, ok := registry[handlerName]
		if !ok {
			return nil, fmt.Errorf("task %q: %w: %q", id, ErrUnknownHandler, handlerName)
		}

		tz := entry.TZ
		if tz == "" {
			tz = defaultTZ
		}

		tasks[id] = Task{
			Rule:    e.Get(RuleOverrideVar(id), entry.Rule),
			TZ:      tz,
			Handler: handler,
		}
	}

	if err := tasks.Validate(); err != nil {
		return nil, err
	}

	return tasks, nil
}

// RuleOverrideVar returns the environment variable that overrides the rule
// of task id.
func RuleOverrideVar(id string) string {
	name := strings.NewReplacer("-", "_", ".", "_").Replace(strings.ToUpper(id))
	return "CRON_" + name + "_RULE"
}
