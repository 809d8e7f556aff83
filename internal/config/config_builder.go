package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
	"github.com/MKhiriev/go-server-config/internal/crontasks"
	"github.com/MKhiriev/go-server-config/internal/environment"
	"github.com/MKhiriev/go-server-config/internal/logger"
)

type configBuilder struct {
	configs  []*ServerConfig
	tasks    crontasks.Tasks
	log      *logger.Logger
	problems []error
	err      error
}

func newConfigBuilder(tasks crontasks.Tasks, log *logger.Logger) *configBuilder {
	if log == nil {
		log = logger.Nop()
	}

	return &configBuilder{
		configs: make([]*ServerConfig, 0, 3),
		tasks:   tasks,
		log:     log,
	}
}

func (b *configBuilder) build() (*ServerConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occurred during building config: %w", b.err)
	}

	config := new(ServerConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	config.Cron = Cron{
		Enabled: true,
		Tasks:   b.tasks,
	}
	config.problems = b.problems

	return config, nil
}

func (b *configBuilder) withEnv(e environment.Env) *configBuilder {
	envCfg, err := parseEnv(e)
	if err != nil {
		b.log.Warn().Err(err).Msg("malformed environment value replaced with default")
		b.problems = append(b.problems, err)
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withFlags(args []string) *configBuilder {
	flagsCfg, err := parseFlags(args)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, flagsCfg)
	return b
}

func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string
	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			jsonPath = cfg.JSONFilePath
		}
	}

	if jsonPath == "" {
		return b
	}

	jsonCfg, err := parseJSON(jsonPath)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, jsonCfg)
	return b
}
