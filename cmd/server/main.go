package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-server-config/internal/config"
	"github.com/MKhiriev/go-server-config/internal/crontasks"
	"github.com/MKhiriev/go-server-config/internal/environment"
	"github.com/MKhiriev/go-server-config/internal/logger"
	"github.com/MKhiriev/go-server-config/internal/snapshot"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("server-config")
	env := environment.FromOS()

	tasks, err := loadTasks(env)
	if err != nil {
		log.Fatal().Err(err).Msg("error loading cron tasks")
	}

	args := os.Args[1:]
	store, err := snapshot.New(snapshot.LoaderFunc(func() (*config.ServerConfig, error) {
		// JSON file changes are picked up here; the environment is the
		// one the process started with.
		return config.GetServerConfig(env, tasks, args, log)
	}), log)
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	store.Subscribe(validator{log: log})
	validator{log: log}.OnReload(store.Current())

	path := store.Current().JSONFilePath
	if path == "" {
		return
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	if err := store.Watch(ctx, path); err != nil {
		log.Fatal().Err(err).Msg("error watching config file")
	}
	log.Info().Msg("stopped watching config")
}

// loadTasks reads the cron schedule named by CRON_TASKS_FILE, or returns an
// empty table when it is unset.
func loadTasks(env environment.Env) (crontasks.Tasks, error) {
	path := env.Get("CRON_TASKS_FILE", "")
	if path == "" {
		return crontasks.Tasks{}, nil
	}

	return crontasks.LoadSchedule(path, crontasks.Registry(), env)
}

// validator reports snapshots a server could not start with.
type validator struct {
	log *logger.Logger
}

func (v validator) OnReload(cfg *config.ServerConfig) {
	if err := cfg.Validate(); err != nil {
		v.log.Warn().Err(err).Msg("config is not usable for serving")
		return
	}

	v.log.Info().Str("address", cfg.Address()).Msg("config is valid")
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
