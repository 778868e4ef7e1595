// Package main provides the entry point for the driftiAPI service.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chybatronik/driftiAPI/internal/app"
	"github.com/chybatronik/driftiAPI/internal/config"
	"github.com/chybatronik/driftiAPI/internal/logging"
	"github.com/chybatronik/driftiAPI/internal/supervisor"
)

var (
	// Build information (set during build)
	Version   = "dev"
	BuildTime = ""
)

func main() {
	os.Exit(run())
}

// run returns the process exit code; it is the only path to os.Exit
func run() int {
	startedAt := time.Now()

	appConfig, err := config.Load()
	if err != nil {
		log.Printf("FATAL: Failed to load configuration: %v", err)
		return supervisor.ExitFailure
	}

	out, closer, err := logging.Output(appConfig.Logging.Dir, app.ServiceName)
	if err != nil {
		log.Printf("FATAL: Failed to open log output: %v", err)
		return supervisor.ExitFailure
	}
	defer closer.Close()

	logger := logging.New(logging.Options{
		Level:   appConfig.Logging.Level,
		Format:  appConfig.Logging.Format,
		Service: app.ServiceName,
		Version: Version,
		Output:  out,
	}).WithServiceContext()

	if BuildTime != "" {
		logger.Startup("build information", "build_time", BuildTime)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sup := supervisor.New(logger)
	application := app.New(appConfig, logger,
		app.WithVersion(Version),
		app.WithStartTime(startedAt),
		app.WithSupervisor(sup),
	)

	return sup.Run(ctx, application.Run)
}
