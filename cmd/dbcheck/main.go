// Package main provides a one-shot database connectivity check.
// It is a diagnostic tool and takes no part in server startup.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/chybatronik/driftiAPI/internal/config"
	"github.com/chybatronik/driftiAPI/internal/database"
	"github.com/chybatronik/driftiAPI/internal/logging"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, nil))
}

func run(args []string, stdout io.Writer, connector database.Connector) int {
	flags := flag.NewFlagSet("dbcheck", flag.ContinueOnError)
	flags.SetOutput(stdout)
	var (
		uri     = flags.String("uri", "", "Connection string (defaults to MONGODB_URI)")
		timeout = flags.Duration("timeout", 10*time.Second, "Time allowed for the connection attempt")
	)
	if err := flags.Parse(args); err != nil {
		return 1
	}

	appConfig, err := config.Load()
	if err != nil {
		fmt.Fprintf(stdout, "configuration error: %v\n", err)
		return 1
	}

	logger := logging.New(logging.Options{
		Level:   appConfig.Logging.Level,
		Format:  appConfig.Logging.Format,
		Service: "dbcheck",
		Output:  stdout,
	})

	target := appConfig.Database.URI
	if *uri != "" {
		target = *uri
	}
	if connector == nil {
		connector = database.NewConnector(database.OptionsFromConfig(appConfig.Database))
	}

	logger.Info("checking database connectivity", "uri", database.RedactURI(target))

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	handle := database.NewHandle()
	if err := handle.Connect(ctx, connector, target); err != nil {
		logger.Error("connection failed", logging.FieldError, err, logging.FieldErrorKind, database.Classify(err).String())
		fmt.Fprintf(stdout, "connection failed: %v\n", err)
		return 1
	}
	defer handle.Close(context.Background())

	fmt.Fprintf(stdout, "connection successful\n  database: %s\n  host: %s\n", handle.Name(), handle.Host())
	return 0
}
