package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	internalcli "github.com/adyen/ecommerce-e2e/internal/cli"
	"github.com/adyen/ecommerce-e2e/internal/config"
	"github.com/adyen/ecommerce-e2e/internal/logging"
)

var version = "0.1.0"

// ServeCommand returns the serve command
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the recorded runs as an HTML report and JSON API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "artifact-dir", EnvVars: []string{"ARTIFACT_DIR"}, Value: "screenshots", Usage: "directory served under /artifacts/"},
			&cli.StringFlag{Name: "log-level", EnvVars: []string{"LOG_LEVEL"}, Value: logging.DefaultLevel.String(), Usage: "debug, info, warn or error"},
		},
		Action: func(c *cli.Context) error {
			log, err := logging.New(os.Stderr, c.String("log-level"))
			if err != nil {
				return err
			}

			runService, closeStore, err := internalcli.OpenRunService(os.Getenv, log)
			if err != nil {
				return err
			}
			defer closeStore()

			// Build all server dependencies
			deps, err := internalcli.BuildServerDependencies(runService, config.LoadServerConfig(), c.String("artifact-dir"), log)
			if err != nil {
				return err
			}

			return internalcli.RunServe(deps)
		},
	}
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logrus.Warn(".env file not found, using environment variables")
	}

	app := &cli.App{
		Name:    "shopcheck",
		Usage:   "Resilient storefront journeys and their run reports",
		Version: version,
		Commands: []*cli.Command{
			internalcli.SmokeCommand(),
			internalcli.LocatorsCommand(),
			internalcli.FixturesCommand(),
			ServeCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
