// Package cli implements the recipe-api command line: the HTTP server and
// the maintenance commands that share its configuration.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	v1 "github.com/alisoliman/recipe-app-api/api/v1"
	"github.com/alisoliman/recipe-app-api/config"
	"github.com/alisoliman/recipe-app-api/logging"
	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v3"
)

const name = "recipe-api"

var (
	configFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "path to a YAML config file",
		Sources: cli.EnvVars("CONFIG_FILE"),
	}
	logLevelFlag = &cli.StringFlag{
		Name:  "log-level",
		Usage: "log level (debug, info, warn, error); overrides LOG_LEVEL",
	}
)

// Execute runs the command line and exits non-zero on failure
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().Run(ctx, os.Args); err != nil {
		slog.Error("command failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:    name,
		Usage:   "Recipe catalog API",
		Version: v1.Version,
		Flags:   []cli.Flag{configFlag, logLevelFlag},
		Commands: []*cli.Command{
			serveCmd(),
			migrateCmd(),
			createSuperuserCmd(),
		},
		// No subcommand starts the server
		Action: runServe,
	}
}

// loadConfig reads the configuration and installs the process logger
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String(configFlag.Name))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if level := cmd.String(logLevelFlag.Name); level != "" {
		cfg.LogLevel = level
	}

	logging.SetDefaultStructuredLogger(name, v1.Version, cfg.LogLevel)
	gin.SetMode(cfg.GinMode)
	return cfg, nil
}
