package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alisoliman/recipe-app-api/api"
	"github.com/alisoliman/recipe-app-api/config"
	"github.com/alisoliman/recipe-app-api/database"
	"github.com/urfave/cli/v3"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Start the HTTP API server",
		Action: runServe,
	}
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			slog.Warn("failed to release resources", "error", err)
		}
	}()

	router := api.NewRouter(cfg, a.deps, a.media)
	server := api.NewServer(cfg.Port, router, cfg.ShutdownTimeout)
	return server.Start(ctx)
}

func migrateCmd() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Create or update the database schema",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.StorageDriver != config.StorageDriverPostgres {
				return fmt.Errorf("migrate requires the %s storage driver", config.StorageDriverPostgres)
			}

			db, err := openDatabase(ctx, cfg)
			if err != nil {
				return err
			}
			defer database.Close(db)

			return database.Migrate(ctx, db)
		},
	}
}

func createSuperuserCmd() *cli.Command {
	return &cli.Command{
		Name:  "createsuperuser",
		Usage: "Create a staff account with superuser privileges",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "email",
				Usage:    "login email of the new account",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "password",
				Usage:    "password of the new account",
				Sources:  cli.EnvVars("SUPERUSER_PASSWORD"),
				Required: true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			a, err := newApp(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			return createSuperuser(ctx, a, cmd.String("email"), cmd.String("password"))
		},
	}
}

func createSuperuser(ctx context.Context, a *app, email, password string) error {
	user, err := a.deps.Users.CreateSuperuser(ctx, email, password)
	if err != nil {
		return fmt.Errorf("failed to create superuser: %w", err)
	}
	slog.Info("superuser created", "id", user.ID, "email", user.Email)
	return nil
}
