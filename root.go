package main

import (
	"log/slog"

	"github.com/holocron-api/config"
	"github.com/holocron-api/database"
	"github.com/holocron-api/logging"
	"github.com/holocron-api/repositories"
	"github.com/holocron-api/services"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
	gormlogger "gorm.io/gorm/logger"
)

// NewRootCmd creates the root command for the holocron CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holocron",
		Short: "Star Wars catalog API with accounts and favorites",
		Long: `holocron serves a read-only catalog of characters, planets and vehicles
together with user accounts, bearer-token auth and per-user favorites.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewSeedCmd())
	cmd.AddCommand(NewUsersCmd())

	return cmd
}

// app bundles what every subcommand needs: configuration, a logger and an
// open, migrated database.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	conn   *database.DBConnection
}

func openApp(migrate bool) (*app, error) {
	config.LoadEnv()
	cfg, err := config.Load()
	if err != nil {
		return nil, oops.Code("CONFIG_INVALID").Wrap(err)
	}

	logger := logging.Setup(cfg.LogFormat, cfg.LogLevel, nil)
	slog.SetDefault(logger)

	gormLevel := gormlogger.Warn
	if cfg.LogLevel == "debug" {
		gormLevel = gormlogger.Info
	}

	conn, err := database.NewDBConnection("main", cfg.DBDriver, cfg.DatabaseURL, logger, gormLevel)
	if err != nil {
		return nil, oops.Code("DB_CONNECT_FAILED").With("driver", cfg.DBDriver).Wrap(err)
	}

	if migrate {
		if err := conn.Migrate(); err != nil {
			_ = conn.Close()
			return nil, oops.Code("MIGRATION_FAILED").With("operation", "run migrations").Wrap(err)
		}
	}

	return &app{cfg: cfg, logger: logger, conn: conn}, nil
}

func (a *app) Close() {
	if err := a.conn.Close(); err != nil {
		a.logger.Warn("failed to close database", "error", err)
	}
}

func (a *app) credentials() *services.CredentialService {
	return services.NewCredentialService(repositories.NewUserRepository(a.conn.DB), a.cfg.BcryptCost, a.logger)
}
