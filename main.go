package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rpupo63/portfolio-admin-backend/api"
	"github.com/rpupo63/portfolio-admin-backend/config"
	"github.com/rpupo63/portfolio-admin-backend/database"
	"github.com/rpupo63/portfolio-admin-backend/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var env map[string]string

var rootCmd = &cobra.Command{
	Use:   "portfolio-admin",
	Short: "Admin backend for portfolio projects, technologies and types",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		env = config.Load()
		setupLogger(env)
	},
	RunE:         runServe,
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (default)",
	RunE:  runServe,
}

func main() {
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd, generateCmd, reportCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogger applies LOG_LEVEL and switches to console output when
// LOG_FORMAT=console.
func setupLogger(c map[string]string) {
	level, err := zerolog.ParseLevel(strings.ToLower(config.GetString(c, "LOG_LEVEL", "info")))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if config.GetString(c, "LOG_FORMAT", "json") == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

// openDatabase connects and wraps the connection in the repositories.
func openDatabase() (database.Database, error) {
	db, err := database.Open(config.NewDatabaseConfig(env))
	if err != nil {
		return database.Database{}, err
	}
	return database.New(db)
}

func runServe(cmd *cobra.Command, args []string) error {
	log.Info().Msg("Initializing app...")
	ctx := commandContext(cmd)

	currentDB, err := openDatabase()
	if err != nil {
		return err
	}

	if config.GetBool(env, "MIGRATE_ON_START", false) {
		if err := currentDB.Migrate(ctx); err != nil {
			return fmt.Errorf("error migrating database: %w", err)
		}
	}

	if config.GetBool(env, "SEED_ON_START", false) {
		if _, err := database.SeedTechnologies(ctx, currentDB.TechnologyRepo()); err != nil {
			return fmt.Errorf("error seeding technologies: %w", err)
		}
	}

	backend, err := storage.Open(ctx, config.NewStorageConfig(env))
	if err != nil {
		return fmt.Errorf("error initializing storage: %w", err)
	}

	serverConfig := config.NewServerConfig(env)
	server := api.NewServer(serverConfig, currentDB, backend)

	// SIGINT or SIGTERM triggers a graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx, serverConfig.ShutdownTimeout)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
