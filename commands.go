package main

import (
	"fmt"
	"os"

	"github.com/rpupo63/portfolio-admin-backend/database"
	"github.com/rpupo63/portfolio-admin-backend/models"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var generateOut string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		currentDB, err := openDatabase()
		if err != nil {
			return err
		}
		if err := currentDB.Migrate(commandContext(cmd)); err != nil {
			return fmt.Errorf("error migrating database: %w", err)
		}
		log.Info().Msg("database migrated")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the initial technology list into an empty table",
	RunE: func(cmd *cobra.Command, args []string) error {
		currentDB, err := openDatabase()
		if err != nil {
			return err
		}
		_, err = database.SeedTechnologies(commandContext(cmd), currentDB.TechnologyRepo())
		return err
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Migrate, then write gorm/gen query helpers for every model",
	RunE: func(cmd *cobra.Command, args []string) error {
		currentDB, err := openDatabase()
		if err != nil {
			return err
		}
		if err := currentDB.Migrate(commandContext(cmd)); err != nil {
			return fmt.Errorf("error migrating database: %w", err)
		}

		log.Info().Str("out", generateOut).Msg("Generating models and query helpers...")
		return models.GenerateModels(currentDB.DB(), generateOut)
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print columns present in the database but missing from the models",
	RunE: func(cmd *cobra.Command, args []string) error {
		currentDB, err := openDatabase()
		if err != nil {
			return err
		}
		return models.WriteColumnMismatchReport(currentDB.DB(), os.Stdout)
	},
}

func init() {
	generateCmd.Flags().StringVar(&generateOut, "out", "./generated", "output directory for generated query code")
}
