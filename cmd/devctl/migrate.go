package main

import (
	"errors"

	"go-devconnector-backend/config"
	"go-devconnector-backend/internal/db"
	"go-devconnector-backend/pkg/logger"

	"github.com/spf13/cobra"
)

var errNoDatabaseURL = errors.New("DATABASE_URL is not set")

// migrateCmd represents the migrate command.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all up migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := db.Up(cfg.DBUrl); err != nil {
			return err
		}
		logger.Log.Info("Migrations applied")
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, _ := cmd.Flags().GetInt("steps")
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := db.Down(cfg.DBUrl, steps); err != nil {
			return err
		}
		logger.Log.Info("Migrations rolled back", "steps", steps)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)

	migrateDownCmd.Flags().Int("steps", 1, "number of migrations to roll back")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	logger.Init(cfg.LogLevel)
	if cfg.DBUrl == "" {
		return nil, errNoDatabaseURL
	}
	return cfg, nil
}
