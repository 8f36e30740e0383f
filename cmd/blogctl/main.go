package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"inkblog/internal/config"
	"inkblog/internal/database"
	"inkblog/internal/logging"
	"inkblog/internal/repository"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "blogctl",
		Short: "Maintenance commands for the blog database",
	}

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(purgeSessionsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func connect() (*config.Config, *database.DB, error) {
	cfg := config.LoadConfig()
	logger := logging.New(os.Stderr, cfg.LogLevel)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the SQL files in the migrations directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, err := connect()
		if err != nil {
			return err
		}
		defer db.CloseDB()

		dir, _ := cmd.Flags().GetString("dir")
		if dir == "" {
			dir = cfg.MigrationsPath
		}

		if err := db.RunMigrations(dir); err != nil {
			return err
		}

		fmt.Printf("Applied migrations from %s\n", dir)
		return nil
	},
}

var purgeSessionsCmd = &cobra.Command{
	Use:   "purge-sessions",
	Short: "Delete expired sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := connect()
		if err != nil {
			return err
		}
		defer db.CloseDB()

		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()

		deleted, err := repository.NewSessionRepository(db.DB).DeleteExpired(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("Deleted %d expired sessions\n", deleted)
		return nil
	},
}

func init() {
	migrateCmd.Flags().String("dir", "", "migrations directory (defaults to MIGRATIONS_PATH)")
}
