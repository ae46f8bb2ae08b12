package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/templui/studytrack/internal/db"
)

// MigrateCmd applies or rolls back the document store schema without
// starting the server, so it does not need the JWT secret.
func MigrateCmd() *cobra.Command {
	var driver, connection string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database migrations",
	}
	cmd.PersistentFlags().StringVar(&driver, "driver", "", "database driver (default $DB_DRIVER or sqlite)")
	cmd.PersistentFlags().StringVar(&connection, "db", "", "connection string (default $DB_CONNECTION)")

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, c := resolveDB(driver, connection)
			database, err := db.Open(d, c)
			if err != nil {
				return err
			}
			defer database.Close()
			fmt.Println("==> Migrations applied")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, c := resolveDB(driver, connection)
			database, err := db.Init(d, c)
			if err != nil {
				return err
			}
			defer database.Close()
			if err := db.MigrateDown(database.DB, d); err != nil {
				return err
			}
			fmt.Println("==> Rolled back one migration")
			return nil
		},
	})

	return cmd
}

func resolveDB(driver, connection string) (string, string) {
	_ = godotenv.Load()

	if driver == "" {
		driver = os.Getenv("DB_DRIVER")
	}
	if driver == "" {
		driver = "sqlite"
	}
	if connection == "" {
		connection = os.Getenv("DB_CONNECTION")
	}
	if connection == "" {
		connection = "./data/studytrack.db?_pragma=journal_mode(WAL)"
	}
	return driver, connection
}
