package main

import (
	"github.com/spf13/cobra"
)

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long:  `Create or update the schema for users, roles, the catalog and favorites.`,
		RunE:  runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cmd.Println("Running migrations...")
	a, err := openApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	cmd.Println("Migrations completed successfully")
	return nil
}
