package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OsamaNuserat/expense-tracker-sub000/internal/cli"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the database schema to the latest version. The
other commands migrate automatically on startup; this exists for
provisioning a database ahead of time.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			fmt.Println(cli.SuccessStyle.Render("Database schema is up to date."))
			return nil
		},
	}
}
