package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OsamaNuserat/expense-tracker-sub000/internal/cli"
)

func categorizeCmd() *cobra.Command {
	var (
		userID    int64
		timestamp string
	)

	cmd := &cobra.Command{
		Use:   "categorize <message>",
		Short: "Score one SMS message without recording anything",
		Long: `Parse the message and print its ranked category suggestions and the
decision the intake flow would take. Nothing is written to the ledger or
the pattern stores.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			eng, err := newEngine(store)
			if err != nil {
				return err
			}

			p, err := newParser()
			if err != nil {
				return err
			}
			txn, err := p.ParseMessage(args[0], timestamp)
			if err != nil {
				return err
			}
			if txn == nil {
				fmt.Println(cli.SubtleStyle.Render("Message rejected: not a transaction."))
				return nil
			}

			scoring, err := eng.Categorize(ctx, userID, txn)
			if err != nil {
				return err
			}

			fmt.Printf("%.2f JOD, %s via %s\n", txn.Amount, txn.Type, txn.Source)
			printSuggestions(scoring)
			fmt.Printf("Action: %s\n", scoring.Action)
			return nil
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 1, "user ID")
	cmd.Flags().StringVar(&timestamp, "timestamp", "", "message timestamp (RFC3339 or '2006-01-02 15:04:05'; default: now)")

	return cmd
}
