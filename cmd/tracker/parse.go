package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/OsamaNuserat/expense-tracker-sub000/internal/cli"
)

func parseCmd() *cobra.Command {
	var timestamp string

	cmd := &cobra.Command{
		Use:   "parse <message>",
		Short: "Parse one SMS message without touching the database",
		Long: `Extract the transaction from a single raw SMS message and print it as
JSON. Promotional messages and messages with no detectable amount print
nothing and exit successfully.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
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

			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(txn)
		},
	}

	cmd.Flags().StringVar(&timestamp, "timestamp", "", "message timestamp (RFC3339 or '2006-01-02 15:04:05'; default: now)")

	return cmd
}
