package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OsamaNuserat/expense-tracker-sub000/internal/cli"
	"github.com/OsamaNuserat/expense-tracker-sub000/internal/common"
)

func learnCmd() *cobra.Command {
	var (
		userID     int64
		categoryID int64
		timestamp  string
		correction bool
	)

	cmd := &cobra.Command{
		Use:   "learn <message>",
		Short: "Record a category decision for one SMS message",
		Long: `Parse the message and record it under the given category without
prompting. Use --correction when the decision overrides what the engine
suggested, so the history reflects the miss.`,
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
				return fmt.Errorf("message is not a transaction")
			}

			if err := eng.RecordUserDecision(ctx, userID, txn, categoryID, correction); err != nil {
				switch {
				case errors.Is(err, common.ErrUnknownCategory):
					return common.NewUserError(
						fmt.Sprintf("category %d does not exist; run 'tracker categories' to list them", categoryID), err)
				case errors.Is(err, common.ErrDuplicateEntry):
					return common.NewUserError("this message is already recorded", err)
				}
				return err
			}

			fmt.Println(cli.SuccessStyle.Render("Recorded."))
			return nil
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 1, "user ID")
	cmd.Flags().Int64Var(&categoryID, "category", 0, "category ID to record the transaction under")
	cmd.Flags().StringVar(&timestamp, "timestamp", "", "message timestamp (RFC3339 or '2006-01-02 15:04:05'; default: now)")
	cmd.Flags().BoolVar(&correction, "correction", false, "mark the decision as overriding the engine's suggestion")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}
