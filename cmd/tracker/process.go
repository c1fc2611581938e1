package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OsamaNuserat/expense-tracker-sub000/internal/cli"
	"github.com/OsamaNuserat/expense-tracker-sub000/internal/common"
	"github.com/OsamaNuserat/expense-tracker-sub000/internal/engine"
)

func processCmd() *cobra.Command {
	var (
		userID    int64
		timestamp string
		noInput   bool
	)

	cmd := &cobra.Command{
		Use:   "process <message>",
		Short: "Run one SMS message through the full intake flow",
		Long: `Parse the message, score it against learned patterns, and act on the
result: high-confidence bank transactions are recorded automatically,
everything else opens an interactive category prompt. The chosen category
feeds back into the pattern stores.`,
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

			result, err := eng.ProcessMessage(ctx, userID, args[0], timestamp)
			if err != nil {
				return err
			}

			switch result.State {
			case engine.StateRejected:
				fmt.Println(cli.SubtleStyle.Render("Message rejected: not a transaction."))
				return nil

			case engine.StateDuplicate:
				fmt.Println(cli.SubtleStyle.Render("Message already recorded; nothing to do."))
				return nil

			case engine.StateAutoCategorized:
				fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf(
					"Recorded %.2f JOD as %s (%.0f%% confidence)",
					result.Transaction.Amount,
					*result.Scoring.CategoryName,
					result.Scoring.Confidence*100)))
				return nil
			}

			if noInput {
				fmt.Println(cli.InfoStyle.Render("Awaiting decision; rerun without --no-input or use 'tracker learn'."))
				printSuggestions(result.Scoring)
				return nil
			}

			categories, err := store.GetCategories(ctx, userID)
			if err != nil {
				return fmt.Errorf("failed to load categories: %w", err)
			}

			prompter := cli.NewPrompter(nil, nil)
			decision, err := prompter.Decide(ctx, result.Transaction, result.Scoring, categories)
			if err != nil {
				return err
			}
			if decision.Skipped {
				fmt.Println(cli.SubtleStyle.Render("Skipped."))
				return nil
			}

			if err := eng.RecordUserDecision(ctx, userID, result.Transaction, decision.CategoryID, decision.WasCorrection); err != nil {
				if errors.Is(err, common.ErrDuplicateEntry) {
					return common.NewUserError("this message is already recorded", err)
				}
				return err
			}
			fmt.Println(cli.SuccessStyle.Render("Recorded."))
			return nil
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 1, "user ID")
	cmd.Flags().StringVar(&timestamp, "timestamp", "", "message timestamp (RFC3339 or '2006-01-02 15:04:05'; default: now)")
	cmd.Flags().BoolVar(&noInput, "no-input", false, "never prompt; print suggestions and exit")

	return cmd
}

func printSuggestions(scoring *engine.Result) {
	if len(scoring.Suggestions) == 0 {
		fmt.Println(cli.SubtleStyle.Render(scoring.Reason))
		return
	}
	for i, s := range scoring.Suggestions {
		fmt.Printf("  [%d] %s (%.0f%%) %s\n", i+1, s.CategoryName, s.Confidence*100,
			cli.SubtleStyle.Render(s.Reason))
	}
}
