package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/OsamaNuserat/expense-tracker-sub000/internal/common"
	"github.com/OsamaNuserat/expense-tracker-sub000/internal/model"
)

// State tracks a transaction through the intake flow.
type State string

// Transaction states. Rejected and Learned are terminal; AutoCategorized
// transitions to Learned implicitly once the feedback write runs.
const (
	StateRejected        State = "rejected"
	StateDuplicate       State = "duplicate"
	StateAutoCategorized State = "auto_categorized"
	StateAwaitingUser    State = "awaiting_user_decision"
)

// ProcessResult is the outcome of running one raw message through the full
// intake flow. Transaction and Scoring are nil for rejected messages.
type ProcessResult struct {
	Transaction *model.ParsedTransaction
	Scoring     *Result
	State       State
}

// ProcessMessage runs the full flow for one raw SMS: parse, score, decide,
// and, when the decision policy allows it, write the ledger entry and learn
// from it. For confirm/prompt outcomes the caller surfaces the scoring
// payload to the user and later reports the choice via RecordUserDecision.
func (e *CategorizationEngine) ProcessMessage(ctx context.Context, userID int64, text, timestamp string) (*ProcessResult, error) {
	txn, err := e.parser.ParseMessage(text, timestamp)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		slog.Debug("Message rejected by parser", "user_id", userID)
		return &ProcessResult{State: StateRejected}, nil
	}

	scoring, err := e.Categorize(ctx, userID, txn)
	if err != nil {
		return nil, err
	}

	result := &ProcessResult{Transaction: txn, Scoring: scoring, State: StateAwaitingUser}

	if scoring.Action == ActionAutoCategorize {
		// The ledger write commits before learning; a failed or slow
		// learning write must never roll it back.
		err := e.ledger.CreateEntry(ctx, userID, txn, *scoring.CategoryID, scoring.Confidence)
		if errors.Is(err, common.ErrDuplicateEntry) {
			slog.Info("Skipping replayed message", "user_id", userID, "merchant", txn.Merchant)
			result.State = StateDuplicate
			return result, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to write ledger entry: %w", err)
		}
		e.Learn(ctx, userID, txn, *scoring.CategoryID, false)
		result.State = StateAutoCategorized

		slog.Info("Auto-categorized transaction",
			"user_id", userID,
			"category", *scoring.CategoryName,
			"confidence", scoring.Confidence)
	}

	return result, nil
}

// RecordUserDecision finalizes a prompted transaction: it writes the ledger
// entry under the chosen category and feeds the decision back into the
// pattern stores. wasCorrection marks decisions that overrode the engine's
// recommendation.
func (e *CategorizationEngine) RecordUserDecision(ctx context.Context, userID int64, txn *model.ParsedTransaction, categoryID int64, wasCorrection bool) error {
	if _, err := e.store.GetCategoryByID(ctx, userID, categoryID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("%w: %d", common.ErrUnknownCategory, categoryID)
		}
		return fmt.Errorf("failed to resolve category %d: %w", categoryID, err)
	}

	if err := e.ledger.CreateEntry(ctx, userID, txn, categoryID, 1.0); err != nil {
		return fmt.Errorf("failed to write ledger entry: %w", err)
	}

	e.Learn(ctx, userID, txn, categoryID, wasCorrection)
	return nil
}
