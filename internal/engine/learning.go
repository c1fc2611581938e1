package engine

import (
	"context"

	"github.com/OsamaNuserat/expense-tracker-sub000/internal/common"
	"github.com/OsamaNuserat/expense-tracker-sub000/internal/model"
	"github.com/OsamaNuserat/expense-tracker-sub000/internal/parser"
	"github.com/OsamaNuserat/expense-tracker-sub000/internal/service"
)

var learnRetry = service.RetryOptions{MaxAttempts: 3}

// Learn folds a user's final category choice back into the pattern stores.
// It is best-effort: the categorization decision and ledger entry are
// already committed, so every failure here is logged and swallowed, never
// returned.
func (e *CategorizationEngine) Learn(ctx context.Context, userID int64, txn *model.ParsedTransaction, categoryID int64, wasCorrection bool) {
	confidence := 1.0
	if wasCorrection {
		confidence = 0.0
	}

	row := &model.CategorizationHistory{
		UserID:      userID,
		Merchant:    txn.Merchant,
		Amount:      txn.Amount,
		CategoryID:  categoryID,
		MessageType: txn.MessageType(),
		Confidence:  confidence,
		WasCorrect:  !wasCorrection,
		CreatedAt:   txn.Timestamp,
	}
	e.bestEffort(ctx, userID, "append history", func() error {
		return e.store.AppendHistory(ctx, row)
	})

	if txn.Merchant != "" {
		e.bestEffort(ctx, userID, "upsert merchant learning", func() error {
			return e.store.UpsertMerchantLearning(ctx, userID, txn.Merchant, categoryID, txn.MessageType(), txn.Amount)
		})
	}

	e.bestEffort(ctx, userID, "update category pattern", func() error {
		return e.store.RecordCategoryAmount(ctx, userID, categoryID, txn.MessageType(), txn.Amount)
	})

	if txn.Source == model.SourceCliq && txn.Merchant != "" {
		businessLike := parser.IsBusinessLike(txn.Merchant)
		e.bestEffort(ctx, userID, "upsert cliq pattern", func() error {
			return e.store.UpsertCliqPattern(ctx, userID, txn.Merchant, txn.Type, categoryID, txn.Amount, businessLike)
		})
	}
}

// bestEffort runs a learning write with retries and logs the final failure.
func (e *CategorizationEngine) bestEffort(ctx context.Context, userID int64, op string, fn func() error) {
	if err := common.WithRetry(ctx, fn, learnRetry); err != nil {
		common.LogError(err, "Learning write failed", common.Fields{
			"operation": op,
			"user_id":   userID,
		})
	}
}
