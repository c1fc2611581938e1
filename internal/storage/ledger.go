package storage

import (
	"context"
	"fmt"

	"github.com/OsamaNuserat/expense-tracker-sub000/internal/common"
	"github.com/OsamaNuserat/expense-tracker-sub000/internal/model"
)

// CreateEntry records a finalized transaction in the entries ledger. The
// same message arriving twice is rejected with common.ErrDuplicateEntry,
// keyed on the transaction's content hash.
func (s *SQLiteStorage) CreateEntry(ctx context.Context, userID int64, txn *model.ParsedTransaction, categoryID int64, confidence float64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateUserID(userID); err != nil {
		return err
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}
	if categoryID <= 0 {
		return fmt.Errorf("category ID must be positive, got %d", categoryID)
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO entries
			(user_id, category_id, amount, merchant, type, source,
			 original_message, confidence, occurred_at, message_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, userID, categoryID, txn.Amount, txn.Merchant, string(txn.Type),
		string(txn.Source), txn.OriginalMessage, confidence, txn.Timestamp,
		txn.GenerateHash())
	if err != nil {
		return fmt.Errorf("failed to create ledger entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check ledger insert: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: message already recorded", common.ErrDuplicateEntry)
	}

	return nil
}
