package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/OsamaNuserat/expense-tracker-sub000/internal/common"
	"github.com/OsamaNuserat/expense-tracker-sub000/internal/model"
)

// GetCliqPattern returns the learned pattern for one CliQ counterparty, or
// common.ErrNotFound.
func (s *SQLiteStorage) GetCliqPattern(ctx context.Context, userID int64, sender string, txType model.TransactionType) (*model.CliqPattern, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	if err := validateString(sender, "sender"); err != nil {
		return nil, err
	}

	var p model.CliqPattern
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, sender, transaction_type, category_id,
		       average_amount, amount_variance, confidence, use_count,
		       is_recurring, is_business_like, last_seen
		FROM cliq_patterns
		WHERE user_id = ? AND sender = ? AND transaction_type = ?
	`, userID, sender, string(txType)).Scan(
		&p.UserID,
		&p.Sender,
		&p.TransactionType,
		&p.CategoryID,
		&p.AverageAmount,
		&p.AmountVariance,
		&p.Confidence,
		&p.UseCount,
		&p.IsRecurring,
		&p.IsBusinessLike,
		&p.LastSeen,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cliq pattern: %w", err)
	}

	return &p, nil
}

// UpsertCliqPattern records one more decision for a CliQ counterparty. The
// running average, variance estimate, use count and confidence growth are
// computed in the UPDATE clause against the current row; the recurring flag
// flips once the third decision lands. A first decision seeds confidence 0.6.
func (s *SQLiteStorage) UpsertCliqPattern(ctx context.Context, userID int64, sender string, txType model.TransactionType, categoryID int64, amount float64, businessLike bool) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateUserID(userID); err != nil {
		return err
	}
	if err := validateString(sender, "sender"); err != nil {
		return err
	}
	if err := validateAmount(amount); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cliq_patterns
			(user_id, sender, transaction_type, category_id,
			 average_amount, amount_variance, confidence, use_count,
			 is_recurring, is_business_like, last_seen)
		VALUES (?, ?, ?, ?, ?, 0, 0.6, 1, 0, ?, ?)
		ON CONFLICT(user_id, sender, transaction_type) DO UPDATE SET
			category_id = excluded.category_id,
			average_amount = (cliq_patterns.average_amount * cliq_patterns.use_count + excluded.average_amount)
				/ (cliq_patterns.use_count + 1),
			amount_variance = (cliq_patterns.amount_variance * cliq_patterns.use_count
					+ (excluded.average_amount - cliq_patterns.average_amount)
					* (excluded.average_amount - cliq_patterns.average_amount))
				/ (cliq_patterns.use_count + 1),
			confidence = MIN(cliq_patterns.confidence * 1.05, 0.9),
			use_count = cliq_patterns.use_count + 1,
			is_recurring = CASE WHEN cliq_patterns.use_count + 1 >= 3 THEN 1
				ELSE cliq_patterns.is_recurring END,
			is_business_like = excluded.is_business_like,
			last_seen = excluded.last_seen
	`, userID, sender, string(txType), categoryID, amount, businessLike, time.Now())
	if err != nil {
		return fmt.Errorf("failed to upsert cliq pattern: %w", err)
	}

	return nil
}
