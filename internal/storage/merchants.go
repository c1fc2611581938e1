package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/OsamaNuserat/expense-tracker-sub000/internal/model"
)

// GetMerchantLearnings returns every learned category row for one merchant
// and message type. A merchant whose history is split across categories
// yields multiple rows.
func (s *SQLiteStorage) GetMerchantLearnings(ctx context.Context, userID int64, merchant string, messageType model.MessageType) ([]model.MerchantLearning, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	if err := validateString(merchant, "merchant"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, merchant, category_id, message_type,
		       confidence, average_amount, use_count, last_used
		FROM merchant_learnings
		WHERE user_id = ? AND merchant = ? AND message_type = ?
		ORDER BY confidence DESC
	`, userID, merchant, string(messageType))
	if err != nil {
		return nil, fmt.Errorf("failed to query merchant learnings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var learnings []model.MerchantLearning
	for rows.Next() {
		var l model.MerchantLearning
		if err := rows.Scan(
			&l.UserID,
			&l.Merchant,
			&l.CategoryID,
			&l.MessageType,
			&l.Confidence,
			&l.AverageAmount,
			&l.UseCount,
			&l.LastUsed,
		); err != nil {
			return nil, fmt.Errorf("failed to scan merchant learning: %w", err)
		}
		learnings = append(learnings, l)
	}

	return learnings, rows.Err()
}

// UpsertMerchantLearning records one more decision for a merchant/category
// pair. The running average, use count and confidence growth are computed
// in the UPDATE clause against the current row, so concurrent learns for
// the same key cannot lose updates. A first decision seeds confidence 0.7.
func (s *SQLiteStorage) UpsertMerchantLearning(ctx context.Context, userID int64, merchant string, categoryID int64, messageType model.MessageType, amount float64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateUserID(userID); err != nil {
		return err
	}
	if err := validateString(merchant, "merchant"); err != nil {
		return err
	}
	if err := validateAmount(amount); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO merchant_learnings
			(user_id, merchant, category_id, message_type,
			 confidence, average_amount, use_count, last_used)
		VALUES (?, ?, ?, ?, 0.7, ?, 1, ?)
		ON CONFLICT(user_id, merchant, category_id, message_type) DO UPDATE SET
			average_amount = (merchant_learnings.average_amount * merchant_learnings.use_count + excluded.average_amount)
				/ (merchant_learnings.use_count + 1),
			use_count = merchant_learnings.use_count + 1,
			confidence = MIN(merchant_learnings.confidence * 1.1, 0.95),
			last_used = excluded.last_used
	`, userID, merchant, categoryID, string(messageType), amount, time.Now())
	if err != nil {
		return fmt.Errorf("failed to upsert merchant learning: %w", err)
	}

	return nil
}
