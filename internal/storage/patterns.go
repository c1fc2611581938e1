package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/OsamaNuserat/expense-tracker-sub000/internal/common"
	"github.com/OsamaNuserat/expense-tracker-sub000/internal/model"
)

// Widening factors of the amount-band update.
const (
	rangeWidenTolerance = 0.2 // an existing band stretched ±20% may absorb the amount
	rangeSeedSpread     = 0.1 // a fresh band spans ±10% around the amount
)

// GetCategoryPatterns returns all amount-band patterns of one message type.
func (s *SQLiteStorage) GetCategoryPatterns(ctx context.Context, userID int64, messageType model.MessageType) ([]model.CategoryPattern, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, category_id, message_type, ranges, transaction_count, last_updated
		FROM category_patterns
		WHERE user_id = ? AND message_type = ?
	`, userID, string(messageType))
	if err != nil {
		return nil, fmt.Errorf("failed to query category patterns: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var patterns []model.CategoryPattern
	for rows.Next() {
		pattern, err := scanCategoryPattern(rows)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, *pattern)
	}

	return patterns, rows.Err()
}

// RecordCategoryAmount folds one more amount into a category's learned
// bands: a band that contains the amount within a ±20% stretch widens and
// gains frequency, otherwise a new ±10% band is seeded at frequency 0.5.
// The read-modify-write runs inside one immediate transaction, so
// concurrent learns for the same key serialize instead of losing bands.
func (s *SQLiteStorage) RecordCategoryAmount(ctx context.Context, userID, categoryID int64, messageType model.MessageType, amount float64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateUserID(userID); err != nil {
		return err
	}
	if err := validateAmount(amount); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var (
		encoded string
		count   int
		ranges  []model.AmountRange
	)
	err = tx.QueryRowContext(ctx, `
		SELECT ranges, transaction_count
		FROM category_patterns
		WHERE user_id = ? AND category_id = ? AND message_type = ?
	`, userID, categoryID, string(messageType)).Scan(&encoded, &count)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// First decision for this key.
	case err != nil:
		return fmt.Errorf("failed to load category pattern: %w", err)
	default:
		if err := json.Unmarshal([]byte(encoded), &ranges); err != nil {
			return fmt.Errorf("failed to decode ranges for category %d: %w", categoryID, err)
		}
	}

	ranges = absorbAmount(ranges, amount)
	updated, err := json.Marshal(ranges)
	if err != nil {
		return fmt.Errorf("failed to encode ranges: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO category_patterns
			(user_id, category_id, message_type, ranges, transaction_count, last_updated)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, category_id, message_type) DO UPDATE SET
			ranges = excluded.ranges,
			transaction_count = excluded.transaction_count,
			last_updated = excluded.last_updated
	`, userID, categoryID, string(messageType), string(updated), count+1, time.Now())
	if err != nil {
		return fmt.Errorf("failed to save category pattern: %w", err)
	}

	return tx.Commit()
}

// absorbAmount widens the band the amount falls near, or appends a fresh
// band around it.
func absorbAmount(ranges []model.AmountRange, amount float64) []model.AmountRange {
	for i := range ranges {
		r := &ranges[i]
		lower := r.Min * (1 - rangeWidenTolerance)
		upper := r.Max * (1 + rangeWidenTolerance)
		if amount < lower || amount > upper {
			continue
		}
		if amount < r.Min {
			r.Min = amount
		}
		if amount > r.Max {
			r.Max = amount
		}
		r.Frequency = common.Clamp01(r.Frequency + 0.1)
		return ranges
	}
	return append(ranges, model.AmountRange{
		Min:       amount * (1 - rangeSeedSpread),
		Max:       amount * (1 + rangeSeedSpread),
		Frequency: 0.5,
	})
}

func scanCategoryPattern(row scannable) (*model.CategoryPattern, error) {
	var pattern model.CategoryPattern
	var ranges string

	err := row.Scan(
		&pattern.UserID,
		&pattern.CategoryID,
		&pattern.MessageType,
		&ranges,
		&pattern.TransactionCount,
		&pattern.LastUpdated,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan category pattern: %w", err)
	}

	if err := json.Unmarshal([]byte(ranges), &pattern.Ranges); err != nil {
		return nil, fmt.Errorf("failed to decode ranges for category %d: %w", pattern.CategoryID, err)
	}
	return &pattern, nil
}
