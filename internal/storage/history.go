package storage

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/OsamaNuserat/expense-tracker-sub000/internal/model"
)

// AppendHistory adds one row to the append-only decision log.
func (s *SQLiteStorage) AppendHistory(ctx context.Context, row *model.CategorizationHistory) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if row == nil {
		return fmt.Errorf("history row cannot be nil")
	}
	if err := validateUserID(row.UserID); err != nil {
		return err
	}
	if err := validateAmount(row.Amount); err != nil {
		return err
	}

	createdAt := row.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO categorization_history
			(user_id, merchant, amount, category_id, message_type,
			 confidence, was_correct, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, row.UserID, row.Merchant, row.Amount, row.CategoryID,
		string(row.MessageType), row.Confidence, row.WasCorrect, createdAt)
	if err != nil {
		return fmt.Errorf("failed to append history: %w", err)
	}

	return nil
}

// GetCategoryAmountStats computes per-category amount distributions over the
// user's full history, for the z-score signal generator. Variance comes from
// E[x²]−E[x]² in a single aggregate pass.
func (s *SQLiteStorage) GetCategoryAmountStats(ctx context.Context, userID int64) ([]model.CategoryAmountStats, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT category_id, COUNT(*), AVG(amount), AVG(amount * amount)
		FROM categorization_history
		WHERE user_id = ?
		GROUP BY category_id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query amount stats: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var stats []model.CategoryAmountStats
	for rows.Next() {
		var st model.CategoryAmountStats
		var meanSquares float64
		if err := rows.Scan(&st.CategoryID, &st.Count, &st.Mean, &meanSquares); err != nil {
			return nil, fmt.Errorf("failed to scan amount stats: %w", err)
		}
		if variance := meanSquares - st.Mean*st.Mean; variance > 0 {
			st.StdDev = math.Sqrt(variance)
		}
		stats = append(stats, st)
	}

	return stats, rows.Err()
}
