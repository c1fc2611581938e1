package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OsamaNuserat/expense-tracker-sub000/internal/common"
	"github.com/OsamaNuserat/expense-tracker-sub000/internal/model"
)

func TestAppendHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("append and aggregate", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()
		cat := mustCreateCategory(t, store, 2, "Groceries", model.CategoryTypeExpense)

		for _, amount := range []float64{40, 50, 60} {
			err := store.AppendHistory(ctx, &model.CategorizationHistory{
				UserID:      2,
				Merchant:    "carrefour",
				Amount:      amount,
				CategoryID:  cat.ID,
				MessageType: model.MessageBankDebit,
				Confidence:  1.0,
				WasCorrect:  true,
			})
			require.NoError(t, err)
		}

		stats, err := store.GetCategoryAmountStats(ctx, 2)
		require.NoError(t, err)
		require.Len(t, stats, 1)
		assert.Equal(t, cat.ID, stats[0].CategoryID)
		assert.Equal(t, 3, stats[0].Count)
		assert.InDelta(t, 50, stats[0].Mean, 1e-9)
		// Population std dev of {40, 50, 60}.
		assert.InDelta(t, 8.1649658, stats[0].StdDev, 1e-6)
	})

	t.Run("constant amounts have zero std dev", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()
		cat := mustCreateCategory(t, store, 2, "Utilities", model.CategoryTypeExpense)

		for i := 0; i < 3; i++ {
			require.NoError(t, store.AppendHistory(ctx, &model.CategorizationHistory{
				UserID:      2,
				Amount:      25,
				CategoryID:  cat.ID,
				MessageType: model.MessageBankDebit,
				Confidence:  1.0,
				WasCorrect:  true,
			}))
		}

		stats, err := store.GetCategoryAmountStats(ctx, 2)
		require.NoError(t, err)
		require.Len(t, stats, 1)
		assert.InDelta(t, 0, stats[0].StdDev, 1e-9)
	})

	t.Run("stats are grouped per category and user", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()
		groceries := mustCreateCategory(t, store, 2, "Groceries", model.CategoryTypeExpense)
		dining := mustCreateCategory(t, store, 2, "Dining", model.CategoryTypeExpense)

		require.NoError(t, store.AppendHistory(ctx, &model.CategorizationHistory{
			UserID: 2, Amount: 50, CategoryID: groceries.ID,
			MessageType: model.MessageBankDebit, Confidence: 1.0, WasCorrect: true,
		}))
		require.NoError(t, store.AppendHistory(ctx, &model.CategorizationHistory{
			UserID: 2, Amount: 15, CategoryID: dining.ID,
			MessageType: model.MessageBankDebit, Confidence: 1.0, WasCorrect: true,
		}))
		require.NoError(t, store.AppendHistory(ctx, &model.CategorizationHistory{
			UserID: 3, Amount: 500, CategoryID: groceries.ID,
			MessageType: model.MessageBankDebit, Confidence: 1.0, WasCorrect: true,
		}))

		stats, err := store.GetCategoryAmountStats(ctx, 2)
		require.NoError(t, err)
		assert.Len(t, stats, 2)
		for _, st := range stats {
			assert.Equal(t, 1, st.Count)
		}
	})

	t.Run("empty history yields no stats", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		stats, err := store.GetCategoryAmountStats(ctx, 1)
		require.NoError(t, err)
		assert.Empty(t, stats)
	})

	t.Run("rejects invalid rows", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		assert.Error(t, store.AppendHistory(ctx, nil))
		assert.Error(t, store.AppendHistory(ctx, &model.CategorizationHistory{
			UserID: 0, Amount: 50, CategoryID: 1, MessageType: model.MessageBankDebit,
		}))
		assert.Error(t, store.AppendHistory(ctx, &model.CategorizationHistory{
			UserID: 1, Amount: -5, CategoryID: 1, MessageType: model.MessageBankDebit,
		}))
	})
}

func TestCreateEntry(t *testing.T) {
	ctx := context.Background()

	t.Run("records a finalized transaction", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()
		cat := mustCreateCategory(t, store, 2, "Groceries", model.CategoryTypeExpense)

		txn := &model.ParsedTransaction{
			Timestamp:       time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC),
			OriginalMessage: "Purchase of JD 42.500 from CARREFOUR",
			Merchant:        "carrefour",
			Type:            model.TypeExpense,
			Source:          model.SourceSMS,
			Amount:          42.5,
		}
		require.NoError(t, store.CreateEntry(ctx, 2, txn, cat.ID, 0.85))

		var count int
		var merchant string
		var confidence float64
		err := store.db.QueryRow(`
			SELECT COUNT(*), merchant, confidence FROM entries WHERE user_id = 2
		`).Scan(&count, &merchant, &confidence)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
		assert.Equal(t, "carrefour", merchant)
		assert.InDelta(t, 0.85, confidence, 1e-9)
	})

	t.Run("replayed message is rejected as duplicate", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()
		cat := mustCreateCategory(t, store, 2, "Groceries", model.CategoryTypeExpense)

		txn := &model.ParsedTransaction{
			Timestamp:       time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC),
			OriginalMessage: "Purchase of JD 42.500 from CARREFOUR",
			Merchant:        "carrefour",
			Type:            model.TypeExpense,
			Source:          model.SourceSMS,
			Amount:          42.5,
		}
		require.NoError(t, store.CreateEntry(ctx, 2, txn, cat.ID, 0.85))

		err := store.CreateEntry(ctx, 2, txn, cat.ID, 0.85)
		assert.ErrorIs(t, err, common.ErrDuplicateEntry)

		var count int
		require.NoError(t, store.db.QueryRow(`SELECT COUNT(*) FROM entries WHERE user_id = 2`).Scan(&count))
		assert.Equal(t, 1, count)

		// Another user replaying the same text is not a duplicate.
		assert.NoError(t, store.CreateEntry(ctx, 3, txn, cat.ID, 0.85))
	})

	t.Run("rejects incomplete transactions", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		assert.Error(t, store.CreateEntry(ctx, 1, nil, 1, 0.85))
		assert.Error(t, store.CreateEntry(ctx, 1, &model.ParsedTransaction{
			Amount: 0, Timestamp: time.Now(),
		}, 1, 0.85))
		assert.Error(t, store.CreateEntry(ctx, 1, &model.ParsedTransaction{
			Amount: 10, Timestamp: time.Now(),
		}, 0, 0.85))
	})
}
