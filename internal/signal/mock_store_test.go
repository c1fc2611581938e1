package signal

import (
	"context"

	"github.com/OsamaNuserat/expense-tracker-sub000/internal/common"
	"github.com/OsamaNuserat/expense-tracker-sub000/internal/model"
)

// mockStore is a canned-response PatternStore for generator tests.
type mockStore struct {
	merchantRows []model.MerchantLearning
	cliqPattern  *model.CliqPattern
	patterns     []model.CategoryPattern
	stats        []model.CategoryAmountStats
	err          error
}

func (m *mockStore) GetMerchantLearnings(_ context.Context, _ int64, _ string, _ model.MessageType) ([]model.MerchantLearning, error) {
	return m.merchantRows, m.err
}

func (m *mockStore) UpsertMerchantLearning(_ context.Context, _ int64, _ string, _ int64, _ model.MessageType, _ float64) error {
	return m.err
}

func (m *mockStore) GetCategoryPatterns(_ context.Context, _ int64, _ model.MessageType) ([]model.CategoryPattern, error) {
	return m.patterns, m.err
}

func (m *mockStore) RecordCategoryAmount(_ context.Context, _, _ int64, _ model.MessageType, _ float64) error {
	return m.err
}

func (m *mockStore) GetCliqPattern(_ context.Context, _ int64, _ string, _ model.TransactionType) (*model.CliqPattern, error) {
	if m.cliqPattern == nil {
		return nil, common.ErrNotFound
	}
	return m.cliqPattern, m.err
}

func (m *mockStore) UpsertCliqPattern(_ context.Context, _ int64, _ string, _ model.TransactionType, _ int64, _ float64, _ bool) error {
	return m.err
}

func (m *mockStore) AppendHistory(_ context.Context, _ *model.CategorizationHistory) error {
	return m.err
}

func (m *mockStore) GetCategoryAmountStats(_ context.Context, _ int64) ([]model.CategoryAmountStats, error) {
	return m.stats, m.err
}

func testCategories() []model.Category {
	return []model.Category{
		{ID: 1, Name: "Groceries", Type: model.CategoryTypeExpense, Keywords: []string{"كارفور", "carrefour", "سيفوي"}},
		{ID: 2, Name: "Dining", Type: model.CategoryTypeExpense, Keywords: []string{"مطعم", "restaurant"}},
		{ID: 3, Name: "Salary", Type: model.CategoryTypeIncome},
	}
}
