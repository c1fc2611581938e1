package signal

import (
	"context"
	"fmt"

	"github.com/OsamaNuserat/expense-tracker-sub000/internal/common"
	"github.com/OsamaNuserat/expense-tracker-sub000/internal/model"
	"github.com/OsamaNuserat/expense-tracker-sub000/internal/service"
)

// Ensure AmountRangeGenerator implements Generator.
var _ Generator = (*AmountRangeGenerator)(nil)

// AmountRangeGenerator scores categories whose learned amount bands contain
// the transaction amount. Only bands of the same message type are consulted.
type AmountRangeGenerator struct {
	store service.PatternStore
}

// NewAmountRangeGenerator creates an amount-band generator.
func NewAmountRangeGenerator(store service.PatternStore) *AmountRangeGenerator {
	return &AmountRangeGenerator{store: store}
}

// Name implements Generator.
func (g *AmountRangeGenerator) Name() string { return "amount_range" }

// Suggest implements Generator.
func (g *AmountRangeGenerator) Suggest(ctx context.Context, userID int64, f Features) (model.Suggestions, error) {
	patterns, err := g.store.GetCategoryPatterns(ctx, userID, f.MessageType)
	if err != nil {
		return nil, fmt.Errorf("failed to load category patterns: %w", err)
	}

	var suggestions model.Suggestions
	for _, pattern := range patterns {
		name := f.CategoryName(pattern.CategoryID)
		if name == "" {
			continue
		}

		for _, r := range pattern.Ranges {
			if !r.Contains(f.Amount) {
				continue
			}
			confidence := common.Clamp01(r.Frequency * 0.6)
			if confidence < 0.3 {
				continue
			}
			suggestions = append(suggestions, model.CategorySuggestion{
				CategoryID:   pattern.CategoryID,
				CategoryName: name,
				Confidence:   confidence,
				Reason:       fmt.Sprintf("Amount fits usual %.0f-%.0f range", r.Min, r.Max),
			})
			break // one suggestion per category
		}
	}

	return suggestions, nil
}
