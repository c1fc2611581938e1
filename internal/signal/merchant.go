package signal

import (
	"context"
	"fmt"

	"github.com/OsamaNuserat/expense-tracker-sub000/internal/common"
	"github.com/OsamaNuserat/expense-tracker-sub000/internal/model"
	"github.com/OsamaNuserat/expense-tracker-sub000/internal/service"
)

// Ensure MerchantGenerator implements Generator.
var _ Generator = (*MerchantGenerator)(nil)

// MerchantGenerator scores categories the user has previously filed this
// exact merchant under. The same merchant may return several rows when its
// history is split across categories.
type MerchantGenerator struct {
	store service.PatternStore
}

// NewMerchantGenerator creates a merchant-history generator.
func NewMerchantGenerator(store service.PatternStore) *MerchantGenerator {
	return &MerchantGenerator{store: store}
}

// Name implements Generator.
func (g *MerchantGenerator) Name() string { return "merchant_match" }

// Suggest implements Generator.
func (g *MerchantGenerator) Suggest(ctx context.Context, userID int64, f Features) (model.Suggestions, error) {
	if f.Merchant == "" {
		return nil, nil
	}

	rows, err := g.store.GetMerchantLearnings(ctx, userID, f.Merchant, f.MessageType)
	if err != nil {
		return nil, fmt.Errorf("failed to load merchant learnings: %w", err)
	}

	suggestions := make(model.Suggestions, 0, len(rows))
	for _, row := range rows {
		name := f.CategoryName(row.CategoryID)
		if name == "" {
			continue
		}

		confidence := row.Confidence * 0.9
		if confidence > 0.95 {
			confidence = 0.95
		}

		suggestions = append(suggestions, model.CategorySuggestion{
			CategoryID:   row.CategoryID,
			CategoryName: name,
			Confidence:   common.Clamp01(confidence),
			Reason:       fmt.Sprintf("Exact merchant match (seen %d times)", row.UseCount),
		})
	}

	return suggestions, nil
}
