package signal

import (
	"context"
	"fmt"
	"math"

	"github.com/OsamaNuserat/expense-tracker-sub000/internal/common"
	"github.com/OsamaNuserat/expense-tracker-sub000/internal/model"
	"github.com/OsamaNuserat/expense-tracker-sub000/internal/service"
)

// Ensure ZScoreGenerator implements Generator.
var _ Generator = (*ZScoreGenerator)(nil)

// ZScoreGenerator scores categories whose historical amount distribution the
// transaction fits. Categories need at least three decisions on record
// before they produce a distribution.
type ZScoreGenerator struct {
	store service.PatternStore
}

// NewZScoreGenerator creates an amount-distribution generator.
func NewZScoreGenerator(store service.PatternStore) *ZScoreGenerator {
	return &ZScoreGenerator{store: store}
}

// Name implements Generator.
func (g *ZScoreGenerator) Name() string { return "amount_zscore" }

// Suggest implements Generator.
func (g *ZScoreGenerator) Suggest(ctx context.Context, userID int64, f Features) (model.Suggestions, error) {
	stats, err := g.store.GetCategoryAmountStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load amount stats: %w", err)
	}

	var suggestions model.Suggestions
	for _, s := range stats {
		if s.Count < 3 {
			continue
		}
		name := f.CategoryName(s.CategoryID)
		if name == "" {
			continue
		}

		var z float64
		if s.StdDev > 0 {
			z = math.Abs(f.Amount-s.Mean) / s.StdDev
		} else if f.Amount != s.Mean {
			continue // degenerate distribution, anything off-mean is an outlier
		}
		if z >= 1.5 {
			continue
		}

		confidence := common.Clamp01(math.Max(0, (1.5-z)/1.5*0.4))
		if confidence <= 0.2 {
			continue
		}

		suggestions = append(suggestions, model.CategorySuggestion{
			CategoryID:   s.CategoryID,
			CategoryName: name,
			Confidence:   confidence,
			Reason:       fmt.Sprintf("Amount typical for this category (%d past transactions)", s.Count),
		})
	}

	return suggestions, nil
}
