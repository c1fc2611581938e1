package signal

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/OsamaNuserat/expense-tracker-sub000/internal/common"
	"github.com/OsamaNuserat/expense-tracker-sub000/internal/model"
	"github.com/OsamaNuserat/expense-tracker-sub000/internal/service"
)

// Ensure CliqGenerator implements Generator.
var _ Generator = (*CliqGenerator)(nil)

// CliqGenerator scores the category a user habitually assigns to one CliQ
// counterparty. Confidence grows with amount similarity and recurring use,
// but is capped below the auto-categorization threshold: CliQ senders are
// free-text names, so these patterns only ever pre-fill a prompt.
type CliqGenerator struct {
	store service.PatternStore
}

// NewCliqGenerator creates a CliQ sender-pattern generator.
func NewCliqGenerator(store service.PatternStore) *CliqGenerator {
	return &CliqGenerator{store: store}
}

// Name implements Generator.
func (g *CliqGenerator) Name() string { return "cliq_pattern" }

// Suggest implements Generator.
func (g *CliqGenerator) Suggest(ctx context.Context, userID int64, f Features) (model.Suggestions, error) {
	if f.Source != model.SourceCliq || f.Merchant == "" {
		return nil, nil
	}

	pattern, err := g.store.GetCliqPattern(ctx, userID, f.Merchant, f.Type)
	if errors.Is(err, common.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cliq pattern: %w", err)
	}

	name := f.CategoryName(pattern.CategoryID)
	if name == "" {
		return nil, nil
	}

	confidence := pattern.Confidence * 0.85 * amountSimilarity(f.Amount, pattern.AverageAmount)
	reason := "Known CliQ sender"
	if pattern.IsRecurring {
		confidence *= 1.1
		reason = "Recurring CliQ sender"
	}
	if confidence > 0.9 {
		confidence = 0.9
	}

	return model.Suggestions{{
		CategoryID:   pattern.CategoryID,
		CategoryName: name,
		Confidence:   common.Clamp01(confidence),
		Reason:       reason,
	}}, nil
}

// amountSimilarity scales confidence by how close the amount sits to the
// pattern's running average: 1.0 at the average, floor 0.7 far away.
func amountSimilarity(amount, average float64) float64 {
	if average <= 0 {
		return 0.7
	}
	delta := math.Abs(amount - average)
	return 0.7 + 0.3*math.Max(0, 1-delta/average)
}
