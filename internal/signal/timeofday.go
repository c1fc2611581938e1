package signal

import (
	"context"

	"github.com/OsamaNuserat/expense-tracker-sub000/internal/model"
)

// Ensure TimeGenerator implements Generator.
var _ Generator = (*TimeGenerator)(nil)

// TimeGenerator is a registered extension point for time-of-day and
// day-of-week patterns. It currently contributes nothing; the slot exists so
// a future heuristic can be added without touching the engine wiring.
type TimeGenerator struct{}

// NewTimeGenerator creates the time-pattern placeholder generator.
func NewTimeGenerator() *TimeGenerator {
	return &TimeGenerator{}
}

// Name implements Generator.
func (g *TimeGenerator) Name() string { return "time_pattern" }

// Suggest implements Generator. Always returns no suggestions.
func (g *TimeGenerator) Suggest(_ context.Context, _ int64, _ Features) (model.Suggestions, error) {
	return nil, nil
}
