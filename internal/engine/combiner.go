package engine

import (
	"log/slog"
	"strings"

	"github.com/OsamaNuserat/expense-tracker-sub000/internal/common"
	"github.com/OsamaNuserat/expense-tracker-sub000/internal/model"
)

// Combine merges per-generator suggestion lists into one ranked list. A
// category produced by a single generator passes through unchanged; a
// category backed by two or more generators gets its confidences summed,
// scaled by 0.8 and capped at 0.95, with the reasons concatenated. The
// formula is deliberate observable behavior, not a probability combination;
// keep it stable. Suggestions without a category or with an out-of-range
// confidence are dropped before merging.
func Combine(perGenerator []model.Suggestions) model.Suggestions {
	type bucket struct {
		name    string
		reasons []string
		sum     float64
		sources int
	}

	buckets := make(map[int64]*bucket)
	var order []int64

	for _, suggestions := range perGenerator {
		for _, s := range suggestions {
			if err := s.Validate(); err != nil {
				slog.Warn("Dropping malformed suggestion", "category_id", s.CategoryID, "error", err)
				continue
			}
			b, ok := buckets[s.CategoryID]
			if !ok {
				b = &bucket{name: s.CategoryName}
				buckets[s.CategoryID] = b
				order = append(order, s.CategoryID)
			}
			b.sum += common.Clamp01(s.Confidence)
			b.sources++
			b.reasons = append(b.reasons, s.Reason)
		}
	}

	combined := make(model.Suggestions, 0, len(order))
	for _, id := range order {
		b := buckets[id]

		confidence := b.sum
		if b.sources >= 2 {
			confidence = b.sum * 0.8
			if confidence > 0.95 {
				confidence = 0.95
			}
		}

		combined = append(combined, model.CategorySuggestion{
			CategoryID:   id,
			CategoryName: b.name,
			Confidence:   common.Clamp01(confidence),
			Reason:       strings.Join(b.reasons, " + "),
		})
	}

	combined.Sort()
	return combined
}
