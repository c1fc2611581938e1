package signal

import (
	"context"
	"fmt"
	"strings"

	"github.com/OsamaNuserat/expense-tracker-sub000/internal/common"
	"github.com/OsamaNuserat/expense-tracker-sub000/internal/model"
)

// Ensure KeywordGenerator implements Generator.
var _ Generator = (*KeywordGenerator)(nil)

// KeywordGenerator scores categories whose user-maintained keyword lists
// match the message text. Needs no store access: the category list already
// travels with the features.
type KeywordGenerator struct{}

// NewKeywordGenerator creates a keyword-list generator.
func NewKeywordGenerator() *KeywordGenerator {
	return &KeywordGenerator{}
}

// Name implements Generator.
func (g *KeywordGenerator) Name() string { return "keyword_match" }

// Suggest implements Generator.
func (g *KeywordGenerator) Suggest(_ context.Context, _ int64, f Features) (model.Suggestions, error) {
	var suggestions model.Suggestions

	for i := range f.Categories {
		cat := &f.Categories[i]
		if len(cat.Keywords) == 0 {
			continue
		}

		matched := 0
		for _, kw := range cat.Keywords {
			if kw != "" && strings.Contains(f.Text, strings.ToLower(kw)) {
				matched++
			}
		}
		if matched == 0 {
			continue
		}

		confidence := float64(matched) / float64(len(cat.Keywords)) * 0.5
		if confidence > 0.7 {
			confidence = 0.7
		}

		suggestions = append(suggestions, model.CategorySuggestion{
			CategoryID:   cat.ID,
			CategoryName: cat.Name,
			Confidence:   common.Clamp01(confidence),
			Reason:       fmt.Sprintf("Matched %d of %d keywords", matched, len(cat.Keywords)),
		})
	}

	return suggestions, nil
}
