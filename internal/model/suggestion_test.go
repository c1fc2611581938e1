package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestionValidate(t *testing.T) {
	valid := CategorySuggestion{CategoryID: 1, CategoryName: "Groceries", Confidence: 0.8}
	assert.NoError(t, valid.Validate())

	noID := CategorySuggestion{Confidence: 0.8}
	assert.Error(t, noID.Validate())

	outOfRange := CategorySuggestion{CategoryID: 1, Confidence: 1.2}
	assert.Error(t, outOfRange.Validate())
}

func TestSuggestionsRanking(t *testing.T) {
	s := Suggestions{
		{CategoryID: 1, CategoryName: "Groceries", Confidence: 0.4},
		{CategoryID: 2, CategoryName: "Dining", Confidence: 0.9},
		{CategoryID: 3, CategoryName: "Transport", Confidence: 0.6},
	}

	t.Run("top returns highest confidence", func(t *testing.T) {
		top := s.Top()
		require.NotNil(t, top)
		assert.Equal(t, int64(2), top.CategoryID)
	})

	t.Run("top of empty is nil", func(t *testing.T) {
		assert.Nil(t, Suggestions{}.Top())
	})

	t.Run("topN truncates after sorting", func(t *testing.T) {
		top2 := s.TopN(2)
		require.Len(t, top2, 2)
		assert.Equal(t, "Dining", top2[0].CategoryName)
		assert.Equal(t, "Transport", top2[1].CategoryName)
	})

	t.Run("topN beyond length returns all", func(t *testing.T) {
		assert.Len(t, s.TopN(10), 3)
	})

	t.Run("equal confidence sorts by name", func(t *testing.T) {
		tied := Suggestions{
			{CategoryID: 1, CategoryName: "Transport", Confidence: 0.5},
			{CategoryID: 2, CategoryName: "Dining", Confidence: 0.5},
		}
		tied.Sort()
		assert.Equal(t, "Dining", tied[0].CategoryName)
	})
}
