// Package signal implements the independent heuristics that each score
// category candidates for a parsed transaction. Every generator reads one
// data source, is read-only, and clamps its confidences to [0, 1]; the
// engine fans them out concurrently and merges the results.
package signal

import (
	"context"

	"github.com/OsamaNuserat/expense-tracker-sub000/internal/model"
)

// Features is the read-only view of a transaction the generators score.
// Categories are loaded once per request and shared across the fan-out.
type Features struct {
	Text        string // original message, lower-cased
	Merchant    string // normalized counterparty name, may be empty
	MessageType model.MessageType
	Type        model.TransactionType
	Source      model.MessageSource
	Categories  []model.Category
	Amount      float64
}

// CategoryName resolves a category id against the request's category list.
// Returns empty when the category no longer exists.
func (f *Features) CategoryName(id int64) string {
	for i := range f.Categories {
		if f.Categories[i].ID == id {
			return f.Categories[i].Name
		}
	}
	return ""
}

// Generator produces zero or more confidence-scored category candidates
// from one data source.
type Generator interface {
	// Name identifies the generator in logs and reasons.
	Name() string
	// Suggest scores category candidates for the given features.
	Suggest(ctx context.Context, userID int64, f Features) (model.Suggestions, error)
}
