// Package engine orchestrates categorization: it fans the signal generators
// out over a parsed transaction, merges their candidates, applies the
// decision policy, and feeds user decisions back into the pattern stores.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/OsamaNuserat/expense-tracker-sub000/internal/model"
	"github.com/OsamaNuserat/expense-tracker-sub000/internal/parser"
	"github.com/OsamaNuserat/expense-tracker-sub000/internal/service"
	"github.com/OsamaNuserat/expense-tracker-sub000/internal/signal"
)

// Action is the decision the surrounding message-intake flow must take.
type Action string

const (
	// ActionAutoCategorize means the ledger entry is written without asking.
	ActionAutoCategorize Action = "auto_categorize"
	// ActionConfirm means the user must confirm; CliQ transactions always
	// land here regardless of confidence.
	ActionConfirm Action = "confirm"
	// ActionPrompt means the user is asked, pre-filled when a best guess
	// exists.
	ActionPrompt Action = "prompt"
)

// Thresholds of the decision policy.
const (
	autoCategorizeThreshold = 0.8
	recommendThreshold      = 0.5
	maxSuggestions          = 5
)

// Result is the outcome of scoring one transaction. CategoryID and
// CategoryName are set only when the top candidate clears the
// recommendation threshold; Suggestions always carries the ranked list.
type Result struct {
	CategoryID   *int64
	CategoryName *string
	Reason       string
	Suggestions  model.Suggestions
	Action       Action
	Confidence   float64
}

// CategorizationEngine wires the parser, signal generators, pattern stores
// and ledger writer into one service value. Construct with New; there is no
// process-wide singleton.
type CategorizationEngine struct {
	store      service.Storage
	ledger     service.LedgerWriter
	parser     *parser.Parser
	generators []signal.Generator
}

// New creates an engine with the standard six generators.
func New(store service.Storage, ledger service.LedgerWriter, p *parser.Parser) *CategorizationEngine {
	return &CategorizationEngine{
		store:  store,
		ledger: ledger,
		parser: p,
		generators: []signal.Generator{
			signal.NewMerchantGenerator(store),
			signal.NewCliqGenerator(store),
			signal.NewAmountRangeGenerator(store),
			signal.NewKeywordGenerator(),
			signal.NewZScoreGenerator(store),
			signal.NewTimeGenerator(),
		},
	}
}

// NewWithGenerators creates an engine with a custom generator set. Used by
// tests and by callers that register additional heuristics.
func NewWithGenerators(store service.Storage, ledger service.LedgerWriter, p *parser.Parser, generators []signal.Generator) *CategorizationEngine {
	return &CategorizationEngine{
		store:      store,
		ledger:     ledger,
		parser:     p,
		generators: generators,
	}
}

// Categorize scores a parsed transaction against the user's learned
// patterns. It never fails on "no confident match": an empty result carries
// confidence 0 and an explanatory reason.
func (e *CategorizationEngine) Categorize(ctx context.Context, userID int64, txn *model.ParsedTransaction) (*Result, error) {
	categories, err := e.store.GetCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	features := signal.Features{
		Text:        strings.ToLower(txn.OriginalMessage),
		Merchant:    txn.Merchant,
		Amount:      txn.Amount,
		Type:        txn.Type,
		Source:      txn.Source,
		MessageType: txn.MessageType(),
		Categories:  filterByDirection(categories, txn.Type),
	}

	perGenerator := e.fanOut(ctx, userID, features)
	combined := Combine(perGenerator)

	result := &Result{
		Suggestions: combined.TopN(maxSuggestions),
		Reason:      "Insufficient data for categorization",
	}

	if top := result.Suggestions.Top(); top != nil {
		if top.Confidence > recommendThreshold {
			result.CategoryID = &top.CategoryID
			result.CategoryName = &top.CategoryName
			result.Confidence = top.Confidence
			result.Reason = top.Reason
		} else {
			result.Reason = "No strong pattern found"
		}
	}

	result.Action = decide(txn, result)

	slog.Debug("Scored transaction",
		"user_id", userID,
		"merchant", txn.Merchant,
		"amount", txn.Amount,
		"message_type", txn.MessageType(),
		"confidence", result.Confidence,
		"action", result.Action)

	return result, nil
}

// fanOut runs every generator concurrently and collects per-generator
// suggestion lists. A failing generator is logged and contributes nothing;
// it never fails the request.
func (e *CategorizationEngine) fanOut(ctx context.Context, userID int64, f signal.Features) []model.Suggestions {
	results := make([]model.Suggestions, len(e.generators))

	g, ctx := errgroup.WithContext(ctx)
	for i, gen := range e.generators {
		i, gen := i, gen
		g.Go(func() error {
			suggestions, err := gen.Suggest(ctx, userID, f)
			if err != nil {
				slog.Error("Signal generator failed",
					"generator", gen.Name(),
					"user_id", userID,
					"error", err)
				return nil
			}
			results[i] = suggestions
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// filterByDirection drops categories that cannot hold a transaction of the
// given direction, so an income message is never suggested an expense
// category. Unknown-direction transactions keep the full list.
func filterByDirection(categories []model.Category, txType model.TransactionType) []model.Category {
	filtered := make([]model.Category, 0, len(categories))
	for i := range categories {
		if categories[i].MatchesType(txType) {
			filtered = append(filtered, categories[i])
		}
	}
	return filtered
}

// decide applies the decision policy. CliQ transactions are never
// auto-categorized: sender names on CliQ are not stable merchant identities.
func decide(txn *model.ParsedTransaction, result *Result) Action {
	if txn.Source == model.SourceCliq {
		return ActionConfirm
	}
	if result.CategoryID != nil && result.Confidence > autoCategorizeThreshold {
		return ActionAutoCategorize
	}
	return ActionPrompt
}
