// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/OsamaNuserat/expense-tracker-sub000/internal/model"
)

// CategoryStore provides read access to a user's categories. Category CRUD
// itself lives outside this core.
type CategoryStore interface {
	GetCategories(ctx context.Context, userID int64) ([]model.Category, error)
	GetCategoryByID(ctx context.Context, userID, id int64) (*model.Category, error)
}

// PatternStore is the persistence contract for the learned-pattern records
// the signal generators read and the learning loop writes.
type PatternStore interface {
	// Merchant learnings
	GetMerchantLearnings(ctx context.Context, userID int64, merchant string, messageType model.MessageType) ([]model.MerchantLearning, error)
	UpsertMerchantLearning(ctx context.Context, userID int64, merchant string, categoryID int64, messageType model.MessageType, amount float64) error

	// Category amount-range patterns. RecordCategoryAmount folds one more
	// amount into a category's bands atomically; concurrent learns must
	// not lose band updates.
	GetCategoryPatterns(ctx context.Context, userID int64, messageType model.MessageType) ([]model.CategoryPattern, error)
	RecordCategoryAmount(ctx context.Context, userID, categoryID int64, messageType model.MessageType, amount float64) error

	// CliQ sender patterns
	GetCliqPattern(ctx context.Context, userID int64, sender string, txType model.TransactionType) (*model.CliqPattern, error)
	UpsertCliqPattern(ctx context.Context, userID int64, sender string, txType model.TransactionType, categoryID int64, amount float64, businessLike bool) error

	// Decision history
	AppendHistory(ctx context.Context, row *model.CategorizationHistory) error
	GetCategoryAmountStats(ctx context.Context, userID int64) ([]model.CategoryAmountStats, error)
}

// Storage is the full persistence contract implemented by the SQLite layer.
type Storage interface {
	CategoryStore
	PatternStore

	Migrate(ctx context.Context) error
	Close() error
}

// LedgerWriter records a finalized transaction under a category. The real
// ledger (bills, budgets, reporting) is an external collaborator; this core
// only hands off the decided record.
type LedgerWriter interface {
	CreateEntry(ctx context.Context, userID int64, txn *model.ParsedTransaction, categoryID int64, confidence float64) error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
