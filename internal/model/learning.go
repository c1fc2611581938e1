package model

import "time"

// MerchantLearning tracks how often a user filed a merchant under a
// category. One row per (user, merchant, category, message type); rows are
// updated on every decision and never deleted.
type MerchantLearning struct {
	LastUsed      time.Time
	Merchant      string // always the normalized form
	MessageType   MessageType
	UserID        int64
	CategoryID    int64
	UseCount      int
	Confidence    float64
	AverageAmount float64
}

// AmountRange is one learned amount band for a category. Frequency grows as
// more transactions land inside the band.
type AmountRange struct {
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Frequency float64 `json:"frequency"`
}

// Contains reports whether amount falls inside the range.
func (r AmountRange) Contains(amount float64) bool {
	return amount >= r.Min && amount <= r.Max
}

// CategoryPattern holds the learned amount bands for one
// (user, category, message type) combination.
type CategoryPattern struct {
	LastUpdated      time.Time
	MessageType      MessageType
	Ranges           []AmountRange
	UserID           int64
	CategoryID       int64
	TransactionCount int
}

// CliqPattern tracks a user's history with one CliQ counterparty. Senders on
// CliQ are free-text names, so these patterns only ever pre-fill a prompt;
// they never auto-categorize.
type CliqPattern struct {
	LastSeen        time.Time
	Sender          string // always the normalized form
	TransactionType TransactionType
	UserID          int64
	CategoryID      int64
	UseCount        int
	AverageAmount   float64
	AmountVariance  float64
	Confidence      float64
	IsRecurring     bool
	IsBusinessLike  bool
}

// CategorizationHistory is one row of the append-only decision log.
type CategorizationHistory struct {
	CreatedAt   time.Time
	Merchant    string
	MessageType MessageType
	UserID      int64
	CategoryID  int64
	Amount      float64
	Confidence  float64
	WasCorrect  bool
}

// CategoryAmountStats summarizes a category's historical amounts for the
// z-score signal generator.
type CategoryAmountStats struct {
	CategoryID int64
	Count      int
	Mean       float64
	StdDev     float64
}
