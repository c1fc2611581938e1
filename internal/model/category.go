package model

import "time"

// CategoryType indicates whether a category is for income or expense use.
type CategoryType string

const (
	// CategoryTypeIncome represents categories for income transactions.
	CategoryTypeIncome CategoryType = "income"
	// CategoryTypeExpense represents categories for expense transactions.
	CategoryTypeExpense CategoryType = "expense"
)

// Category represents one of a user's spending or income categories.
// Keywords are user-maintained match terms consumed by the keyword signal
// generator.
type Category struct {
	CreatedAt time.Time
	Name      string
	Type      CategoryType
	Keywords  []string
	ID        int64
	UserID    int64
	IsActive  bool
}

// MatchesType reports whether the category can hold a transaction of the
// given direction. Unknown-direction transactions match everything.
func (c *Category) MatchesType(t TransactionType) bool {
	switch t {
	case TypeIncome:
		return c.Type == CategoryTypeIncome
	case TypeExpense:
		return c.Type == CategoryTypeExpense
	default:
		return true
	}
}
