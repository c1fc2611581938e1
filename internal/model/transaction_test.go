package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMessageTypeFor(t *testing.T) {
	tests := []struct {
		name     string
		source   MessageSource
		txType   TransactionType
		expected MessageType
	}{
		{name: "cliq income", source: SourceCliq, txType: TypeIncome, expected: MessageCliqIncoming},
		{name: "cliq expense", source: SourceCliq, txType: TypeExpense, expected: MessageCliqOutgoing},
		{name: "cliq unknown", source: SourceCliq, txType: TypeUnknown, expected: MessageCliqUnknown},
		{name: "bank income", source: SourceSMS, txType: TypeIncome, expected: MessageBankCredit},
		{name: "bank expense", source: SourceSMS, txType: TypeExpense, expected: MessageBankDebit},
		{name: "bank unknown", source: SourceSMS, txType: TypeUnknown, expected: MessageBankUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MessageTypeFor(tt.source, tt.txType))

			txn := &ParsedTransaction{Source: tt.source, Type: tt.txType}
			assert.Equal(t, tt.expected, txn.MessageType())
		})
	}
}

func TestGenerateHash(t *testing.T) {
	base := ParsedTransaction{
		Timestamp: time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC),
		Merchant:  "carrefour",
		Source:    SourceSMS,
		Amount:    42.5,
	}

	t.Run("stable for identical transactions", func(t *testing.T) {
		a, b := base, base
		assert.Equal(t, a.GenerateHash(), b.GenerateHash())
	})

	t.Run("differs on amount", func(t *testing.T) {
		other := base
		other.Amount = 43
		assert.NotEqual(t, base.GenerateHash(), other.GenerateHash())
	})

	t.Run("differs on merchant", func(t *testing.T) {
		other := base
		other.Merchant = "safeway"
		assert.NotEqual(t, base.GenerateHash(), other.GenerateHash())
	})

	t.Run("ignores sub-minute timestamp jitter", func(t *testing.T) {
		other := base
		other.Timestamp = base.Timestamp.Add(20 * time.Second)
		assert.Equal(t, base.GenerateHash(), other.GenerateHash())
	})
}

func TestCategoryMatchesType(t *testing.T) {
	income := Category{Type: CategoryTypeIncome}
	expense := Category{Type: CategoryTypeExpense}

	assert.True(t, income.MatchesType(TypeIncome))
	assert.False(t, income.MatchesType(TypeExpense))
	assert.True(t, expense.MatchesType(TypeExpense))
	assert.False(t, expense.MatchesType(TypeIncome))

	// Unknown direction matches everything.
	assert.True(t, income.MatchesType(TypeUnknown))
	assert.True(t, expense.MatchesType(TypeUnknown))
}

func TestAmountRangeContains(t *testing.T) {
	r := AmountRange{Min: 45, Max: 55, Frequency: 0.5}

	assert.True(t, r.Contains(45))
	assert.True(t, r.Contains(50))
	assert.True(t, r.Contains(55))
	assert.False(t, r.Contains(44.99))
	assert.False(t, r.Contains(55.01))
}
