// Package model defines the core domain records used throughout the application.
package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// TransactionType indicates the direction of money movement in a message.
type TransactionType string

const (
	// TypeIncome represents money arriving in the account.
	TypeIncome TransactionType = "income"
	// TypeExpense represents money leaving the account.
	TypeExpense TransactionType = "expense"
	// TypeUnknown is used when the message gives no directional cue.
	TypeUnknown TransactionType = "unknown"
)

// MessageSource indicates which channel produced a message.
type MessageSource string

const (
	// SourceCliq marks messages from the CliQ instant transfer network.
	SourceCliq MessageSource = "cliq"
	// SourceSMS marks plain bank notification messages.
	SourceSMS MessageSource = "sms"
)

// MessageType is the coarse key combining source and direction, used to
// partition learned patterns (e.g. cliq_incoming, bank_debit).
type MessageType string

// Message type constants.
const (
	MessageCliqIncoming MessageType = "cliq_incoming"
	MessageCliqOutgoing MessageType = "cliq_outgoing"
	MessageCliqUnknown  MessageType = "cliq_unknown"
	MessageBankCredit   MessageType = "bank_credit"
	MessageBankDebit    MessageType = "bank_debit"
	MessageBankUnknown  MessageType = "bank_unknown"
)

// MessageTypeFor derives the pattern partition key from source and direction.
func MessageTypeFor(source MessageSource, txType TransactionType) MessageType {
	if source == SourceCliq {
		switch txType {
		case TypeIncome:
			return MessageCliqIncoming
		case TypeExpense:
			return MessageCliqOutgoing
		default:
			return MessageCliqUnknown
		}
	}
	switch txType {
	case TypeIncome:
		return MessageBankCredit
	case TypeExpense:
		return MessageBankDebit
	default:
		return MessageBankUnknown
	}
}

// ParsedTransaction is the structured record extracted from one SMS message.
// It is immutable once produced by the parser.
type ParsedTransaction struct {
	Timestamp       time.Time
	OriginalMessage string
	Merchant        string // normalized counterparty name, empty when none found
	Category        string // static category hint from the parser
	Type            TransactionType
	Source          MessageSource
	Amount          float64
}

// MessageType returns the pattern partition key for this transaction.
func (t *ParsedTransaction) MessageType() MessageType {
	return MessageTypeFor(t.Source, t.Type)
}

// GenerateHash creates a stable hash for duplicate detection of the same
// message arriving twice.
func (t *ParsedTransaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%.2f:%s:%s",
		t.Timestamp.Format("2006-01-02T15:04"),
		t.Amount,
		t.Merchant,
		t.Source)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
