package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/OsamaNuserat/expense-tracker-sub000/internal/model"
)

// validateContext ensures a context is usable before hitting the database.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return fmt.Errorf("context cannot be nil")
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	return nil
}

// validateString ensures a required string parameter is non-empty.
func validateString(value, name string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s cannot be empty", name)
	}
	return nil
}

// validateUserID ensures a user id is positive.
func validateUserID(userID int64) error {
	if userID <= 0 {
		return fmt.Errorf("userID must be positive, got %d", userID)
	}
	return nil
}

// validateAmount ensures a transaction amount is positive.
func validateAmount(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive, got %f", amount)
	}
	return nil
}

// validateTransaction ensures a parsed transaction is complete enough to
// persist.
func validateTransaction(txn *model.ParsedTransaction) error {
	if txn == nil {
		return fmt.Errorf("transaction cannot be nil")
	}
	if err := validateAmount(txn.Amount); err != nil {
		return err
	}
	if txn.Timestamp.IsZero() {
		return fmt.Errorf("transaction timestamp cannot be zero")
	}
	return nil
}
