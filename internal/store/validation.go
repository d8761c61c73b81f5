package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nostrgamer/bitcoinbudget/internal/model"
)

// Validation errors.
var (
	ErrNilContext         = errors.New("context cannot be nil")
	ErrEmptyString        = errors.New("string parameter cannot be empty")
	ErrNilParameter       = errors.New("parameter cannot be nil")
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrInvalidTransfer    = errors.New("invalid transfer")
	ErrInvalidAccount     = errors.New("invalid account")
	ErrInvalidCategory    = errors.New("invalid category")
)

func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

func validateString(s, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateTransaction(txn *model.Transaction) error {
	if txn == nil {
		return fmt.Errorf("%w: transaction", ErrNilParameter)
	}
	if txn.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidTransaction)
	}
	if txn.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidTransaction)
	}
	// Synthesized category-transfer legs are the only transactions without
	// an account.
	if txn.AccountID == "" && !txn.HasTag(model.TagTransfer) {
		return fmt.Errorf("%w: missing account ID", ErrInvalidTransaction)
	}
	switch txn.Type {
	case model.TypeIncome, model.TypeExpense, model.TypeTransfer:
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidTransaction, txn.Type)
	}
	return nil
}

func validateTransfer(tr *model.Transfer) error {
	if tr == nil {
		return fmt.Errorf("%w: transfer", ErrNilParameter)
	}
	if tr.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidTransfer)
	}
	if tr.FromCategoryID == "" || tr.ToCategoryID == "" {
		return fmt.Errorf("%w: missing category id", ErrInvalidTransfer)
	}
	return nil
}

func validateAccount(acct *model.Account) error {
	if acct == nil {
		return fmt.Errorf("%w: account", ErrNilParameter)
	}
	if acct.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidAccount)
	}
	if acct.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidAccount)
	}
	return nil
}

func validateCategory(cat *model.Category) error {
	if cat == nil {
		return fmt.Errorf("%w: category", ErrNilParameter)
	}
	if cat.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidCategory)
	}
	if cat.ID == model.UnassignedCategoryID {
		return fmt.Errorf("%w: %q is reserved for the unassigned pool", ErrInvalidCategory, cat.ID)
	}
	if cat.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidCategory)
	}
	if cat.TargetAmount < 0 {
		return fmt.Errorf("%w: negative target amount", ErrInvalidCategory)
	}
	return nil
}
