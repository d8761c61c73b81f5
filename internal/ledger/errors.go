package ledger

import (
	"errors"

	"github.com/nostrgamer/bitcoinbudget/internal/kv"
)

// Ledger errors. Preconditions are checked before any mutation, so these
// surface with no partial effects applied.
var (
	// ErrNotFound indicates a referenced budget, account, category,
	// transaction, or transfer id is absent.
	ErrNotFound = kv.ErrNotFound
	// ErrInsufficientFunds indicates an account transfer exceeding the
	// source account's balance. Accounts, unlike categories, may not go
	// negative through transfers.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrInvalidAmount indicates a non-positive transfer amount.
	ErrInvalidAmount = errors.New("transfer amount must be positive")
	// ErrSameTarget indicates a transfer whose source and destination are
	// the same category or account.
	ErrSameTarget = errors.New("transfer source and destination are the same")
)
