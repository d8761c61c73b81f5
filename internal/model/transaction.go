package model

import (
	"slices"
	"time"
)

// TransactionType tags a transaction as income, expense, or a transfer leg.
type TransactionType string

const (
	// TypeIncome represents money flowing in.
	TypeIncome TransactionType = "income"
	// TypeExpense represents money flowing out.
	TypeExpense TransactionType = "expense"
	// TypeTransfer represents a leg of a category or account transfer.
	TypeTransfer TransactionType = "transfer"
)

// Well-known tags. Transactions carrying either tag are excluded from normal
// income/expense aggregation.
const (
	// TagTransfer marks the synthesized leg of a category transfer touching
	// the unassigned pool.
	TagTransfer = "transfer"
	// TagAccountTransfer marks both legs of an account-to-account transfer.
	TagAccountTransfer = "account-transfer"
)

// Transaction is a single ledger event, amount in sats. Positive amounts are
// inflows, negative outflows. An empty CategoryID means the transaction sits
// in the unassigned pool. The amount must always equal the balance effect
// applied to the referenced category and account; the effects engine owns
// that invariant.
type Transaction struct {
	Date          time.Time
	CreatedAt     time.Time
	ID            string
	AccountID     string // empty only on synthesized category-transfer legs
	CategoryID    string // empty = unassigned pool
	Description   string
	Type          TransactionType
	CorrelationID string // links transfer legs to their Transfer record
	Tags          []string
	Amount        int64
}

// HasTag reports whether the transaction carries the given tag.
func (t *Transaction) HasTag(tag string) bool {
	return slices.Contains(t.Tags, tag)
}

// IsTransferLeg reports whether the transaction is a leg of any transfer and
// so must be excluded from income/expense aggregation.
func (t *Transaction) IsTransferLeg() bool {
	return t.HasTag(TagTransfer) || t.HasTag(TagAccountTransfer)
}
