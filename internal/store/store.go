// Package store provides encrypted CRUD over the kv persistence primitive
// for every entity. Each record is independently encrypted via the vault
// session; index columns carry plaintext ids only, never amounts or names.
// Stores hold no balance logic; that belongs to the ledger.
package store

import (
	"github.com/nostrgamer/bitcoinbudget/internal/kv"
	"github.com/nostrgamer/bitcoinbudget/internal/vault"
)

// Object store names.
const (
	StoreBudgets      = "budgets"
	StoreAccounts     = "accounts"
	StoreCategories   = "categories"
	StoreTransactions = "transactions"
	StoreTransfers    = "transfers"
	StoreMeta         = "meta"
)

// Index names.
const (
	IndexBudgetID       = "budgetId"
	IndexAccountID      = "accountId"
	IndexCategoryID     = "categoryId"
	IndexFromCategoryID = "fromCategoryId"
	IndexToCategoryID   = "toCategoryId"
	IndexCorrelationID  = "correlationId"
)

// Stores bundles the entity stores bound to a single kv.Store and session.
// Inside a kv batch, construct a fresh Stores over the batch so all writes
// share its commit scope.
type Stores struct {
	Budgets      *BudgetStore
	Accounts     *AccountStore
	Categories   *CategoryStore
	Transactions *TransactionStore
	Transfers    *TransferStore
}

// New binds entity stores to a kv store and an open vault session.
func New(s kv.Store, sess *vault.Session) *Stores {
	return &Stores{
		Budgets:      &BudgetStore{s: s, sess: sess},
		Accounts:     &AccountStore{s: s, sess: sess},
		Categories:   &CategoryStore{s: s, sess: sess},
		Transactions: &TransactionStore{s: s, sess: sess},
		Transfers:    &TransferStore{s: s, sess: sess},
	}
}
