// Package service defines the contracts between the ledger core and its
// callers.
package service

import (
	"context"
	"time"

	"github.com/nostrgamer/bitcoinbudget/internal/model"
)

// Summary is the derived income/expense aggregate over the whole budget.
// All values are sats.
type Summary struct {
	TotalIncome     int64
	TotalExpenses   int64
	OnBudgetBalance int64
}

// Ledger is the outbound surface of the balance-consistency core. All
// amounts are signed sats; no monetary value ever crosses this boundary as
// floating point.
type Ledger interface {
	// Budgets
	CreateBudget(ctx context.Context, name string) (*model.Budget, error)
	Budgets(ctx context.Context) ([]model.Budget, error)

	// Categories
	CreateCategory(ctx context.Context, name string, targetAmount int64) (*model.Category, error)
	GetCategory(ctx context.Context, id string) (*model.Category, error)
	Categories(ctx context.Context) ([]model.Category, error)
	UpdateCategory(ctx context.Context, id, name string, targetAmount int64, archived bool) (*model.Category, error)
	ArchiveCategory(ctx context.Context, id string) error
	DeleteCategory(ctx context.Context, id string) error

	// Accounts
	CreateAccount(ctx context.Context, budgetID, name string, accountType model.AccountType, openingBalance int64, onBudget bool) (*model.Account, error)
	GetAccount(ctx context.Context, id string) (*model.Account, error)
	Accounts(ctx context.Context) ([]model.Account, error)
	UpdateAccount(ctx context.Context, id, name string, accountType model.AccountType, onBudget, closed bool, sortOrder int) (*model.Account, error)

	// Transactions
	CreateTransaction(ctx context.Context, txn *model.Transaction) error
	GetTransaction(ctx context.Context, id string) (*model.Transaction, error)
	Transactions(ctx context.Context) ([]model.Transaction, error)
	TransactionsByAccount(ctx context.Context, accountID string) ([]model.Transaction, error)
	TransactionsByCategory(ctx context.Context, categoryID string) ([]model.Transaction, error)
	UpdateTransaction(ctx context.Context, txn *model.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error

	// Transfers
	CreateTransfer(ctx context.Context, fromCategoryID, toCategoryID string, amount int64, description string, date time.Time) (*model.Transfer, error)
	GetTransfer(ctx context.Context, id string) (*model.Transfer, error)
	Transfers(ctx context.Context) ([]model.Transfer, error)
	DeleteTransfer(ctx context.Context, id string) error
	TransferBetweenAccounts(ctx context.Context, fromAccountID, toAccountID string, amount int64, description string, date time.Time) (string, error)

	// Reconciliation
	RecalculateCategoryBalances(ctx context.Context, progress func(done, total int)) (int, error)
	RecalculateAccountBalances(ctx context.Context, progress func(done, total int)) (int, error)

	// Derived reads
	BudgetSummary(ctx context.Context) (*Summary, error)
	UnassignedBalance(ctx context.Context) (int64, error)

	// Maintenance
	ExportData(ctx context.Context) ([]byte, error)
	ClearAllData(ctx context.Context) error
}
