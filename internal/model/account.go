package model

import "time"

// AccountType describes what kind of account this is. Informational only; it
// never changes balance arithmetic.
type AccountType string

const (
	// AccountTypeChecking represents a day-to-day spending account.
	AccountTypeChecking AccountType = "checking"
	// AccountTypeSavings represents a savings account.
	AccountTypeSavings AccountType = "savings"
	// AccountTypeCash represents physical cash on hand.
	AccountTypeCash AccountType = "cash"
	// AccountTypeLightning represents a lightning wallet.
	AccountTypeLightning AccountType = "lightning"
	// AccountTypeColdStorage represents long-term cold storage.
	AccountTypeColdStorage AccountType = "cold-storage"
)

// Account is a place value physically sits. Balance is denominated in sats
// and is a cache of the transaction log; reconciliation can rebuild it.
type Account struct {
	CreatedAt  time.Time
	ID         string
	BudgetID   string
	Name       string
	Type       AccountType
	Balance    int64
	SortOrder  int
	IsOnBudget bool
	IsClosed   bool
}
