// Package ledger owns every category and account balance mutation. Entity
// stores never adjust balances themselves; all callers go through the one
// Service here, which keeps the two partitions (envelopes and accounts)
// consistent with the transaction and transfer logs. Stored balances are
// caches of those logs; reconciliation rebuilds them from scratch.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nostrgamer/bitcoinbudget/internal/kv"
	"github.com/nostrgamer/bitcoinbudget/internal/model"
	"github.com/nostrgamer/bitcoinbudget/internal/service"
	"github.com/nostrgamer/bitcoinbudget/internal/store"
	"github.com/nostrgamer/bitcoinbudget/internal/vault"
)

// Service is the outbound API of the ledger core. One Service instance
// serves one open vault session; at most one mutation should be in flight
// at a time.
type Service struct {
	db   *kv.DB
	sess *vault.Session
	now  func() time.Time
}

var _ service.Ledger = (*Service)(nil)

// New creates a Service over an open database and vault session.
func New(db *kv.DB, sess *vault.Session) *Service {
	return &Service{db: db, sess: sess, now: time.Now}
}

// reads returns stores bound to the auto-commit connection, for read paths.
func (s *Service) reads() *store.Stores {
	return store.New(s.db, s.sess)
}

// mutate runs fn against stores whose writes commit or roll back as one
// unit. Every logical ledger operation that writes more than one record
// goes through here.
func (s *Service) mutate(ctx context.Context, fn func(st *store.Stores) error) error {
	return s.db.RunBatch(ctx, func(b kv.Store) error {
		return fn(store.New(b, s.sess))
	})
}

// --- Budgets ---

// CreateBudget creates a budget.
func (s *Service) CreateBudget(ctx context.Context, name string) (*model.Budget, error) {
	budget := &model.Budget{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: s.now(),
	}
	if err := s.reads().Budgets.Create(ctx, budget); err != nil {
		return nil, err
	}
	return budget, nil
}

// Budgets lists all budgets.
func (s *Service) Budgets(ctx context.Context) ([]model.Budget, error) {
	return s.reads().Budgets.List(ctx)
}

// --- Categories ---

// CreateCategory creates an envelope with a zero current amount.
func (s *Service) CreateCategory(ctx context.Context, name string, targetAmount int64) (*model.Category, error) {
	cat := &model.Category{
		ID:           uuid.NewString(),
		Name:         name,
		TargetAmount: targetAmount,
		CreatedAt:    s.now(),
	}
	if err := s.reads().Categories.Create(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// GetCategory returns a category by id.
func (s *Service) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	return s.reads().Categories.Get(ctx, id)
}

// Categories lists all categories.
func (s *Service) Categories(ctx context.Context) ([]model.Category, error) {
	return s.reads().Categories.List(ctx)
}

// UpdateCategory edits a category's metadata. CurrentAmount is owned by the
// effects engine and cannot be set through this path.
func (s *Service) UpdateCategory(ctx context.Context, id, name string, targetAmount int64, archived bool) (*model.Category, error) {
	var updated *model.Category
	err := s.mutate(ctx, func(st *store.Stores) error {
		cat, err := st.Categories.Get(ctx, id)
		if err != nil {
			return err
		}
		cat.Name = name
		cat.TargetAmount = targetAmount
		cat.IsArchived = archived
		if err := st.Categories.Put(ctx, cat); err != nil {
			return err
		}
		updated = cat
		return nil
	})
	return updated, err
}

// ArchiveCategory soft-deletes a category; the normal removal path.
func (s *Service) ArchiveCategory(ctx context.Context, id string) error {
	return s.mutate(ctx, func(st *store.Stores) error {
		cat, err := st.Categories.Get(ctx, id)
		if err != nil {
			return err
		}
		cat.IsArchived = true
		return st.Categories.Put(ctx, cat)
	})
}

// DeleteCategory hard-deletes a category. Transactions and transfers
// referencing it are left alone; their dangling references fall into the
// unassigned arithmetic on the next reconciliation.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	return s.reads().Categories.Delete(ctx, id)
}

// --- Accounts ---

// CreateAccount creates an account. A non-zero opening balance is recorded
// as an ordinary unassigned inflow transaction so reconciliation can rebuild
// the balance from the log alone.
func (s *Service) CreateAccount(ctx context.Context, budgetID, name string, accountType model.AccountType, openingBalance int64, onBudget bool) (*model.Account, error) {
	acct := &model.Account{
		ID:         uuid.NewString(),
		BudgetID:   budgetID,
		Name:       name,
		Type:       accountType,
		IsOnBudget: onBudget,
		CreatedAt:  s.now(),
	}
	err := s.mutate(ctx, func(st *store.Stores) error {
		if _, err := st.Budgets.Get(ctx, budgetID); err != nil {
			return fmt.Errorf("budget %s: %w", budgetID, err)
		}
		if err := st.Accounts.Create(ctx, acct); err != nil {
			return err
		}
		if openingBalance == 0 {
			return nil
		}
		// The pool sentinel keeps opening funds out of the uncategorized
		// term of the unassigned derivation; the account balance already
		// counts them.
		opening := &model.Transaction{
			ID:          uuid.NewString(),
			AccountID:   acct.ID,
			CategoryID:  model.UnassignedCategoryID,
			Amount:      openingBalance,
			Description: "Opening balance",
			Date:        s.now(),
			CreatedAt:   s.now(),
			Type:        transactionTypeForAmount(openingBalance),
		}
		if err := s.applyCreateEffects(ctx, st, opening); err != nil {
			return err
		}
		return st.Transactions.Create(ctx, opening)
	})
	if err != nil {
		return nil, err
	}
	return s.reads().Accounts.Get(ctx, acct.ID)
}

// GetAccount returns an account by id.
func (s *Service) GetAccount(ctx context.Context, id string) (*model.Account, error) {
	return s.reads().Accounts.Get(ctx, id)
}

// Accounts lists all accounts.
func (s *Service) Accounts(ctx context.Context) ([]model.Account, error) {
	return s.reads().Accounts.List(ctx)
}

// UpdateAccount edits account metadata. Balance is owned by the effects
// engine and cannot be set through this path.
func (s *Service) UpdateAccount(ctx context.Context, id, name string, accountType model.AccountType, onBudget, closed bool, sortOrder int) (*model.Account, error) {
	var updated *model.Account
	err := s.mutate(ctx, func(st *store.Stores) error {
		acct, err := st.Accounts.Get(ctx, id)
		if err != nil {
			return err
		}
		acct.Name = name
		acct.Type = accountType
		acct.IsOnBudget = onBudget
		acct.IsClosed = closed
		acct.SortOrder = sortOrder
		if err := st.Accounts.Put(ctx, acct); err != nil {
			return err
		}
		updated = acct
		return nil
	})
	return updated, err
}

func transactionTypeForAmount(amount int64) model.TransactionType {
	if amount < 0 {
		return model.TypeExpense
	}
	return model.TypeIncome
}
