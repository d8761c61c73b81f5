package store

import (
	"context"
	"log/slog"
	"sort"

	"github.com/nostrgamer/bitcoinbudget/internal/kv"
	"github.com/nostrgamer/bitcoinbudget/internal/model"
	"github.com/nostrgamer/bitcoinbudget/internal/vault"
)

// AccountStore persists Account records.
type AccountStore struct {
	s    kv.Store
	sess *vault.Session
}

func accountIndexes(acct *model.Account) map[string]string {
	return map[string]string{IndexBudgetID: acct.BudgetID}
}

// Create inserts a new account.
func (as *AccountStore) Create(ctx context.Context, acct *model.Account) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateAccount(acct); err != nil {
		return err
	}
	rec, err := seal(as.sess, acct.ID, acct, accountIndexes(acct))
	if err != nil {
		return err
	}
	if err := as.s.Add(ctx, StoreAccounts, rec); err != nil {
		return err
	}
	slog.Debug("created account", "id", acct.ID)
	return nil
}

// Get returns the account with the given id.
func (as *AccountStore) Get(ctx context.Context, id string) (*model.Account, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	rec, err := as.s.Get(ctx, StoreAccounts, id)
	if err != nil {
		return nil, err
	}
	var acct model.Account
	if err := open(as.sess, rec, &acct); err != nil {
		return nil, err
	}
	return &acct, nil
}

// List returns all accounts in sort order.
func (as *AccountStore) List(ctx context.Context) ([]model.Account, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	recs, err := as.s.GetAll(ctx, StoreAccounts)
	if err != nil {
		return nil, err
	}
	return as.openAll(recs)
}

// ListByBudget returns the accounts belonging to a budget.
func (as *AccountStore) ListByBudget(ctx context.Context, budgetID string) ([]model.Account, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(budgetID, "budgetID"); err != nil {
		return nil, err
	}
	recs, err := as.s.GetByIndex(ctx, StoreAccounts, IndexBudgetID, budgetID)
	if err != nil {
		return nil, err
	}
	return as.openAll(recs)
}

func (as *AccountStore) openAll(recs []kv.Record) ([]model.Account, error) {
	accts := make([]model.Account, 0, len(recs))
	for i := range recs {
		var acct model.Account
		if err := open(as.sess, &recs[i], &acct); err != nil {
			return nil, err
		}
		accts = append(accts, acct)
	}
	sort.Slice(accts, func(i, j int) bool {
		if accts[i].SortOrder != accts[j].SortOrder {
			return accts[i].SortOrder < accts[j].SortOrder
		}
		return accts[i].Name < accts[j].Name
	})
	return accts, nil
}

// Put upserts an account.
func (as *AccountStore) Put(ctx context.Context, acct *model.Account) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateAccount(acct); err != nil {
		return err
	}
	rec, err := seal(as.sess, acct.ID, acct, accountIndexes(acct))
	if err != nil {
		return err
	}
	return as.s.Put(ctx, StoreAccounts, rec)
}
