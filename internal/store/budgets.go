package store

import (
	"context"

	"github.com/nostrgamer/bitcoinbudget/internal/kv"
	"github.com/nostrgamer/bitcoinbudget/internal/model"
	"github.com/nostrgamer/bitcoinbudget/internal/vault"
)

// BudgetStore persists Budget records.
type BudgetStore struct {
	s    kv.Store
	sess *vault.Session
}

// Create inserts a new budget.
func (bs *BudgetStore) Create(ctx context.Context, budget *model.Budget) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if budget == nil || budget.ID == "" {
		return ErrNilParameter
	}
	rec, err := seal(bs.sess, budget.ID, budget, nil)
	if err != nil {
		return err
	}
	return bs.s.Add(ctx, StoreBudgets, rec)
}

// Get returns the budget with the given id.
func (bs *BudgetStore) Get(ctx context.Context, id string) (*model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	rec, err := bs.s.Get(ctx, StoreBudgets, id)
	if err != nil {
		return nil, err
	}
	var budget model.Budget
	if err := open(bs.sess, rec, &budget); err != nil {
		return nil, err
	}
	return &budget, nil
}

// List returns all budgets.
func (bs *BudgetStore) List(ctx context.Context) ([]model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	recs, err := bs.s.GetAll(ctx, StoreBudgets)
	if err != nil {
		return nil, err
	}
	budgets := make([]model.Budget, 0, len(recs))
	for i := range recs {
		var budget model.Budget
		if err := open(bs.sess, &recs[i], &budget); err != nil {
			return nil, err
		}
		budgets = append(budgets, budget)
	}
	return budgets, nil
}
