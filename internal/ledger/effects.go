package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/nostrgamer/bitcoinbudget/internal/model"
	"github.com/nostrgamer/bitcoinbudget/internal/store"
)

// The effects engine keeps three numbers in lockstep for every create,
// update, and delete: the transaction amount, the category balance delta,
// and the account balance delta.
//
// Eligibility on create/update:
//   - category effect: categoryId set, not the unassigned sentinel, and no
//     "transfer" tag (synthesized legs never move a category directly).
//   - account effect: accountId set and neither "transfer" nor
//     "account-transfer" tag (account-transfer legs have their balance
//     effect applied by the account transfer engine, not here).
//
// Delete is deliberately asymmetric on the account side: the reversal
// applies whenever accountId is set, including account-transfer legs, since
// their effect was applied at creation time through the transfer engine.

func categoryEffectApplies(txn *model.Transaction) bool {
	return txn.CategoryID != "" &&
		txn.CategoryID != model.UnassignedCategoryID &&
		!txn.HasTag(model.TagTransfer)
}

func accountEffectApplies(txn *model.Transaction) bool {
	return txn.AccountID != "" &&
		!txn.HasTag(model.TagTransfer) &&
		!txn.HasTag(model.TagAccountTransfer)
}

// adjustCategory adds delta to a category's current amount. Categories may
// go negative. Loading the category also serves as the existence
// precondition; a missing id fails before the batch commits anything.
func (s *Service) adjustCategory(ctx context.Context, st *store.Stores, categoryID string, delta int64) error {
	cat, err := st.Categories.Get(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("category %s: %w", categoryID, err)
	}
	cat.CurrentAmount += delta
	return st.Categories.Put(ctx, cat)
}

// adjustAccount adds delta to an account's balance.
func (s *Service) adjustAccount(ctx context.Context, st *store.Stores, accountID string, delta int64) error {
	acct, err := st.Accounts.Get(ctx, accountID)
	if err != nil {
		return fmt.Errorf("account %s: %w", accountID, err)
	}
	acct.Balance += delta
	return st.Accounts.Put(ctx, acct)
}

// applyCreateEffects applies the balance effect of a new transaction.
// Category adjustment is persisted before account adjustment.
func (s *Service) applyCreateEffects(ctx context.Context, st *store.Stores, txn *model.Transaction) error {
	if categoryEffectApplies(txn) {
		if err := s.adjustCategory(ctx, st, txn.CategoryID, txn.Amount); err != nil {
			return err
		}
	}
	if accountEffectApplies(txn) {
		if err := s.adjustAccount(ctx, st, txn.AccountID, txn.Amount); err != nil {
			return err
		}
	}
	return nil
}

// applyUpdateEffects reverses and reapplies effects for a changed
// transaction. The category and account sides are evaluated independently:
// a transaction can change category without changing account and vice versa.
func (s *Service) applyUpdateEffects(ctx context.Context, st *store.Stores, old, updated *model.Transaction) error {
	if old.CategoryID != updated.CategoryID || old.Amount != updated.Amount {
		if categoryEffectApplies(old) {
			if err := s.adjustCategory(ctx, st, old.CategoryID, -old.Amount); err != nil {
				return err
			}
		}
		if categoryEffectApplies(updated) {
			if err := s.adjustCategory(ctx, st, updated.CategoryID, updated.Amount); err != nil {
				return err
			}
		}
	}
	if old.AccountID != updated.AccountID || old.Amount != updated.Amount {
		if accountEffectApplies(old) {
			if err := s.adjustAccount(ctx, st, old.AccountID, -old.Amount); err != nil {
				return err
			}
		}
		if accountEffectApplies(updated) {
			if err := s.adjustAccount(ctx, st, updated.AccountID, updated.Amount); err != nil {
				return err
			}
		}
	}
	return nil
}

// applyDeleteEffects reverses a transaction's balance effect. The account
// reversal runs for every transaction with an account, transfer legs
// included; see the package note on the intentional asymmetry.
func (s *Service) applyDeleteEffects(ctx context.Context, st *store.Stores, txn *model.Transaction) error {
	if categoryEffectApplies(txn) {
		if err := s.adjustCategory(ctx, st, txn.CategoryID, -txn.Amount); err != nil {
			return err
		}
	}
	if txn.AccountID != "" {
		if err := s.adjustAccount(ctx, st, txn.AccountID, -txn.Amount); err != nil {
			return err
		}
	}
	return nil
}

// --- Transaction operations ---

// CreateTransaction applies the transaction's balance effects and persists
// it, all in one committed batch. Referenced ids are checked before any
// write.
func (s *Service) CreateTransaction(ctx context.Context, txn *model.Transaction) error {
	if txn.ID == "" {
		txn.ID = uuid.NewString()
	}
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = s.now()
	}
	if txn.Date.IsZero() {
		txn.Date = s.now()
	}
	if txn.Type == "" {
		txn.Type = transactionTypeForAmount(txn.Amount)
	}

	err := s.mutate(ctx, func(st *store.Stores) error {
		if err := s.applyCreateEffects(ctx, st, txn); err != nil {
			return err
		}
		return st.Transactions.Create(ctx, txn)
	})
	if err != nil {
		return err
	}
	slog.Debug("transaction created", "id", txn.ID, "amount", txn.Amount)
	return nil
}

// GetTransaction returns a transaction by id.
func (s *Service) GetTransaction(ctx context.Context, id string) (*model.Transaction, error) {
	return s.reads().Transactions.Get(ctx, id)
}

// Transactions lists all transactions, newest first.
func (s *Service) Transactions(ctx context.Context) ([]model.Transaction, error) {
	return s.reads().Transactions.List(ctx)
}

// TransactionsByAccount lists an account's transactions.
func (s *Service) TransactionsByAccount(ctx context.Context, accountID string) ([]model.Transaction, error) {
	return s.reads().Transactions.ListByAccount(ctx, accountID)
}

// TransactionsByCategory lists a category's transactions.
func (s *Service) TransactionsByCategory(ctx context.Context, categoryID string) ([]model.Transaction, error) {
	return s.reads().Transactions.ListByCategory(ctx, categoryID)
}

// UpdateTransaction reverses the old balance effects, applies the new ones,
// and persists the changed record. Updating with an identical category,
// account, and amount moves no balances.
func (s *Service) UpdateTransaction(ctx context.Context, updated *model.Transaction) error {
	return s.mutate(ctx, func(st *store.Stores) error {
		old, err := st.Transactions.Get(ctx, updated.ID)
		if err != nil {
			return err
		}
		updated.CreatedAt = old.CreatedAt
		if err := s.applyUpdateEffects(ctx, st, old, updated); err != nil {
			return err
		}
		return st.Transactions.Put(ctx, updated)
	})
}

// DeleteTransaction reverses the transaction's balance effects and removes
// the record.
func (s *Service) DeleteTransaction(ctx context.Context, id string) error {
	return s.mutate(ctx, func(st *store.Stores) error {
		txn, err := st.Transactions.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := s.applyDeleteEffects(ctx, st, txn); err != nil {
			return err
		}
		return st.Transactions.Delete(ctx, id)
	})
}
