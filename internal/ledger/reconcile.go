package ledger

import (
	"context"
	"log/slog"

	"github.com/nostrgamer/bitcoinbudget/internal/model"
	"github.com/nostrgamer/bitcoinbudget/internal/store"
)

// Reconciliation rebuilds the cached balances from the authoritative event
// log. It is the documented recovery path after any partial failure.

// RecalculateCategoryBalances recomputes every category's current amount
// from scratch: transfers in, minus transfers out, plus assigned
// transactions that are not transfer legs. Stored values are overwritten
// only when they differ. The optional progress callback is invoked once per
// category. Returns the number of corrected categories.
func (s *Service) RecalculateCategoryBalances(ctx context.Context, progress func(done, total int)) (int, error) {
	st := s.reads()

	cats, err := st.Categories.List(ctx)
	if err != nil {
		return 0, err
	}
	transfers, err := st.Transfers.List(ctx)
	if err != nil {
		return 0, err
	}
	txns, err := st.Transactions.List(ctx)
	if err != nil {
		return 0, err
	}

	transferIn := make(map[string]int64)
	transferOut := make(map[string]int64)
	for i := range transfers {
		transferIn[transfers[i].ToCategoryID] += transfers[i].Amount
		transferOut[transfers[i].FromCategoryID] += transfers[i].Amount
	}
	assigned := make(map[string]int64)
	for i := range txns {
		if txns[i].IsTransferLeg() {
			continue
		}
		if txns[i].CategoryID != "" {
			assigned[txns[i].CategoryID] += txns[i].Amount
		}
	}

	var corrected []model.Category
	for i, cat := range cats {
		want := transferIn[cat.ID] - transferOut[cat.ID] + assigned[cat.ID]
		if want != cat.CurrentAmount {
			slog.Warn("category balance drift",
				"category", cat.ID, "stored", cat.CurrentAmount, "computed", want)
			cat.CurrentAmount = want
			corrected = append(corrected, cat)
		}
		if progress != nil {
			progress(i+1, len(cats))
		}
	}

	if len(corrected) == 0 {
		return 0, nil
	}
	err = s.mutate(ctx, func(st *store.Stores) error {
		for i := range corrected {
			if err := st.Categories.Put(ctx, &corrected[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	slog.Info("reconciled category balances", "corrected", len(corrected))
	return len(corrected), nil
}

// RecalculateAccountBalances recomputes every account's balance as the sum
// of its transactions, excluding only "transfer" legs. Account-transfer
// legs are included: they are real movement of value into and out of the
// account. Returns the number of corrected accounts.
func (s *Service) RecalculateAccountBalances(ctx context.Context, progress func(done, total int)) (int, error) {
	st := s.reads()

	accts, err := st.Accounts.List(ctx)
	if err != nil {
		return 0, err
	}
	txns, err := st.Transactions.List(ctx)
	if err != nil {
		return 0, err
	}

	sums := make(map[string]int64)
	for i := range txns {
		if txns[i].HasTag(model.TagTransfer) {
			continue
		}
		if txns[i].AccountID != "" {
			sums[txns[i].AccountID] += txns[i].Amount
		}
	}

	var corrected []model.Account
	for i, acct := range accts {
		want := sums[acct.ID]
		if want != acct.Balance {
			slog.Warn("account balance drift",
				"account", acct.ID, "stored", acct.Balance, "computed", want)
			acct.Balance = want
			corrected = append(corrected, acct)
		}
		if progress != nil {
			progress(i+1, len(accts))
		}
	}

	if len(corrected) == 0 {
		return 0, nil
	}
	err = s.mutate(ctx, func(st *store.Stores) error {
		for i := range corrected {
			if err := st.Accounts.Put(ctx, &corrected[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	slog.Info("reconciled account balances", "corrected", len(corrected))
	return len(corrected), nil
}
