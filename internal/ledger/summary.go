package ledger

import (
	"context"

	"github.com/nostrgamer/bitcoinbudget/internal/service"
)

// UnassignedBalance derives the virtual pool of funds not yet allocated to
// any envelope: spendable account balances, plus uncategorized non-transfer
// transactions, minus everything already sitting in categories. Pure read.
func (s *Service) UnassignedBalance(ctx context.Context) (int64, error) {
	st := s.reads()

	accts, err := st.Accounts.List(ctx)
	if err != nil {
		return 0, err
	}
	var total int64
	for i := range accts {
		if accts[i].IsOnBudget && !accts[i].IsClosed {
			total += accts[i].Balance
		}
	}

	txns, err := st.Transactions.List(ctx)
	if err != nil {
		return 0, err
	}
	for i := range txns {
		if txns[i].CategoryID == "" && !txns[i].IsTransferLeg() {
			total += txns[i].Amount
		}
	}

	cats, err := st.Categories.List(ctx)
	if err != nil {
		return 0, err
	}
	for i := range cats {
		total -= cats[i].CurrentAmount
	}

	return total, nil
}

// BudgetSummary aggregates income and expenses over all non-transfer
// transactions, plus on-budget holdings. Pure read.
func (s *Service) BudgetSummary(ctx context.Context) (*service.Summary, error) {
	st := s.reads()

	txns, err := st.Transactions.List(ctx)
	if err != nil {
		return nil, err
	}

	summary := &service.Summary{}
	for i := range txns {
		if txns[i].IsTransferLeg() {
			continue
		}
		if txns[i].Amount > 0 {
			summary.TotalIncome += txns[i].Amount
		} else {
			summary.TotalExpenses += -txns[i].Amount
		}
	}

	accts, err := st.Accounts.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range accts {
		if accts[i].IsOnBudget {
			summary.TotalIncome += accts[i].Balance
			summary.OnBudgetBalance += accts[i].Balance
		}
	}

	return summary, nil
}
