package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nostrgamer/bitcoinbudget/internal/model"
	"github.com/nostrgamer/bitcoinbudget/internal/store"
)

// CreateTransfer moves amount between two categories. Either side may be
// model.UnassignedCategoryID; that side has no stored record, so a
// synthesized transaction tagged "transfer" records the movement against
// the pool instead. Resulting negative category balances are permitted.
// The Transfer record is persisted last.
func (s *Service) CreateTransfer(ctx context.Context, fromCategoryID, toCategoryID string, amount int64, description string, date time.Time) (*model.Transfer, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if fromCategoryID == toCategoryID {
		return nil, ErrSameTarget
	}
	if date.IsZero() {
		date = s.now()
	}

	correlationID := uuid.NewString()
	transfer := &model.Transfer{
		ID:             uuid.NewString(),
		FromCategoryID: fromCategoryID,
		ToCategoryID:   toCategoryID,
		Amount:         amount,
		Description:    description,
		Date:           date,
		CorrelationID:  correlationID,
		CreatedAt:      s.now(),
	}

	err := s.mutate(ctx, func(st *store.Stores) error {
		switch {
		case fromCategoryID == model.UnassignedCategoryID:
			leg := s.transferLeg(transfer, -amount, model.TypeExpense)
			if err := s.applyCreateEffects(ctx, st, leg); err != nil {
				return err
			}
			if err := st.Transactions.Create(ctx, leg); err != nil {
				return err
			}
			if err := s.adjustCategory(ctx, st, toCategoryID, amount); err != nil {
				return err
			}
		case toCategoryID == model.UnassignedCategoryID:
			leg := s.transferLeg(transfer, amount, model.TypeIncome)
			if err := s.applyCreateEffects(ctx, st, leg); err != nil {
				return err
			}
			if err := st.Transactions.Create(ctx, leg); err != nil {
				return err
			}
			if err := s.adjustCategory(ctx, st, fromCategoryID, -amount); err != nil {
				return err
			}
		default:
			if err := s.adjustCategory(ctx, st, fromCategoryID, -amount); err != nil {
				return err
			}
			if err := s.adjustCategory(ctx, st, toCategoryID, amount); err != nil {
				return err
			}
		}
		return st.Transfers.Create(ctx, transfer)
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("transfer created", "id", transfer.ID, "from", fromCategoryID, "to", toCategoryID, "amount", amount)
	return transfer, nil
}

// transferLeg synthesizes the pool-side transaction of an unassigned
// transfer. It carries no account, moves no category balance directly, and
// is linked to its Transfer by correlation id so deletion never has to
// locate it by content matching.
func (s *Service) transferLeg(transfer *model.Transfer, amount int64, txType model.TransactionType) *model.Transaction {
	return &model.Transaction{
		ID:            uuid.NewString(),
		CategoryID:    model.UnassignedCategoryID,
		Amount:        amount,
		Description:   transfer.Description,
		Date:          transfer.Date,
		CreatedAt:     s.now(),
		Type:          txType,
		Tags:          []string{model.TagTransfer, "transfer-" + transfer.CorrelationID},
		CorrelationID: transfer.CorrelationID,
	}
}

// GetTransfer returns a transfer by id.
func (s *Service) GetTransfer(ctx context.Context, id string) (*model.Transfer, error) {
	return s.reads().Transfers.Get(ctx, id)
}

// Transfers lists all transfers, newest first.
func (s *Service) Transfers(ctx context.Context) ([]model.Transfer, error) {
	return s.reads().Transfers.List(ctx)
}

// DeleteTransfer reverses whichever branch CreateTransfer took and removes
// the record. Synthesized legs are found by correlation id.
func (s *Service) DeleteTransfer(ctx context.Context, id string) error {
	return s.mutate(ctx, func(st *store.Stores) error {
		transfer, err := st.Transfers.Get(ctx, id)
		if err != nil {
			return err
		}

		if transfer.TouchesUnassigned() {
			legs, err := st.Transactions.ListByCorrelation(ctx, transfer.CorrelationID)
			if err != nil {
				return err
			}
			for i := range legs {
				if err := s.applyDeleteEffects(ctx, st, &legs[i]); err != nil {
					return err
				}
				if err := st.Transactions.Delete(ctx, legs[i].ID); err != nil {
					return err
				}
			}
			if transfer.FromCategoryID == model.UnassignedCategoryID {
				if err := s.adjustCategory(ctx, st, transfer.ToCategoryID, -transfer.Amount); err != nil {
					return err
				}
			} else {
				if err := s.adjustCategory(ctx, st, transfer.FromCategoryID, transfer.Amount); err != nil {
					return err
				}
			}
		} else {
			if err := s.adjustCategory(ctx, st, transfer.FromCategoryID, transfer.Amount); err != nil {
				return err
			}
			if err := s.adjustCategory(ctx, st, transfer.ToCategoryID, -transfer.Amount); err != nil {
				return err
			}
		}

		return st.Transfers.Delete(ctx, id)
	})
}

// TransferBetweenAccounts moves amount between two accounts. Unlike
// category transfers, an account may not be overdrawn: amounts exceeding
// the source balance are rejected before any mutation. The movement is
// recorded as two correlated transactions with no category, created through
// the store directly since the balance change is applied here, not by the
// effects engine. Returns the correlation id linking the two legs.
func (s *Service) TransferBetweenAccounts(ctx context.Context, fromAccountID, toAccountID string, amount int64, description string, date time.Time) (string, error) {
	if amount <= 0 {
		return "", ErrInvalidAmount
	}
	if fromAccountID == toAccountID {
		return "", ErrSameTarget
	}
	if date.IsZero() {
		date = s.now()
	}

	correlationID := uuid.NewString()
	err := s.mutate(ctx, func(st *store.Stores) error {
		from, err := st.Accounts.Get(ctx, fromAccountID)
		if err != nil {
			return fmt.Errorf("source account %s: %w", fromAccountID, err)
		}
		to, err := st.Accounts.Get(ctx, toAccountID)
		if err != nil {
			return fmt.Errorf("destination account %s: %w", toAccountID, err)
		}
		if amount > from.Balance {
			return fmt.Errorf("%w: %d exceeds balance %d of %s", ErrInsufficientFunds, amount, from.Balance, from.Name)
		}

		from.Balance -= amount
		if err := st.Accounts.Put(ctx, from); err != nil {
			return err
		}
		to.Balance += amount
		if err := st.Accounts.Put(ctx, to); err != nil {
			return err
		}

		tags := []string{model.TagAccountTransfer, "transfer-" + correlationID}
		outgoing := &model.Transaction{
			ID:            uuid.NewString(),
			AccountID:     fromAccountID,
			Amount:        -amount,
			Description:   description,
			Date:          date,
			CreatedAt:     s.now(),
			Type:          model.TypeTransfer,
			Tags:          tags,
			CorrelationID: correlationID,
		}
		incoming := &model.Transaction{
			ID:            uuid.NewString(),
			AccountID:     toAccountID,
			Amount:        amount,
			Description:   description,
			Date:          date,
			CreatedAt:     s.now(),
			Type:          model.TypeTransfer,
			Tags:          tags,
			CorrelationID: correlationID,
		}
		if err := st.Transactions.Create(ctx, outgoing); err != nil {
			return err
		}
		return st.Transactions.Create(ctx, incoming)
	})
	if err != nil {
		return "", err
	}

	slog.Debug("account transfer", "from", fromAccountID, "to", toAccountID, "amount", amount, "correlation", correlationID)
	return correlationID, nil
}
