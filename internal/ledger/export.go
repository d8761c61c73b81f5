package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nostrgamer/bitcoinbudget/internal/kv"
	"github.com/nostrgamer/bitcoinbudget/internal/model"
	"github.com/nostrgamer/bitcoinbudget/internal/store"
)

// snapshotVersion identifies the export format.
const snapshotVersion = 1

// Snapshot is the serialized form of every entity, decrypted.
type Snapshot struct {
	ExportedAt   time.Time           `json:"exportedAt"`
	Budgets      []model.Budget      `json:"budgets"`
	Accounts     []model.Account     `json:"accounts"`
	Categories   []model.Category    `json:"categories"`
	Transactions []model.Transaction `json:"transactions"`
	Transfers    []model.Transfer    `json:"transfers"`
	Version      int                 `json:"version"`
}

// ExportData serializes all entities to JSON. The output is plaintext; the
// caller owns where it lands.
func (s *Service) ExportData(ctx context.Context) ([]byte, error) {
	st := s.reads()

	snap := Snapshot{ExportedAt: s.now(), Version: snapshotVersion}
	var err error
	if snap.Budgets, err = st.Budgets.List(ctx); err != nil {
		return nil, err
	}
	if snap.Accounts, err = st.Accounts.List(ctx); err != nil {
		return nil, err
	}
	if snap.Categories, err = st.Categories.List(ctx); err != nil {
		return nil, err
	}
	if snap.Transactions, err = st.Transactions.List(ctx); err != nil {
		return nil, err
	}
	if snap.Transfers, err = st.Transfers.List(ctx); err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize snapshot: %w", err)
	}
	return data, nil
}

// ClearAllData removes every entity record in one batch. The vault verifier
// is kept so the password still opens the emptied database.
func (s *Service) ClearAllData(ctx context.Context) error {
	return s.db.RunBatch(ctx, func(b kv.Store) error {
		for _, name := range []string{
			store.StoreBudgets,
			store.StoreAccounts,
			store.StoreCategories,
			store.StoreTransactions,
			store.StoreTransfers,
		} {
			if err := b.Clear(ctx, name); err != nil {
				return err
			}
		}
		return nil
	})
}
