package store

import (
	"context"
	"log/slog"
	"sort"

	"github.com/nostrgamer/bitcoinbudget/internal/kv"
	"github.com/nostrgamer/bitcoinbudget/internal/model"
	"github.com/nostrgamer/bitcoinbudget/internal/vault"
)

// TransferStore persists category Transfer records.
type TransferStore struct {
	s    kv.Store
	sess *vault.Session
}

func transferIndexes(tr *model.Transfer) map[string]string {
	idx := map[string]string{
		IndexFromCategoryID: tr.FromCategoryID,
		IndexToCategoryID:   tr.ToCategoryID,
	}
	if tr.CorrelationID != "" {
		idx[IndexCorrelationID] = tr.CorrelationID
	}
	return idx
}

// Create inserts a new transfer.
func (trs *TransferStore) Create(ctx context.Context, tr *model.Transfer) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransfer(tr); err != nil {
		return err
	}
	rec, err := seal(trs.sess, tr.ID, tr, transferIndexes(tr))
	if err != nil {
		return err
	}
	if err := trs.s.Add(ctx, StoreTransfers, rec); err != nil {
		return err
	}
	slog.Debug("created transfer", "id", tr.ID, "amount", tr.Amount)
	return nil
}

// Get returns the transfer with the given id.
func (trs *TransferStore) Get(ctx context.Context, id string) (*model.Transfer, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	rec, err := trs.s.Get(ctx, StoreTransfers, id)
	if err != nil {
		return nil, err
	}
	var tr model.Transfer
	if err := open(trs.sess, rec, &tr); err != nil {
		return nil, err
	}
	return &tr, nil
}

// List returns all transfers ordered by date, newest first.
func (trs *TransferStore) List(ctx context.Context) ([]model.Transfer, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	recs, err := trs.s.GetAll(ctx, StoreTransfers)
	if err != nil {
		return nil, err
	}
	return trs.openAll(recs)
}

// ListByFromCategory returns the transfers debiting a category.
func (trs *TransferStore) ListByFromCategory(ctx context.Context, categoryID string) ([]model.Transfer, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(categoryID, "categoryID"); err != nil {
		return nil, err
	}
	recs, err := trs.s.GetByIndex(ctx, StoreTransfers, IndexFromCategoryID, categoryID)
	if err != nil {
		return nil, err
	}
	return trs.openAll(recs)
}

// ListByToCategory returns the transfers crediting a category.
func (trs *TransferStore) ListByToCategory(ctx context.Context, categoryID string) ([]model.Transfer, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(categoryID, "categoryID"); err != nil {
		return nil, err
	}
	recs, err := trs.s.GetByIndex(ctx, StoreTransfers, IndexToCategoryID, categoryID)
	if err != nil {
		return nil, err
	}
	return trs.openAll(recs)
}

func (trs *TransferStore) openAll(recs []kv.Record) ([]model.Transfer, error) {
	transfers := make([]model.Transfer, 0, len(recs))
	for i := range recs {
		var tr model.Transfer
		if err := open(trs.sess, &recs[i], &tr); err != nil {
			return nil, err
		}
		transfers = append(transfers, tr)
	}
	sort.Slice(transfers, func(i, j int) bool { return transfers[i].Date.After(transfers[j].Date) })
	return transfers, nil
}

// Delete removes a transfer record. Balance reversal is the ledger's job.
func (trs *TransferStore) Delete(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	return trs.s.Delete(ctx, StoreTransfers, id)
}
