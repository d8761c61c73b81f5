package store

import (
	"context"
	"log/slog"
	"sort"

	"github.com/nostrgamer/bitcoinbudget/internal/kv"
	"github.com/nostrgamer/bitcoinbudget/internal/model"
	"github.com/nostrgamer/bitcoinbudget/internal/vault"
)

// TransactionStore persists Transaction records. It never touches category
// or account balances; the ledger drives balance effects and then persists
// through this store.
type TransactionStore struct {
	s    kv.Store
	sess *vault.Session
}

func transactionIndexes(txn *model.Transaction) map[string]string {
	idx := map[string]string{}
	if txn.AccountID != "" {
		idx[IndexAccountID] = txn.AccountID
	}
	if txn.CategoryID != "" {
		idx[IndexCategoryID] = txn.CategoryID
	}
	if txn.CorrelationID != "" {
		idx[IndexCorrelationID] = txn.CorrelationID
	}
	return idx
}

// Create inserts a new transaction.
func (ts *TransactionStore) Create(ctx context.Context, txn *model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}
	rec, err := seal(ts.sess, txn.ID, txn, transactionIndexes(txn))
	if err != nil {
		return err
	}
	if err := ts.s.Add(ctx, StoreTransactions, rec); err != nil {
		return err
	}
	slog.Debug("created transaction", "id", txn.ID, "amount", txn.Amount)
	return nil
}

// Get returns the transaction with the given id.
func (ts *TransactionStore) Get(ctx context.Context, id string) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	rec, err := ts.s.Get(ctx, StoreTransactions, id)
	if err != nil {
		return nil, err
	}
	var txn model.Transaction
	if err := open(ts.sess, rec, &txn); err != nil {
		return nil, err
	}
	return &txn, nil
}

// List returns all transactions ordered by date, newest first.
func (ts *TransactionStore) List(ctx context.Context) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	recs, err := ts.s.GetAll(ctx, StoreTransactions)
	if err != nil {
		return nil, err
	}
	return ts.openAll(recs)
}

// ListByAccount returns the transactions belonging to an account.
func (ts *TransactionStore) ListByAccount(ctx context.Context, accountID string) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(accountID, "accountID"); err != nil {
		return nil, err
	}
	recs, err := ts.s.GetByIndex(ctx, StoreTransactions, IndexAccountID, accountID)
	if err != nil {
		return nil, err
	}
	return ts.openAll(recs)
}

// ListByCategory returns the transactions assigned to a category.
func (ts *TransactionStore) ListByCategory(ctx context.Context, categoryID string) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(categoryID, "categoryID"); err != nil {
		return nil, err
	}
	recs, err := ts.s.GetByIndex(ctx, StoreTransactions, IndexCategoryID, categoryID)
	if err != nil {
		return nil, err
	}
	return ts.openAll(recs)
}

// ListByCorrelation returns the transactions carrying a correlation id:
// both legs of an account transfer, or the synthesized leg of a category
// transfer touching the unassigned pool.
func (ts *TransactionStore) ListByCorrelation(ctx context.Context, correlationID string) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(correlationID, "correlationID"); err != nil {
		return nil, err
	}
	recs, err := ts.s.GetByIndex(ctx, StoreTransactions, IndexCorrelationID, correlationID)
	if err != nil {
		return nil, err
	}
	return ts.openAll(recs)
}

func (ts *TransactionStore) openAll(recs []kv.Record) ([]model.Transaction, error) {
	txns := make([]model.Transaction, 0, len(recs))
	for i := range recs {
		var txn model.Transaction
		if err := open(ts.sess, &recs[i], &txn); err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}
	sort.Slice(txns, func(i, j int) bool { return txns[i].Date.After(txns[j].Date) })
	return txns, nil
}

// Put upserts a transaction.
func (ts *TransactionStore) Put(ctx context.Context, txn *model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}
	rec, err := seal(ts.sess, txn.ID, txn, transactionIndexes(txn))
	if err != nil {
		return err
	}
	return ts.s.Put(ctx, StoreTransactions, rec)
}

// Delete removes a transaction record.
func (ts *TransactionStore) Delete(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	return ts.s.Delete(ctx, StoreTransactions, id)
}
