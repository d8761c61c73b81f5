package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nostrgamer/bitcoinbudget/internal/model"
)

func TestTransactionLifecycleMovesCategoryBalance(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	acct := testAccount(t, svc, "checking", 0)
	cat := testCategory(t, svc, "groceries", 500_000)

	txn := &model.Transaction{AccountID: acct.ID, CategoryID: cat.ID, Amount: -25_000}
	require.NoError(t, svc.CreateTransaction(ctx, txn))
	assert.Equal(t, int64(-25_000), getCategory(t, svc, cat.ID).CurrentAmount)
	assert.Equal(t, int64(-25_000), getAccount(t, svc, acct.ID).Balance)

	updated := *txn
	updated.Amount = -10_000
	require.NoError(t, svc.UpdateTransaction(ctx, &updated))
	assert.Equal(t, int64(-10_000), getCategory(t, svc, cat.ID).CurrentAmount)
	assert.Equal(t, int64(-10_000), getAccount(t, svc, acct.ID).Balance)

	require.NoError(t, svc.DeleteTransaction(ctx, txn.ID))
	assert.Equal(t, int64(0), getCategory(t, svc, cat.ID).CurrentAmount)
	assert.Equal(t, int64(0), getAccount(t, svc, acct.ID).Balance)
}

func TestCreateDeleteIsInverse(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	acct := testAccount(t, svc, "checking", 100_000)
	cat := testCategory(t, svc, "groceries", 0)

	beforeCat := getCategory(t, svc, cat.ID).CurrentAmount
	beforeAcct := getAccount(t, svc, acct.ID).Balance

	txn := &model.Transaction{AccountID: acct.ID, CategoryID: cat.ID, Amount: -37_500}
	require.NoError(t, svc.CreateTransaction(ctx, txn))
	require.NoError(t, svc.DeleteTransaction(ctx, txn.ID))

	assert.Equal(t, beforeCat, getCategory(t, svc, cat.ID).CurrentAmount)
	assert.Equal(t, beforeAcct, getAccount(t, svc, acct.ID).Balance)

	_, err := svc.GetTransaction(ctx, txn.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNoOpUpdateLeavesBalancesUnchanged(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	acct := testAccount(t, svc, "checking", 0)
	cat := testCategory(t, svc, "groceries", 0)

	txn := &model.Transaction{AccountID: acct.ID, CategoryID: cat.ID, Amount: -25_000}
	require.NoError(t, svc.CreateTransaction(ctx, txn))

	updated := *txn
	updated.Description = "weekly shop"
	require.NoError(t, svc.UpdateTransaction(ctx, &updated))

	assert.Equal(t, int64(-25_000), getCategory(t, svc, cat.ID).CurrentAmount)
	assert.Equal(t, int64(-25_000), getAccount(t, svc, acct.ID).Balance)
}

func TestUpdateMovesBetweenCategories(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	acct := testAccount(t, svc, "checking", 0)
	groceries := testCategory(t, svc, "groceries", 0)
	dining := testCategory(t, svc, "dining", 0)

	txn := &model.Transaction{AccountID: acct.ID, CategoryID: groceries.ID, Amount: -25_000}
	require.NoError(t, svc.CreateTransaction(ctx, txn))

	updated := *txn
	updated.CategoryID = dining.ID
	require.NoError(t, svc.UpdateTransaction(ctx, &updated))

	assert.Equal(t, int64(0), getCategory(t, svc, groceries.ID).CurrentAmount)
	assert.Equal(t, int64(-25_000), getCategory(t, svc, dining.ID).CurrentAmount)
	assert.Equal(t, int64(-25_000), getAccount(t, svc, acct.ID).Balance, "account side untouched by a category move")
}

func TestUpdateMovesBetweenAccounts(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	budget := testBudget(t, svc)
	checking, err := svc.CreateAccount(ctx, budget.ID, "checking", model.AccountTypeChecking, 0, true)
	require.NoError(t, err)
	cash, err := svc.CreateAccount(ctx, budget.ID, "cash", model.AccountTypeCash, 0, true)
	require.NoError(t, err)

	txn := &model.Transaction{AccountID: checking.ID, Amount: -25_000}
	require.NoError(t, svc.CreateTransaction(ctx, txn))

	updated := *txn
	updated.AccountID = cash.ID
	require.NoError(t, svc.UpdateTransaction(ctx, &updated))

	assert.Equal(t, int64(0), getAccount(t, svc, checking.ID).Balance)
	assert.Equal(t, int64(-25_000), getAccount(t, svc, cash.ID).Balance)
}

func TestUncategorizedTransactionTouchesNoCategory(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	acct := testAccount(t, svc, "checking", 0)
	cat := testCategory(t, svc, "groceries", 0)

	require.NoError(t, svc.CreateTransaction(ctx, &model.Transaction{AccountID: acct.ID, Amount: 50_000}))

	assert.Equal(t, int64(0), getCategory(t, svc, cat.ID).CurrentAmount)
	assert.Equal(t, int64(50_000), getAccount(t, svc, acct.ID).Balance)
}

func TestUnassignBySettingPoolSentinel(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	acct := testAccount(t, svc, "checking", 0)
	cat := testCategory(t, svc, "groceries", 0)

	txn := &model.Transaction{AccountID: acct.ID, CategoryID: cat.ID, Amount: -25_000}
	require.NoError(t, svc.CreateTransaction(ctx, txn))

	updated := *txn
	updated.CategoryID = model.UnassignedCategoryID
	require.NoError(t, svc.UpdateTransaction(ctx, &updated))

	assert.Equal(t, int64(0), getCategory(t, svc, cat.ID).CurrentAmount)
	assert.Equal(t, int64(-25_000), getAccount(t, svc, acct.ID).Balance)
}

func TestCreateTransactionUnknownCategoryRollsBack(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	acct := testAccount(t, svc, "checking", 100_000)

	txn := &model.Transaction{AccountID: acct.ID, CategoryID: "no-such-category", Amount: -25_000}
	require.ErrorIs(t, svc.CreateTransaction(ctx, txn), ErrNotFound)

	assert.Equal(t, int64(100_000), getAccount(t, svc, acct.ID).Balance)
	_, err := svc.GetTransaction(ctx, txn.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdatePreservesCreatedAt(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	acct := testAccount(t, svc, "checking", 0)
	txn := &model.Transaction{AccountID: acct.ID, Amount: -1_000}
	require.NoError(t, svc.CreateTransaction(ctx, txn))

	updated := *txn
	updated.CreatedAt = updated.CreatedAt.AddDate(1, 0, 0)
	updated.Amount = -2_000
	require.NoError(t, svc.UpdateTransaction(ctx, &updated))

	got, err := svc.GetTransaction(ctx, txn.ID)
	require.NoError(t, err)
	assert.True(t, got.CreatedAt.Equal(txn.CreatedAt))
}
