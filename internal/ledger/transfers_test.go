package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nostrgamer/bitcoinbudget/internal/model"
)

func TestTransferBetweenCategories(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	groceries := testCategory(t, svc, "groceries", 0)
	dining := testCategory(t, svc, "dining", 0)

	transfer, err := svc.CreateTransfer(ctx, groceries.ID, dining.ID, 30_000, "rebalance", time.Time{})
	require.NoError(t, err)
	assert.NotEmpty(t, transfer.CorrelationID)

	assert.Equal(t, int64(-30_000), getCategory(t, svc, groceries.ID).CurrentAmount,
		"source may go negative")
	assert.Equal(t, int64(30_000), getCategory(t, svc, dining.ID).CurrentAmount)

	// Direct category transfers synthesize no transactions.
	txns, err := svc.Transactions(ctx)
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestTransferFromUnassignedSynthesizesLeg(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	cat := testCategory(t, svc, "groceries", 0)

	transfer, err := svc.CreateTransfer(ctx, model.UnassignedCategoryID, cat.ID, 50_000, "fund envelope", time.Time{})
	require.NoError(t, err)

	assert.Equal(t, int64(50_000), getCategory(t, svc, cat.ID).CurrentAmount)

	legs, err := svc.reads().Transactions.ListByCorrelation(ctx, transfer.CorrelationID)
	require.NoError(t, err)
	require.Len(t, legs, 1)
	assert.Equal(t, int64(-50_000), legs[0].Amount)
	assert.Equal(t, model.TypeExpense, legs[0].Type)
	assert.True(t, legs[0].HasTag(model.TagTransfer))
	assert.Empty(t, legs[0].AccountID, "synthesized legs carry no account")
}

func TestTransferToUnassignedSynthesizesLeg(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	cat := testCategory(t, svc, "groceries", 0)

	transfer, err := svc.CreateTransfer(ctx, cat.ID, model.UnassignedCategoryID, 20_000, "release", time.Time{})
	require.NoError(t, err)

	assert.Equal(t, int64(-20_000), getCategory(t, svc, cat.ID).CurrentAmount)

	legs, err := svc.reads().Transactions.ListByCorrelation(ctx, transfer.CorrelationID)
	require.NoError(t, err)
	require.Len(t, legs, 1)
	assert.Equal(t, int64(20_000), legs[0].Amount)
	assert.Equal(t, model.TypeIncome, legs[0].Type)
}

func TestCreateTransferRejectsBadInput(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	cat := testCategory(t, svc, "groceries", 0)

	_, err := svc.CreateTransfer(ctx, model.UnassignedCategoryID, cat.ID, 0, "", time.Time{})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.CreateTransfer(ctx, model.UnassignedCategoryID, cat.ID, -5_000, "", time.Time{})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.CreateTransfer(ctx, cat.ID, cat.ID, 5_000, "", time.Time{})
	assert.ErrorIs(t, err, ErrSameTarget)

	_, err = svc.CreateTransfer(ctx, cat.ID, "no-such-category", 5_000, "", time.Time{})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int64(0), getCategory(t, svc, cat.ID).CurrentAmount,
		"failed transfer applies nothing")
}

func TestDeleteTransferReversesDirectMove(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	groceries := testCategory(t, svc, "groceries", 0)
	dining := testCategory(t, svc, "dining", 0)

	transfer, err := svc.CreateTransfer(ctx, groceries.ID, dining.ID, 30_000, "", time.Time{})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteTransfer(ctx, transfer.ID))

	assert.Equal(t, int64(0), getCategory(t, svc, groceries.ID).CurrentAmount)
	assert.Equal(t, int64(0), getCategory(t, svc, dining.ID).CurrentAmount)

	_, err = svc.GetTransfer(ctx, transfer.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteTransferReversesUnassignedMove(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	cat := testCategory(t, svc, "groceries", 0)

	transfer, err := svc.CreateTransfer(ctx, model.UnassignedCategoryID, cat.ID, 50_000, "", time.Time{})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteTransfer(ctx, transfer.ID))

	assert.Equal(t, int64(0), getCategory(t, svc, cat.ID).CurrentAmount)

	legs, err := svc.reads().Transactions.ListByCorrelation(ctx, transfer.CorrelationID)
	require.NoError(t, err)
	assert.Empty(t, legs, "synthesized leg removed with its transfer")
}

func TestTransferBetweenAccounts(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	budget := testBudget(t, svc)
	a, err := svc.CreateAccount(ctx, budget.ID, "A", model.AccountTypeChecking, 100_000, true)
	require.NoError(t, err)
	b, err := svc.CreateAccount(ctx, budget.ID, "B", model.AccountTypeSavings, 0, true)
	require.NoError(t, err)

	correlationID, err := svc.TransferBetweenAccounts(ctx, a.ID, b.ID, 40_000, "to savings", time.Time{})
	require.NoError(t, err)

	assert.Equal(t, int64(60_000), getAccount(t, svc, a.ID).Balance)
	assert.Equal(t, int64(40_000), getAccount(t, svc, b.ID).Balance)

	legs, err := svc.reads().Transactions.ListByCorrelation(ctx, correlationID)
	require.NoError(t, err)
	require.Len(t, legs, 2)

	var sum int64
	for _, leg := range legs {
		sum += leg.Amount
		assert.True(t, leg.HasTag(model.TagAccountTransfer))
		assert.Empty(t, leg.CategoryID, "account transfers must not touch categories")
		assert.Equal(t, model.TypeTransfer, leg.Type)
	}
	assert.Equal(t, int64(0), sum, "legs must cancel out")
}

func TestTransferBetweenAccountsInsufficientFunds(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	budget := testBudget(t, svc)
	a, err := svc.CreateAccount(ctx, budget.ID, "A", model.AccountTypeChecking, 10_000, true)
	require.NoError(t, err)
	b, err := svc.CreateAccount(ctx, budget.ID, "B", model.AccountTypeSavings, 0, true)
	require.NoError(t, err)

	before, err := svc.Transactions(ctx)
	require.NoError(t, err)

	_, err = svc.TransferBetweenAccounts(ctx, a.ID, b.ID, 10_001, "", time.Time{})
	require.ErrorIs(t, err, ErrInsufficientFunds)

	assert.Equal(t, int64(10_000), getAccount(t, svc, a.ID).Balance)
	assert.Equal(t, int64(0), getAccount(t, svc, b.ID).Balance)

	after, err := svc.Transactions(ctx)
	require.NoError(t, err)
	assert.Len(t, after, len(before), "rejected transfer writes nothing")
}

func TestTransferBetweenAccountsExactBalance(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	budget := testBudget(t, svc)
	a, err := svc.CreateAccount(ctx, budget.ID, "A", model.AccountTypeChecking, 10_000, true)
	require.NoError(t, err)
	b, err := svc.CreateAccount(ctx, budget.ID, "B", model.AccountTypeSavings, 0, true)
	require.NoError(t, err)

	_, err = svc.TransferBetweenAccounts(ctx, a.ID, b.ID, 10_000, "", time.Time{})
	require.NoError(t, err)

	assert.Equal(t, int64(0), getAccount(t, svc, a.ID).Balance)
	assert.Equal(t, int64(10_000), getAccount(t, svc, b.ID).Balance)
}

func TestTransferBetweenAccountsRejectsBadInput(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	acct := testAccount(t, svc, "A", 10_000)

	_, err := svc.TransferBetweenAccounts(ctx, acct.ID, acct.ID, 1_000, "", time.Time{})
	assert.ErrorIs(t, err, ErrSameTarget)

	_, err = svc.TransferBetweenAccounts(ctx, acct.ID, "other", 0, "", time.Time{})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.TransferBetweenAccounts(ctx, acct.ID, "no-such-account", 1_000, "", time.Time{})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int64(10_000), getAccount(t, svc, acct.ID).Balance)
}
