package model

import "time"

// UnassignedCategoryID is the sentinel id for the virtual unassigned pool.
// There is never a stored Category record with this id; the pool's balance is
// always derived (see ledger.UnassignedBalance).
const UnassignedCategoryID = "unassigned"

// Category is a budget envelope. CurrentAmount is allocated-minus-spent in
// sats and may go negative; it is a cache of the transaction and transfer
// logs, rebuilt by reconciliation when drift is suspected.
type Category struct {
	CreatedAt     time.Time
	ID            string
	Name          string
	TargetAmount  int64
	CurrentAmount int64
	IsArchived    bool
}
