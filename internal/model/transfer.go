package model

import "time"

// Transfer moves value between two categories. Either side may be the
// UnassignedCategoryID sentinel, in which case a synthesized Transaction
// carrying the same CorrelationID records the movement against the pool.
// Amount is positive by convention.
type Transfer struct {
	Date           time.Time
	CreatedAt      time.Time
	ID             string
	FromCategoryID string
	ToCategoryID   string
	Description    string
	CorrelationID  string
	Amount         int64
}

// TouchesUnassigned reports whether either side of the transfer is the
// virtual unassigned pool.
func (t *Transfer) TouchesUnassigned() bool {
	return t.FromCategoryID == UnassignedCategoryID || t.ToCategoryID == UnassignedCategoryID
}
