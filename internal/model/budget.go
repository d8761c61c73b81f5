// Package model defines the core domain models used throughout the application.
package model

import "time"

// Budget is the owning record for a set of accounts. A fresh database gets a
// single default budget at init time.
type Budget struct {
	CreatedAt time.Time
	ID        string
	Name      string
}
