package domain

import (
	"cmp"
	"slices"
	"time"
)

// Transfer is an immutable record of money sent by a user. Amount is in CLP,
// which has no minor unit.
type Transfer struct {
	ID                  string
	RecipientName       string
	RecipientEmail      string
	RecipientNationalID string
	Bank                string
	AccountType         string
	Amount              int64
	CreatedAt           time.Time // assigned by the server
}

// SortNewestFirst orders transfers by CreatedAt descending. Transfers sharing
// a timestamp fall back to descending ID, which is a ULID minted at insert.
func SortNewestFirst(ts []Transfer) {
	slices.SortStableFunc(ts, func(a, b Transfer) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
}
