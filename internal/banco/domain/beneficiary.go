package domain

import "time"

// Beneficiary is a saved transfer destination owned by exactly one user.
// NationalID is unique within the owner's list only.
type Beneficiary struct {
	ID            string
	FirstName     string
	LastName      string
	Email         string
	NationalID    string
	Phone         string
	Bank          string
	AccountType   string // corriente, vista, ahorro, cuenta rut
	AccountNumber int64
	CreatedAt     time.Time
}
