package domain

import "time"

type User struct {
	ID            string
	Name          string
	Email         string
	NationalID    string // canonical RUT, e.g. 12345678-5
	PasswordHash  string // argon2id PHC string, or bcrypt for imported users
	Beneficiaries []Beneficiary
	Transfers     []Transfer
	CreatedAt     time.Time
}

// NewUser carries the registration input before the password is hashed.
type NewUser struct {
	Name       string
	Email      string
	NationalID string
	Password   string
}
