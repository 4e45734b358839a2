package service

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrNationalIDTaken    = errors.New("rut already registered")
	ErrBeneficiaryExists  = errors.New("beneficiary already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidNationalID  = errors.New("invalid rut")
	ErrInvalidAmount      = errors.New("amount must be positive")
)
