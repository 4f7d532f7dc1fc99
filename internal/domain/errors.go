package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound      = errors.New("account not found")
	ErrInvalidAccountNumber = errors.New("invalid account number")
	ErrInvalidAccountHolder = errors.New("invalid account holder name")

	// Balance errors
	ErrBalanceNotFound     = errors.New("account balance not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidAmount       = errors.New("amount must be positive")

	// Exchange errors
	ErrInvalidCurrency = errors.New("invalid currency code")
	ErrRateUnavailable = errors.New("exchange rate not available")
	ErrInvalidRateMode = errors.New("invalid rate mode")
)
