package domain

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxOperationAmount  = "1000000000000" // 1 trillion
	MaxAccountHolderLen = 100
)

var (
	// Account numbers are "EE" followed by 18 digits.
	accountNumberRegex = regexp.MustCompile(`^EE\d{18}$`)
	accountHolderRegex = regexp.MustCompile(`^[a-zA-Z ]+$`)
)

// ValidateAccountNumber validates the account number format.
func ValidateAccountNumber(number string) error {
	if !accountNumberRegex.MatchString(number) {
		return fmt.Errorf("%w: %q", ErrInvalidAccountNumber, number)
	}

	return nil
}

// ValidateAccountHolder validates the account holder name. The name must
// contain only letters and spaces.
func ValidateAccountHolder(holder string) error {
	holder = strings.TrimSpace(holder)

	if holder == "" || len(holder) > MaxAccountHolderLen {
		return ErrInvalidAccountHolder
	}

	if !accountHolderRegex.MatchString(holder) {
		return fmt.Errorf("%w: %q", ErrInvalidAccountHolder, holder)
	}

	return nil
}

// ValidateAmount validates a deposit/withdrawal/exchange amount. Amounts
// arrive as exact decimals and are never round-tripped through binary
// floats.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxOperationAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: exceeds maximum of %s", ErrInvalidAmount, MaxOperationAmount)
	}

	return nil
}
