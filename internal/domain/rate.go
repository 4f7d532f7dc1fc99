package domain

import "fmt"

// RateMode selects which rate source an exchange uses.
type RateMode string

const (
	// RateModeExternal resolves the rate through the remote rate API.
	RateModeExternal RateMode = "EXTERNAL"
	// RateModeFixed resolves the rate from the statically configured table.
	RateModeFixed RateMode = "FIXED"
)

// ValidateRateMode checks that the mode is one of the known modes.
func ValidateRateMode(mode RateMode) error {
	switch mode {
	case RateModeExternal, RateModeFixed:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidRateMode, mode)
	}
}
