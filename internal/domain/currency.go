package domain

import (
	"fmt"
	"strings"
)

// Currency is an ISO 4217 alphabetic currency code.
type Currency string

// Currencies supported by the default configuration.
const (
	EUR Currency = "EUR"
	USD Currency = "USD"
	SEK Currency = "SEK"
	RUB Currency = "RUB"
	GBP Currency = "GBP"
	JPY Currency = "JPY"
	CNY Currency = "CNY"
	KRW Currency = "KRW"
)

// String returns the currency code.
func (c Currency) String() string {
	return string(c)
}

// CurrencySet is the closed set of currencies the ledger accepts.
// Membership checks are case sensitive; codes are normalized to upper
// case on construction.
type CurrencySet struct {
	ordered []Currency
	members map[Currency]struct{}
}

// NewCurrencySet builds a set from configured codes. Codes are trimmed,
// upper-cased, and deduplicated; iteration order follows first
// occurrence in the input.
func NewCurrencySet(codes []string) (*CurrencySet, error) {
	if len(codes) == 0 {
		return nil, fmt.Errorf("%w: no currencies configured", ErrInvalidCurrency)
	}

	set := &CurrencySet{
		ordered: make([]Currency, 0, len(codes)),
		members: make(map[Currency]struct{}, len(codes)),
	}

	for _, code := range codes {
		normalized := strings.ToUpper(strings.TrimSpace(code))
		if len(normalized) != 3 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidCurrency, code)
		}

		currency := Currency(normalized)
		if _, ok := set.members[currency]; ok {
			continue
		}

		set.members[currency] = struct{}{}
		set.ordered = append(set.ordered, currency)
	}

	return set, nil
}

// All returns the member currencies in configuration order.
func (s *CurrencySet) All() []Currency {
	return s.ordered
}

// Contains reports whether the currency is a member.
func (s *CurrencySet) Contains(c Currency) bool {
	_, ok := s.members[c]
	return ok
}

// Validate returns ErrInvalidCurrency for codes outside the set.
func (s *CurrencySet) Validate(c Currency) error {
	if !s.Contains(c) {
		return fmt.Errorf("%w: %q", ErrInvalidCurrency, c)
	}

	return nil
}
