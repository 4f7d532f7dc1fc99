package domain

import "time"

// Account is a bank account identified by its account number. The ledger
// only needs the identifier; the rest is holder metadata.
type Account struct {
	ID        string
	Number    string
	Holder    string
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}
