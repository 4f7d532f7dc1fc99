package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fxledger/internal/domain"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID        string    `json:"id"`
	Number    string    `json:"number"`
	Holder    string    `json:"holder"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		Number:    a.Number,
		Holder:    a.Holder,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse wraps an account listing.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// BalanceResponse represents one currency balance. Amounts are reported
// rounded to two decimal places; storage keeps full precision.
type BalanceResponse struct {
	Currency string          `json:"currency"`
	Amount   decimal.Decimal `json:"amount"`
}

// BalanceFromDomain converts a domain balance to a response.
func BalanceFromDomain(b *domain.Balance) BalanceResponse {
	return BalanceResponse{
		Currency: b.Currency.String(),
		Amount:   b.DisplayAmount(),
	}
}

// BalancesFromDomain converts domain balances to responses.
func BalancesFromDomain(balances []*domain.Balance) []BalanceResponse {
	result := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		result[i] = BalanceFromDomain(b)
	}
	return result
}

// AccountBalancesResponse lists all balances of one account.
type AccountBalancesResponse struct {
	AccountNumber string            `json:"account_number"`
	Balances      []BalanceResponse `json:"balances"`
}

// BalanceOperationResponse reports the balance after a deposit or
// withdrawal.
type BalanceOperationResponse struct {
	AccountNumber string          `json:"account_number"`
	Balance       BalanceResponse `json:"balance"`
}

// ExchangeResponse reports an applied conversion and both updated
// balances.
type ExchangeResponse struct {
	AccountNumber string          `json:"account_number"`
	Rate          decimal.Decimal `json:"rate"`
	From          BalanceResponse `json:"from"`
	To            BalanceResponse `json:"to"`
}

// TransactionResponse represents one history row.
type TransactionResponse struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Currency  string          `json:"currency"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedBy string          `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:        t.ID,
		Type:      string(t.Type),
		Currency:  t.Currency.String(),
		Amount:    t.Amount.Round(2),
		CreatedBy: t.CreatedBy,
		CreatedAt: t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txns []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txns))
	for i, t := range txns {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// ListTransactionsResponse wraps a transaction listing.
type ListTransactionsResponse struct {
	AccountNumber string                 `json:"account_number"`
	Transactions  []*TransactionResponse `json:"transactions"`
	Total         int64                  `json:"total"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
