package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/fxledger/internal/domain"
	"github.com/iho/fxledger/internal/usecase"
)

// CreateAccountRequest represents a request to open an account.
type CreateAccountRequest struct {
	Holder string `json:"holder"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput(actor string) usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		Holder: r.Holder,
		Actor:  actor,
	}
}

// BalanceOperationRequest represents a deposit or withdrawal request.
// Accounts are addressed by their public account number.
type BalanceOperationRequest struct {
	AccountNumber string          `json:"account_number"`
	Currency      string          `json:"currency"`
	Amount        decimal.Decimal `json:"amount"`
}

// ToDepositInput converts to use case input for the resolved account.
func (r *BalanceOperationRequest) ToDepositInput(accountID, actor string) usecase.DepositInput {
	return usecase.DepositInput{
		AccountID: accountID,
		Currency:  domain.Currency(r.Currency),
		Amount:    r.Amount,
		Actor:     actor,
	}
}

// ToWithdrawInput converts to use case input for the resolved account.
func (r *BalanceOperationRequest) ToWithdrawInput(accountID, actor string) usecase.WithdrawInput {
	return usecase.WithdrawInput{
		AccountID: accountID,
		Currency:  domain.Currency(r.Currency),
		Amount:    r.Amount,
		Actor:     actor,
	}
}

// ExchangeRequest represents a currency conversion request. The rate mode
// comes from the route, not the body.
type ExchangeRequest struct {
	AccountNumber string          `json:"account_number"`
	From          string          `json:"from"`
	To            string          `json:"to"`
	Amount        decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input for the resolved account.
func (r *ExchangeRequest) ToUseCaseInput(accountID string, mode domain.RateMode, actor string) usecase.ExchangeInput {
	return usecase.ExchangeInput{
		AccountID: accountID,
		From:      domain.Currency(r.From),
		To:        domain.Currency(r.To),
		Amount:    r.Amount,
		Mode:      mode,
		Actor:     actor,
	}
}
