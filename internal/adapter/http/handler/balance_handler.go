package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/fxledger/internal/adapter/http/dto"
	"github.com/iho/fxledger/internal/domain"
	"github.com/iho/fxledger/internal/usecase"
)

// BalanceService defines the behavior needed by BalanceHandler.
type BalanceService interface {
	Deposit(ctx context.Context, input usecase.DepositInput) (*domain.Balance, error)
	Withdraw(ctx context.Context, input usecase.WithdrawInput) (*domain.Balance, error)
	GetBalances(ctx context.Context, accountID string) ([]*domain.Balance, error)
	ListTransactions(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Transaction, error)
}

// BalanceHandler handles balance-related HTTP requests. Requests address
// accounts by number; the handler resolves them to internal IDs.
type BalanceHandler struct {
	balanceUC BalanceService
	accountUC AccountService
}

// NewBalanceHandler creates a new BalanceHandler.
func NewBalanceHandler(balanceUC BalanceService, accountUC AccountService) *BalanceHandler {
	return &BalanceHandler{
		balanceUC: balanceUC,
		accountUC: accountUC,
	}
}

// Credit deposits money into one currency balance of an account.
func (h *BalanceHandler) Credit(w http.ResponseWriter, r *http.Request) {
	var req dto.BalanceOperationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountUC.GetAccountByNumber(r.Context(), req.AccountNumber)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to resolve account", err.Error())
		return
	}

	balance, err := h.balanceUC.Deposit(r.Context(), req.ToDepositInput(account.ID, actorFrom(r)))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to credit balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceOperationResponse{
		AccountNumber: account.Number,
		Balance:       dto.BalanceFromDomain(balance),
	})
}

// Debit withdraws money from one currency balance of an account.
func (h *BalanceHandler) Debit(w http.ResponseWriter, r *http.Request) {
	var req dto.BalanceOperationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountUC.GetAccountByNumber(r.Context(), req.AccountNumber)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to resolve account", err.Error())
		return
	}

	balance, err := h.balanceUC.Withdraw(r.Context(), req.ToWithdrawInput(account.ID, actorFrom(r)))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to debit balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceOperationResponse{
		AccountNumber: account.Number,
		Balance:       dto.BalanceFromDomain(balance),
	})
}

// ListByAccount lists all currency balances of an account, including
// zero balances for supported currencies the account never touched.
func (h *BalanceHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	account, err := h.accountUC.GetAccountByNumber(r.Context(), chi.URLParam(r, "number"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to resolve account", err.Error())
		return
	}

	balances, err := h.balanceUC.GetBalances(r.Context(), account.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list balances", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountBalancesResponse{
		AccountNumber: account.Number,
		Balances:      dto.BalancesFromDomain(balances),
	})
}

// Transactions lists the balance mutation history of an account.
func (h *BalanceHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	account, err := h.accountUC.GetAccountByNumber(r.Context(), chi.URLParam(r, "number"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to resolve account", err.Error())
		return
	}

	txns, err := h.balanceUC.ListTransactions(r.Context(), usecase.ListTransactionsInput{
		AccountID: account.ID,
		Limit:     parseIntQuery(r, "limit", 20),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListTransactionsResponse{
		AccountNumber: account.Number,
		Transactions:  dto.TransactionsFromDomain(txns),
		Total:         int64(len(txns)),
	})
}
