package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/fxledger/internal/adapter/http/dto"
	"github.com/iho/fxledger/internal/domain"
	"github.com/iho/fxledger/internal/usecase"
)

type balanceServiceStub struct {
	depositFn  func(ctx context.Context, input usecase.DepositInput) (*domain.Balance, error)
	withdrawFn func(ctx context.Context, input usecase.WithdrawInput) (*domain.Balance, error)
	balancesFn func(ctx context.Context, accountID string) ([]*domain.Balance, error)
	txnsFn     func(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Transaction, error)
}

func (s *balanceServiceStub) Deposit(ctx context.Context, input usecase.DepositInput) (*domain.Balance, error) {
	return s.depositFn(ctx, input)
}

func (s *balanceServiceStub) Withdraw(ctx context.Context, input usecase.WithdrawInput) (*domain.Balance, error) {
	return s.withdrawFn(ctx, input)
}

func (s *balanceServiceStub) GetBalances(ctx context.Context, accountID string) ([]*domain.Balance, error) {
	return s.balancesFn(ctx, accountID)
}

func (s *balanceServiceStub) ListTransactions(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Transaction, error) {
	return s.txnsFn(ctx, input)
}

func knownAccountStub() *accountServiceStub {
	return &accountServiceStub{
		getFn: func(ctx context.Context, number string) (*domain.Account, error) {
			if number != "EE123456789012345678" {
				return nil, domain.ErrAccountNotFound
			}
			return &domain.Account{ID: "acc-1", Number: number, Holder: "Mart Tamm"}, nil
		},
	}
}

func TestBalanceHandler_Credit(t *testing.T) {
	var captured usecase.DepositInput
	handler := NewBalanceHandler(&balanceServiceStub{
		depositFn: func(ctx context.Context, input usecase.DepositInput) (*domain.Balance, error) {
			captured = input
			return &domain.Balance{
				AccountID: input.AccountID,
				Currency:  input.Currency,
				Amount:    decimal.RequireFromString("150.505"),
			}, nil
		},
	}, knownAccountStub())

	body, _ := json.Marshal(dto.BalanceOperationRequest{
		AccountNumber: "EE123456789012345678",
		Currency:      "EUR",
		Amount:        decimal.NewFromInt(50),
	})

	req := httptest.NewRequest(http.MethodPost, "/balances/credit", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Credit(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.AccountID != "acc-1" || captured.Currency != domain.EUR {
		t.Fatalf("expected resolved account in input, got %+v", captured)
	}

	var resp dto.BalanceOperationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	// The reported amount is rounded to two decimal places.
	if !resp.Balance.Amount.Equal(decimal.RequireFromString("150.51")) {
		t.Fatalf("expected rounded amount 150.51, got %s", resp.Balance.Amount)
	}
}

func TestBalanceHandler_Credit_UnknownAccount(t *testing.T) {
	handler := NewBalanceHandler(&balanceServiceStub{
		depositFn: func(ctx context.Context, input usecase.DepositInput) (*domain.Balance, error) {
			t.Fatal("Deposit should not be called for an unknown account")
			return nil, nil
		},
	}, knownAccountStub())

	body, _ := json.Marshal(dto.BalanceOperationRequest{
		AccountNumber: "EE000000000000000000",
		Currency:      "EUR",
		Amount:        decimal.NewFromInt(50),
	})

	req := httptest.NewRequest(http.MethodPost, "/balances/credit", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Credit(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestBalanceHandler_Debit_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"insufficient balance", domain.ErrInsufficientBalance, http.StatusUnprocessableEntity},
		{"no balance in currency", domain.ErrBalanceNotFound, http.StatusNotFound},
		{"invalid amount", domain.ErrInvalidAmount, http.StatusBadRequest},
		{"unsupported currency", domain.ErrInvalidCurrency, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewBalanceHandler(&balanceServiceStub{
				withdrawFn: func(ctx context.Context, input usecase.WithdrawInput) (*domain.Balance, error) {
					return nil, tt.err
				},
			}, knownAccountStub())

			body, _ := json.Marshal(dto.BalanceOperationRequest{
				AccountNumber: "EE123456789012345678",
				Currency:      "EUR",
				Amount:        decimal.NewFromInt(150),
			})

			req := httptest.NewRequest(http.MethodPost, "/balances/debit", bytes.NewReader(body))
			rec := httptest.NewRecorder()

			handler.Debit(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestBalanceHandler_ListByAccount(t *testing.T) {
	handler := NewBalanceHandler(&balanceServiceStub{
		balancesFn: func(ctx context.Context, accountID string) ([]*domain.Balance, error) {
			return []*domain.Balance{
				{Currency: domain.EUR, Amount: decimal.RequireFromString("100.456")},
				{Currency: domain.USD, Amount: decimal.Zero},
			}, nil
		},
	}, knownAccountStub())

	req := newRequestWithParam(http.MethodGet, "/accounts/EE123456789012345678/balances", "number", "EE123456789012345678")
	rec := httptest.NewRecorder()

	handler.ListByAccount(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.AccountBalancesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(resp.Balances) != 2 {
		t.Fatalf("expected 2 balances, got %d", len(resp.Balances))
	}
	if !resp.Balances[0].Amount.Equal(decimal.RequireFromString("100.46")) {
		t.Fatalf("expected rounded 100.46, got %s", resp.Balances[0].Amount)
	}
}

func TestBalanceHandler_Transactions(t *testing.T) {
	handler := NewBalanceHandler(&balanceServiceStub{
		txnsFn: func(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Transaction, error) {
			return []*domain.Transaction{
				{ID: "txn-1", Type: domain.TransactionCredit, Currency: domain.EUR, Amount: decimal.NewFromInt(100)},
				{ID: "txn-2", Type: domain.TransactionExchange, Currency: domain.EUR, Amount: decimal.NewFromInt(-40)},
			}, nil
		},
	}, knownAccountStub())

	req := newRequestWithParam(http.MethodGet, "/accounts/EE123456789012345678/transactions", "number", "EE123456789012345678")
	rec := httptest.NewRecorder()

	handler.Transactions(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.ListTransactionsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 2 {
		t.Fatalf("expected 2 rows, got %d", resp.Total)
	}
	if resp.Transactions[1].Type != string(domain.TransactionExchange) {
		t.Fatalf("expected EXCHANGE row, got %s", resp.Transactions[1].Type)
	}
}
