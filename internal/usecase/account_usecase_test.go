package usecase_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/iho/fxledger/internal/domain"
	"github.com/iho/fxledger/internal/usecase"
	"github.com/iho/fxledger/internal/usecase/mocks"
)

func TestAccountUseCase_CreateAccount(t *testing.T) {
	accountRepo := mocks.NewMockAccountRepository()
	uc := usecase.NewAccountUseCase(accountRepo, mocks.NewMockIDGenerator())

	account, err := uc.CreateAccount(context.Background(), usecase.CreateAccountInput{
		Holder: "  Mari Maasikas  ",
		Actor:  "api",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if account.Holder != "Mari Maasikas" {
		t.Errorf("holder = %q, want trimmed name", account.Holder)
	}

	if !regexp.MustCompile(`^EE\d{18}$`).MatchString(account.Number) {
		t.Errorf("account number %q does not match EE + 18 digits", account.Number)
	}

	stored, err := accountRepo.GetByID(context.Background(), account.ID)
	if err != nil {
		t.Fatalf("account was not persisted: %v", err)
	}
	if stored.Number != account.Number {
		t.Errorf("stored number = %q, want %q", stored.Number, account.Number)
	}
}

func TestAccountUseCase_CreateAccount_InvalidHolder(t *testing.T) {
	tests := []struct {
		name   string
		holder string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"digits", "Mari 2"},
		{"punctuation", "O'Brien"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := usecase.NewAccountUseCase(mocks.NewMockAccountRepository(), mocks.NewMockIDGenerator())

			_, err := uc.CreateAccount(context.Background(), usecase.CreateAccountInput{
				Holder: tt.holder,
				Actor:  "api",
			})
			if !errors.Is(err, domain.ErrInvalidAccountHolder) {
				t.Errorf("expected ErrInvalidAccountHolder, got %v", err)
			}
		})
	}
}

func TestAccountUseCase_GetAccountByNumber(t *testing.T) {
	accountRepo := mocks.NewMockAccountRepository()
	uc := usecase.NewAccountUseCase(accountRepo, mocks.NewMockIDGenerator())

	accountRepo.Create(context.Background(), &domain.Account{
		ID:     "acc-1",
		Number: "EE123456789012345678",
		Holder: "Mart Tamm",
	})

	account, err := uc.GetAccountByNumber(context.Background(), "EE123456789012345678")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.ID != "acc-1" {
		t.Errorf("got account %s, want acc-1", account.ID)
	}

	// Format is checked before the repository is consulted.
	if _, err := uc.GetAccountByNumber(context.Background(), "FI123456789012345678"); !errors.Is(err, domain.ErrInvalidAccountNumber) {
		t.Errorf("expected ErrInvalidAccountNumber, got %v", err)
	}
	if _, err := uc.GetAccountByNumber(context.Background(), "EE12345"); !errors.Is(err, domain.ErrInvalidAccountNumber) {
		t.Errorf("expected ErrInvalidAccountNumber, got %v", err)
	}

	if _, err := uc.GetAccountByNumber(context.Background(), "EE000000000000000000"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound for unknown number, got %v", err)
	}
}

func TestAccountUseCase_ListAccounts_ClampsLimit(t *testing.T) {
	accountRepo := mocks.NewMockAccountRepository()
	uc := usecase.NewAccountUseCase(accountRepo, mocks.NewMockIDGenerator())

	var gotLimit int
	accountRepo.ListFunc = func(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
		gotLimit = limit
		return nil, nil
	}

	tests := []struct {
		limit int
		want  int
	}{
		{0, 20},
		{-1, 20},
		{50, 50},
		{500, 100},
	}

	for _, tt := range tests {
		if _, err := uc.ListAccounts(context.Background(), usecase.ListAccountsInput{Limit: tt.limit}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotLimit != tt.want {
			t.Errorf("limit %d clamped to %d, want %d", tt.limit, gotLimit, tt.want)
		}
	}
}

func TestGenerateAccountNumber(t *testing.T) {
	pattern := regexp.MustCompile(`^EE\d{18}$`)

	for range 100 {
		if number := usecase.GenerateAccountNumber(); !pattern.MatchString(number) {
			t.Fatalf("generated number %q does not match EE + 18 digits", number)
		}
	}
}
