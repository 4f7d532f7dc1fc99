package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iho/fxledger/internal/domain"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrAccountNotFound, http.StatusNotFound},
		{domain.ErrBalanceNotFound, http.StatusNotFound},
		{domain.ErrInvalidAccountNumber, http.StatusBadRequest},
		{domain.ErrInvalidAccountHolder, http.StatusBadRequest},
		{domain.ErrInvalidAmount, http.StatusBadRequest},
		{domain.ErrInvalidCurrency, http.StatusBadRequest},
		{domain.ErrInvalidRateMode, http.StatusBadRequest},
		{domain.ErrInsufficientBalance, http.StatusUnprocessableEntity},
		{domain.ErrRateUnavailable, http.StatusUnprocessableEntity},
		{errors.New("database exploded"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := mapDomainError(tt.err); got != tt.want {
			t.Errorf("mapDomainError(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestMapDomainError_Wrapped(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), domain.ErrInsufficientBalance)
	if got := mapDomainError(wrapped); got != http.StatusUnprocessableEntity {
		t.Errorf("wrapped error mapped to %d, want 422", got)
	}
}

func TestParseIntQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=50&bad=abc", nil)

	if got := parseIntQuery(req, "limit", 20); got != 50 {
		t.Errorf("limit = %d, want 50", got)
	}
	if got := parseIntQuery(req, "bad", 20); got != 20 {
		t.Errorf("bad = %d, want default 20", got)
	}
	if got := parseIntQuery(req, "missing", 20); got != 20 {
		t.Errorf("missing = %d, want default 20", got)
	}
}
