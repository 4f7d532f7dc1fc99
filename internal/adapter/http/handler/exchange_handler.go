package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/iho/fxledger/internal/adapter/http/dto"
	"github.com/iho/fxledger/internal/domain"
	"github.com/iho/fxledger/internal/usecase"
)

// ExchangeService defines the behavior needed by ExchangeHandler.
type ExchangeService interface {
	Convert(ctx context.Context, input usecase.ExchangeInput) (*usecase.ExchangeResult, error)
}

// ExchangeHandler handles currency conversion requests. The route decides
// the rate source: /floating uses the remote rate API, /fixed the
// built-in table.
type ExchangeHandler struct {
	exchangeUC ExchangeService
	accountUC  AccountService
}

// NewExchangeHandler creates a new ExchangeHandler.
func NewExchangeHandler(exchangeUC ExchangeService, accountUC AccountService) *ExchangeHandler {
	return &ExchangeHandler{
		exchangeUC: exchangeUC,
		accountUC:  accountUC,
	}
}

// Floating converts using the remote rate API.
func (h *ExchangeHandler) Floating(w http.ResponseWriter, r *http.Request) {
	h.convert(w, r, domain.RateModeExternal)
}

// Fixed converts using the built-in rate table.
func (h *ExchangeHandler) Fixed(w http.ResponseWriter, r *http.Request) {
	h.convert(w, r, domain.RateModeFixed)
}

func (h *ExchangeHandler) convert(w http.ResponseWriter, r *http.Request, mode domain.RateMode) {
	var req dto.ExchangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountUC.GetAccountByNumber(r.Context(), req.AccountNumber)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to resolve account", err.Error())
		return
	}

	result, err := h.exchangeUC.Convert(r.Context(), req.ToUseCaseInput(account.ID, mode, actorFrom(r)))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to convert", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ExchangeResponse{
		AccountNumber: account.Number,
		Rate:          result.Rate,
		From:          dto.BalanceFromDomain(result.FromBalance),
		To:            dto.BalanceFromDomain(result.ToBalance),
	})
}
