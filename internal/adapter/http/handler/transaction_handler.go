package handler

import (
	"ramp-gateway/internal/adapter/http/dto"
	"ramp-gateway/internal/core/domain"
	"ramp-gateway/internal/core/ports"
	"ramp-gateway/pkg/response"

	"github.com/gin-gonic/gin"
)

// TransactionHandler serves the user-facing swap endpoints.
type TransactionHandler struct {
	lifecycle ports.LifecycleService
}

func NewTransactionHandler(lifecycle ports.LifecycleService) *TransactionHandler {
	return &TransactionHandler{lifecycle: lifecycle}
}

// Create handles POST /api/v1/transactions.
func (h *TransactionHandler) Create(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	var req dto.CreateTransactionRequest
	if !bindJSON(c, &req) {
		return
	}

	token, ok := parseToken(c, req.Token)
	if !ok {
		return
	}
	amount, ok := parseAmount(c, "token_amount", req.TokenAmount)
	if !ok {
		return
	}
	fiat, ok := parseOptionalAmount(c, "fiat_amount", req.FiatAmount)
	if !ok {
		return
	}
	var rawRate string
	if req.ExchangeRate != nil {
		rawRate = *req.ExchangeRate
	}
	exchangeRate, ok := parseOptionalAmount(c, "exchange_rate", rawRate)
	if !ok {
		return
	}

	in := ports.CreateTransactionRequest{
		Caller:       who,
		Direction:    domain.Direction(req.Direction),
		Token:        token,
		TokenAmount:  amount,
		ExchangeRate: exchangeRate,
		UserAddress:  req.UserAddress,
	}
	if fiat != nil {
		in.FiatAmount = *fiat
	}
	if req.Bank != nil {
		in.Bank = &domain.BankDetails{
			AccountNumber: req.Bank.AccountNumber,
			BankCode:      req.Bank.BankCode,
			BankName:      req.Bank.BankName,
			AccountName:   req.Bank.AccountName,
		}
	}

	tx, err := h.lifecycle.Create(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewTransactionResponse(tx))
}

// Get handles GET /api/v1/transactions/:id.
func (h *TransactionHandler) Get(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	tx, err := h.lifecycle.Get(c.Request.Context(), who, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewTransactionResponse(tx))
}
