package handler

import (
	"ramp-gateway/internal/adapter/http/dto"
	"ramp-gateway/internal/core/domain"
	"ramp-gateway/internal/core/ports"
	"ramp-gateway/pkg/response"

	"github.com/gin-gonic/gin"
)

// MarketHandler serves the read-only pre-trade endpoints: quotes, active
// limits, and validation previews that never create a transaction.
type MarketHandler struct {
	prices ports.PriceService
	limits ports.LimitsService
	wallet ports.WalletValidator
}

func NewMarketHandler(prices ports.PriceService, limits ports.LimitsService, wallet ports.WalletValidator) *MarketHandler {
	return &MarketHandler{prices: prices, limits: limits, wallet: wallet}
}

// GetPrice handles GET /api/v1/prices/:token.
func (h *MarketHandler) GetPrice(c *gin.Context) {
	token, ok := parseToken(c, c.Param("token"))
	if !ok {
		return
	}

	quote, err := h.prices.GetQuote(c.Request.Context(), token)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewPriceQuoteResponse(quote))
}

// GetLimits handles GET /api/v1/limits.
func (h *MarketHandler) GetLimits(c *gin.Context) {
	limits, err := h.limits.GetActive(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, limits)
}

// ValidateOffRamp handles POST /api/v1/validation/off-ramp. The result is
// returned with 200 whether or not the wallet can proceed.
func (h *MarketHandler) ValidateOffRamp(c *gin.Context) {
	var req dto.OffRampValidationRequest
	if !bindJSON(c, &req) {
		return
	}
	token, ok := parseToken(c, req.Token)
	if !ok {
		return
	}
	amount, ok := parseAmount(c, "amount", req.Amount)
	if !ok {
		return
	}

	res := h.wallet.ValidateForOffRamp(c.Request.Context(), req.Address, token, amount)
	response.OK(c, res)
}

// ValidateLimits handles POST /api/v1/validation/limits.
func (h *MarketHandler) ValidateLimits(c *gin.Context) {
	var req dto.LimitValidationRequest
	if !bindJSON(c, &req) {
		return
	}
	token, ok := parseToken(c, req.Token)
	if !ok {
		return
	}
	amount, ok := parseAmount(c, "amount", req.Amount)
	if !ok {
		return
	}
	fiat, ok := parseOptionalAmount(c, "fiat_amount", req.FiatAmount)
	if !ok {
		return
	}

	res, err := h.limits.Check(c.Request.Context(), domain.Direction(req.Direction), token, amount, fiat)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}
