package handler

import (
	"ramp-gateway/internal/adapter/http/dto"
	"ramp-gateway/internal/core/domain"
	"ramp-gateway/internal/core/ports"
	"ramp-gateway/pkg/response"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the operator transitions of the lifecycle. The
// lifecycle service checks the caller's capabilities.
type AdminHandler struct {
	lifecycle ports.LifecycleService
}

func NewAdminHandler(lifecycle ports.LifecycleService) *AdminHandler {
	return &AdminHandler{lifecycle: lifecycle}
}

// ConfirmPayment handles POST /api/v1/admin/transactions/:id/confirm-payment.
func (h *AdminHandler) ConfirmPayment(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.ConfirmPaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	paid, ok := parseOptionalAmount(c, "paid_amount", req.PaidAmount)
	if !ok {
		return
	}

	tx, err := h.lifecycle.ConfirmOnRampPayment(c.Request.Context(), ports.ConfirmPaymentRequest{
		Caller:         who,
		TransactionID:  id,
		ProofReference: req.PaymentReference,
		PaidFiatAmount: paid,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewTransactionResponse(tx))
}

// ConfirmDeposit handles POST /api/v1/admin/transactions/:id/confirm-deposit.
func (h *AdminHandler) ConfirmDeposit(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.ConfirmDepositRequest
	if !bindJSON(c, &req) {
		return
	}

	tx, err := h.lifecycle.ConfirmOffRampDeposit(c.Request.Context(), ports.ConfirmDepositRequest{
		Caller:        who,
		TransactionID: id,
		ChainDigest:   req.ChainDigest,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewTransactionResponse(tx))
}

// Complete handles POST /api/v1/admin/transactions/:id/complete. A payout the
// gateway has not settled yet leaves the transaction CONFIRMED and answers 202.
func (h *AdminHandler) Complete(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	tx, err := h.lifecycle.CompleteOffRamp(c.Request.Context(), who, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	writeSettlement(c, tx)
}

// Reject handles POST /api/v1/admin/transactions/:id/reject.
func (h *AdminHandler) Reject(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.RejectRequest
	if !bindJSON(c, &req) {
		return
	}

	tx, err := h.lifecycle.Reject(c.Request.Context(), who, id, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewTransactionResponse(tx))
}

// RefreshPayout handles POST /api/v1/admin/transactions/:id/refresh-payout.
func (h *AdminHandler) RefreshPayout(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	tx, err := h.lifecycle.RefreshPayoutStatus(c.Request.Context(), who, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	writeSettlement(c, tx)
}

func writeSettlement(c *gin.Context, tx *domain.Transaction) {
	if tx.Status == domain.TransactionStatusConfirmed {
		response.Accepted(c, dto.NewTransactionResponse(tx))
		return
	}
	response.OK(c, dto.NewTransactionResponse(tx))
}
