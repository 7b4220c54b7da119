package handler

import (
	"context"
	"errors"
	"time"

	"ramp-gateway/internal/adapter/http/dto"
	"ramp-gateway/internal/adapter/http/middleware"
	"ramp-gateway/internal/adapter/paystack"
	"ramp-gateway/internal/core/domain"
	"ramp-gateway/internal/core/ports"
	"ramp-gateway/pkg/apperror"
	"ramp-gateway/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	webhookSource    = "paystack"
	webhookDedupTTL  = 72 * time.Hour
	webhookUnhandled = "event has no matching handler"
)

// WebhookHandler applies Paystack deliveries to the lifecycle. The body has
// already been authenticated by middleware.PaystackSignature.
type WebhookHandler struct {
	lifecycle ports.LifecycleService
	dedup     ports.EventDeduplicator
	principal domain.Caller
	log       zerolog.Logger
}

func NewWebhookHandler(lifecycle ports.LifecycleService, dedup ports.EventDeduplicator, principal string, log zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{
		lifecycle: lifecycle,
		dedup:     dedup,
		principal: domain.Caller{Subject: principal},
		log:       log.With().Str("component", "paystack_webhook").Logger(),
	}
}

// Paystack handles POST /api/v1/webhooks/paystack.
//
// Business rejections are acknowledged so the gateway stops redelivering;
// transient failures answer 5xx and clear the dedup record so the retry is
// processed.
func (h *WebhookHandler) Paystack(c *gin.Context) {
	raw, _ := c.Get(middleware.CtxWebhookBody)
	body, _ := raw.([]byte)

	ev, err := paystack.ParseEvent(body)
	if err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	if !ev.Supported {
		h.log.Debug().Str("event", ev.Name).Msg("ignoring webhook event")
		response.OK(c, dto.WebhookAck{Received: true, Ignored: true, Event: ev.Name})
		return
	}

	ctx := c.Request.Context()
	first, err := h.dedup.FirstSeen(ctx, webhookSource, ev.ID, webhookDedupTTL)
	if err != nil {
		// The lifecycle is idempotent on its own; dedup only saves work.
		h.log.Warn().Err(err).Str("event_id", ev.ID).Msg("webhook dedup unavailable")
		first = true
	}
	if !first {
		response.OK(c, dto.WebhookAck{Received: true, Duplicate: true, Event: ev.Name})
		return
	}

	if err := h.apply(ctx, ev); err != nil {
		if isTransient(err) {
			if ferr := h.dedup.Forget(ctx, webhookSource, ev.ID); ferr != nil {
				h.log.Warn().Err(ferr).Str("event_id", ev.ID).Msg("failed to clear webhook dedup record")
			}
			h.log.Error().Err(err).Str("event_id", ev.ID).Msg("webhook processing failed, awaiting redelivery")
			response.Error(c, err)
			return
		}
		h.log.Warn().Err(err).Str("event_id", ev.ID).Msg("webhook rejected by lifecycle")
		response.OK(c, dto.WebhookAck{Received: true, Ignored: true, Event: ev.Name})
		return
	}

	response.OK(c, dto.WebhookAck{Received: true, Event: ev.Name})
}

func (h *WebhookHandler) apply(ctx context.Context, ev *paystack.Event) error {
	switch {
	case ev.Charge != nil:
		amount := ev.Charge.Amount
		_, err := h.lifecycle.ConfirmOnRampPayment(ctx, ports.ConfirmPaymentRequest{
			Caller:         h.principal,
			TransactionID:  ev.Charge.TransactionID,
			ProofReference: ev.Charge.Reference,
			PaidFiatAmount: &amount,
		})
		return err
	case ev.Transfer != nil:
		_, err := h.lifecycle.SettleOffRampPayout(ctx, h.principal, ev.Transfer.Reference, ev.Transfer.Status, ev.Transfer.Reason)
		return err
	}
	return apperror.Validation(webhookUnhandled)
}

func isTransient(err error) bool {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		return true
	}
	return appErr.Kind == apperror.KindInternal || appErr.Kind == apperror.KindUpstream
}
