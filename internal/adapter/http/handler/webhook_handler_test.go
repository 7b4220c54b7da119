package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"ramp-gateway/internal/adapter/http/middleware"
	"ramp-gateway/internal/core/domain"
	"ramp-gateway/internal/core/ports"
	"ramp-gateway/internal/core/ports/mocks"
	"ramp-gateway/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const webhookPrincipal = "system:paystack-webhook"

func webhookContext(body string) (*gin.Context, *httptest.ResponseRecorder) {
	c, w := newContext(http.MethodPost, "/api/v1/webhooks/paystack", body, "")
	c.Set(middleware.CtxWebhookBody, []byte(body))
	return c, w
}

func chargeBody(txID uuid.UUID) string {
	return `{"event":"charge.success","data":{"id":302961,"reference":"PSK_REF_1","amount":1040000,"status":"success",
		"metadata":{"transaction_id":"` + txID.String() + `"}}}`
}

func TestWebhook_ChargeSuccessConfirmsOnRamp(t *testing.T) {
	ctrl := gomock.NewController(t)
	lifecycle := mocks.NewMockLifecycleService(ctrl)
	dedup := mocks.NewMockEventDeduplicator(ctrl)
	h := NewWebhookHandler(lifecycle, dedup, webhookPrincipal, zerolog.Nop())

	txID := uuid.New()
	dedup.EXPECT().FirstSeen(gomock.Any(), "paystack", "charge.success:302961", webhookDedupTTL).Return(true, nil)
	lifecycle.EXPECT().ConfirmOnRampPayment(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req ports.ConfirmPaymentRequest) (*domain.Transaction, error) {
			assert.Equal(t, webhookPrincipal, req.Caller.Subject)
			assert.Equal(t, txID, req.TransactionID)
			assert.Equal(t, "PSK_REF_1", req.ProofReference)
			require.NotNil(t, req.PaidFiatAmount)
			assert.True(t, dec("10400").Equal(*req.PaidFiatAmount))
			return sampleTx(domain.TransactionStatusCompleted), nil
		})

	c, w := webhookContext(chargeBody(txID))
	h.Paystack(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, true, data["received"])
	assert.Nil(t, data["duplicate"])
}

func TestWebhook_TransferSettlesPayout(t *testing.T) {
	ctrl := gomock.NewController(t)
	lifecycle := mocks.NewMockLifecycleService(ctrl)
	dedup := mocks.NewMockEventDeduplicator(ctrl)
	h := NewWebhookHandler(lifecycle, dedup, webhookPrincipal, zerolog.Nop())

	dedup.EXPECT().FirstSeen(gomock.Any(), "paystack", gomock.Any(), gomock.Any()).Return(true, nil)
	lifecycle.EXPECT().SettleOffRampPayout(gomock.Any(), domain.Caller{Subject: webhookPrincipal}, "TRF_abc", domain.PayoutFailed, "Account closed").
		Return(sampleTx(domain.TransactionStatusFailed), nil)

	c, w := webhookContext(`{"event":"transfer.failed","data":{"id":77,"reference":"TRF_abc","reason":"Account closed"}}`)
	h.Paystack(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWebhook_DuplicateIsAcknowledged(t *testing.T) {
	ctrl := gomock.NewController(t)
	lifecycle := mocks.NewMockLifecycleService(ctrl)
	dedup := mocks.NewMockEventDeduplicator(ctrl)
	h := NewWebhookHandler(lifecycle, dedup, webhookPrincipal, zerolog.Nop())

	dedup.EXPECT().FirstSeen(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
	// No lifecycle call.

	c, w := webhookContext(chargeBody(uuid.New()))
	h.Paystack(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeData(t, w)["duplicate"])
}

func TestWebhook_DedupOutageStillProcesses(t *testing.T) {
	ctrl := gomock.NewController(t)
	lifecycle := mocks.NewMockLifecycleService(ctrl)
	dedup := mocks.NewMockEventDeduplicator(ctrl)
	h := NewWebhookHandler(lifecycle, dedup, webhookPrincipal, zerolog.Nop())

	dedup.EXPECT().FirstSeen(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, errors.New("redis down"))
	lifecycle.EXPECT().ConfirmOnRampPayment(gomock.Any(), gomock.Any()).Return(sampleTx(domain.TransactionStatusCompleted), nil)

	c, w := webhookContext(chargeBody(uuid.New()))
	h.Paystack(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWebhook_TransientFailureForgetsEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	lifecycle := mocks.NewMockLifecycleService(ctrl)
	dedup := mocks.NewMockEventDeduplicator(ctrl)
	h := NewWebhookHandler(lifecycle, dedup, webhookPrincipal, zerolog.Nop())

	dedup.EXPECT().FirstSeen(gomock.Any(), "paystack", "charge.success:302961", gomock.Any()).Return(true, nil)
	lifecycle.EXPECT().ConfirmOnRampPayment(gomock.Any(), gomock.Any()).
		Return(nil, apperror.ErrDatabaseError(errors.New("connection reset")))
	dedup.EXPECT().Forget(gomock.Any(), "paystack", "charge.success:302961").Return(nil)

	c, w := webhookContext(chargeBody(uuid.New()))
	h.Paystack(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestWebhook_BusinessRejectionIsAcknowledged(t *testing.T) {
	ctrl := gomock.NewController(t)
	lifecycle := mocks.NewMockLifecycleService(ctrl)
	dedup := mocks.NewMockEventDeduplicator(ctrl)
	h := NewWebhookHandler(lifecycle, dedup, webhookPrincipal, zerolog.Nop())

	dedup.EXPECT().FirstSeen(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	lifecycle.EXPECT().ConfirmOnRampPayment(gomock.Any(), gomock.Any()).
		Return(nil, apperror.ErrPaymentMismatch("Paid amount does not match"))

	c, w := webhookContext(chargeBody(uuid.New()))
	h.Paystack(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeData(t, w)["ignored"])
}

func TestWebhook_UnsupportedEventIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := NewWebhookHandler(mocks.NewMockLifecycleService(ctrl), mocks.NewMockEventDeduplicator(ctrl), webhookPrincipal, zerolog.Nop())

	c, w := webhookContext(`{"event":"subscription.create","data":{"id":1}}`)
	h.Paystack(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeData(t, w)["ignored"])
}

func TestWebhook_MalformedBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := NewWebhookHandler(mocks.NewMockLifecycleService(ctrl), mocks.NewMockEventDeduplicator(ctrl), webhookPrincipal, zerolog.Nop())

	c, w := webhookContext(`{"event":"charge.success","data":{"reference":"PSK_REF_1"}}`)
	h.Paystack(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIsTransient(t *testing.T) {
	assert.True(t, isTransient(errors.New("plain")))
	assert.True(t, isTransient(apperror.ErrPaymentGatewayUnavailable(errors.New("503"))))
	assert.False(t, isTransient(apperror.ErrNotFound("Transaction")))
	assert.False(t, isTransient(apperror.ErrInvalidTransition("FAILED", "COMPLETED")))
}
