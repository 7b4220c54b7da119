package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"ramp-gateway/internal/core/domain"
	"ramp-gateway/internal/core/ports"

	"github.com/rs/zerolog"
)

// EventTreasuryAlert is the event_type of alert webhooks.
const EventTreasuryAlert = "TREASURY_ALERT"

// AlertSignatureHeader carries the hex HMAC-SHA512 of the request body.
const AlertSignatureHeader = "X-Ramp-Signature"

// AlertPayload is the JSON body posted to the operator webhook.
type AlertPayload struct {
	EventType string               `json:"event_type"`
	Alert     domain.TreasuryAlert `json:"alert"`
	Timestamp int64                `json:"timestamp"`
}

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// webhookAlertNotifier implements ports.AlertNotifier.
type webhookAlertNotifier struct {
	url         string
	secret      string
	sigSvc      ports.SignatureService
	httpClient  HTTPClient
	retryDelays []time.Duration
	log         zerolog.Logger
}

// NewAlertNotifier posts alerts to url. An empty url disables delivery.
func NewAlertNotifier(
	url, secret string,
	sigSvc ports.SignatureService,
	httpClient HTTPClient,
	retryDelays []time.Duration,
	log zerolog.Logger,
) ports.AlertNotifier {
	return &webhookAlertNotifier{
		url:         url,
		secret:      secret,
		sigSvc:      sigSvc,
		httpClient:  httpClient,
		retryDelays: retryDelays,
		log:         log,
	}
}

// Notify sends the alert asynchronously with retries. Failures are only logged.
func (n *webhookAlertNotifier) Notify(_ context.Context, alert *domain.TreasuryAlert) {
	if n.url == "" {
		n.log.Debug().Str("alert_id", alert.ID.String()).Msg("alert webhook: no URL configured, skipping")
		return
	}

	body, err := json.Marshal(AlertPayload{
		EventType: EventTreasuryAlert,
		Alert:     *alert,
		Timestamp: time.Now().Unix(),
	})
	if err != nil {
		n.log.Error().Err(err).Str("alert_id", alert.ID.String()).Msg("alert webhook: failed to marshal payload")
		return
	}
	signature := n.sigSvc.Sign(n.secret, body)

	go n.deliverWithRetries(body, signature, alert.ID.String())
}

func (n *webhookAlertNotifier) deliverWithRetries(body []byte, signature, alertID string) {
	for attempt := 0; attempt <= len(n.retryDelays); attempt++ {
		if attempt > 0 {
			time.Sleep(n.retryDelays[attempt-1])
		}

		req, err := http.NewRequest(http.MethodPost, n.url, bytes.NewReader(body))
		if err != nil {
			n.log.Error().Err(err).Str("alert_id", alertID).Msg("alert webhook: failed to create request")
			return
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(AlertSignatureHeader, signature)

		resp, err := n.httpClient.Do(req)
		if err != nil {
			n.log.Warn().Err(err).Str("alert_id", alertID).Int("attempt", attempt+1).Msg("alert webhook: delivery failed")
			continue
		}
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			n.log.Info().Str("alert_id", alertID).Int("attempt", attempt+1).Int("status", resp.StatusCode).Msg("alert webhook: delivered")
			return
		}

		n.log.Warn().Str("alert_id", alertID).Int("attempt", attempt+1).Int("status", resp.StatusCode).Msg("alert webhook: non-2xx response, retrying")
	}

	n.log.Error().Str("alert_id", alertID).Msg("alert webhook: all retry attempts exhausted")
}
