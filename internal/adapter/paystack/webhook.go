package paystack

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"ramp-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SignatureHeader carries the hex HMAC-SHA512 of the raw body keyed with the secret key.
const SignatureHeader = "x-paystack-signature"

// Webhook event names this service acts on.
const (
	EventChargeSuccess    = "charge.success"
	EventTransferSuccess  = "transfer.success"
	EventTransferFailed   = "transfer.failed"
	EventTransferReversed = "transfer.reversed"
)

// Event is a decoded webhook delivery.
type Event struct {
	Name      string
	ID        string // stable per delivery subject, used for de-duplication
	Charge    *ChargeEvent
	Transfer  *TransferEvent
	Supported bool
}

// ChargeEvent is an on-ramp payment received by Paystack.
type ChargeEvent struct {
	Reference     string
	TransactionID uuid.UUID       // from metadata.transaction_id
	Amount        decimal.Decimal // NGN
}

// TransferEvent is a payout outcome.
type TransferEvent struct {
	Reference string
	Status    domain.PayoutStatus
	Reason    string
}

type rawEvent struct {
	Event string `json:"event"`
	Data  struct {
		ID        json.Number     `json:"id"`
		Reference string          `json:"reference"`
		Amount    int64           `json:"amount"`
		Status    string          `json:"status"`
		Reason    string          `json:"reason"`
		Metadata  json.RawMessage `json:"metadata"`
	} `json:"data"`
}

// ParseEvent decodes a webhook body. Unknown event names decode with Supported=false.
func ParseEvent(body []byte) (*Event, error) {
	var raw rawEvent
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode paystack event: %w", err)
	}
	if raw.Event == "" {
		return nil, errors.New("decode paystack event: missing event name")
	}

	subject := raw.Data.ID.String()
	if subject == "" {
		subject = raw.Data.Reference
	}
	ev := &Event{Name: raw.Event, ID: raw.Event + ":" + subject}

	switch raw.Event {
	case EventChargeSuccess:
		txID, err := metadataTransactionID(raw.Data.Metadata)
		if err != nil {
			return nil, err
		}
		ev.Charge = &ChargeEvent{
			Reference:     raw.Data.Reference,
			TransactionID: txID,
			Amount:        decimal.NewFromInt(raw.Data.Amount).Div(koboPerNaira),
		}
		ev.Supported = true
	case EventTransferSuccess, EventTransferFailed, EventTransferReversed:
		status := MapTransferStatus(strings.TrimPrefix(raw.Event, "transfer."))
		ev.Transfer = &TransferEvent{
			Reference: raw.Data.Reference,
			Status:    status,
			Reason:    raw.Data.Reason,
		}
		ev.Supported = true
	}
	if ev.Supported && raw.Data.Reference == "" {
		return nil, fmt.Errorf("decode paystack event %s: missing reference", raw.Event)
	}
	return ev, nil
}

// metadataTransactionID reads metadata.transaction_id. Paystack sends metadata
// either as an object or as a JSON-encoded string.
func metadataTransactionID(raw json.RawMessage) (uuid.UUID, error) {
	if len(raw) == 0 {
		return uuid.Nil, errors.New("charge event: missing metadata")
	}
	if raw[0] == '"' {
		s, err := strconv.Unquote(string(raw))
		if err != nil {
			return uuid.Nil, fmt.Errorf("charge event: metadata: %w", err)
		}
		raw = json.RawMessage(s)
	}
	var md struct {
		TransactionID string `json:"transaction_id"`
	}
	if err := json.Unmarshal(raw, &md); err != nil {
		return uuid.Nil, fmt.Errorf("charge event: metadata: %w", err)
	}
	id, err := uuid.Parse(md.TransactionID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("charge event: metadata.transaction_id: %w", err)
	}
	return id, nil
}
