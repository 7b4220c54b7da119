package domain

import (
	"time"

	"github.com/google/uuid"
)

// IdempotencyLog stores the result of a retried action so redeliveries replay it.
type IdempotencyLog struct {
	Key           string    `json:"key"` // Format: "ACTION:transaction_id:reference"
	TransactionID uuid.UUID `json:"transaction_id"`
	ResponseJSON  []byte    `json:"response_json"`
	CreatedAt     time.Time `json:"created_at"`
}

// BuildIdempotencyKey constructs the standard key format.
func BuildIdempotencyKey(action Action, txID uuid.UUID, reference string) string {
	return string(action) + ":" + txID.String() + ":" + reference
}
