package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog records a single admin or system action.
type AuditLog struct {
	ID           uuid.UUID `json:"id"`
	Actor        string    `json:"actor"`
	Action       Action    `json:"action"`
	ResourceType string    `json:"resource_type"`
	ResourceID   string    `json:"resource_id,omitempty"`
	Details      string    `json:"details,omitempty"` // JSON string
	IPAddress    string    `json:"ip_address"`
	CreatedAt    time.Time `json:"created_at"`
}
