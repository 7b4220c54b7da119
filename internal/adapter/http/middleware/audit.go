package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"ramp-gateway/internal/core/domain"
	"ramp-gateway/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuditDenied records write requests the services refused with 403.
// Successful actions are audited by the services themselves.
func AuditDenied(auditSvc ports.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Status() != http.StatusForbidden {
			return
		}
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			return
		}

		actor := "anonymous"
		if caller, ok := CallerFrom(c); ok {
			actor = caller.Subject
		}

		details, _ := json.Marshal(map[string]interface{}{
			"method": c.Request.Method,
			"route":  c.FullPath(),
		})

		auditSvc.Log(c.Request.Context(), &domain.AuditLog{
			ID:           uuid.New(),
			Actor:        actor,
			Action:       domain.ActionAccessDenied,
			ResourceType: resourceFor(c.FullPath()),
			ResourceID:   c.Param("id"),
			IPAddress:    c.ClientIP(),
			Details:      string(details),
			CreatedAt:    time.Now().UTC(),
		})
	}
}

func resourceFor(route string) string {
	switch route {
	case "/api/v1/admin/limits":
		return "transaction_limits"
	case "/api/v1/admin/alerts/:id/acknowledge":
		return "treasury_alert"
	case "/api/v1/admin/treasury/monitor":
		return "treasury"
	}
	return "transaction"
}
