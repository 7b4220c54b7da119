package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ramp-gateway/internal/core/domain"
	"ramp-gateway/internal/core/ports/mocks"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestAuditDenied_RecordsForbiddenWrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAudit := mocks.NewMockAuditService(ctrl)

	var got *domain.AuditLog
	mockAudit.EXPECT().Log(gomock.Any(), gomock.Any()).Do(func(_ context.Context, entry *domain.AuditLog) {
		got = entry
	})

	r := gin.New()
	r.Use(AuditDenied(mockAudit))
	r.POST("/api/v1/admin/transactions/:id/complete", func(c *gin.Context) {
		c.Set(CtxCaller, domain.Caller{Subject: "0xnotadmin"})
		c.JSON(http.StatusForbidden, gin.H{"error_code": "AUTH_003"})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/admin/transactions/abc/complete", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
	if assert.NotNil(t, got) {
		assert.Equal(t, domain.ActionAccessDenied, got.Action)
		assert.Equal(t, "0xnotadmin", got.Actor)
		assert.Equal(t, "transaction", got.ResourceType)
		assert.Equal(t, "abc", got.ResourceID)
		assert.WithinDuration(t, time.Now(), got.CreatedAt, time.Minute)
	}
}

func TestAuditDenied_SkipsSuccessAndReads(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAudit := mocks.NewMockAuditService(ctrl)
	// No expectations: Log must not be called.

	r := gin.New()
	r.Use(AuditDenied(mockAudit))
	r.POST("/api/v1/admin/limits", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/v1/admin/stats", func(c *gin.Context) { c.Status(http.StatusForbidden) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/admin/limits", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/stats", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestResourceFor(t *testing.T) {
	assert.Equal(t, "transaction_limits", resourceFor("/api/v1/admin/limits"))
	assert.Equal(t, "treasury_alert", resourceFor("/api/v1/admin/alerts/:id/acknowledge"))
	assert.Equal(t, "treasury", resourceFor("/api/v1/admin/treasury/monitor"))
	assert.Equal(t, "transaction", resourceFor("/api/v1/admin/transactions/:id/reject"))
}
