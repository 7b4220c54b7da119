package handler

import (
	"ramp-gateway/internal/adapter/http/dto"
	"ramp-gateway/internal/core/domain"
	"ramp-gateway/internal/core/ports"
	"ramp-gateway/pkg/apperror"
	"ramp-gateway/pkg/response"

	"github.com/gin-gonic/gin"
)

// TreasuryHandler serves alert management, on-demand monitor runs and
// limits administration.
type TreasuryHandler struct {
	monitor ports.TreasuryMonitor
	limits  ports.LimitsService
}

func NewTreasuryHandler(monitor ports.TreasuryMonitor, limits ports.LimitsService) *TreasuryHandler {
	return &TreasuryHandler{monitor: monitor, limits: limits}
}

// ListAlerts handles GET /api/v1/admin/alerts.
func (h *TreasuryHandler) ListAlerts(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	var q dto.AlertListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	params := ports.AlertListParams{Acknowledged: q.Acknowledged, Limit: q.Limit}
	if q.Type != "" {
		alertType := domain.AlertType(q.Type)
		params.Type = &alertType
	}

	alerts, err := h.monitor.ListAlerts(c.Request.Context(), who, params)
	if err != nil {
		response.Error(c, err)
		return
	}
	if alerts == nil {
		alerts = []domain.TreasuryAlert{}
	}
	response.OK(c, dto.AlertListResponse{Items: alerts, Count: len(alerts)})
}

// AcknowledgeAlert handles POST /api/v1/admin/alerts/:id/acknowledge.
func (h *TreasuryHandler) AcknowledgeAlert(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	alert, err := h.monitor.AcknowledgeAlert(c.Request.Context(), who, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, alert)
}

// RunMonitor handles POST /api/v1/admin/treasury/monitor.
func (h *TreasuryHandler) RunMonitor(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}

	report, err := h.monitor.Run(c.Request.Context(), who)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, report)
}

// UpdateLimits handles PUT /api/v1/admin/limits.
func (h *TreasuryHandler) UpdateLimits(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}
	var req dto.UpdateLimitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	limits, err := h.limits.Update(c.Request.Context(), who, req.ExpectedVersion, domain.TransactionLimits{
		OnRamp:  req.OnRamp,
		OffRamp: req.OffRamp,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, limits)
}
