package handler

import (
	"math"
	"time"

	"ramp-gateway/internal/adapter/http/dto"
	"ramp-gateway/internal/core/domain"
	"ramp-gateway/internal/core/ports"
	"ramp-gateway/pkg/apperror"
	"ramp-gateway/pkg/response"

	"github.com/gin-gonic/gin"
)

// DashboardHandler handles admin stats & transaction list endpoints.
type DashboardHandler struct {
	reportingSvc ports.ReportingService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(reportingSvc ports.ReportingService) *DashboardHandler {
	return &DashboardHandler{reportingSvc: reportingSvc}
}

// GetStats handles GET /api/v1/admin/stats.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}

	period := c.DefaultQuery("period", "all")
	stats, err := h.reportingSvc.GetDashboardStats(c.Request.Context(), who, period)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.NewDashboardStatsResponse(period, stats))
}

// ListTransactions handles GET /api/v1/admin/transactions.
func (h *DashboardHandler) ListTransactions(c *gin.Context) {
	who, ok := caller(c)
	if !ok {
		return
	}

	var q dto.TransactionListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	if q.Page == 0 {
		q.Page = 1
	}
	if q.PageSize == 0 {
		q.PageSize = 20
	}

	params := ports.TransactionListParams{
		UserAddress: q.UserAddress,
		Page:        q.Page,
		PageSize:    q.PageSize,
	}
	if q.Status != "" {
		status := domain.TransactionStatus(q.Status)
		params.Status = &status
	}
	if q.Direction != "" {
		direction := domain.Direction(q.Direction)
		params.Direction = &direction
	}
	if q.Token != "" {
		token, ok := parseToken(c, q.Token)
		if !ok {
			return
		}
		params.Token = &token
	}
	// Dates are validated by the binding; "to" covers the whole day.
	if q.From != "" {
		from, _ := time.Parse(time.DateOnly, q.From)
		params.From = &from
	}
	if q.To != "" {
		to, _ := time.Parse(time.DateOnly, q.To)
		to = to.Add(24*time.Hour - time.Nanosecond)
		params.To = &to
	}

	txns, total, err := h.reportingSvc.ListTransactions(c.Request.Context(), who, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.TransactionResponse, 0, len(txns))
	for i := range txns {
		items = append(items, dto.NewTransactionResponse(&txns[i]))
	}

	totalPages := int(math.Ceil(float64(total) / float64(q.PageSize)))

	response.OK(c, dto.TransactionListResponse{
		Items:      items,
		Total:      total,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: totalPages,
	})
}
