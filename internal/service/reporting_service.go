package service

import (
	"context"
	"time"

	"ramp-gateway/internal/core/domain"
	"ramp-gateway/internal/core/ports"
	"ramp-gateway/pkg/apperror"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// reportingService implements ports.ReportingService.
type reportingService struct {
	txRepo ports.TransactionRepository
	authz  ports.Authorizer
	now    func() time.Time
}

// NewReportingService creates a new reporting service.
func NewReportingService(txRepo ports.TransactionRepository, authz ports.Authorizer) ports.ReportingService {
	return &reportingService{
		txRepo: txRepo,
		authz:  authz,
		now:    time.Now,
	}
}

// GetDashboardStats returns aggregated transaction stats over period (day, week, month, all).
func (s *reportingService) GetDashboardStats(ctx context.Context, caller domain.Caller, period string) (*ports.TransactionStats, error) {
	if !s.authz.IsAuthorized(ctx, caller, domain.ActionViewReports) {
		return nil, apperror.ErrForbidden(string(domain.ActionViewReports))
	}

	var since *time.Time
	now := s.now().UTC()
	switch period {
	case "day":
		t := now.AddDate(0, 0, -1)
		since = &t
	case "week":
		t := now.AddDate(0, 0, -7)
		since = &t
	case "month":
		t := now.AddDate(0, -1, 0)
		since = &t
	case "all", "":
		// No time filter
	default:
		return nil, apperror.Validation("invalid period: must be day, week, month, or all")
	}

	stats, err := s.txRepo.GetStats(ctx, since)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	return stats, nil
}

// ListTransactions returns a paginated list of transactions.
func (s *reportingService) ListTransactions(ctx context.Context, caller domain.Caller, params ports.TransactionListParams) ([]domain.Transaction, int64, error) {
	if !s.authz.IsAuthorized(ctx, caller, domain.ActionViewReports) {
		return nil, 0, apperror.ErrForbidden(string(domain.ActionViewReports))
	}

	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 {
		params.PageSize = defaultPageSize
	}
	if params.PageSize > maxPageSize {
		params.PageSize = maxPageSize
	}

	txns, total, err := s.txRepo.List(ctx, params)
	if err != nil {
		return nil, 0, apperror.InternalError(err)
	}
	return txns, total, nil
}
