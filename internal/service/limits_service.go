package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"ramp-gateway/internal/core/domain"
	"ramp-gateway/internal/core/ports"
	"ramp-gateway/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// LimitsServiceImpl implements ports.LimitsService.
type LimitsServiceImpl struct {
	repo       ports.LimitsRepository
	transactor ports.DBTransactor
	validator  ports.LimitValidator
	authz      ports.Authorizer
	audit      ports.AuditService
	log        zerolog.Logger
	now        func() time.Time
}

func NewLimitsService(
	repo ports.LimitsRepository,
	transactor ports.DBTransactor,
	validator ports.LimitValidator,
	authz ports.Authorizer,
	audit ports.AuditService,
	log zerolog.Logger,
) *LimitsServiceImpl {
	return &LimitsServiceImpl{
		repo:       repo,
		transactor: transactor,
		validator:  validator,
		authz:      authz,
		audit:      audit,
		log:        log,
		now:        time.Now,
	}
}

// GetActive returns the active limits, or the built-in defaults when none were ever stored.
func (s *LimitsServiceImpl) GetActive(ctx context.Context) (*domain.TransactionLimits, error) {
	limits, err := s.repo.GetActive(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load active limits: %w", err))
	}
	if limits == nil {
		s.log.Warn().Msg("no active limits stored, using defaults")
		def := domain.DefaultTransactionLimits()
		def.Version = 0
		return &def, nil
	}
	return limits, nil
}

// Update stores limits as version expectedVersion+1. It fails with STATE_002 if
// another admin activated a version in between.
func (s *LimitsServiceImpl) Update(ctx context.Context, caller domain.Caller, expectedVersion int, limits domain.TransactionLimits) (*domain.TransactionLimits, error) {
	if !s.authz.IsAuthorized(ctx, caller, domain.ActionUpdateLimits) {
		return nil, apperror.ErrForbidden(string(domain.ActionUpdateLimits))
	}
	if err := limits.Validate(); err != nil {
		return nil, apperror.ErrInvalidLimits(err.Error())
	}

	current, err := s.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	if current.Version != expectedVersion {
		return nil, apperror.ErrConcurrentModification().
			WithDetail("current_version", current.Version)
	}

	limits.Version = expectedVersion + 1
	limits.UpdatedBy = caller.Subject
	limits.CreatedAt = s.now().UTC()

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.repo.Activate(ctx, dbTx, &limits, expectedVersion); err != nil {
		if errors.Is(err, domain.ErrVersionConflict) {
			return nil, apperror.ErrConcurrentModification()
		}
		return nil, apperror.InternalError(fmt.Errorf("activate limits: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit: %w", err))
	}

	s.log.Info().Int("version", limits.Version).Bool("active", limits.IsActive).Str("caller", caller.Subject).Msg("transaction limits updated")
	logAudit(ctx, s.audit, newAuditEntry(caller, domain.ActionUpdateLimits, "transaction_limits", strconv.Itoa(limits.Version), map[string]any{
		"previous_version": expectedVersion,
		"is_active":        limits.IsActive,
	}))
	return &limits, nil
}

// Check validates an amount against the active limits.
func (s *LimitsServiceImpl) Check(ctx context.Context, direction domain.Direction, token domain.Token, amount decimal.Decimal, fiatAmount *decimal.Decimal) (domain.LimitCheckResult, error) {
	limits, err := s.GetActive(ctx)
	if err != nil {
		return domain.LimitCheckResult{}, err
	}
	return s.validator.Validate(limits, direction, token, amount, fiatAmount), nil
}
