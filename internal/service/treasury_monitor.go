package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"ramp-gateway/internal/core/domain"
	"ramp-gateway/internal/core/ports"
	"ramp-gateway/pkg/apperror"
	"ramp-gateway/pkg/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	defaultAlertListLimit = 50
	maxAlertListLimit     = 200

	failedTransactionsCheck = "FAILED_TRANSACTIONS"
)

// MonitorConfig tunes the treasury monitor.
type MonitorConfig struct {
	Thresholds       map[string]domain.Thresholds // keyed by currency (SUI, USDC, USDT, NGN)
	FailureWindow    time.Duration
	FailureThreshold int
	MaxDriftRatio    decimal.Decimal // zero disables reconciliation
	TreasuryAddress  string          // on-chain treasury wallet; empty disables token reconciliation
}

// TreasuryMonitorImpl implements ports.TreasuryMonitor.
type TreasuryMonitorImpl struct {
	alerts   ports.AlertRepository
	ledger   ports.TreasuryRepository
	txRepo   ports.TransactionRepository
	oracle   ports.BalanceOracle
	gateway  ports.PaymentGateway
	notifier ports.AlertNotifier
	authz    ports.Authorizer
	audit    ports.AuditService
	cfg      MonitorConfig
	log      zerolog.Logger
	now      func() time.Time
}

// NewTreasuryMonitor creates the monitor. oracle, gateway and notifier may be
// nil, which turns off token reconciliation, NGN reconciliation and
// notifications respectively.
func NewTreasuryMonitor(
	alerts ports.AlertRepository,
	ledger ports.TreasuryRepository,
	txRepo ports.TransactionRepository,
	oracle ports.BalanceOracle,
	gateway ports.PaymentGateway,
	notifier ports.AlertNotifier,
	authz ports.Authorizer,
	audit ports.AuditService,
	cfg MonitorConfig,
	log zerolog.Logger,
) *TreasuryMonitorImpl {
	if cfg.FailureWindow <= 0 {
		cfg.FailureWindow = time.Hour
	}
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 3
	}
	return &TreasuryMonitorImpl{
		alerts:   alerts,
		ledger:   ledger,
		txRepo:   txRepo,
		oracle:   oracle,
		gateway:  gateway,
		notifier: notifier,
		authz:    authz,
		audit:    audit,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
	}
}

type checkOutcome struct {
	created []domain.TreasuryAlert
	skipped int
	err     error
}

// Run evaluates every configured currency plus the failed-transaction rate.
// A failing check is recorded in the report and never stops the others.
func (m *TreasuryMonitorImpl) Run(ctx context.Context, caller domain.Caller) (*ports.MonitorReport, error) {
	if !m.authz.IsAuthorized(ctx, caller, domain.ActionRunMonitor) {
		return nil, apperror.ErrForbidden(string(domain.ActionRunMonitor))
	}

	now := m.now().UTC()
	currencies := make([]string, 0, len(m.cfg.Thresholds))
	for c := range m.cfg.Thresholds {
		currencies = append(currencies, c)
	}
	sort.Strings(currencies)

	var (
		mu       sync.Mutex
		outcomes = make(map[string]checkOutcome, len(currencies)+1)
		g        errgroup.Group
	)
	record := func(name string, o checkOutcome) {
		mu.Lock()
		outcomes[name] = o
		mu.Unlock()
	}
	for _, currency := range currencies {
		g.Go(func() error {
			record(currency, m.checkCurrency(ctx, currency, now))
			return nil
		})
	}
	g.Go(func() error {
		record(failedTransactionsCheck, m.checkFailedTransactions(ctx, now))
		return nil
	})
	_ = g.Wait()

	report := &ports.MonitorReport{
		Created:  []domain.TreasuryAlert{},
		Failures: map[string]string{},
		RanAt:    now,
	}
	for _, name := range append(currencies, failedTransactionsCheck) {
		o := outcomes[name]
		report.Created = append(report.Created, o.created...)
		report.Skipped += o.skipped
		if o.err != nil {
			report.Failures[name] = o.err.Error()
		}
	}

	result := "ok"
	if len(report.Failures) > 0 {
		result = "partial"
	}
	metrics.MonitorRuns.WithLabelValues(result).Inc()
	m.log.Info().
		Int("created", len(report.Created)).
		Int("skipped", report.Skipped).
		Int("failures", len(report.Failures)).
		Str("caller", caller.Subject).
		Msg("treasury monitor run finished")
	logAudit(ctx, m.audit, newAuditEntry(caller, domain.ActionRunMonitor, "treasury", "monitor", map[string]any{
		"created":  len(report.Created),
		"failures": report.Failures,
	}))

	return report, nil
}

func (m *TreasuryMonitorImpl) checkCurrency(ctx context.Context, currency string, now time.Time) checkOutcome {
	var out checkOutcome

	bal, err := m.ledger.GetBalance(ctx, currency)
	if err != nil {
		out.err = fmt.Errorf("read ledger balance: %w", err)
		m.log.Warn().Err(err).Str("currency", currency).Msg("treasury check failed")
		return out
	}
	if bal == nil {
		out.err = fmt.Errorf("no ledger balance recorded for %s", currency)
		m.log.Warn().Str("currency", currency).Msg("treasury check skipped, no ledger row")
		return out
	}

	if breach, ok := m.cfg.Thresholds[currency].Classify(bal.Available); ok {
		m.raise(ctx, &out, &domain.TreasuryAlert{
			Type:      breach.Type,
			Severity:  breach.Severity,
			Currency:  currency,
			Amount:    bal.Available,
			Threshold: breach.Threshold,
			Message:   balanceMessage(currency, breach, bal.Available),
			CreatedAt: now,
		})
	}

	if err := m.reconcile(ctx, &out, currency, bal.Available, now); err != nil {
		out.err = fmt.Errorf("reconcile: %w", err)
		m.log.Warn().Err(err).Str("currency", currency).Msg("treasury reconciliation unavailable")
	}
	return out
}

// reconcile compares the ledger with what the chain or gateway actually holds.
func (m *TreasuryMonitorImpl) reconcile(ctx context.Context, out *checkOutcome, currency string, ledger decimal.Decimal, now time.Time) error {
	if !m.cfg.MaxDriftRatio.IsPositive() {
		return nil
	}

	var live decimal.Decimal
	if currency == domain.FiatNGN {
		if m.gateway == nil {
			return nil
		}
		v, err := m.gateway.GetBalance(ctx)
		if err != nil {
			return err
		}
		live = v
	} else {
		token, ok := domain.ParseToken(currency)
		if !ok || m.oracle == nil || m.cfg.TreasuryAddress == "" {
			return nil
		}
		reading := m.oracle.GetBalance(ctx, m.cfg.TreasuryAddress, token)
		if !reading.Known() {
			return fmt.Errorf("%s balance unavailable: %s", token, reading.Error)
		}
		live = reading.Amount
	}

	base := decimal.Max(ledger.Abs(), live.Abs())
	if base.IsZero() {
		return nil
	}
	drift := ledger.Sub(live).Abs().Div(base)
	if drift.LessThanOrEqual(m.cfg.MaxDriftRatio) {
		return nil
	}

	m.raise(ctx, out, &domain.TreasuryAlert{
		Type:      domain.AlertTypeSystemError,
		Severity:  domain.SeverityMedium,
		Currency:  currency,
		Amount:    live,
		Threshold: ledger,
		Message: fmt.Sprintf("%s treasury ledger (%s) differs from live balance (%s) by %s%%",
			currency, ledger.String(), live.String(), drift.Mul(decimal.NewFromInt(100)).StringFixed(2)),
		CreatedAt: now,
	})
	return nil
}

func (m *TreasuryMonitorImpl) checkFailedTransactions(ctx context.Context, now time.Time) checkOutcome {
	var out checkOutcome
	since := now.Add(-m.cfg.FailureWindow)

	count, err := m.txRepo.CountByStatusSince(ctx, domain.TransactionStatusFailed, since)
	if err != nil {
		out.err = fmt.Errorf("count failed transactions: %w", err)
		return out
	}
	if count < m.cfg.FailureThreshold {
		return out
	}

	recent, err := m.alerts.HasUnacknowledgedSince(ctx, domain.AlertTypeFailedTransactionRate, since)
	if err != nil {
		out.err = fmt.Errorf("check recent alerts: %w", err)
		return out
	}
	if recent {
		out.skipped++
		return out
	}

	m.raise(ctx, &out, &domain.TreasuryAlert{
		Type:      domain.AlertTypeFailedTransactionRate,
		Severity:  domain.SeverityHigh,
		Currency:  domain.AlertCurrencyAll,
		Amount:    decimal.NewFromInt(int64(count)),
		Threshold: decimal.NewFromInt(int64(m.cfg.FailureThreshold)),
		Message:   fmt.Sprintf("%d transactions failed in the last %s", count, m.cfg.FailureWindow),
		CreatedAt: now,
	})
	return out
}

// raise creates alert unless an unacknowledged alert with the same key exists.
func (m *TreasuryMonitorImpl) raise(ctx context.Context, out *checkOutcome, alert *domain.TreasuryAlert) {
	existing, err := m.alerts.FindUnacknowledged(ctx, alert.Key())
	if err != nil {
		out.err = fmt.Errorf("find open alert: %w", err)
		return
	}
	if existing != nil {
		out.skipped++
		return
	}

	alert.ID = uuid.New()
	created, err := m.alerts.Create(ctx, alert)
	if err != nil {
		out.err = fmt.Errorf("create alert: %w", err)
		return
	}
	if !created {
		// Lost a race with a concurrent run.
		out.skipped++
		return
	}

	out.created = append(out.created, *alert)
	metrics.AlertsCreated.WithLabelValues(string(alert.Type), string(alert.Severity)).Inc()
	m.log.Warn().
		Str("alert_id", alert.ID.String()).
		Str("type", string(alert.Type)).
		Str("severity", string(alert.Severity)).
		Str("currency", alert.Currency).
		Str("amount", alert.Amount.String()).
		Msg("treasury alert raised")
	if m.notifier != nil {
		m.notifier.Notify(ctx, alert)
	}
}

// AcknowledgeAlert marks an alert handled. Acknowledging twice is a no-op.
func (m *TreasuryMonitorImpl) AcknowledgeAlert(ctx context.Context, caller domain.Caller, id uuid.UUID) (*domain.TreasuryAlert, error) {
	if !m.authz.IsAuthorized(ctx, caller, domain.ActionAcknowledgeAlert) {
		return nil, apperror.ErrForbidden(string(domain.ActionAcknowledgeAlert))
	}

	alert, err := m.alerts.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get alert: %w", err))
	}
	if alert == nil {
		return nil, apperror.ErrNotFound("Alert")
	}
	if alert.Acknowledged {
		return alert, nil
	}

	at := m.now().UTC()
	updated, err := m.alerts.Acknowledge(ctx, id, caller.Subject, at)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("acknowledge alert: %w", err))
	}
	if !updated {
		// Someone else acknowledged it in between.
		if alert, err = m.alerts.GetByID(ctx, id); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("get alert: %w", err))
		}
		return alert, nil
	}

	alert.Acknowledge(caller.Subject, at)
	logAudit(ctx, m.audit, newAuditEntry(caller, domain.ActionAcknowledgeAlert, "treasury_alert", id.String(), map[string]any{
		"type":     alert.Type,
		"currency": alert.Currency,
		"severity": alert.Severity,
	}))
	return alert, nil
}

// ListAlerts returns alerts newest first.
func (m *TreasuryMonitorImpl) ListAlerts(ctx context.Context, caller domain.Caller, params ports.AlertListParams) ([]domain.TreasuryAlert, error) {
	if !m.authz.IsAuthorized(ctx, caller, domain.ActionViewReports) {
		return nil, apperror.ErrForbidden(string(domain.ActionViewReports))
	}
	if params.Limit <= 0 {
		params.Limit = defaultAlertListLimit
	}
	if params.Limit > maxAlertListLimit {
		params.Limit = maxAlertListLimit
	}

	alerts, err := m.alerts.List(ctx, params)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list alerts: %w", err))
	}
	return alerts, nil
}

func balanceMessage(currency string, breach domain.BalanceBreach, available decimal.Decimal) string {
	switch breach.Severity {
	case domain.SeverityCritical:
		return fmt.Sprintf("%s treasury balance %s is below the critical threshold %s", currency, available, breach.Threshold)
	case domain.SeverityHigh:
		return fmt.Sprintf("%s treasury balance %s is below the low threshold %s", currency, available, breach.Threshold)
	default:
		return fmt.Sprintf("%s treasury balance %s is above %s, liquidity is good", currency, available, breach.Threshold)
	}
}
