// Package treasury runs the treasury monitor on a cron schedule, plus the
// nightly purge of expired idempotency logs. A Redis lock keeps concurrent
// replicas from running the same tick twice.
package treasury

import (
	"context"
	"fmt"
	"time"

	"ramp-gateway/internal/core/domain"
	"ramp-gateway/internal/core/ports"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const (
	lockKey      = "treasury-monitor"
	purgeLockKey = "idempotency-purge"
)

// LogPurger deletes durable idempotency logs older than cutoff.
type LogPurger interface {
	PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type Config struct {
	Schedule   string        // standard 5-field cron spec
	RunTimeout time.Duration // also the lock TTL
	Principal  string        // system caller the monitor runs as

	PurgeSchedule string        // empty disables the purge job
	Retention     time.Duration // idempotency logs older than this are purged
}

type Worker struct {
	monitor ports.TreasuryMonitor
	purger  LogPurger
	locker  ports.Locker
	cfg     Config
	cron    *cron.Cron
	now     func() time.Time
	log     zerolog.Logger
}

// NewWorker builds the worker. purger may be nil.
func NewWorker(monitor ports.TreasuryMonitor, purger LogPurger, locker ports.Locker, cfg Config, log zerolog.Logger) *Worker {
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = 2 * time.Minute
	}
	if cfg.Retention <= 0 {
		cfg.Retention = 30 * 24 * time.Hour
	}
	return &Worker{
		monitor: monitor,
		purger:  purger,
		locker:  locker,
		cfg:     cfg,
		cron:    cron.New(),
		now:     time.Now,
		log:     log.With().Str("component", "treasury_worker").Logger(),
	}
}

// Start registers the schedule and starts the cron loop in the background.
func (w *Worker) Start() error {
	if _, err := w.cron.AddFunc(w.cfg.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), w.cfg.RunTimeout)
		defer cancel()
		w.RunOnce(ctx)
	}); err != nil {
		return fmt.Errorf("treasury schedule %q: %w", w.cfg.Schedule, err)
	}
	if w.purger != nil && w.cfg.PurgeSchedule != "" {
		if _, err := w.cron.AddFunc(w.cfg.PurgeSchedule, func() {
			ctx, cancel := context.WithTimeout(context.Background(), w.cfg.RunTimeout)
			defer cancel()
			w.PurgeOnce(ctx)
		}); err != nil {
			return fmt.Errorf("purge schedule %q: %w", w.cfg.PurgeSchedule, err)
		}
	}

	w.cron.Start()
	w.log.Info().Str("schedule", w.cfg.Schedule).Msg("treasury worker started")
	return nil
}

// Stop halts the schedule and waits for a running tick, or ctx, whichever ends first.
func (w *Worker) Stop(ctx context.Context) {
	done := w.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		w.log.Warn().Msg("treasury worker stop timed out with a run in flight")
	}
	w.log.Info().Msg("treasury worker stopped")
}

// RunOnce performs one locked monitor run. It reports whether the run happened.
func (w *Worker) RunOnce(ctx context.Context) bool {
	release, ok := w.lock(ctx, lockKey)
	if !ok {
		return false
	}
	defer release()

	report, err := w.monitor.Run(ctx, domain.Caller{Subject: w.cfg.Principal})
	if err != nil {
		w.log.Error().Err(err).Msg("scheduled treasury monitor run failed")
		return true
	}
	if len(report.Failures) > 0 {
		w.log.Warn().Interface("failures", report.Failures).Msg("treasury monitor finished with failures")
	}
	return true
}

// PurgeOnce deletes expired idempotency logs under the purge lock.
func (w *Worker) PurgeOnce(ctx context.Context) bool {
	release, ok := w.lock(ctx, purgeLockKey)
	if !ok {
		return false
	}
	defer release()

	cutoff := w.now().Add(-w.cfg.Retention)
	n, err := w.purger.PurgeBefore(ctx, cutoff)
	if err != nil {
		w.log.Error().Err(err).Msg("idempotency log purge failed")
		return true
	}
	w.log.Info().Int64("deleted", n).Time("cutoff", cutoff).Msg("idempotency logs purged")
	return true
}

func (w *Worker) lock(ctx context.Context, key string) (func(), bool) {
	if w.locker == nil {
		return func() {}, true
	}
	release, err := w.locker.TryLock(ctx, key, w.cfg.RunTimeout)
	if err != nil {
		w.log.Error().Err(err).Str("lock", key).Msg("scheduler lock unavailable, skipping tick")
		return nil, false
	}
	if release == nil {
		w.log.Debug().Str("lock", key).Msg("job already running elsewhere")
		return nil, false
	}
	return release, true
}
