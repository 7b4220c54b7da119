package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"ramp-gateway/config"
	"ramp-gateway/internal/adapter/chain"
	httpHandler "ramp-gateway/internal/adapter/http/handler"
	"ramp-gateway/internal/adapter/paystack"
	"ramp-gateway/internal/adapter/pricefeed"
	pgStorage "ramp-gateway/internal/adapter/storage/postgres"
	redisStorage "ramp-gateway/internal/adapter/storage/redis"
	"ramp-gateway/internal/adapter/upstream"
	"ramp-gateway/internal/core/domain"
	"ramp-gateway/internal/core/ports"
	"ramp-gateway/internal/service"
	treasuryWorker "ramp-gateway/internal/worker/treasury"
	"ramp-gateway/pkg/logger"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// CoinGecko's public tier allows roughly 30 calls a minute.
const coingeckoPerSecond = 0.5

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Ramp Gateway")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Repositories
	txRepo := pgStorage.NewTransactionRepo(pool)
	limitsRepo := pgStorage.NewLimitsRepo(pool)
	alertRepo := pgStorage.NewAlertRepo(pool)
	treasuryRepo := pgStorage.NewTreasuryRepo(pool)
	refundRepo := pgStorage.NewRefundRepo(pool)
	idempotencyRepo := pgStorage.NewIdempotencyRepo(pool)
	auditRepo := pgStorage.NewAuditRepo(pool)
	transactor := pgStorage.NewTransactor(pool, cfg.Database.LockTimeout)

	// Redis stores
	idempotencyCache := redisStorage.NewIdempotencyCache(rdb)
	eventDedup := redisStorage.NewEventDeduplicator(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)
	priceCache := redisStorage.NewPriceCache(rdb)
	locker := redisStorage.NewLocker(rdb)

	// Outbound adapters, one breaker per dependency
	upstreamClient := func(name string) *upstream.Client {
		return upstream.New(name, upstream.Settings{Timeout: cfg.Lifecycle.OutboundTimeout}, log)
	}
	coinTypes := service.CoinTypes(cfg.Chain.USDCCoinType, cfg.Chain.USDTCoinType)
	suiClient := chain.NewSuiClient(cfg.Chain.RPCURL, upstreamClient("sui_rpc"))
	disburser := chain.NewCustodyDisburser(cfg.Custody.URL, cfg.Custody.APIKey, coinTypes, upstreamClient("custody"))
	gateway := paystack.NewClient(cfg.Paystack.BaseURL, cfg.Paystack.SecretKey, upstreamClient("paystack"))
	feeds := []ports.PriceFeed{
		pricefeed.NewCoinGecko(cfg.PriceFeed.PrimaryURL, upstreamClient("coingecko"), coingeckoPerSecond),
		pricefeed.NewCoinbase(cfg.PriceFeed.SecondaryURL, upstreamClient("coinbase")),
	}

	// Core services
	encSvc, err := service.NewAESEncryptionService(cfg.AES.Key)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize encryption service")
	}
	sigSvc := service.NewHMACSignatureService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	auditSvc := service.NewAuditService(auditRepo, log)
	authz := service.NewAllowListAuthorizer(cfg.Admin.Admins, map[string][]domain.Action{
		cfg.Admin.WebhookPrincipal:   {domain.ActionConfirmPayment, domain.ActionSettlePayout},
		cfg.Admin.SchedulerPrincipal: {domain.ActionRunMonitor},
	})

	tolerance, err := decimal.NewFromString(cfg.Lifecycle.RateTolerance)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid lifecycle.rate_tolerance")
	}
	staticPrices, err := staticPriceTable(cfg.PriceFeed.Static)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid pricefeed.static")
	}
	monitorCfg, err := monitorConfig(cfg.Treasury, cfg.Chain.TreasuryAddress)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid treasury config")
	}

	oracle := service.NewBalanceOracle(suiClient, coinTypes, cfg.Lifecycle.OutboundTimeout, logger.Component(log, "balance_oracle"))
	walletValidator := service.NewWalletValidator(oracle, service.NewGasEstimator(), tolerance, logger.Component(log, "wallet_validator"))
	limitsSvc := service.NewLimitsService(limitsRepo, transactor, service.NewLimitValidator(), authz, auditSvc, logger.Component(log, "limits"))
	priceSvc := service.NewPriceService(feeds, priceCache, staticPrices, cfg.Lifecycle.OutboundTimeout, cfg.PriceFeed.LastKnownTTL, logger.Component(log, "prices"))
	reportingSvc := service.NewReportingService(txRepo, authz)

	lifecycle := service.NewLifecycleService(service.LifecycleDeps{
		TxRepo:       txRepo,
		RefundRepo:   refundRepo,
		TreasuryRepo: treasuryRepo,
		IdempRepo:    idempotencyRepo,
		IdempCache:   idempotencyCache,
		Transactor:   transactor,
		Limits:       limitsSvc,
		Wallet:       walletValidator,
		Prices:       priceSvc,
		Disburser:    disburser,
		Gateway:      gateway,
		Encryption:   encSvc,
		Authorizer:   authz,
		Audit:        auditSvc,
	}, service.LifecycleConfig{
		RateTolerance:   tolerance,
		OutboundTimeout: cfg.Lifecycle.OutboundTimeout,
		IdempotencyTTL:  cfg.Lifecycle.IdempotencyTTL,
	}, logger.Component(log, "lifecycle"))

	notifier := service.NewAlertNotifier(
		cfg.Alerts.WebhookURL,
		cfg.Alerts.WebhookSecret,
		sigSvc,
		&http.Client{Timeout: 10 * time.Second},
		cfg.Alerts.RetryDelays,
		logger.Component(log, "alert_notifier"),
	)
	monitor := service.NewTreasuryMonitor(
		alertRepo, treasuryRepo, txRepo, oracle, gateway, notifier, authz, auditSvc,
		monitorCfg, logger.Component(log, "treasury_monitor"),
	)

	apiDoc, err := os.ReadFile("docs/api/openapi.yaml")
	if err != nil {
		log.Warn().Err(err).Msg("openapi document not found, /swagger/spec disabled")
	}

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Lifecycle:        lifecycle,
		APIDoc:           apiDoc,
		Monitor:          monitor,
		Limits:           limitsSvc,
		Prices:           priceSvc,
		Reporting:        reportingSvc,
		Wallet:           walletValidator,
		TokenSvc:         tokenSvc,
		SigSvc:           sigSvc,
		EventDedup:       eventDedup,
		AuditSvc:         auditSvc,
		RateLimitStore:   rateLimitStore,
		HealthCheckers:   []ports.HealthChecker{pgStorage.NewHealthCheck(pool), redisStorage.NewHealthCheck(rdb)},
		PaystackSecret:   cfg.Paystack.SecretKey,
		WebhookPrincipal: cfg.Admin.WebhookPrincipal,
		Mode:             cfg.Server.Mode,
		Logger:           log,
	})

	worker := treasuryWorker.NewWorker(monitor, idempotencyRepo, locker, treasuryWorker.Config{
		Schedule:      cfg.Treasury.Schedule,
		RunTimeout:    cfg.Treasury.RunTimeout,
		Principal:     cfg.Admin.SchedulerPrincipal,
		PurgeSchedule: cfg.Treasury.PurgeSchedule,
		Retention:     cfg.Lifecycle.IdempotencyRetention,
	}, log)
	if err := worker.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start treasury worker")
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		worker.Stop(shutdownCtx)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Server forced to shutdown")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("HTTP server failed")
	}
	log.Info().Msg("Server exited")
}

// staticPriceTable parses the last-resort NGN prices. Keys arrive lower-cased from viper.
func staticPriceTable(raw map[string]string) (map[domain.Token]decimal.Decimal, error) {
	out := make(map[domain.Token]decimal.Decimal, len(raw))
	for k, v := range raw {
		token, ok := domain.ParseToken(k)
		if !ok {
			return nil, fmt.Errorf("unsupported token %q", k)
		}
		price, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("price for %s: %w", token, err)
		}
		out[token] = price
	}
	return out, nil
}

func monitorConfig(tc config.TreasuryConfig, treasuryAddress string) (service.MonitorConfig, error) {
	mc := service.MonitorConfig{
		Thresholds:       make(map[string]domain.Thresholds, len(tc.Thresholds)),
		FailureWindow:    tc.FailureWindow,
		FailureThreshold: tc.FailureThreshold,
		TreasuryAddress:  treasuryAddress,
	}
	if tc.MaxDriftRatio != "" {
		drift, err := decimal.NewFromString(tc.MaxDriftRatio)
		if err != nil {
			return mc, fmt.Errorf("max_drift_ratio: %w", err)
		}
		mc.MaxDriftRatio = drift
	}

	for currency, raw := range tc.Thresholds {
		var t domain.Thresholds
		var err error
		if t.Critical, err = decimal.NewFromString(raw.Critical); err != nil {
			return mc, fmt.Errorf("%s critical: %w", currency, err)
		}
		if t.Low, err = decimal.NewFromString(raw.Low); err != nil {
			return mc, fmt.Errorf("%s low: %w", currency, err)
		}
		if t.High, err = decimal.NewFromString(raw.High); err != nil {
			return mc, fmt.Errorf("%s high: %w", currency, err)
		}
		if err := t.Validate(); err != nil {
			return mc, fmt.Errorf("%s: %w", currency, err)
		}
		mc.Thresholds[strings.ToUpper(currency)] = t
	}
	return mc, nil
}
