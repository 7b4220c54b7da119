package handler

import (
	"ramp-gateway/internal/adapter/http/middleware"
	"ramp-gateway/internal/adapter/paystack"
	redisStore "ramp-gateway/internal/adapter/storage/redis"
	"ramp-gateway/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	Lifecycle      ports.LifecycleService
	Monitor        ports.TreasuryMonitor
	Limits         ports.LimitsService
	Prices         ports.PriceService
	Reporting      ports.ReportingService
	Wallet         ports.WalletValidator
	TokenSvc       ports.TokenService
	SigSvc         ports.SignatureService
	EventDedup     ports.EventDeduplicator
	AuditSvc       ports.AuditService         // nil = denied requests are not audited
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	APIDoc         []byte // OpenAPI YAML served under /swagger

	PaystackSecret   string
	WebhookPrincipal string
	Mode             string // gin mode; release when empty
	Logger           zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	mode := deps.Mode
	if mode == "" {
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	r.GET("/health", HealthCheck(deps.HealthCheckers...))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	docs := NewDocsHandler(deps.APIDoc)
	r.GET("/swagger", docs.UI)
	r.GET("/swagger/spec", docs.Spec)

	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	v1 := r.Group("/api/v1")

	// --- Signed gateway callbacks (no JWT) ---
	webhookHandler := NewWebhookHandler(deps.Lifecycle, deps.EventDedup, deps.WebhookPrincipal, deps.Logger)
	v1.POST("/webhooks/paystack",
		rl("webhooks"),
		middleware.PaystackSignature(paystack.SignatureHeader, deps.PaystackSecret, deps.SigSvc, deps.Logger),
		webhookHandler.Paystack,
	)

	// --- JWT-authenticated routes ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	authed := v1.Group("", jwtAuth)

	marketHandler := NewMarketHandler(deps.Prices, deps.Limits, deps.Wallet)
	authed.GET("/prices/:token", rl("reads"), marketHandler.GetPrice)
	authed.GET("/limits", rl("reads"), marketHandler.GetLimits)

	validation := authed.Group("/validation")
	{
		validation.POST("/off-ramp", rl("validation"), marketHandler.ValidateOffRamp)
		validation.POST("/limits", rl("validation"), marketHandler.ValidateLimits)
	}

	txHandler := NewTransactionHandler(deps.Lifecycle)
	transactions := authed.Group("/transactions")
	{
		transactions.POST("", rl("transactions_create"), txHandler.Create)
		transactions.GET("/:id", rl("reads"), txHandler.Get)
	}

	// --- Admin routes: capabilities are enforced by the services ---
	admin := authed.Group("/admin", rl("admin"))
	if deps.AuditSvc != nil {
		admin.Use(middleware.AuditDenied(deps.AuditSvc))
	}

	adminHandler := NewAdminHandler(deps.Lifecycle)
	dashboardHandler := NewDashboardHandler(deps.Reporting)
	adminTx := admin.Group("/transactions")
	{
		adminTx.GET("", dashboardHandler.ListTransactions)
		adminTx.POST("/:id/confirm-payment", adminHandler.ConfirmPayment)
		adminTx.POST("/:id/confirm-deposit", adminHandler.ConfirmDeposit)
		adminTx.POST("/:id/complete", adminHandler.Complete)
		adminTx.POST("/:id/reject", adminHandler.Reject)
		adminTx.POST("/:id/refresh-payout", adminHandler.RefreshPayout)
	}
	admin.GET("/stats", dashboardHandler.GetStats)

	treasuryHandler := NewTreasuryHandler(deps.Monitor, deps.Limits)
	admin.PUT("/limits", treasuryHandler.UpdateLimits)
	admin.GET("/alerts", treasuryHandler.ListAlerts)
	admin.POST("/alerts/:id/acknowledge", treasuryHandler.AcknowledgeAlert)
	admin.POST("/treasury/monitor", treasuryHandler.RunMonitor)

	return r
}
