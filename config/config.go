package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	AES       AESConfig       `mapstructure:"aes"`
	Log       LogConfig       `mapstructure:"log"`
	Chain     ChainConfig     `mapstructure:"chain"`
	Custody   CustodyConfig   `mapstructure:"custody"`
	Paystack  PaystackConfig  `mapstructure:"paystack"`
	PriceFeed PriceFeedConfig `mapstructure:"pricefeed"`
	Lifecycle LifecycleConfig `mapstructure:"lifecycle"`
	Treasury  TreasuryConfig  `mapstructure:"treasury"`
	Admin     AdminConfig     `mapstructure:"admin"`
	Alerts    AlertsConfig    `mapstructure:"alerts"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	// StatementTimeout bounds every query server-side; zero leaves the server default.
	StatementTimeout time.Duration `mapstructure:"statement_timeout"`
	// LockTimeout bounds how long a write waits on a locked transaction row.
	LockTimeout time.Duration `mapstructure:"lock_timeout"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
	// OpTimeout caps dial, read and write.
	OpTimeout time.Duration `mapstructure:"op_timeout"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

type AESConfig struct {
	Key string `mapstructure:"key"` // hex-encoded master key; the bank-detail subkey is derived with HKDF
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// ChainConfig points at a Sui full node JSON-RPC endpoint.
type ChainConfig struct {
	RPCURL          string `mapstructure:"rpc_url"`
	TreasuryAddress string `mapstructure:"treasury_address"`
	USDCCoinType    string `mapstructure:"usdc_coin_type"`
	USDTCoinType    string `mapstructure:"usdt_coin_type"`
}

// CustodyConfig configures the signer service that moves treasury tokens.
type CustodyConfig struct {
	URL    string `mapstructure:"url"`
	APIKey string `mapstructure:"api_key"`
}

type PaystackConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	SecretKey string `mapstructure:"secret_key"`
}

type PriceFeedConfig struct {
	PrimaryURL   string            `mapstructure:"primary_url"`
	SecondaryURL string            `mapstructure:"secondary_url"`
	LastKnownTTL time.Duration     `mapstructure:"last_known_ttl"`
	Static       map[string]string `mapstructure:"static"` // lower-case token -> NGN price used as the last resort
}

type LifecycleConfig struct {
	RateTolerance   string        `mapstructure:"rate_tolerance"` // relative, e.g. "0.01"
	OutboundTimeout time.Duration `mapstructure:"outbound_timeout"`
	IdempotencyTTL  time.Duration `mapstructure:"idempotency_ttl"`
	// IdempotencyRetention is how long durable idempotency logs are kept.
	IdempotencyRetention time.Duration `mapstructure:"idempotency_retention"`
}

// ThresholdConfig is one row of the treasury threshold table. Decimal strings.
type ThresholdConfig struct {
	Critical string `mapstructure:"critical"`
	Low      string `mapstructure:"low"`
	High     string `mapstructure:"high"`
}

type TreasuryConfig struct {
	Schedule         string                     `mapstructure:"schedule"`
	PurgeSchedule    string                     `mapstructure:"purge_schedule"`
	RunTimeout       time.Duration              `mapstructure:"run_timeout"`
	Thresholds       map[string]ThresholdConfig `mapstructure:"thresholds"`
	FailureWindow    time.Duration              `mapstructure:"failure_window"`
	FailureThreshold int                        `mapstructure:"failure_threshold"`
	MaxDriftRatio    string                     `mapstructure:"max_drift_ratio"`
}

type AdminConfig struct {
	// Admins are caller subjects (wallet addresses or user ids) holding every admin capability.
	Admins []string `mapstructure:"admins"`
	// WebhookPrincipal is the system caller used for Paystack-driven actions.
	WebhookPrincipal string `mapstructure:"webhook_principal"`
	// SchedulerPrincipal is the system caller used by the treasury worker.
	SchedulerPrincipal string `mapstructure:"scheduler_principal"`
}

type AlertsConfig struct {
	WebhookURL    string          `mapstructure:"webhook_url"`
	WebhookSecret string          `mapstructure:"webhook_secret"`
	RetryDelays   []time.Duration `mapstructure:"retry_delays"`
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: RAMP_.
// Nested keys use underscore: RAMP_DATABASE_HOST, RAMP_PAYSTACK_SECRET_KEY, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("RAMP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Env vars alone are enough to run.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "ramp_gateway")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.statement_timeout", "15s")
	v.SetDefault("database.lock_timeout", "5s")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 20)
	v.SetDefault("redis.op_timeout", "500ms")

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "24h")
	v.SetDefault("jwt.issuer", "ramp-gateway")
	v.SetDefault("aes.key", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	v.SetDefault("chain.rpc_url", "https://fullnode.mainnet.sui.io:443")
	v.SetDefault("chain.treasury_address", "")
	v.SetDefault("chain.usdc_coin_type", "0xdba34672e30cb065b1f93e3ab55318768fd6fef66c15942c9f7cb846e2f900e7::usdc::USDC")
	v.SetDefault("chain.usdt_coin_type", "0x375f70cf2ae4c00bf37117d0c85a2c71545e6ee05c4a5c7d282cd66a4504b068::usdt::USDT")
	v.SetDefault("custody.url", "http://localhost:9000")
	v.SetDefault("custody.api_key", "")

	v.SetDefault("paystack.base_url", "https://api.paystack.co")
	v.SetDefault("paystack.secret_key", "")

	v.SetDefault("pricefeed.primary_url", "https://api.coingecko.com/api/v3")
	v.SetDefault("pricefeed.secondary_url", "https://api.coinbase.com/v2")
	v.SetDefault("pricefeed.last_known_ttl", "24h")
	v.SetDefault("pricefeed.static", map[string]string{
		"sui":  "5200",
		"usdc": "1600",
		"usdt": "1600",
	})

	v.SetDefault("lifecycle.rate_tolerance", "0.01")
	v.SetDefault("lifecycle.outbound_timeout", "8s")
	v.SetDefault("lifecycle.idempotency_ttl", "24h")
	v.SetDefault("lifecycle.idempotency_retention", "720h")

	v.SetDefault("treasury.schedule", "*/5 * * * *")
	v.SetDefault("treasury.purge_schedule", "30 3 * * *")
	v.SetDefault("treasury.run_timeout", "2m")
	v.SetDefault("treasury.failure_window", "1h")
	v.SetDefault("treasury.failure_threshold", 3)
	v.SetDefault("treasury.max_drift_ratio", "0.05")
	v.SetDefault("treasury.thresholds", map[string]any{
		"sui":  map[string]any{"critical": "50", "low": "100", "high": "1000"},
		"usdc": map[string]any{"critical": "500", "low": "1000", "high": "50000"},
		"usdt": map[string]any{"critical": "500", "low": "1000", "high": "50000"},
		"ngn":  map[string]any{"critical": "500000", "low": "1000000", "high": "100000000"},
	})

	v.SetDefault("admin.admins", []string{})
	v.SetDefault("admin.webhook_principal", "system:paystack-webhook")
	v.SetDefault("admin.scheduler_principal", "system:treasury-scheduler")

	v.SetDefault("alerts.webhook_url", "")
	v.SetDefault("alerts.webhook_secret", "")
	v.SetDefault("alerts.retry_delays", []time.Duration{time.Second, 5 * time.Second, 30 * time.Second})
}
