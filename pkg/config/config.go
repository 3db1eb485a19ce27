package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Cart         CartConfig
	Pricing      PricingConfig
	RateLimit    RateLimitConfig
	CORS         CORSConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Cart.validate(cfg.Redis); err != nil {
		return nil, err
	}
	if err := cfg.DB.validate(cfg.Cart); err != nil {
		return nil, err
	}
	if _, err := cfg.Pricing.TaxRateDecimal(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"IZISHOP_APP_ENV" default:"dev"`
	Port         string `envconfig:"IZISHOP_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"IZISHOP_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"IZISHOP_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	Driver string `envconfig:"IZISHOP_DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"IZISHOP_DB_DSN" default:"izishop.db"`

	MaxOpenConns    int           `envconfig:"IZISHOP_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"IZISHOP_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"IZISHOP_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"IZISHOP_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// Enabled reports whether the configured cart backend needs the SQL client.
func (db DBConfig) Enabled(cart CartConfig) bool {
	switch cart.Store {
	case CartStoreSQLite, CartStorePostgres:
		return true
	}
	return false
}

func (db DBConfig) validate(cart CartConfig) error {
	switch db.Driver {
	case CartStoreSQLite, CartStorePostgres:
	default:
		return fmt.Errorf("unsupported %s %q", EnvDBDriver, db.Driver)
	}
	if db.Enabled(cart) && db.Driver != cart.Store {
		return fmt.Errorf("%s=%s requires %s=%s", EnvCartStore, cart.Store, EnvDBDriver, cart.Store)
	}
	if db.Enabled(cart) && strings.TrimSpace(db.DSN) == "" {
		return fmt.Errorf("%s is required for the %s cart store", EnvDBDSN, cart.Store)
	}
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"IZISHOP_REDIS_URL"`
	Address      string        `envconfig:"IZISHOP_REDIS_ADDR"`
	Password     string        `envconfig:"IZISHOP_REDIS_PASSWORD"`
	DB           int           `envconfig:"IZISHOP_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"IZISHOP_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"IZISHOP_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"IZISHOP_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"IZISHOP_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"IZISHOP_REDIS_WRITE_TIMEOUT" default:"3s"`
}

// Configured reports whether enough settings exist to dial redis.
func (r RedisConfig) Configured() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type CartConfig struct {
	Store         string        `envconfig:"IZISHOP_CART_STORE" default:"sqlite"`
	StorageKey    string        `envconfig:"IZISHOP_CART_STORAGE_KEY" default:"izishop-cart"`
	SessionCookie string        `envconfig:"IZISHOP_CART_SESSION_COOKIE" default:"izishop_session"`
	SlotTTL       time.Duration `envconfig:"IZISHOP_CART_SLOT_TTL" default:"0"`
	MaxSessions   int           `envconfig:"IZISHOP_CART_MAX_SESSIONS" default:"10000"`
	IdleTTL       time.Duration `envconfig:"IZISHOP_CART_IDLE_TTL" default:"30m"`
}

func (c CartConfig) validate(redis RedisConfig) error {
	switch c.Store {
	case CartStoreMemory, CartStoreSQLite, CartStorePostgres:
	case CartStoreRedis:
		if !redis.Configured() {
			return fmt.Errorf("%s=%s requires %s or %s", EnvCartStore, CartStoreRedis, EnvRedisURL, EnvRedisAddr)
		}
	default:
		return fmt.Errorf("unsupported %s %q", EnvCartStore, c.Store)
	}
	if strings.TrimSpace(c.StorageKey) == "" {
		return fmt.Errorf("%s cannot be empty", EnvCartStorageKey)
	}
	return nil
}

// PricingConfig expresses amounts in minor currency units.
type PricingConfig struct {
	FlatShippingCents          int64  `envconfig:"IZISHOP_PRICING_FLAT_SHIPPING_CENTS" default:"999"`
	FreeShippingThresholdCents int64  `envconfig:"IZISHOP_PRICING_FREE_SHIPPING_THRESHOLD_CENTS" default:"10000"`
	TaxRate                    string `envconfig:"IZISHOP_PRICING_TAX_RATE" default:"0.20"`
}

// TaxRateDecimal parses the configured tax rate, which must lie in [0, 1].
func (p PricingConfig) TaxRateDecimal() (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(strings.TrimSpace(p.TaxRate))
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing %s: %w", EnvPricingTaxRate, err)
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.Zero, fmt.Errorf("%s must be between 0 and 1, got %s", EnvPricingTaxRate, rate)
	}
	return rate, nil
}

type RateLimitConfig struct {
	CartWindow time.Duration `envconfig:"IZISHOP_RATE_LIMIT_CART_WINDOW" default:"1m"`
	CartLimit  int           `envconfig:"IZISHOP_RATE_LIMIT_CART_LIMIT" default:"120"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"IZISHOP_CORS_ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"IZISHOP_AUTO_MIGRATE" default:"true"`
}
