package config

const EnvPrefix = "IZISHOP"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	CartStoreMemory   = "memory"
	CartStoreSQLite   = "sqlite"
	CartStorePostgres = "postgres"
	CartStoreRedis    = "redis"
)

const (
	EnvAppEnv         = "IZISHOP_APP_ENV"
	EnvPort           = "IZISHOP_APP_PORT"
	EnvLogLevel       = "IZISHOP_LOG_LEVEL"
	EnvDBDriver       = "IZISHOP_DB_DRIVER"
	EnvDBDSN          = "IZISHOP_DB_DSN"
	EnvRedisURL       = "IZISHOP_REDIS_URL"
	EnvRedisAddr      = "IZISHOP_REDIS_ADDR"
	EnvCartStore      = "IZISHOP_CART_STORE"
	EnvCartStorageKey = "IZISHOP_CART_STORAGE_KEY"
	EnvPricingTaxRate = "IZISHOP_PRICING_TAX_RATE"
	EnvPricingFlat    = "IZISHOP_PRICING_FLAT_SHIPPING_CENTS"
	EnvCORSOrigins    = "IZISHOP_CORS_ALLOWED_ORIGINS"
)
