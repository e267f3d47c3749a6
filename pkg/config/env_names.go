package config

// EnvPrefix is passed to envconfig; individual vars carry the full name in
// their struct tags so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv   = "SHOPCART_APP_ENV"
	EnvPort     = "SHOPCART_APP_PORT"
	EnvDBDSN    = "SHOPCART_DB_DSN"
	EnvDBHost   = "SHOPCART_DB_HOST"
	EnvDBUser   = "SHOPCART_DB_USER"
	EnvDBName   = "SHOPCART_DB_NAME"
	EnvRedisURL = "SHOPCART_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
