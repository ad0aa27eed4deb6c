package config

// EnvPrefix namespaces every environment variable consumed by the service.
const EnvPrefix = "TIENDA"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv         = "TIENDA_APP_ENV"
	EnvPort           = "TIENDA_APP_PORT"
	EnvDBDSN          = "TIENDA_DB_DSN"
	EnvDBHost         = "TIENDA_DB_HOST"
	EnvDBUser         = "TIENDA_DB_USER"
	EnvDBName         = "TIENDA_DB_NAME"
	EnvRedisURL       = "TIENDA_REDIS_URL"
	EnvJWTSecret      = "TIENDA_JWT_SECRET"
	EnvJWTIssuer      = "TIENDA_JWT_ISSUER"
	EnvJWTExpMins     = "TIENDA_JWT_EXPIRATION_MINUTES"
	EnvRefreshTTLMins = "TIENDA_REFRESH_TOKEN_TTL_MINUTES"
	EnvYappyRecipient = "TIENDA_YAPPY_RECIPIENT"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
