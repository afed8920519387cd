package config

const (
	EnvPrefix = "BENTOLINK"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv  = "BENTOLINK_APP_ENV"
	EnvPort    = "BENTOLINK_APP_PORT"
	EnvDBDSN   = "BENTOLINK_DB_DSN"
	EnvDBHost  = "BENTOLINK_DB_HOST"
	EnvDBUser  = "BENTOLINK_DB_USER"
	EnvDBName  = "BENTOLINK_DB_NAME"
	EnvRedisURL = "BENTOLINK_REDIS_URL"

	EnvJWTSecret              = "BENTOLINK_JWT_SECRET"
	EnvJWTIssuer              = "BENTOLINK_JWT_ISSUER"
	EnvJWTExpMins             = "BENTOLINK_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "BENTOLINK_REFRESH_TOKEN_TTL_MINUTES"

	EnvGCSBucket = "BENTOLINK_GCS_BUCKET_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
