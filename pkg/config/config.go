package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	Service       ServiceConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	GCP           GCPConfig
	GCS           GCSConfig
	Media         MediaConfig
	Clicks        ClicksConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"BENTOLINK_APP_ENV" required:"true"`
	Port         string `envconfig:"BENTOLINK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"BENTOLINK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BENTOLINK_LOG_WARN_STACK" default:"false"`
	PublicOrigin string `envconfig:"BENTOLINK_PUBLIC_ORIGIN" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"BENTOLINK_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"BENTOLINK_DB_DSN"`
	Driver string `envconfig:"BENTOLINK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"BENTOLINK_DB_HOST"`
	LegacyPort     int    `envconfig:"BENTOLINK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"BENTOLINK_DB_USER"`
	LegacyPassword string `envconfig:"BENTOLINK_DB_PASSWORD"`
	LegacyName     string `envconfig:"BENTOLINK_DB_NAME"`
	LegacySSLMode  string `envconfig:"BENTOLINK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"BENTOLINK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"BENTOLINK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"BENTOLINK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BENTOLINK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"BENTOLINK_REDIS_URL" required:"true"`
	Address      string        `envconfig:"BENTOLINK_REDIS_ADDR"`
	Password     string        `envconfig:"BENTOLINK_REDIS_PASSWORD"`
	DB           int           `envconfig:"BENTOLINK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BENTOLINK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BENTOLINK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BENTOLINK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BENTOLINK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BENTOLINK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"BENTOLINK_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"BENTOLINK_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"BENTOLINK_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"BENTOLINK_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"BENTOLINK_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"BENTOLINK_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"BENTOLINK_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"BENTOLINK_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"BENTOLINK_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"BENTOLINK_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"BENTOLINK_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"BENTOLINK_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"BENTOLINK_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"BENTOLINK_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"BENTOLINK_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"BENTOLINK_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"BENTOLINK_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"BENTOLINK_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"BENTOLINK_GOOGLE_APPLICATION_CREDENTIALS"`
}

type GCSConfig struct {
	BucketName string `envconfig:"BENTOLINK_GCS_BUCKET_NAME" required:"true"`
	PublicBase string `envconfig:"BENTOLINK_GCS_PUBLIC_BASE"`
}

type MediaConfig struct {
	MaxUploadMB      int `envconfig:"BENTOLINK_MAX_UPLOAD_MB" default:"10"`
	GalleryMaxImages int `envconfig:"BENTOLINK_GALLERY_MAX_IMAGES" default:"6"`
}

type ClicksConfig struct {
	FlushInterval time.Duration `envconfig:"BENTOLINK_CLICKS_FLUSH_INTERVAL" default:"30s"`
	FlushBatch    int           `envconfig:"BENTOLINK_CLICKS_FLUSH_BATCH" default:"500"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
