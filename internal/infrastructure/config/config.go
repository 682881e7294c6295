package config

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Session    SessionConfig
	Mongo      MongoConfig
	Redis      RedisConfig
	Storage    StorageConfig
	TryOn      TryOnConfig
	ImageToken ImageTokenConfig
	Orders     OrdersConfig
}

type SessionConfig struct {
	Secret        string        `env:"SESSION_SECRET, required"`
	TTL           time.Duration `env:"SESSION_TTL, default=168h"`
	CookieName    string        `env:"SESSION_COOKIE, default=session"`
	SignupCredits int           `env:"SIGNUP_TRYON_CREDITS, default=3"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=alzia"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type StorageConfig struct {
	Bucket          string `env:"S3_BUCKET, default=alzia-media"`
	Region          string `env:"S3_REGION, default=us-east-1"`
	Endpoint        string `env:"S3_ENDPOINT"`
	PublicBaseURL   string `env:"S3_PUBLIC_BASE_URL"`
	AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
	Prefix          string `env:"S3_PREFIX, default=virtual-tryon"`
}

type TryOnConfig struct {
	Endpoint      string        `env:"TRYON_ENDPOINT, default=https://yisol-idm-vton.hf.space"`
	APIName       string        `env:"TRYON_API_NAME, default=tryon"`
	APIToken      string        `env:"TRYON_API_TOKEN"`
	Timeout       time.Duration `env:"TRYON_TIMEOUT, default=300s"`
	RatePerMinute int           `env:"TRYON_RATE_PER_MINUTE, default=5"`
}

type ImageTokenConfig struct {
	Store      string        `env:"IMAGE_TOKEN_STORE, default=memory"`
	DefaultTTL time.Duration `env:"IMAGE_TOKEN_DEFAULT_TTL, default=10m"`
	MaxTTL     time.Duration `env:"IMAGE_TOKEN_MAX_TTL, default=24h"`
	// Sources lists base URLs tokens may point under besides the storage URL.
	Sources    []string      `env:"IMAGE_TOKEN_SOURCES"`
}

type OrdersConfig struct {
	EventWorkers int `env:"ORDER_EVENT_WORKERS, default=4"`
}

// IsDevelopment reports whether the service runs in the local development env.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(logger zerolog.Logger) *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		logger.Error().Err(err).Msg("failed to load configuration")
		panic(err)
	}
	return &cfg
}
