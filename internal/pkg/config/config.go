package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// APIKey gates every /API route; Secret signs session and link tokens.
	APIKey string `env:"API_KEY, required"`
	Secret string `env:"SECRET,  required"`

	Postgres PostgresConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	SMTP     SMTPConfig
	Links    LinkConfig
	Twilio   TwilioConfig
	Mobile   MobileAppConfig
}

type PostgresConfig struct {
	DSN          string `env:"DATABASE_URL, required"`
	MaxOpenConns int    `env:"DB_MAX_OPEN_CONNS, default=20"`
	MaxIdleConns int    `env:"DB_MAX_IDLE_CONNS, default=5"`
	LogQueries   bool   `env:"DB_LOG_QUERIES,    default=false"`
}

type MongoConfig struct {
	URI         string `env:"MONGO_URI,           default=mongodb://localhost:27017"`
	Database    string `env:"MONGO_DB,            default=kinyozi"`
	MaxPoolSize uint64 `env:"MONGO_MAX_POOL_SIZE, default=20"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,      default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,        default=0"`
	PoolSize int    `env:"REDIS_POOL_SIZE, default=10"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST,     default=smtp.gmail.com"`
	Port     int    `env:"SMTP_PORT,     default=587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	Sender   string `env:"MAIL_SENDER,   required"`
}

// LinkConfig holds the frontend urls that emailed tokens are appended to.
type LinkConfig struct {
	ResetURLBase string `env:"RESET_URL_BASE, default=https://www.mykinyozi.com/reset/"`
	SetupURLBase string `env:"SETUP_URL_BASE, default=https://www.mykinyozi.com/employee/setup/"`
}

// TwilioConfig is optional; low stock SMS is skipped when any field is empty.
type TwilioConfig struct {
	AccountSID string `env:"TWILIO_ACCOUNT_SID"`
	AuthToken  string `env:"TWILIO_AUTH_TOKEN"`
	FromNumber string `env:"TWILIO_FROM_NUMBER"`
}

type MobileAppConfig struct {
	BaseURL  string `env:"MOBILE_APP_BASE_URL"`
	Email    string `env:"MOBILE_APP_EMAIL"`
	Password string `env:"MOBILE_APP_PASSWORD"`
}

// IsDevelopment reports whether the service runs with developer defaults.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if len(cfg.Secret) < 16 {
		return nil, fmt.Errorf("config: SECRET must be at least 16 characters")
	}
	return &cfg, nil
}
