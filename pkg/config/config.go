package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix namespaces every environment variable read by the gateway.
	EnvPrefix = "wwh"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App      AppConfig
	Upstream UpstreamConfig
	Redis    RedisConfig
	JWT      JWTConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Upstream.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"WWH_APP_ENV" required:"true"`
	Port         string `envconfig:"WWH_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"WWH_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"WWH_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// UpstreamConfig points the gateway at the remote registration backend.
type UpstreamConfig struct {
	BaseURL string        `envconfig:"WWH_UPSTREAM_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"WWH_UPSTREAM_TIMEOUT" default:"30s"`
}

func (u UpstreamConfig) validate() error {
	parsed, err := url.Parse(u.BaseURL)
	if err != nil {
		return fmt.Errorf("parsing upstream base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("upstream base url must be http(s), got %q", u.BaseURL)
	}
	if u.Timeout <= 0 {
		return fmt.Errorf("upstream timeout must be positive")
	}
	return nil
}

// RedisConfig accepts either a full connection URL or a bare address with
// discrete credentials; pkg/redis rejects a config carrying neither.
type RedisConfig struct {
	URL          string        `envconfig:"WWH_REDIS_URL"`
	Address      string        `envconfig:"WWH_REDIS_ADDR"`
	Password     string        `envconfig:"WWH_REDIS_PASSWORD"`
	DB           int           `envconfig:"WWH_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"WWH_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"WWH_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"WWH_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"WWH_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"WWH_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"WWH_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"WWH_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"WWH_JWT_EXPIRATION_MINUTES" required:"true"`
	SessionTTLMinutes int    `envconfig:"WWH_SESSION_TTL_MINUTES" default:"43200"`
}

// SessionTTL returns the session TTL configured in minutes.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}
