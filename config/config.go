// Package config loads service settings from an optional YAML file, a .env
// file and PROSPECTION_* environment variables, in that order of precedence
// from lowest to highest.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"prospection-agent/domain"
	"prospection-agent/service"
)

// Defaults applied before the YAML file and environment are read.
const (
	DefaultAddr            = ":8080"
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultSlowRequest     = 500 * time.Millisecond

	DefaultSessionBackend = BackendMemory
	DefaultSessionTTL     = 12 * time.Hour
	DefaultMaxSessions    = 10_000

	DefaultRedisAddr      = "localhost:6379"
	DefaultRedisKeyPrefix = "prospection:history:"

	DefaultRateLimitCapacity = 30
	DefaultRateLimitRefill   = time.Minute

	DefaultInsightURL     = "https://api.openai.com/v1/chat/completions"
	DefaultInsightModel   = "gpt-4o-mini"
	DefaultInsightTimeout = service.DefaultInsightTimeout
)

// Session backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config is the top-level service configuration. Fields map 1:1 to the YAML file.
type Config struct {
	Server    ServerConfig            `yaml:"server"`
	Session   SessionConfig           `yaml:"session"`
	Redis     RedisConfig             `yaml:"redis"`
	RateLimit RateLimitConfig         `yaml:"rate_limit"`
	Insight   InsightConfig           `yaml:"insight"`
	Defaults  domain.ProspectionInput `yaml:"defaults"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// SlowRequest marks requests at or above this duration as warn in the access log.
	SlowRequest time.Duration `yaml:"slow_request"`

	CORSOrigins []string `yaml:"cors_origins"`

	// TrustProxy reads the client address from forwarding headers.
	TrustProxy bool `yaml:"trust_proxy"`
}

type SessionConfig struct {
	// Backend is one of: memory | redis.
	Backend string `yaml:"backend"`

	// TTL is how long a session's history survives without new calculations.
	TTL time.Duration `yaml:"ttl"`

	// MaxSessions bounds the in-memory backend.
	MaxSessions int `yaml:"max_sessions"`
}

type RedisConfig struct {
	Addr      string `yaml:"addr"`
	Password  string `yaml:"-"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"key_prefix"`
}

type RateLimitConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Capacity int           `yaml:"capacity"`
	Refill   time.Duration `yaml:"refill"`
}

type InsightConfig struct {
	Enabled bool          `yaml:"enabled"`
	URL     string        `yaml:"url"`
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`

	// APIKey only comes from OPENAI_API_KEY.
	APIKey string `yaml:"-"`
}

// Default returns a Config holding every default value
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            DefaultAddr,
			ReadTimeout:     DefaultReadTimeout,
			WriteTimeout:    DefaultWriteTimeout,
			IdleTimeout:     DefaultIdleTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
			SlowRequest:     DefaultSlowRequest,
			CORSOrigins:     []string{"*"},
		},
		Session: SessionConfig{
			Backend:     DefaultSessionBackend,
			TTL:         DefaultSessionTTL,
			MaxSessions: DefaultMaxSessions,
		},
		Redis: RedisConfig{
			Addr:      DefaultRedisAddr,
			KeyPrefix: DefaultRedisKeyPrefix,
		},
		RateLimit: RateLimitConfig{
			Enabled:  true,
			Capacity: DefaultRateLimitCapacity,
			Refill:   DefaultRateLimitRefill,
		},
		Insight: InsightConfig{
			Enabled: true,
			URL:     DefaultInsightURL,
			Model:   DefaultInsightModel,
			Timeout: DefaultInsightTimeout,
		},
		Defaults: service.DefaultInput(),
	}
}

// Load builds the configuration. path may be empty, in which case only the
// environment is consulted.
func Load(path string) (*Config, error) {
	// a missing .env is fine, real env vars may be set instead
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv(NewEnv())

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(root Env) {
	env := root.Prefix("PROSPECTION_")

	httpEnv := env.Prefix("HTTP_")
	c.Server.Addr = httpEnv.MayString("ADDR", c.Server.Addr)
	c.Server.ReadTimeout = httpEnv.MayDuration("READ_TIMEOUT", c.Server.ReadTimeout)
	c.Server.WriteTimeout = httpEnv.MayDuration("WRITE_TIMEOUT", c.Server.WriteTimeout)
	c.Server.IdleTimeout = httpEnv.MayDuration("IDLE_TIMEOUT", c.Server.IdleTimeout)
	c.Server.ShutdownTimeout = httpEnv.MayDuration("SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout)
	c.Server.SlowRequest = httpEnv.MayDuration("SLOW_REQUEST", c.Server.SlowRequest)
	c.Server.CORSOrigins = httpEnv.MayCSV("CORS_ORIGINS", c.Server.CORSOrigins)
	c.Server.TrustProxy = httpEnv.MayBool("TRUST_PROXY", c.Server.TrustProxy)

	sessEnv := env.Prefix("SESSION_")
	c.Session.Backend = sessEnv.MayString("BACKEND", c.Session.Backend)
	c.Session.TTL = sessEnv.MayDuration("TTL", c.Session.TTL)
	c.Session.MaxSessions = sessEnv.MayInt("MAX", c.Session.MaxSessions)

	redisEnv := env.Prefix("REDIS_")
	c.Redis.Addr = redisEnv.MayString("ADDR", c.Redis.Addr)
	c.Redis.Password = redisEnv.MayString("PASSWORD", c.Redis.Password)
	c.Redis.DB = redisEnv.MayInt("DB", c.Redis.DB)
	c.Redis.KeyPrefix = redisEnv.MayString("KEY_PREFIX", c.Redis.KeyPrefix)

	rlEnv := env.Prefix("RATE_LIMIT_")
	c.RateLimit.Enabled = rlEnv.MayBool("ENABLED", c.RateLimit.Enabled)
	c.RateLimit.Capacity = rlEnv.MayInt("CAPACITY", c.RateLimit.Capacity)
	c.RateLimit.Refill = rlEnv.MayDuration("REFILL", c.RateLimit.Refill)

	insEnv := env.Prefix("INSIGHT_")
	c.Insight.Enabled = insEnv.MayBool("ENABLED", c.Insight.Enabled)
	c.Insight.URL = insEnv.MayString("URL", c.Insight.URL)
	c.Insight.Model = insEnv.MayString("MODEL", c.Insight.Model)
	c.Insight.Timeout = insEnv.MayDuration("TIMEOUT", c.Insight.Timeout)
	c.Insight.APIKey = root.MayString("OPENAI_API_KEY", c.Insight.APIKey)

	defEnv := env.Prefix("DEFAULT_")
	c.Defaults.ProductName = defEnv.MayString("PRODUCT", c.Defaults.ProductName)
	c.Defaults.DosePerHectare = defEnv.MayFloat64("DOSE", c.Defaults.DosePerHectare)
	c.Defaults.Area = defEnv.MayFloat64("AREA", c.Defaults.Area)
	c.Defaults.PricePerLiter = defEnv.MayFloat64("PRICE", c.Defaults.PricePerLiter)
	c.Defaults.SalesTarget = defEnv.MayFloat64("TARGET", c.Defaults.SalesTarget)
}

// Validate reports the first setting that cannot be used
func (c *Config) Validate() error {
	switch c.Session.Backend {
	case BackendMemory:
		if c.Session.MaxSessions <= 0 {
			return errors.New("config: session.max_sessions must be positive")
		}
	case BackendRedis:
		if c.Redis.Addr == "" {
			return errors.New("config: redis.addr is required for the redis session backend")
		}
	default:
		return fmt.Errorf("config: unknown session backend %q", c.Session.Backend)
	}
	if c.Session.TTL <= 0 {
		return errors.New("config: session.ttl must be positive")
	}
	if c.Insight.Enabled && c.Insight.Timeout >= c.Server.WriteTimeout {
		return errors.New("config: insight.timeout must be shorter than server.write_timeout")
	}
	if c.RateLimit.Enabled && (c.RateLimit.Capacity <= 0 || c.RateLimit.Refill <= 0) {
		return errors.New("config: rate_limit capacity and refill must be positive")
	}
	return ValidateDefaults(c.Defaults)
}

// ValidateDefaults checks the form defaults carry no negative numbers
func ValidateDefaults(in domain.ProspectionInput) error {
	if in.DosePerHectare < 0 || in.Area < 0 || in.PricePerLiter < 0 || in.SalesTarget < 0 {
		return errors.New("config: defaults must be non-negative")
	}
	return nil
}
