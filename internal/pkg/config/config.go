package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// DevJWTSecret is used when JWT_SECRET is not set. Never rely on it outside development.
const DevJWTSecret = "municipio-dev-secret-cambiar"

const (
	GuardNone  = "none"
	GuardRedis = "redis"
)

type Config struct {
	Port         string        `env:"PORT,           default=3001"`
	Env          string        `env:"ENV,            default=development"`
	JWTSecret    string        `env:"JWT_SECRET"`
	JWTExpiresIn time.Duration `env:"JWT_EXPIRES_IN, default=24h"`
	LogLevel     string        `env:"LOG_LEVEL,      default=info"`
	CORSOrigins  []string      `env:"CORS_ORIGINS,   default=*"`

	// RegistrationGuard selects how concurrent registrations of the same pair
	// are serialised: "none" or "redis".
	RegistrationGuard string `env:"REGISTRATION_GUARD, default=none"`
	AuditWorkers      int    `env:"AUDIT_WORKERS,      default=4"`

	DB    DBConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type DBConfig struct {
	Host            string        `env:"DB_HOST,              default=localhost"`
	Port            int           `env:"DB_PORT,              default=3306"`
	User            string        `env:"DB_USER,              default=root"`
	Password        string        `env:"DB_PASSWORD"`
	Name            string        `env:"DB_NAME,              default=eventos_municipales"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS,    default=25"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS,    default=25"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME, default=5m"`
}

// MongoConfig is optional: an empty URI disables the audit trail.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=eventos_auditoria"`
}

// RedisConfig is optional: an empty Addr disables the registration guard.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom reads configuration from the given lookuper and validates it.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = DevJWTSecret
	}
	cfg.RegistrationGuard = strings.ToLower(strings.TrimSpace(cfg.RegistrationGuard))
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.RegistrationGuard {
	case GuardNone, GuardRedis:
	default:
		return fmt.Errorf("REGISTRATION_GUARD must be %q or %q, got %q", GuardNone, GuardRedis, c.RegistrationGuard)
	}
	if c.RegistrationGuard == GuardRedis && c.Redis.Addr == "" {
		return fmt.Errorf("REGISTRATION_GUARD=redis requires REDIS_ADDR")
	}
	if c.JWTExpiresIn <= 0 {
		return fmt.Errorf("JWT_EXPIRES_IN must be positive")
	}
	return nil
}

// IsDevelopment reports whether the service runs with ENV=development.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
