package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	CORS     CORSConfig
	Redis    RedisConfig
	Admin    AdminConfig
	Log      LogConfig
	Security SecurityConfig
}

type AppConfig struct {
	AppName      string
	Environment  string
	HTTPPort     string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type DatabaseConfig struct {
	Driver string
	URL    string

	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration

	AutoMigrate bool
}

type JWTConfig struct {
	Secret    string
	ExpiresIn time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type RedisConfig struct {
	Enabled  bool
	URL      string
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

type AdminConfig struct {
	Addr string
	// Pprof holds explicit PPROF_<NAME>=yes|no overrides keyed by profile name.
	Pprof map[string]bool
}

// PprofProfiles lists the profiles the admin server knows how to serve.
var PprofProfiles = []string{
	"allocs", "block", "cmdline", "goroutine", "heap", "mutex", "profile", "threadcreate", "trace",
}

type LogConfig struct {
	Level  string
	Format string
}

type SecurityConfig struct {
	PasswordHasher string
	BcryptCost     int
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.App.Environment, "production")
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() (Config, error) {
	cfg := Config{}

	var missing, invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, def string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		return v
	}
	dur := func(key string, def time.Duration) time.Duration {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return def
		}
		d, err := ParseDuration(raw)
		if err != nil || d < 0 {
			invalid = append(invalid, key)
			return def
		}
		return d
	}
	num := func(key string, def int) int {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	flag := func(key string, def bool) bool {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return def
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}

	cfg.App = AppConfig{
		AppName:      opt("APP_NAME", "developer-directory"),
		Environment:  opt("APP_ENV", "development"),
		HTTPPort:     opt("PORT", opt("HTTP_PORT", "5000")),
		ReadTimeout:  dur("HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout: dur("HTTP_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:  dur("HTTP_IDLE_TIMEOUT", 60*time.Second),
	}

	cfg.Database = DatabaseConfig{
		Driver:                strings.ToLower(opt("DB_DRIVER", DriverPostgres)),
		URL:                   opt("DATABASE_URL", ""),
		DBHost:                opt("DB_HOST", ""),
		DBPort:                opt("DB_PORT", "5432"),
		DBName:                opt("DB_NAME", ""),
		DBUser:                opt("DB_USER", ""),
		DBPassword:            os.Getenv("DB_PASSWORD"),
		DBSSLMode:             opt("DB_SSL_MODE", "disable"),
		ConnectTimeout:        dur("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(num("DB_POOL_MAX_CONNS", 0)),
		PoolMinConns:          int32(num("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   dur("DB_POOL_MAX_CONN_LIFETIME", 0),
		PoolMaxConnIdleTime:   dur("DB_POOL_MAX_CONN_IDLE_TIME", 0),
		PoolHealthCheckPeriod: dur("DB_POOL_HEALTH_CHECK_PERIOD", 0),
		AutoMigrate:           flag("DB_AUTO_MIGRATE", true),
	}

	switch cfg.Database.Driver {
	case DriverPostgres:
		if cfg.Database.URL == "" && cfg.Database.DBHost == "" {
			missing = append(missing, "DATABASE_URL")
		}
	case DriverMemory:
	default:
		invalid = append(invalid, "DB_DRIVER")
	}

	cfg.JWT = JWTConfig{
		Secret:    req("JWT_SECRET"),
		ExpiresIn: dur("JWT_EXPIRES_IN", 7*24*time.Hour),
	}
	if cfg.JWT.ExpiresIn <= 0 {
		invalid = append(invalid, "JWT_EXPIRES_IN")
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitList(opt("CORS_ORIGIN", "*"))}

	cfg.Redis = RedisConfig{
		Enabled:  flag("REDIS_ENABLED", false),
		URL:      opt("REDIS_URL", ""),
		Host:     opt("REDIS_HOST", "localhost"),
		Port:     opt("REDIS_PORT", "6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       num("REDIS_DB", 0),
		TTL:      dur("REDIS_TTL", 60*time.Second),
	}
	if cfg.Redis.URL != "" {
		cfg.Redis.Enabled = true
	}

	cfg.Admin = AdminConfig{Addr: opt("ADMIN_ADDR", ":9090"), Pprof: map[string]bool{}}
	for _, name := range PprofProfiles {
		key := "PPROF_" + strings.ToUpper(name)
		switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
		case "":
		case "yes":
			cfg.Admin.Pprof[name] = true
		case "no":
			cfg.Admin.Pprof[name] = false
		default:
			invalid = append(invalid, key)
		}
	}

	cfg.Log = LogConfig{
		Level:  strings.ToLower(opt("LOG_LEVEL", "info")),
		Format: strings.ToLower(opt("LOG_FORMAT", "")),
	}

	cfg.Security = SecurityConfig{
		PasswordHasher: strings.ToLower(opt("PASSWORD_HASHER", "bcrypt")),
		BcryptCost:     num("BCRYPT_COST", 10),
	}
	if cfg.Security.PasswordHasher != "bcrypt" && cfg.Security.PasswordHasher != "argon2" {
		invalid = append(invalid, "PASSWORD_HASHER")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// ParseDuration accepts time.ParseDuration syntax plus whole days ("7d").
func ParseDuration(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if days, ok := strings.CutSuffix(raw, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", raw)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	return time.ParseDuration(raw)
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
