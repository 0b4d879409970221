package app

import (
	"context"
	"fmt"
	"time"

	"developer-directory/internal/config"
	"developer-directory/internal/database"
	"developer-directory/internal/database/migration"
	dbpostgres "developer-directory/internal/database/postgres"
	"developer-directory/internal/domain/account"
	"developer-directory/internal/domain/developer"
	"developer-directory/internal/infrastructure/cache"
	"developer-directory/internal/infrastructure/persistence/memory"
	"developer-directory/internal/infrastructure/persistence/postgres"
	"developer-directory/internal/pkg/jwt"
	applogger "developer-directory/internal/pkg/logger"
	"developer-directory/internal/pkg/metrics"
	"developer-directory/internal/pkg/password"
	"developer-directory/internal/pkg/validation"
	"developer-directory/internal/ws"
	"developer-directory/migrations"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// Container holds the process-lifetime dependencies built from Config.
type Container struct {
	Config config.Config
	Logger *zap.Logger

	// DB is nil when running on the memory driver.
	DB         database.DB
	Accounts   account.Repository
	Developers developer.Repository

	Cache     *cache.Redis
	Hub       *ws.Hub
	JWT       jwt.Service
	Hasher    password.Hasher
	Validator *validation.Validator

	Registry *prometheus.Registry
	Metrics  *metrics.Metrics
}

func NewContainer(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Container, error) {
	logger = applogger.OrNop(logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	c := &Container{
		Config:    cfg,
		Logger:    logger,
		Hasher:    password.New(cfg.Security.PasswordHasher, cfg.Security.BcryptCost),
		JWT:       jwt.NewHMACService(cfg.JWT.Secret, cfg.JWT.ExpiresIn),
		Validator: validation.New(),
		Hub:       ws.NewHub(logger.Named("ws")),
		Registry:  reg,
		Metrics:   metrics.New(reg),
	}

	switch cfg.Database.Driver {
	case config.DriverMemory:
		store := memory.NewStore()
		c.Accounts = store.Accounts()
		c.Developers = store.Developers()
		logger.Warn("using in-memory store; data is lost on restart")

	default:
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		db, err := dbpostgres.Connect(connectCtx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		c.DB = db

		if cfg.Database.AutoMigrate {
			if _, err := (migration.Runner{Source: migrations.FS, Logger: logger}).Run(ctx, db.SQLDB()); err != nil {
				_ = db.Close()
				return nil, fmt.Errorf("migrate: %w", err)
			}
		}

		c.Accounts = postgres.NewAccountRepository(db)
		c.Developers = postgres.NewDeveloperRepository(db)
	}

	c.Cache = cache.NewRedis(ctx, cfg.Redis, logger.Named("cache"))

	return c, nil
}

// Ready reports whether the backing store is reachable.
func (c *Container) Ready(ctx context.Context) error {
	if c == nil || c.DB == nil {
		return nil
	}
	return c.DB.Ping(ctx)
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	_ = c.Cache.Close()
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
