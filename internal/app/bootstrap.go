package app

import (
	"context"
	"fmt"
	"strings"

	"developer-directory/internal/admin"
	"developer-directory/internal/config"
	"developer-directory/internal/delivery/http/handler"
	"developer-directory/internal/delivery/http/middleware"
	"developer-directory/internal/delivery/http/routes"
	"developer-directory/internal/usecase"
	"developer-directory/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Admin     *admin.Server
	Container *Container
}

// New wires use cases, handlers and middleware around an existing container.
func New(c *Container) *App {
	cfg := c.Config
	f := fiber.New(fiber.Config{
		AppName:      cfg.App.AppName,
		ReadTimeout:  cfg.App.ReadTimeout,
		WriteTimeout: cfg.App.WriteTimeout,
		IdleTimeout:  cfg.App.IdleTimeout,
	})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{
		Fiber:     f,
		Admin:     admin.NewServer(cfg.Admin, c.Registry, c.Ready, c.Logger.Named("admin")),
		Container: c,
	}
}

// Bootstrap builds the container, starts background workers and returns the
// app with a cleanup func that stops them.
func Bootstrap(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	go c.Hub.Run(hubCtx)

	app := New(c)
	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return app, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	app.Use(middleware.NewAccessLogMiddleware(c.Logger.Named("http"), c.Metrics).Middleware())
	app.Use(middleware.NewErrorMiddleware(c.Logger.Named("http")).Middleware())
	app.Use(middleware.CORS(c.Config.CORS))
}

func registerRoutes(app *fiber.App, c *Container) {
	authUC := usecase.NewAuthUsecase(c.Accounts, c.Hasher, c.Validator, c.JWT, c.Metrics)
	devUC := usecase.NewDeveloperUsecase(c.Developers, c.Validator,
		usecase.WithListCache(c.Cache, c.Config.Redis.TTL),
		usecase.WithNotifier(ws.NewNotifier(c.Hub, c.Logger.Named("ws"))),
		usecase.WithMetrics(c.Metrics),
		usecase.WithLogger(c.Logger.Named("developers")),
	)

	routes.NewRegistry(
		handler.NewAuthHandler(authUC),
		handler.NewDeveloperHandler(devUC),
		middleware.NewAuthMiddleware(c.JWT, c.Metrics),
		ws.NewHandler(c.Hub, c.Logger.Named("ws")).HandleDevelopersWS,
	).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
