package routes

import (
	"developer-directory/internal/delivery/http/handler"
	"developer-directory/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health     *handler.HealthHandler
	auth       *handler.AuthHandler
	developers *handler.DeveloperHandler
	authMw     *middleware.AuthMiddleware

	// ws is optional; nil leaves the change feed unmounted.
	ws fiber.Handler
}

func NewRegistry(auth *handler.AuthHandler, developers *handler.DeveloperHandler, authMw *middleware.AuthMiddleware, ws fiber.Handler) *Registry {
	return &Registry{
		health:     handler.NewHealthHandler(),
		auth:       auth,
		developers: developers,
		authMw:     authMw,
		ws:         ws,
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)
	r.registerAuth(app)
	r.registerDevelopers(app)
	r.registerWS(app)

	app.Use(middleware.NotFound())
}

func (r *Registry) registerAuth(app *fiber.App) {
	grp := app.Group("/auth")
	r.auth.RegisterRoutes(grp)
	grp.Get("/me", r.authMw.Middleware(), r.auth.Me)
}

func (r *Registry) registerDevelopers(app *fiber.App) {
	r.developers.RegisterRoutes(app.Group("/developers", r.authMw.Middleware()))
}

func (r *Registry) registerWS(app *fiber.App) {
	if r.ws == nil {
		return
	}
	app.Get("/ws/developers", r.authMw.QueryTokenMiddleware(), r.ws)
}
