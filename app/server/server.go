// Package server assembles the Fiber application: views, middleware,
// static mounts and every route group.
package server

import (
	"errors"
	"strconv"
	"strings"

	"aparecida-web/app/database"
	"aparecida-web/app/logger"
	"aparecida-web/app/metrics"
	"aparecida-web/app/routes/auth"
	"aparecida-web/app/routes/dashboard"
	"aparecida-web/app/routes/dizimistas"
	"aparecida-web/app/routes/public"
	"aparecida-web/app/routes/registrations"
	"aparecida-web/app/routes/settings"
	"aparecida-web/app/services"
	"aparecida-web/app/storage"
	"aparecida-web/app/views"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Deps are the long-lived services the handlers share.
type Deps struct {
	DB       *database.DB
	Auth     *auth.Service
	Settings *services.SiteSettings
	CEP      *services.CEPClient
	Store    *storage.Store
	Metrics  *metrics.Metrics

	ReloadTemplates bool
	AccessLog       bool
}

// New builds the application with every route mounted.
func New(d Deps) *fiber.App {
	site := &public.Handler{DB: d.DB, Settings: d.Settings, CEP: d.CEP, Metrics: d.Metrics}

	app := fiber.New(fiber.Config{
		Views:             views.New(d.ReloadTemplates),
		ViewsLayout:       views.PublicLayout,
		PassLocalsToViews: true,
		ErrorHandler:      errorHandler(site, d.Metrics),
		BodyLimit:         8 * 1024 * 1024,
	})

	// Middleware
	app.Use(recover.New())
	if d.AccessLog {
		app.Use(fiberlogger.New())
	}
	app.Use(cors.New())

	// Static files
	app.Use("/static", filesystem.New(filesystem.Config{
		Root:   views.Static(),
		MaxAge: 3600,
	}))
	app.Use(strings.TrimSuffix(storage.PublicPrefix, "/"), filesystem.New(filesystem.Config{
		Root: d.Store.HTTP(),
	}))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.Metrics.Registry, promhttp.HandlerOpts{})))

	// Routes
	auth.SetupAuthRoutes(app, d.Auth)
	public.SetupPublicRoutes(app, site)
	dashboard.SetupDashboardRoutes(app, &dashboard.Handler{DB: d.DB, Metrics: d.Metrics}, d.Auth)
	registrations.SetupRegistrationsRoutes(app, &registrations.Handler{DB: d.DB, Metrics: d.Metrics}, d.Auth)
	dizimistas.SetupDizimistasRoutes(app, &dizimistas.Handler{DB: d.DB, Metrics: d.Metrics}, d.Auth)
	settings.SetupSettingsRoutes(app, &settings.Handler{Settings: d.Settings, Store: d.Store, Metrics: d.Metrics}, d.Auth)

	// Catch-all route for 404 errors (must be last)
	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Página não encontrada")
	})

	return app
}

// errorHandler answers API paths with JSON and web paths with the 404 or
// error page.
func errorHandler(site *public.Handler, m *metrics.Metrics) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}

		if code >= fiber.StatusInternalServerError {
			logger.Named("server").Error("request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Int("status", code),
				zap.Error(err))
			m.Error("http")
		}

		if auth.IsAPIRequest(c) {
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
				"code":    code,
			})
		}

		if code == fiber.StatusNotFound {
			return site.Render(c, code, "404", "", "Página não encontrada", nil)
		}

		title, message := "Ocorreu um erro", err.Error()
		if code >= fiber.StatusInternalServerError {
			message = "Ocorreu um erro. Por favor, tente novamente."
		}
		return site.Render(c, code, "error", "", title, fiber.Map{
			"ErrorCode":    strconv.Itoa(code),
			"ErrorTitle":   title,
			"ErrorMessage": message,
		})
	}
}
