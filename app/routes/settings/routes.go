package settings

import (
	"aparecida-web/app/metrics"
	"aparecida-web/app/routes/auth"
	"aparecida-web/app/services"
	"aparecida-web/app/storage"

	"github.com/gofiber/fiber/v2"
)

// Handler edits the site settings and the home page banner.
type Handler struct {
	Settings *services.SiteSettings
	Store    *storage.Store
	Metrics  *metrics.Metrics
}

func SetupSettingsRoutes(app *fiber.App, h *Handler, s *auth.Service) {
	settings := app.Group("/admin/settings", s.Admin()...)
	settings.Get("/", h.SettingsPage)
	settings.Post("/", h.SaveSettings)

	api := app.Group("/api/admin/settings", s.Admin()...)
	api.Get("/", h.GetSettingsAPI)
	api.Put("/", h.UpdateSettingsAPI)
}
