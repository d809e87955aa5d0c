package public

import (
	"aparecida-web/app/database"
	"aparecida-web/app/logger"
	"aparecida-web/app/metrics"
	"aparecida-web/app/models"
	"aparecida-web/app/services"
	"aparecida-web/app/views"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler serves the public site and its JSON API.
type Handler struct {
	DB       *database.DB
	Settings *services.SiteSettings
	CEP      *services.CEPClient
	Metrics  *metrics.Metrics
}

func SetupPublicRoutes(app *fiber.App, h *Handler) {
	// Pages
	app.Get("/", h.HomePage)
	app.Get("/sobre", h.AboutPage)
	app.Get("/horarios", h.SchedulePage)
	app.Get("/capelas", h.ChapelsPage)
	app.Get("/inscricoes", h.RegistrationsPage)
	app.Post("/inscricoes", h.SubmitRegistration)
	app.Get("/dizimo", h.TithePage)
	app.Post("/dizimo", h.SubmitDizimista)

	// API routes
	api := app.Group("/api")
	api.Post("/registrations", h.CreateRegistrationAPI)
	api.Post("/dizimistas", h.CreateDizimistaAPI)
	api.Get("/cep/:cep", h.LookupCEPAPI)
	api.Get("/settings", h.GetSettingsAPI)
}

// SiteSettings returns the current settings, or the defaults when they
// cannot be read.
func (h *Handler) SiteSettings(c *fiber.Ctx) models.SiteSettings {
	settings, err := h.Settings.Get(c.UserContext())
	if err != nil {
		logger.Named("public").Error("load site settings failed", zap.Error(err))
		h.Metrics.Error("settings.get")
		return models.DefaultSiteSettings()
	}
	return settings
}

// Render renders a public page inside the main layout. data may be nil.
func (h *Handler) Render(c *fiber.Ctx, status int, name, page, title string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	settings := h.SiteSettings(c)
	data["Settings"] = settings
	data["CurrentPage"] = page
	data["Title"] = title + " - " + settings.ChurchName
	if _, ok := data["Toast"]; !ok {
		data["Toast"] = (*views.Toast)(nil)
	}
	return c.Status(status).Render(name, data, views.PublicLayout)
}
