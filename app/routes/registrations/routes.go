package registrations

import (
	"aparecida-web/app/database"
	"aparecida-web/app/metrics"
	"aparecida-web/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// Handler serves the registration back-office.
type Handler struct {
	DB      *database.DB
	Metrics *metrics.Metrics
}

func SetupRegistrationsRoutes(app *fiber.App, h *Handler, s *auth.Service) {
	registrations := app.Group("/admin/registrations", s.Admin()...)

	// Routes
	registrations.Get("/", h.RegistrationsPage)
	registrations.Get("/:id/pdf", h.DownloadPDF)
	registrations.Get("/:id/delete", h.ConfirmDeletePage)
	registrations.Post("/:id/delete", h.DeleteRegistration)

	// API routes
	api := app.Group("/api/admin/registrations", s.Admin()...)
	api.Get("/", h.GetRegistrationsAPI)           // ?tipo=<formType>
	api.Get("/:id", h.GetRegistrationAPI)
	api.Put("/:id", h.UpdateRegistrationAPI)
	api.Delete("/:id", h.DeleteRegistrationAPI) // requires ?confirm=true
}
