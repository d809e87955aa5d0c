package dizimistas

import (
	"aparecida-web/app/database"
	"aparecida-web/app/metrics"
	"aparecida-web/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// Handler serves the tithe donor back-office.
type Handler struct {
	DB      *database.DB
	Metrics *metrics.Metrics
}

func SetupDizimistasRoutes(app *fiber.App, h *Handler, s *auth.Service) {
	dizimistas := app.Group("/admin/dizimistas", s.Admin()...)

	// Routes
	dizimistas.Get("/", h.DizimistasPage)
	dizimistas.Get("/:id/pdf", h.DownloadPDF)
	dizimistas.Get("/:id/delete", h.ConfirmDeletePage)
	dizimistas.Post("/:id/delete", h.DeleteDizimista)

	// API routes
	api := app.Group("/api/admin/dizimistas", s.Admin()...)
	api.Get("/", h.GetDizimistasAPI) // ?data=YYYY-MM-DD
	api.Get("/:id", h.GetDizimistaAPI)
	api.Put("/:id", h.UpdateDizimistaAPI)
	api.Delete("/:id", h.DeleteDizimistaAPI) // requires ?confirm=true
}
