package dashboard

import (
	"aparecida-web/app/database"
	"aparecida-web/app/metrics"
	"aparecida-web/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	DB      *database.DB
	Metrics *metrics.Metrics
}

func SetupDashboardRoutes(app *fiber.App, h *Handler, s *auth.Service) {
	app.Get("/admin", append(s.Admin(), h.GetDashboard)...)
	app.Get("/api/admin/stats", append(s.Admin(), h.GetDashboardStatsAPI)...)
}
