package dashboard

import (
	"context"

	"aparecida-web/app/catalog"
	"aparecida-web/app/database"
	"aparecida-web/app/logger"
	"aparecida-web/app/models"
	"aparecida-web/app/views"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// TypeCount is the number of registrations of one form type.
type TypeCount struct {
	Type  models.FormType `json:"formType"`
	Label string          `json:"label"`
	Count int             `json:"count"`
}

// Stats summarises the stored records.
type Stats struct {
	Registrations []TypeCount `json:"registrations"`
	Total         int         `json:"total"`
	Dizimistas    int         `json:"dizimistas"`
}

func (h *Handler) stats(ctx context.Context) (*Stats, error) {
	counts, err := database.CountRegistrationsByType(ctx, h.DB)
	if err != nil {
		return nil, err
	}
	dizimistas, err := database.CountDizimistas(ctx, h.DB)
	if err != nil {
		return nil, err
	}

	s := &Stats{Dizimistas: dizimistas}
	for _, ft := range models.FormTypes {
		s.Registrations = append(s.Registrations, TypeCount{
			Type:  ft,
			Label: catalog.FormTypes.Label(string(ft)),
			Count: counts[ft],
		})
		s.Total += counts[ft]
	}
	return s, nil
}

// GetDashboard handles the admin landing page.
func (h *Handler) GetDashboard(c *fiber.Ctx) error {
	s, err := h.stats(c.UserContext())
	if err != nil {
		logger.Named("dashboard").Error("load dashboard stats failed", zap.Error(err))
		h.Metrics.Error("dashboard.stats")
		return views.RenderAdmin(c, fiber.StatusInternalServerError, "admin/dashboard", "dashboard", "Painel", fiber.Map{
			"Counts":     []TypeCount{},
			"Dizimistas": 0,
			"Total":      0,
			"Toast":      views.Failure("Erro ao carregar estatísticas"),
		})
	}

	return views.RenderAdmin(c, fiber.StatusOK, "admin/dashboard", "dashboard", "Painel", fiber.Map{
		"Counts":     s.Registrations,
		"Dizimistas": s.Dizimistas,
		"Total":      s.Total,
	})
}

// GetDashboardStatsAPI returns dashboard statistics as JSON
func (h *Handler) GetDashboardStatsAPI(c *fiber.Ctx) error {
	s, err := h.stats(c.UserContext())
	if err != nil {
		logger.Named("dashboard").Error("load dashboard stats failed", zap.Error(err))
		h.Metrics.Error("dashboard.stats")
		return fiber.NewError(fiber.StatusInternalServerError, "Erro ao carregar estatísticas")
	}
	return c.JSON(s)
}
