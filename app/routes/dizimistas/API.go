package dizimistas

import (
	"errors"

	"aparecida-web/app/database"
	"aparecida-web/app/forms"
	"aparecida-web/app/logger"
	"aparecida-web/app/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func (h *Handler) GetDizimistasAPI(c *fiber.Ctx) error {
	day, ok := dayFrom(c)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, msgInvalidDay)
	}
	list, err := h.list(c.UserContext(), day)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, msgLoadFailed)
	}
	return c.JSON(fiber.Map{
		"dizimistas": list,
		"count":      len(list),
	})
}

func (h *Handler) GetDizimistaAPI(c *fiber.Ctx) error {
	d, err := h.find(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"dizimista": d})
}

func (h *Handler) UpdateDizimistaAPI(c *fiber.Ctx) error {
	d, err := h.find(c)
	if err != nil {
		return err
	}

	var in models.DizimistaInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Requisição inválida")
	}
	forms.NormalizeDizimista(&in)
	if err := forms.ValidateDizimista(in); err != nil {
		var invalid forms.Errors
		if errors.As(err, &invalid) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"success": false,
				"error":   "Verifique os campos destacados",
				"fields":  invalid,
			})
		}
		return err
	}

	in.ApplyTo(d)
	if err := database.UpdateDizimista(c.UserContext(), h.DB, d); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, msgNotFound)
		}
		logger.Named("dizimistas").Error("update dizimista failed", zap.String("id", d.ID), zap.Error(err))
		h.Metrics.Error("dizimistas.update")
		return fiber.NewError(fiber.StatusInternalServerError, "Erro ao atualizar dizimista")
	}
	return c.JSON(fiber.Map{"success": true, "dizimista": d})
}

func (h *Handler) DeleteDizimistaAPI(c *fiber.Ctx) error {
	if c.Query("confirm") != "true" {
		return fiber.NewError(fiber.StatusBadRequest, "Confirmação necessária: use ?confirm=true")
	}
	if err := h.delete(c); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, msgNotFound)
		}
		return fiber.NewError(fiber.StatusInternalServerError, msgDeleteFailed)
	}
	return c.JSON(fiber.Map{"success": true, "message": msgDeleted})
}
