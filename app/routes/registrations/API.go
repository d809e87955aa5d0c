package registrations

import (
	"errors"

	"aparecida-web/app/database"
	"aparecida-web/app/forms"
	"aparecida-web/app/logger"
	"aparecida-web/app/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func (h *Handler) GetRegistrationsAPI(c *fiber.Ctx) error {
	regs, err := database.GetRegistrations(c.UserContext(), h.DB, filterFrom(c))
	if err != nil {
		logger.Named("registrations").Error("list registrations failed", zap.Error(err))
		h.Metrics.Error("registrations.list")
		return fiber.NewError(fiber.StatusInternalServerError, msgLoadFailed)
	}
	return c.JSON(fiber.Map{
		"registrations": regs,
		"count":         len(regs),
	})
}

func (h *Handler) GetRegistrationAPI(c *fiber.Ctx) error {
	reg, err := h.find(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"registration": reg,
		"fields":       DetailFields(reg),
	})
}

// UpdateRegistrationAPI rewrites the editable fields of a registration.
// The form type and creation time cannot be changed.
func (h *Handler) UpdateRegistrationAPI(c *fiber.Ctx) error {
	reg, err := h.find(c)
	if err != nil {
		return err
	}

	var in models.RegistrationInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Requisição inválida")
	}
	in.FormType = reg.FormType
	forms.Normalize(&in)
	if err := forms.ValidateRegistration(in); err != nil {
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

	in.ApplyTo(reg)
	if err := database.UpdateRegistration(c.UserContext(), h.DB, reg); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, msgNotFound)
		}
		logger.Named("registrations").Error("update registration failed", zap.String("id", reg.ID), zap.Error(err))
		h.Metrics.Error("registrations.update")
		return fiber.NewError(fiber.StatusInternalServerError, "Erro ao atualizar inscrição")
	}

	logger.Named("registrations").Info("registration updated", zap.String("id", reg.ID))
	return c.JSON(fiber.Map{
		"success":      true,
		"registration": reg,
	})
}

// DeleteRegistrationAPI deletes a registration. The caller must pass
// ?confirm=true.
func (h *Handler) DeleteRegistrationAPI(c *fiber.Ctx) error {
	if c.Query("confirm") != "true" {
		return fiber.NewError(fiber.StatusBadRequest, "Confirmação necessária: use ?confirm=true")
	}
	if err := h.delete(c); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, msgNotFound)
		}
		return fiber.NewError(fiber.StatusInternalServerError, msgDeleteFailed)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": msgDeleted,
	})
}
