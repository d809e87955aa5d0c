package public

import (
	"errors"

	"aparecida-web/app/forms"
	"aparecida-web/app/logger"
	"aparecida-web/app/models"
	"aparecida-web/app/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func invalidForm(c *fiber.Ctx, errs forms.Errors) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"success": false,
		"error":   "Verifique os campos destacados",
		"fields":  errs,
	})
}

// CreateRegistrationAPI creates a registration from a JSON body.
func (h *Handler) CreateRegistrationAPI(c *fiber.Ctx) error {
	var in models.RegistrationInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Requisição inválida")
	}

	reg, err := h.createRegistration(c.UserContext(), &in)
	var invalid forms.Errors
	switch {
	case errors.As(err, &invalid):
		return invalidForm(c, invalid)
	case err != nil:
		return fiber.NewError(fiber.StatusInternalServerError, msgRegistrationFailed)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":      true,
		"message":      msgRegistrationCreated,
		"registration": reg,
	})
}

// CreateDizimistaAPI creates a dizimista from a JSON body.
func (h *Handler) CreateDizimistaAPI(c *fiber.Ctx) error {
	var in models.DizimistaInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Requisição inválida")
	}

	d, err := h.createDizimista(c.UserContext(), &in)
	var invalid forms.Errors
	switch {
	case errors.As(err, &invalid):
		return invalidForm(c, invalid)
	case err != nil:
		return fiber.NewError(fiber.StatusInternalServerError, msgDizimistaFailed)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":   true,
		"message":   msgDizimistaCreated,
		"dizimista": d,
	})
}

// LookupCEPAPI resolves a postal code into an address.
func (h *Handler) LookupCEPAPI(c *fiber.Ctx) error {
	addr, err := h.CEP.Lookup(c.UserContext(), c.Params("cep"))
	switch {
	case errors.Is(err, services.ErrInvalidCEP):
		return fiber.NewError(fiber.StatusBadRequest, "CEP inválido")
	case errors.Is(err, services.ErrCEPNotFound):
		return fiber.NewError(fiber.StatusNotFound, "CEP não encontrado")
	case err != nil:
		logger.Named("public").Warn("cep lookup failed", zap.String("cep", c.Params("cep")), zap.Error(err))
		h.Metrics.Error("cep.lookup")
		return fiber.NewError(fiber.StatusBadGateway, "Erro ao buscar CEP")
	}

	return c.JSON(fiber.Map{
		"address": addr,
		"line":    addr.Line(),
	})
}

// GetSettingsAPI returns the public site settings.
func (h *Handler) GetSettingsAPI(c *fiber.Ctx) error {
	settings, err := h.Settings.Get(c.UserContext())
	if err != nil {
		logger.Named("public").Error("load site settings failed", zap.Error(err))
		h.Metrics.Error("settings.get")
		return fiber.NewError(fiber.StatusInternalServerError, "Erro ao carregar as configurações do site")
	}
	return c.JSON(settings)
}
