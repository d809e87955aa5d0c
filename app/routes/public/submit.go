package public

import (
	"context"
	"errors"

	"aparecida-web/app/database"
	"aparecida-web/app/forms"
	"aparecida-web/app/logger"
	"aparecida-web/app/models"
	"aparecida-web/app/views"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// createRegistration validates in and stores it as a new registration.
// Validation failures come back as forms.Errors.
func (h *Handler) createRegistration(ctx context.Context, in *models.RegistrationInput) (*models.Registration, error) {
	forms.Normalize(in)
	if err := forms.ValidateRegistration(*in); err != nil {
		return nil, err
	}

	reg := in.ToRegistration()
	if err := database.CreateRegistration(ctx, h.DB, reg); err != nil {
		logger.Named("public").Error("create registration failed",
			zap.String("form_type", string(in.FormType)), zap.Error(err))
		h.Metrics.Error("registrations.create")
		return nil, err
	}

	h.Metrics.Registration(string(reg.FormType))
	logger.Named("public").Info("registration created",
		zap.String("id", reg.ID), zap.String("form_type", string(reg.FormType)))
	return reg, nil
}

func (h *Handler) createDizimista(ctx context.Context, in *models.DizimistaInput) (*models.Dizimista, error) {
	forms.NormalizeDizimista(in)
	if err := forms.ValidateDizimista(*in); err != nil {
		return nil, err
	}

	d := &models.Dizimista{}
	in.ApplyTo(d)
	if err := database.CreateDizimista(ctx, h.DB, d); err != nil {
		logger.Named("public").Error("create dizimista failed", zap.Error(err))
		h.Metrics.Error("dizimistas.create")
		return nil, err
	}

	h.Metrics.Dizimista()
	logger.Named("public").Info("dizimista created", zap.String("id", d.ID))
	return d, nil
}

// SubmitRegistration handles the HTML registration form. Success redirects
// back to the card list so a reload does not resubmit.
func (h *Handler) SubmitRegistration(c *fiber.Ctx) error {
	var in models.RegistrationInput
	if err := c.BodyParser(&in); err != nil {
		return h.renderRegistrations(c, fiber.StatusBadRequest, nil, views.Failure(msgRegistrationFailed))
	}
	if !in.FormType.Valid() {
		return h.renderRegistrations(c, fiber.StatusBadRequest, nil, views.Failure(msgInvalidFormType))
	}

	_, err := h.createRegistration(c.UserContext(), &in)
	var invalid forms.Errors
	switch {
	case errors.As(err, &invalid):
		return h.renderRegistrations(c, fiber.StatusUnprocessableEntity,
			newRegistrationForm(in.FormType, in, invalid), nil)
	case err != nil:
		return h.renderRegistrations(c, fiber.StatusInternalServerError,
			newRegistrationForm(in.FormType, in, nil), views.Failure(msgRegistrationFailed))
	}
	return c.Redirect("/inscricoes?enviado=1")
}

func (h *Handler) SubmitDizimista(c *fiber.Ctx) error {
	var in models.DizimistaInput
	if err := c.BodyParser(&in); err != nil {
		return h.renderTithe(c, fiber.StatusBadRequest, newDizimistaForm(in, nil), views.Failure(msgDizimistaFailed))
	}

	_, err := h.createDizimista(c.UserContext(), &in)
	var invalid forms.Errors
	switch {
	case errors.As(err, &invalid):
		return h.renderTithe(c, fiber.StatusUnprocessableEntity, newDizimistaForm(in, invalid), nil)
	case err != nil:
		return h.renderTithe(c, fiber.StatusInternalServerError, newDizimistaForm(in, nil), views.Failure(msgDizimistaFailed))
	}
	return c.Redirect("/dizimo?enviado=1")
}
