package public

import (
	"aparecida-web/app/models"
	"aparecida-web/app/views"

	"github.com/gofiber/fiber/v2"
)

const (
	msgRegistrationCreated = "Inscrição realizada com sucesso!"
	msgRegistrationFailed  = "Erro ao realizar inscrição. Tente novamente."
	msgDizimistaCreated    = "Cadastro de dizimista realizado com sucesso!"
	msgDizimistaFailed     = "Erro ao realizar cadastro. Tente novamente."
	msgInvalidFormType     = "Tipo de inscrição inválido"
)

func (h *Handler) HomePage(c *fiber.Ctx) error {
	return h.Render(c, fiber.StatusOK, "home", "home", "Início", fiber.Map{
		"Mission":      Mission,
		"MassSchedule": MassSchedule,
		"FormCards":    FormCards,
	})
}

func (h *Handler) AboutPage(c *fiber.Ctx) error {
	return h.Render(c, fiber.StatusOK, "sobre", "sobre", "Sobre", fiber.Map{
		"Mission":     Mission,
		"OfficeHours": OfficeHours,
	})
}

func (h *Handler) SchedulePage(c *fiber.Ctx) error {
	return h.Render(c, fiber.StatusOK, "horarios", "horarios", "Horários", fiber.Map{
		"MassSchedule":        MassSchedule,
		"SpecialCelebrations": SpecialCelebrations,
	})
}

func (h *Handler) ChapelsPage(c *fiber.Ctx) error {
	return h.Render(c, fiber.StatusOK, "capelas", "capelas", "Capelas", fiber.Map{
		"Chapels":            Chapels,
		"ChapelCelebrations": ChapelCelebrations,
	})
}

// RegistrationsPage shows the form cards, or the form named by ?tipo=.
func (h *Handler) RegistrationsPage(c *fiber.Ctx) error {
	var toast *views.Toast
	if c.Query("enviado") == "1" {
		toast = views.Success(msgRegistrationCreated)
	}
	ft := models.FormType(c.Query("tipo"))
	form := newRegistrationForm(ft, models.RegistrationInput{FormType: ft}, nil)
	return h.renderRegistrations(c, fiber.StatusOK, form, toast)
}

func (h *Handler) renderRegistrations(c *fiber.Ctx, status int, form *registrationForm, toast *views.Toast) error {
	title := "Inscrições"
	if form != nil {
		title = form.Title
	}
	return h.Render(c, status, "inscricoes", "inscricoes", title, fiber.Map{
		"FormCards": FormCards,
		"Form":      form,
		"Toast":     toast,
	})
}

func (h *Handler) TithePage(c *fiber.Ctx) error {
	var toast *views.Toast
	if c.Query("enviado") == "1" {
		toast = views.Success(msgDizimistaCreated)
	}
	return h.renderTithe(c, fiber.StatusOK, newDizimistaForm(models.DizimistaInput{}, nil), toast)
}

func (h *Handler) renderTithe(c *fiber.Ctx, status int, form *dizimistaForm, toast *views.Toast) error {
	return h.Render(c, status, "dizimo", "dizimo", "Dízimo", fiber.Map{
		"Account": TitheAccount,
		"Form":    form,
		"Toast":   toast,
	})
}
