package registrations

import (
	"errors"

	"aparecida-web/app/catalog"
	"aparecida-web/app/database"
	"aparecida-web/app/dates"
	"aparecida-web/app/logger"
	"aparecida-web/app/models"
	"aparecida-web/app/pdf"
	"aparecida-web/app/views"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	msgLoadFailed   = "Erro ao carregar inscrições"
	msgNotFound     = "Inscrição não encontrada"
	msgDeleted      = "Inscrição excluída com sucesso!"
	msgDeleteFailed = "Erro ao excluir inscrição"
	msgPDFFailed    = "Erro ao gerar PDF"
)

type row struct {
	ID        string
	Name      string
	Type      string
	Phone     string
	CreatedAt string
}

func toRow(r *models.Registration) row {
	return row{
		ID:        r.ID,
		Name:      r.Name,
		Type:      catalog.FormTypes.Label(string(r.FormType)),
		Phone:     r.Phone,
		CreatedAt: dates.FormatOr(r.CreatedAt, dates.NotInformed),
	}
}

// filterFrom reads ?tipo=. Unknown types mean no filter.
func filterFrom(c *fiber.Ctx) models.FormType {
	ft := models.FormType(c.Query("tipo"))
	if !ft.Valid() {
		return ""
	}
	return ft
}

// RegistrationsPage lists registrations newest first. ?id= opens the
// detail panel.
func (h *Handler) RegistrationsPage(c *fiber.Ctx) error {
	ctx := c.UserContext()
	filter := filterFrom(c)
	status := fiber.StatusOK
	var toast *views.Toast
	if c.Query("excluido") == "1" {
		toast = views.Success(msgDeleted)
	}

	rows := []row{}
	regs, err := database.GetRegistrations(ctx, h.DB, filter)
	if err != nil {
		logger.Named("registrations").Error("list registrations failed", zap.Error(err))
		h.Metrics.Error("registrations.list")
		status, toast = fiber.StatusInternalServerError, views.Failure(msgLoadFailed)
	}
	for _, r := range regs {
		rows = append(rows, toRow(r))
	}

	var detail *Detail
	if id := c.Query("id"); id != "" {
		reg, err := database.GetRegistrationByID(ctx, h.DB, id)
		switch {
		case errors.Is(err, database.ErrNotFound):
			status, toast = fiber.StatusNotFound, views.Failure(msgNotFound)
		case err != nil:
			logger.Named("registrations").Error("load registration failed", zap.String("id", id), zap.Error(err))
			h.Metrics.Error("registrations.get")
			status, toast = fiber.StatusInternalServerError, views.Failure(msgLoadFailed)
		default:
			detail = NewDetail(reg)
		}
	}

	return views.RenderAdmin(c, status, "admin/registrations", "registrations", "Inscrições", fiber.Map{
		"Filter": string(filter),
		"Types":  catalog.FormTypes.Options(),
		"Rows":   rows,
		"Detail": detail,
		"Toast":  toast,
	})
}

// DownloadPDF sends the registration sheet as an attachment.
func (h *Handler) DownloadPDF(c *fiber.Ctx) error {
	reg, err := h.find(c)
	if err != nil {
		return err
	}

	sheet, err := pdf.ForRegistration(reg)
	if err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}
	body, err := pdf.Bytes(sheet)
	if err != nil {
		logger.Named("registrations").Error("render pdf failed", zap.String("id", reg.ID), zap.Error(err))
		h.Metrics.Error("registrations.pdf")
		return fiber.NewError(fiber.StatusInternalServerError, msgPDFFailed)
	}

	h.Metrics.PDF(sheet.Kind)
	c.Attachment(pdf.Filename("Cadastro", reg.Name, dates.Day(dates.Now())))
	return c.Send(body)
}

func (h *Handler) ConfirmDeletePage(c *fiber.Ctx) error {
	reg, err := h.find(c)
	if err != nil {
		return err
	}
	return views.RenderAdmin(c, fiber.StatusOK, "admin/confirm_delete", "registrations", "Excluir inscrição", fiber.Map{
		"Kind":   "inscrição",
		"Name":   catalog.Text(reg.Name),
		"Action": "/admin/registrations/" + reg.ID + "/delete",
		"Back":   "/admin/registrations?id=" + reg.ID,
	})
}

// DeleteRegistration removes the registration once the form confirms it.
func (h *Handler) DeleteRegistration(c *fiber.Ctx) error {
	if c.FormValue("confirm") != "sim" {
		return c.Redirect("/admin/registrations/" + c.Params("id") + "/delete")
	}
	if err := h.delete(c); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, msgNotFound)
		}
		return views.RenderAdmin(c, fiber.StatusInternalServerError, "admin/registrations", "registrations", "Inscrições", fiber.Map{
			"Filter": "",
			"Types":  catalog.FormTypes.Options(),
			"Rows":   []row{},
			"Detail": (*Detail)(nil),
			"Toast":  views.Failure(msgDeleteFailed),
		})
	}
	return c.Redirect("/admin/registrations?excluido=1")
}

// find loads the registration named by :id, mapping misses to 404.
func (h *Handler) find(c *fiber.Ctx) (*models.Registration, error) {
	id := c.Params("id")
	reg, err := database.GetRegistrationByID(c.UserContext(), h.DB, id)
	switch {
	case errors.Is(err, database.ErrNotFound):
		return nil, fiber.NewError(fiber.StatusNotFound, msgNotFound)
	case err != nil:
		logger.Named("registrations").Error("load registration failed", zap.String("id", id), zap.Error(err))
		h.Metrics.Error("registrations.get")
		return nil, fiber.NewError(fiber.StatusInternalServerError, msgLoadFailed)
	}
	return reg, nil
}

func (h *Handler) delete(c *fiber.Ctx) error {
	id := c.Params("id")
	err := database.DeleteRegistration(c.UserContext(), h.DB, id)
	switch {
	case errors.Is(err, database.ErrNotFound):
		return err
	case err != nil:
		logger.Named("registrations").Error("delete registration failed", zap.String("id", id), zap.Error(err))
		h.Metrics.Error("registrations.delete")
		return err
	}
	logger.Named("registrations").Info("registration deleted", zap.String("id", id))
	return nil
}
