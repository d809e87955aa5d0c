package dizimistas

import (
	"context"
	"errors"
	"strings"

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
	msgLoadFailed   = "Erro ao carregar os dizimistas"
	msgNotFound     = "Dizimista não encontrado"
	msgDeleted      = "Dizimista excluído com sucesso!"
	msgDeleteFailed = "Erro ao excluir dizimista"
	msgPDFFailed    = "Erro ao gerar PDF"
	msgInvalidDay   = "Data inválida"
)

type row struct {
	ID        string
	Name      string
	Phone     string
	Community string
	CreatedAt string
}

// Detail is the admin detail panel of one donor.
type Detail struct {
	ID     string
	Title  string
	Fields []pdf.Field
}

func NewDetail(d *models.Dizimista) *Detail {
	return &Detail{
		ID:     d.ID,
		Title:  catalog.Text(d.FullName),
		Fields: pdf.Dizimista(d).Fields,
	}
}

// dayFrom reads ?data=. ok is false when a day was given but is malformed.
func dayFrom(c *fiber.Ctx) (day string, ok bool) {
	day = strings.TrimSpace(c.Query("data"))
	if day == "" {
		return "", true
	}
	if !dates.ValidDay(day) {
		return "", false
	}
	return day, true
}

// list returns donors newest first, keeping only those created on day
// when it is set.
func (h *Handler) list(ctx context.Context, day string) ([]*models.Dizimista, error) {
	all, err := database.GetDizimistas(ctx, h.DB)
	if err != nil {
		logger.Named("dizimistas").Error("list dizimistas failed", zap.Error(err))
		h.Metrics.Error("dizimistas.list")
		return nil, err
	}
	if day == "" {
		return all, nil
	}
	filtered := []*models.Dizimista{}
	for _, d := range all {
		if dates.SameDay(d.CreatedAt, day) {
			filtered = append(filtered, d)
		}
	}
	return filtered, nil
}

func (h *Handler) DizimistasPage(c *fiber.Ctx) error {
	status := fiber.StatusOK
	var toast *views.Toast
	if c.Query("excluido") == "1" {
		toast = views.Success(msgDeleted)
	}

	day, ok := dayFrom(c)
	if !ok {
		status, toast = fiber.StatusBadRequest, views.Failure(msgInvalidDay)
	}

	rows := []row{}
	list, err := h.list(c.UserContext(), day)
	if err != nil {
		status, toast = fiber.StatusInternalServerError, views.Failure(msgLoadFailed)
	}
	for _, d := range list {
		rows = append(rows, row{
			ID:        d.ID,
			Name:      d.FullName,
			Phone:     d.Phone,
			Community: d.Community,
			CreatedAt: dates.FormatOr(d.CreatedAt, dates.NotInformed),
		})
	}

	var detail *Detail
	if id := c.Query("id"); id != "" {
		d, err := database.GetDizimistaByID(c.UserContext(), h.DB, id)
		switch {
		case errors.Is(err, database.ErrNotFound):
			status, toast = fiber.StatusNotFound, views.Failure(msgNotFound)
		case err != nil:
			logger.Named("dizimistas").Error("load dizimista failed", zap.String("id", id), zap.Error(err))
			h.Metrics.Error("dizimistas.get")
			status, toast = fiber.StatusInternalServerError, views.Failure(msgLoadFailed)
		default:
			detail = NewDetail(d)
		}
	}

	return views.RenderAdmin(c, status, "admin/dizimistas", "dizimistas", "Dizimistas", fiber.Map{
		"Day":    day,
		"Rows":   rows,
		"Detail": detail,
		"Toast":  toast,
	})
}

func (h *Handler) DownloadPDF(c *fiber.Ctx) error {
	d, err := h.find(c)
	if err != nil {
		return err
	}

	sheet := pdf.Dizimista(d)
	body, err := pdf.Bytes(sheet)
	if err != nil {
		logger.Named("dizimistas").Error("render pdf failed", zap.String("id", d.ID), zap.Error(err))
		h.Metrics.Error("dizimistas.pdf")
		return fiber.NewError(fiber.StatusInternalServerError, msgPDFFailed)
	}

	h.Metrics.PDF(sheet.Kind)
	c.Attachment(pdf.Filename("Dizimista", d.FullName, dates.Day(dates.Now())))
	return c.Send(body)
}

func (h *Handler) ConfirmDeletePage(c *fiber.Ctx) error {
	d, err := h.find(c)
	if err != nil {
		return err
	}
	return views.RenderAdmin(c, fiber.StatusOK, "admin/confirm_delete", "dizimistas", "Excluir dizimista", fiber.Map{
		"Kind":   "dizimista",
		"Name":   catalog.Text(d.FullName),
		"Action": "/admin/dizimistas/" + d.ID + "/delete",
		"Back":   "/admin/dizimistas?id=" + d.ID,
	})
}

func (h *Handler) DeleteDizimista(c *fiber.Ctx) error {
	if c.FormValue("confirm") != "sim" {
		return c.Redirect("/admin/dizimistas/" + c.Params("id") + "/delete")
	}
	if err := h.delete(c); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, msgNotFound)
		}
		return views.RenderAdmin(c, fiber.StatusInternalServerError, "admin/dizimistas", "dizimistas", "Dizimistas", fiber.Map{
			"Day":    "",
			"Rows":   []row{},
			"Detail": (*Detail)(nil),
			"Toast":  views.Failure(msgDeleteFailed),
		})
	}
	return c.Redirect("/admin/dizimistas?excluido=1")
}

func (h *Handler) find(c *fiber.Ctx) (*models.Dizimista, error) {
	id := c.Params("id")
	d, err := database.GetDizimistaByID(c.UserContext(), h.DB, id)
	switch {
	case errors.Is(err, database.ErrNotFound):
		return nil, fiber.NewError(fiber.StatusNotFound, msgNotFound)
	case err != nil:
		logger.Named("dizimistas").Error("load dizimista failed", zap.String("id", id), zap.Error(err))
		h.Metrics.Error("dizimistas.get")
		return nil, fiber.NewError(fiber.StatusInternalServerError, msgLoadFailed)
	}
	return d, nil
}

func (h *Handler) delete(c *fiber.Ctx) error {
	id := c.Params("id")
	err := database.DeleteDizimista(c.UserContext(), h.DB, id)
	switch {
	case errors.Is(err, database.ErrNotFound):
		return err
	case err != nil:
		logger.Named("dizimistas").Error("delete dizimista failed", zap.String("id", id), zap.Error(err))
		h.Metrics.Error("dizimistas.delete")
		return err
	}
	logger.Named("dizimistas").Info("dizimista deleted", zap.String("id", id))
	return nil
}
