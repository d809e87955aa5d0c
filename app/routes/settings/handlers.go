package settings

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"aparecida-web/app/forms"
	"aparecida-web/app/logger"
	"aparecida-web/app/models"
	"aparecida-web/app/views"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	msgLoadFailed = "Erro ao carregar as configurações do site"
	msgSaveFailed = "Erro ao salvar as configurações do site"
	msgSaved      = "Configurações atualizadas com sucesso!"
	msgBadImage   = "Envie uma imagem PNG, JPG ou WEBP"
	msgInvalid    = "Verifique os campos destacados"

	// BannerDir holds every uploaded hero banner.
	BannerDir = "settings"
)

var bannerTypes = map[string]string{
	".png":  ".png",
	".jpg":  ".jpg",
	".jpeg": ".jpg",
	".webp": ".webp",
}

var now = time.Now

// BannerPath names a banner uploaded at t.
func BannerPath(t time.Time, ext string) string {
	return fmt.Sprintf("%s/hero-%d%s", BannerDir, t.Unix(), ext)
}

func (h *Handler) render(c *fiber.Ctx, status int, s models.SiteSettings, errs forms.Errors, toast *views.Toast) error {
	if errs == nil {
		errs = forms.Errors{}
	}
	return views.RenderAdmin(c, status, "admin/settings", "settings", "Configurações", fiber.Map{
		"Settings": s,
		"Errors":   errs,
		"Toast":    toast,
	})
}

func (h *Handler) SettingsPage(c *fiber.Ctx) error {
	s, err := h.Settings.Get(c.UserContext())
	if err != nil {
		logger.Named("settings").Error("load site settings failed", zap.Error(err))
		h.Metrics.Error("settings.get")
		return h.render(c, fiber.StatusInternalServerError, models.DefaultSiteSettings(), nil, views.Failure(msgLoadFailed))
	}
	var toast *views.Toast
	if c.Query("salvo") == "1" {
		toast = views.Success(msgSaved)
	}
	return h.render(c, fiber.StatusOK, s, nil, toast)
}

// SaveSettings handles the settings form, including an optional banner.
func (h *Handler) SaveSettings(c *fiber.Ctx) error {
	ctx := c.UserContext()
	current, err := h.Settings.Get(ctx)
	if err != nil {
		logger.Named("settings").Error("load site settings failed", zap.Error(err))
		h.Metrics.Error("settings.get")
		return h.render(c, fiber.StatusInternalServerError, models.DefaultSiteSettings(), nil, views.Failure(msgSaveFailed))
	}

	next := current
	if err := c.BodyParser(&next); err != nil {
		return h.render(c, fiber.StatusBadRequest, current, nil, views.Failure(msgSaveFailed))
	}
	next.HeroImagePath = current.HeroImagePath
	forms.NormalizeSettings(&next)

	errs := forms.Errors{}
	if err := forms.ValidateSettings(next); err != nil {
		if !errors.As(err, &errs) {
			return err
		}
	}

	banner, _ := c.FormFile("banner")
	var ext string
	if banner != nil && banner.Size > 0 {
		var ok bool
		if ext, ok = bannerTypes[strings.ToLower(filepath.Ext(banner.Filename))]; !ok {
			errs["banner"] = msgBadImage
		}
	}
	if len(errs) > 0 {
		return h.render(c, fiber.StatusUnprocessableEntity, next, errs, nil)
	}

	if ext != "" {
		f, err := banner.Open()
		if err != nil {
			return h.render(c, fiber.StatusBadRequest, next, nil, views.Failure(msgSaveFailed))
		}
		defer f.Close()

		p := BannerPath(now(), ext)
		if _, err := h.Store.Upload(ctx, p, f); err != nil {
			logger.Named("settings").Error("upload banner failed", zap.String("path", p), zap.Error(err))
			h.Metrics.Error("settings.banner")
			return h.render(c, fiber.StatusInternalServerError, next, nil, views.Failure(msgSaveFailed))
		}
		next.HeroImagePath = p
	}

	if err := h.save(ctx, &next); err != nil {
		return h.render(c, fiber.StatusInternalServerError, next, nil, views.Failure(msgSaveFailed))
	}
	return c.Redirect("/admin/settings?salvo=1")
}

func (h *Handler) save(ctx context.Context, s *models.SiteSettings) error {
	if err := h.Settings.Save(ctx, s); err != nil {
		logger.Named("settings").Error("save site settings failed", zap.Error(err))
		h.Metrics.Error("settings.save")
		return err
	}
	logger.Named("settings").Info("site settings saved", zap.String("hero_image", s.HeroImagePath))
	return nil
}

func (h *Handler) GetSettingsAPI(c *fiber.Ctx) error {
	s, err := h.Settings.Get(c.UserContext())
	if err != nil {
		logger.Named("settings").Error("load site settings failed", zap.Error(err))
		h.Metrics.Error("settings.get")
		return fiber.NewError(fiber.StatusInternalServerError, msgLoadFailed)
	}
	return c.JSON(s)
}

// UpdateSettingsAPI replaces the site copy. The banner is only changed
// through the settings form.
func (h *Handler) UpdateSettingsAPI(c *fiber.Ctx) error {
	ctx := c.UserContext()
	current, err := h.Settings.Get(ctx)
	if err != nil {
		logger.Named("settings").Error("load site settings failed", zap.Error(err))
		h.Metrics.Error("settings.get")
		return fiber.NewError(fiber.StatusInternalServerError, msgLoadFailed)
	}

	var next models.SiteSettings
	if err := c.BodyParser(&next); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Requisição inválida")
	}
	next.HeroImagePath = current.HeroImagePath
	forms.NormalizeSettings(&next)
	if err := forms.ValidateSettings(next); err != nil {
		var invalid forms.Errors
		if errors.As(err, &invalid) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"success": false,
				"error":   msgInvalid,
				"fields":  invalid,
			})
		}
		return err
	}

	if err := h.save(ctx, &next); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, msgSaveFailed)
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"message":  msgSaved,
		"settings": next,
	})
}
