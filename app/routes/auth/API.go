package auth

import (
	"errors"
	"strings"

	"aparecida-web/app/database"
	"aparecida-web/app/logger"
	"aparecida-web/app/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const minPasswordLength = 8

type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// login authenticates the request body and sets the session cookie.
func (s *Service) login(c *fiber.Ctx) (*models.User, error) {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Requisição inválida")
	}

	user, err := s.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if !errors.Is(err, ErrInvalidCredentials) {
			logger.Named("auth").Error("login lookup failed", zap.Error(err))
		}
		return nil, err
	}

	token, err := s.GenerateJWT(user)
	if err != nil {
		return nil, err
	}
	s.setCookie(c, token)
	logger.Named("auth").Info("user logged in", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}

func (s *Service) LoginAPI(c *fiber.Ctx) error {
	user, err := s.login(c)
	if err != nil {
		var fe *fiber.Error
		switch {
		case errors.As(err, &fe):
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		case errors.Is(err, ErrInvalidCredentials):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "E-mail ou senha inválidos"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao entrar"})
		}
	}

	return c.JSON(fiber.Map{
		"message": "Login realizado com sucesso",
		"user":    user,
	})
}

func (s *Service) LoginForm(c *fiber.Ctx) error {
	user, err := s.login(c)
	if err != nil {
		status := fiber.StatusInternalServerError
		message := "Não foi possível entrar. Tente novamente."
		var fe *fiber.Error
		switch {
		case errors.As(err, &fe):
			status, message = fe.Code, fe.Message
		case errors.Is(err, ErrInvalidCredentials):
			status, message = fiber.StatusUnauthorized, "E-mail ou senha inválidos"
		}
		return c.Status(status).Render("login", fiber.Map{
			"Title": "Entrar - Área Administrativa",
			"Error": message,
			"Email": strings.TrimSpace(c.FormValue("email")),
		}, "")
	}

	if user.IsAdmin() {
		return c.Redirect("/admin")
	}
	return c.Redirect("/")
}

func (s *Service) Logout(c *fiber.Ctx) error {
	s.clearCookie(c)
	return c.Redirect("/login")
}

func (s *Service) LogoutAPI(c *fiber.Ctx) error {
	s.clearCookie(c)
	return c.JSON(fiber.Map{"message": "Sessão encerrada"})
}

func (s *Service) MeAPI(c *fiber.Ctx) error {
	sess := SessionFrom(c)
	return c.JSON(fiber.Map{
		"id":      sess.UserID,
		"email":   sess.Email,
		"name":    sess.Name,
		"role":    sess.Role,
		"isAdmin": sess.IsAdmin(),
	})
}

func (s *Service) ChangePasswordAPI(c *fiber.Ctx) error {
	type ChangePasswordRequest struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Requisição inválida"})
	}
	if len(req.NewPassword) < minPasswordLength {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "A nova senha deve ter pelo menos 8 caracteres"})
	}

	sess := SessionFrom(c)
	user, err := database.GetUserByID(c.UserContext(), s.db, sess.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao consultar usuário"})
	}
	if !CheckPasswordHash(req.CurrentPassword, user.Password) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Senha atual incorreta"})
	}

	hashedPassword, err := HashPassword(req.NewPassword)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao gerar senha"})
	}
	if err := database.UpdateUserPassword(c.UserContext(), s.db, user.ID, hashedPassword); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro ao atualizar senha"})
	}

	return c.JSON(fiber.Map{"message": "Senha alterada com sucesso"})
}
