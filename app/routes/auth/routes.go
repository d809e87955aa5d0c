package auth

import (
	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App, s *Service) {
	app.Get("/login", s.ShowLoginPage)
	app.Post("/login", s.LoginForm)
	app.Post("/logout", s.Logout)

	api := app.Group("/api/auth")
	api.Post("/login", s.LoginAPI)
	api.Post("/logout", s.LogoutAPI)
	api.Get("/me", s.RequireSession, s.MeAPI)
	api.Post("/change-password", s.RequireSession, s.ChangePasswordAPI)
}

func (s *Service) ShowLoginPage(c *fiber.Ctx) error {
	if sess, err := s.session(c); err == nil {
		if sess.IsAdmin() {
			return c.Redirect("/admin")
		}
		return c.Redirect("/")
	}

	return c.Render("login", fiber.Map{
		"Title": "Entrar - Área Administrativa",
		"Email": "",
		"Error": "",
	}, "")
}
