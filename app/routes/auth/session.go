package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"aparecida-web/app/config"
	"aparecida-web/app/database"
	"aparecida-web/app/models"

	"github.com/gofiber/fiber/v2"
)

const sessionKey = "session"

var ErrInvalidCredentials = errors.New("invalid credentials")

// Session is the authenticated identity attached to a request.
type Session struct {
	UserID string
	Email  string
	Name   string
	Role   models.Role
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == models.RoleAdmin
}

// SessionFrom returns the request's session, or nil when there is none.
func SessionFrom(c *fiber.Ctx) *Session {
	s, _ := c.Locals(sessionKey).(*Session)
	return s
}

// Service owns token signing and credential checks.
type Service struct {
	db           *database.DB
	secret       []byte
	ttl          time.Duration
	cookieSecure bool
	now          func() time.Time
}

func NewService(db *database.DB, cfg config.AuthConfig) *Service {
	return &Service{
		db:           db,
		secret:       []byte(cfg.JWTSecret),
		ttl:          cfg.TokenTTL,
		cookieSecure: cfg.CookieSecure,
		now:          time.Now,
	}
}

// Authenticate checks email and password against the stored hash.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := database.GetUserByEmail(ctx, s.db, email)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *Service) setCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Expires:  s.now().Add(s.ttl),
		HTTPOnly: true,
		Secure:   s.cookieSecure,
		SameSite: "Lax",
	})
}

func (s *Service) clearCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Expires:  s.now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   s.cookieSecure,
		SameSite: "Lax",
	})
}

func tokenFrom(c *fiber.Ctx) string {
	if token := c.Cookies(CookieName); token != "" {
		return token
	}
	if h := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// IsAPIRequest reports whether the request targets the JSON API.
func IsAPIRequest(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Path(), "/api/")
}

// session resolves the request token without touching the response.
func (s *Service) session(c *fiber.Ctx) (*Session, error) {
	tokenString := tokenFrom(c)
	if tokenString == "" {
		return nil, ErrInvalidToken
	}
	claims, err := s.ValidateJWT(tokenString)
	if err != nil {
		return nil, err
	}
	return &Session{UserID: claims.UserID, Email: claims.Email, Name: claims.Name, Role: claims.Role}, nil
}

// RequireSession lets authenticated requests through. Others are sent to
// the login page, or get 401 on the API.
func (s *Service) RequireSession(c *fiber.Ctx) error {
	sess, err := s.session(c)
	if err != nil {
		if IsAPIRequest(c) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Sessão inválida ou expirada"})
		}
		return c.Redirect("/login")
	}

	c.Locals(sessionKey, sess)
	return c.Next()
}

// RequireAdmin must run after RequireSession. Signed-in users without the
// admin role are sent home, or get 403 on the API.
func (s *Service) RequireAdmin(c *fiber.Ctx) error {
	if SessionFrom(c).IsAdmin() {
		return c.Next()
	}
	if IsAPIRequest(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Permissão insuficiente"})
	}
	return c.Redirect("/")
}

// Admin chains RequireSession and RequireAdmin for route groups.
func (s *Service) Admin() []fiber.Handler {
	return []fiber.Handler{s.RequireSession, s.RequireAdmin}
}
