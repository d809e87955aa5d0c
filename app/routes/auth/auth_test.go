package auth

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"aparecida-web/app/config"
	"aparecida-web/app/database"
	"aparecida-web/app/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func TestMain(m *testing.M) {
	PasswordCost = bcrypt.MinCost
	os.Exit(m.Run())
}

func newService(t *testing.T) *Service {
	t.Helper()
	raw, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	raw.SetMaxOpenConns(1)
	t.Cleanup(func() { raw.Close() })

	db := database.New(raw, "sqlite")
	require.NoError(t, database.RunMigrations(db))
	return NewService(db, config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour})
}

func createUser(t *testing.T, s *Service, email, password string, role models.Role) *models.User {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	u := &models.User{Email: email, Password: hash, Name: "Secretaria", Role: role}
	require.NoError(t, database.CreateUser(context.Background(), s.db, u))
	return u
}

func protectedApp(s *Service) *fiber.App {
	app := fiber.New()
	ok := func(c *fiber.Ctx) error { return c.SendString("ok " + SessionFrom(c).Name) }
	app.Get("/admin", append(s.Admin(), ok)...)
	app.Get("/api/admin/ping", append(s.Admin(), ok)...)
	app.Get("/api/me", s.RequireSession, ok)
	return app
}

func tokenFor(t *testing.T, s *Service, role models.Role) string {
	t.Helper()
	tok, err := s.GenerateJWT(&models.User{ID: "u1", Email: "u@x.org", Name: "Ana", Role: role})
	require.NoError(t, err)
	return tok
}

func TestJWTRoundTrip(t *testing.T) {
	s := newService(t)
	claims, err := s.ValidateJWT(tokenFor(t, s, models.RoleAdmin))
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestJWTRejectsExpiredAndForeignTokens(t *testing.T) {
	s := newService(t)
	tok := tokenFor(t, s, models.RoleAdmin)

	s.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err := s.ValidateJWT(tok)
	assert.Error(t, err)

	other := NewService(s.db, config.AuthConfig{JWTSecret: "other", TokenTTL: time.Hour})
	_, err = other.ValidateJWT(tokenFor(t, s, models.RoleAdmin))
	assert.Error(t, err)
}

func TestRequireSessionRedirectsAnonymousToLogin(t *testing.T) {
	app := protectedApp(newService(t))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "garbage"})
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestRequireAdminSendsStaffHome(t *testing.T) {
	s := newService(t)
	app := protectedApp(s)
	staff := tokenFor(t, s, models.RoleStaff)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: staff})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	req = httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+staff)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+staff)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	s := newService(t)
	app := protectedApp(s)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: tokenFor(t, s, models.RoleAdmin)})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestLoginAPI(t *testing.T) {
	s := newService(t)
	createUser(t, s, "padre@paroquia.org", "s3nh4-forte", models.RoleAdmin)

	app := fiber.New()
	SetupAuthRoutes(app, s)

	post := func(body string) *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp
	}

	resp := post(`{"email":"PADRE@paroquia.org","password":"s3nh4-forte"}`)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var cookie *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == CookieName {
			cookie = ck
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	claims, err := s.ValidateJWT(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, claims.Role)

	assert.Equal(t, fiber.StatusUnauthorized, post(`{"email":"padre@paroquia.org","password":"errada"}`).StatusCode)
	assert.Equal(t, fiber.StatusUnauthorized, post(`{"email":"ninguem@paroquia.org","password":"x"}`).StatusCode)
}

func TestChangePassword(t *testing.T) {
	s := newService(t)
	u := createUser(t, s, "sec@paroquia.org", "antiga-senha", models.RoleStaff)
	tok, err := s.GenerateJWT(u)
	require.NoError(t, err)

	app := fiber.New()
	SetupAuthRoutes(app, s)

	change := func(body string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/change-password", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+tok)
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	assert.Equal(t, fiber.StatusBadRequest, change(`{"current_password":"antiga-senha","new_password":"curta"}`))
	assert.Equal(t, fiber.StatusBadRequest, change(`{"current_password":"errada","new_password":"nova-senha-longa"}`))
	assert.Equal(t, fiber.StatusOK, change(`{"current_password":"antiga-senha","new_password":"nova-senha-longa"}`))

	_, err = s.Authenticate(context.Background(), "sec@paroquia.org", "nova-senha-longa")
	assert.NoError(t, err)
}
