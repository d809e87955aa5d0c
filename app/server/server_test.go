package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"aparecida-web/app/config"
	"aparecida-web/app/database"
	"aparecida-web/app/dates"
	"aparecida-web/app/metrics"
	"aparecida-web/app/models"
	"aparecida-web/app/routes/auth"
	"aparecida-web/app/services"
	"aparecida-web/app/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	auth.PasswordCost = bcrypt.MinCost
	os.Exit(m.Run())
}

type testServer struct {
	app      *fiber.App
	db       *database.DB
	auth     *auth.Service
	settings *services.SiteSettings
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := database.Open(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "server.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.RunMigrations(db))

	viaCEP := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/01001000/json/" {
			io.WriteString(w, `{"cep":"01001-000","logradouro":"Praça da Sé","bairro":"Sé","localidade":"São Paulo","uf":"SP"}`)
			return
		}
		io.WriteString(w, `{"erro":true}`)
	}))
	t.Cleanup(viaCEP.Close)

	authService := auth.NewService(db, config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour})
	siteSettings := services.NewSiteSettings(db, time.Minute)
	app := New(Deps{
		DB:       db,
		Auth:     authService,
		Settings: siteSettings,
		CEP:      services.NewCEPClient(viaCEP.URL, 2*time.Second),
		Store:    storage.NewMemory(),
		Metrics:  metrics.New(),
	})
	return &testServer{app: app, db: db, auth: authService, settings: siteSettings}
}

func (s *testServer) do(t *testing.T, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, string(body)
}

func (s *testServer) get(t *testing.T, path, token string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	}
	return s.do(t, req)
}

func (s *testServer) login(t *testing.T, role models.Role) string {
	t.Helper()
	hash, err := auth.HashPassword("senha-segura")
	require.NoError(t, err)
	u := &models.User{Email: string(role) + "@paroquia.org", Password: hash, Name: "Secretaria", Role: role}
	require.NoError(t, database.CreateUser(context.Background(), s.db, u))
	tok, err := s.auth.GenerateJWT(u)
	require.NoError(t, err)
	return tok
}

func (s *testServer) createBaptism(t *testing.T) *models.Registration {
	t.Helper()
	reg := &models.Registration{
		FormType:      models.FormBaptism,
		Name:          "Maria Clara",
		Phone:         "(11) 98765-4321",
		Birthdate:     "2024-01-10",
		GodmotherName: "Ana",
		GodfatherName: "Pedro",
		MaritalStatus: "casado",
	}
	require.NoError(t, database.CreateRegistration(context.Background(), s.db, reg))
	return reg
}

func baptismForm() url.Values {
	return url.Values{
		"formType":        {"batismo"},
		"name":            {"João da Silva"},
		"phone":           {"(11) 98765-4321"},
		"birthdate":       {"2024-01-10"},
		"birthplace":      {"São Paulo"},
		"fatherName":      {"José"},
		"motherName":      {"Maria"},
		"godfatherName":   {"Pedro"},
		"godmotherName":   {"Ana"},
		"availableLocate": {"matriz"},
		"baptismDate":     {"2024-03-10"},
		"meetingDate":     {"2024-03-01"},
	}
}

func TestPublicPagesRender(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{"/", "/sobre", "/horarios", "/capelas", "/inscricoes", "/inscricoes?tipo=crismaJovem", "/dizimo", "/login"} {
		t.Run(path, func(t *testing.T) {
			resp, body := s.get(t, path, "")
			assert.Equal(t, fiber.StatusOK, resp.StatusCode)
			assert.Contains(t, body, "Paróquia Nossa Senhora Aparecida")
		})
	}
}

func TestUnknownRoutes(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.get(t, "/pagina-inexistente", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "Página não encontrada")

	resp, body = s.get(t, "/api/inexistente", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, `"success":false`)
}

func TestBaptismSubmissionCreatesOneRecord(t *testing.T) {
	s := newTestServer(t)
	before := time.Now().Add(-time.Second).UnixMilli()

	req := httptest.NewRequest(http.MethodPost, "/inscricoes", strings.NewReader(baptismForm().Encode()))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	resp, _ := s.do(t, req)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/inscricoes?enviado=1", resp.Header.Get("Location"))

	regs, err := database.GetRegistrations(context.Background(), s.db, "")
	require.NoError(t, err)
	require.Len(t, regs, 1)
	assert.Equal(t, models.FormBaptism, regs[0].FormType)
	assert.Equal(t, "João da Silva", regs[0].Name)
	assert.GreaterOrEqual(t, int64(regs[0].CreatedAt), before)

	_, body := s.get(t, "/inscricoes?enviado=1", "")
	assert.Contains(t, body, "Inscrição realizada com sucesso!")

	_, body = s.get(t, "/metrics", "")
	assert.Contains(t, body, `aparecida_registrations_submitted_total{form_type="batismo"} 1`)
}

func TestInvalidSubmissionReRendersForm(t *testing.T) {
	s := newTestServer(t)
	form := baptismForm()
	form.Del("godmotherName")

	req := httptest.NewRequest(http.MethodPost, "/inscricoes", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	resp, body := s.do(t, req)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "Este campo é obrigatório")
	assert.Contains(t, body, `value="João da Silva"`)

	regs, err := database.GetRegistrations(context.Background(), s.db, "")
	require.NoError(t, err)
	assert.Empty(t, regs)
}

func TestRegistrationAPI(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/registrations", strings.NewReader(`{"formType":"crismaAdulto","name":""}`))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, body := s.do(t, req)
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	var invalid struct {
		Success bool              `json:"success"`
		Fields  map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &invalid))
	assert.False(t, invalid.Success)
	assert.Contains(t, invalid.Fields, "name")
	assert.Contains(t, invalid.Fields, "maritalStatus")

	payload := map[string]string{
		"formType": "catecismo", "name": "Lucas", "phone": "11987654321", "birthdate": "2015-06-01",
		"fatherName": "Paulo", "motherName": "Rita", "address": "Rua A, 10", "community": "Matriz",
		"schooling": "4º ano", "isBaptized": "sim", "specialNeeds": "nao", "availableDay": "matriz_7h30",
	}
	b, _ := json.Marshal(payload)
	req = httptest.NewRequest(http.MethodPost, "/api/registrations", bytes.NewReader(b))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, body = s.do(t, req)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, body)

	var created struct {
		Registration models.Registration `json:"registration"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &created))
	assert.NotEmpty(t, created.Registration.ID)
	assert.Equal(t, "Rita", created.Registration.TermName)
}

func TestAdminGate(t *testing.T) {
	s := newTestServer(t)

	resp, _ := s.get(t, "/admin", "")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	staff := s.login(t, models.RoleStaff)
	resp, _ = s.get(t, "/admin/registrations", staff)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	resp, _ = s.get(t, "/api/admin/stats", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	resp, _ = s.get(t, "/api/admin/stats", staff)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	admin := s.login(t, models.RoleAdmin)
	resp, body := s.get(t, "/admin", admin)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Crisma Adulto")
}

func TestDashboardStats(t *testing.T) {
	s := newTestServer(t)
	s.createBaptism(t)
	admin := s.login(t, models.RoleAdmin)

	resp, body := s.get(t, "/api/admin/stats", admin)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var stats struct {
		Registrations []struct {
			FormType string `json:"formType"`
			Count    int    `json:"count"`
		} `json:"registrations"`
		Total      int `json:"total"`
		Dizimistas int `json:"dizimistas"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &stats))
	require.Len(t, stats.Registrations, 4)
	assert.Equal(t, "batismo", stats.Registrations[0].FormType)
	assert.Equal(t, 1, stats.Registrations[0].Count)
	assert.Equal(t, 1, stats.Total)
	assert.Zero(t, stats.Dizimistas)
}

func TestBaptismDetailHidesMaritalStatus(t *testing.T) {
	s := newTestServer(t)
	reg := s.createBaptism(t)
	admin := s.login(t, models.RoleAdmin)

	resp, body := s.get(t, "/admin/registrations?id="+reg.ID, admin)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Nome da Madrinha")
	assert.Contains(t, body, "Maria Clara")
	assert.NotContains(t, body, "Estado Civil")
}

func TestRegistrationPDFDownload(t *testing.T) {
	s := newTestServer(t)
	reg := s.createBaptism(t)
	admin := s.login(t, models.RoleAdmin)

	resp, body := s.get(t, "/admin/registrations/"+reg.ID+"/pdf", admin)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "Cadastro_Maria_Clara_")
	assert.True(t, strings.HasPrefix(body, "%PDF-"))

	resp, _ = s.get(t, "/admin/registrations/missing/pdf", admin)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	s := newTestServer(t)
	reg := s.createBaptism(t)
	admin := s.login(t, models.RoleAdmin)

	del := func(path string) *http.Response {
		req := httptest.NewRequest(http.MethodDelete, path, nil)
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: admin})
		resp, _ := s.do(t, req)
		return resp
	}

	assert.Equal(t, fiber.StatusBadRequest, del("/api/admin/registrations/"+reg.ID).StatusCode)
	_, err := database.GetRegistrationByID(context.Background(), s.db, reg.ID)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, del("/api/admin/registrations/"+reg.ID+"?confirm=true").StatusCode)
	_, err = database.GetRegistrationByID(context.Background(), s.db, reg.ID)
	assert.ErrorIs(t, err, database.ErrNotFound)

	assert.Equal(t, fiber.StatusNotFound, del("/api/admin/registrations/"+reg.ID+"?confirm=true").StatusCode)
}

func TestDeleteFormFlow(t *testing.T) {
	s := newTestServer(t)
	reg := s.createBaptism(t)
	admin := s.login(t, models.RoleAdmin)

	resp, body := s.get(t, "/admin/registrations/"+reg.ID+"/delete", admin)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Maria Clara")

	req := httptest.NewRequest(http.MethodPost, "/admin/registrations/"+reg.ID+"/delete", strings.NewReader("confirm=sim"))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: admin})
	resp, _ = s.do(t, req)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/registrations?excluido=1", resp.Header.Get("Location"))

	_, err := database.GetRegistrationByID(context.Background(), s.db, reg.ID)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestUpdateRegistrationKeepsFormType(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, models.RoleAdmin)

	in := models.RegistrationInput{}
	require.NoError(t, json.Unmarshal(mustJSON(t, baptismForm()), &in))
	reg := in.ToRegistration()
	require.NoError(t, database.CreateRegistration(context.Background(), s.db, reg))

	in.FormType = models.FormConfirmationAdult
	in.Name = "João Pedro da Silva"
	req := httptest.NewRequest(http.MethodPut, "/api/admin/registrations/"+reg.ID, bytes.NewReader(mustJSONValue(t, in)))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: admin})
	resp, body := s.do(t, req)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)

	got, err := database.GetRegistrationByID(context.Background(), s.db, reg.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FormBaptism, got.FormType)
	assert.Equal(t, "João Pedro da Silva", got.Name)
	assert.Equal(t, reg.CreatedAt, got.CreatedAt)
	assert.NotZero(t, got.UpdatedAt)
}

func TestDizimistaSubmissionAndDayFilter(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, models.RoleAdmin)

	form := url.Values{
		"fullName": {"Antônio Souza"}, "birthdate": {"1970-04-04"}, "availableSex": {"masculino"},
		"availableState": {"casado"}, "phone": {"(11) 91234-5678"}, "address": {"Rua C, 5"}, "community": {"Matriz"},
	}
	req := httptest.NewRequest(http.MethodPost, "/dizimo", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	resp, _ := s.do(t, req)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	list, err := database.GetDizimistas(context.Background(), s.db)
	require.NoError(t, err)
	require.Len(t, list, 1)
	day := dates.Day(list[0].CreatedAt)

	var page struct {
		Count int `json:"count"`
	}
	_, body := s.get(t, "/api/admin/dizimistas?data="+day, admin)
	require.NoError(t, json.Unmarshal([]byte(body), &page))
	assert.Equal(t, 1, page.Count)

	_, body = s.get(t, "/api/admin/dizimistas?data=1999-01-01", admin)
	require.NoError(t, json.Unmarshal([]byte(body), &page))
	assert.Equal(t, 0, page.Count)

	resp, _ = s.get(t, "/api/admin/dizimistas?data=01/01/1999", admin)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, body = s.get(t, "/admin/dizimistas/"+list[0].ID+"/pdf", admin)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "Dizimista_Ant")
	assert.True(t, strings.HasPrefix(body, "%PDF-"))
}

func TestCEPLookup(t *testing.T) {
	s := newTestServer(t)

	resp, _ := s.get(t, "/api/cep/123", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = s.get(t, "/api/cep/99999-999", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, body := s.get(t, "/api/cep/01001-000", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Praça da Sé")
}

func TestSettingsFormUploadsBanner(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, models.RoleAdmin)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("churchName", "Paróquia Aparecida de Teste"))
	require.NoError(t, w.WriteField("heroTitle", "Bem-vindos"))
	fw, err := w.CreateFormFile("banner", "capa.PNG")
	require.NoError(t, err)
	fw.Write([]byte("\x89PNG fake image"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/settings", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: admin})
	resp, body := s.do(t, req)
	require.Equal(t, fiber.StatusFound, resp.StatusCode, body)

	saved, err := s.settings.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Paróquia Aparecida de Teste", saved.ChurchName)
	assert.True(t, strings.HasPrefix(saved.HeroImagePath, "settings/hero-"))
	assert.True(t, strings.HasSuffix(saved.HeroImagePath, ".png"))

	resp, body = s.get(t, saved.HeroImageURL, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "\x89PNG fake image", body)

	_, body = s.get(t, "/", "")
	assert.Contains(t, body, "Paróquia Aparecida de Teste")
	assert.Contains(t, body, saved.HeroImageURL)
}

func TestSettingsAPIValidates(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, models.RoleAdmin)

	req := httptest.NewRequest(http.MethodPut, "/api/admin/settings", strings.NewReader(`{"churchName":"","email":"x"}`))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: admin})
	resp, body := s.do(t, req)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "churchName")

	_, body = s.get(t, "/api/settings", "")
	assert.Contains(t, body, "Paróquia Nossa Senhora Aparecida")
}

func mustJSON(t *testing.T, v url.Values) []byte {
	t.Helper()
	m := make(map[string]string, len(v))
	for k := range v {
		m[k] = v.Get(k)
	}
	return mustJSONValue(t, m)
}

func mustJSONValue(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}
