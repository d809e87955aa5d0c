package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"aparecida-web/app/forms"
	"aparecida-web/app/logger"

	"github.com/gofiber/fiber/v2"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

var (
	ErrInvalidCEP  = errors.New("CEP deve conter 8 dígitos")
	ErrCEPNotFound = errors.New("CEP não encontrado")
)

// Address is the subset of a ViaCEP answer the forms use.
type Address struct {
	CEP          string `json:"cep"`
	Street       string `json:"logradouro"`
	Complement   string `json:"complemento"`
	Neighborhood string `json:"bairro"`
	City         string `json:"localidade"`
	State        string `json:"uf"`
}

// Line joins the address parts the way the forms display them.
func (a Address) Line() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.Street, a.Neighborhood} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if a.City != "" {
		city := a.City
		if a.State != "" {
			city += "/" + a.State
		}
		parts = append(parts, city)
	}
	return strings.Join(parts, ", ")
}

type viaCEPResponse struct {
	Address
	Erro any `json:"erro"`
}

func (r viaCEPResponse) failed() bool {
	switch v := r.Erro.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != "" && v != "false"
	}
	return true
}

// CEPClient looks up postal codes on ViaCEP and caches the answers.
type CEPClient struct {
	baseURL string
	timeout time.Duration
	cache   *gocache.Cache
}

func NewCEPClient(baseURL string, timeout time.Duration) *CEPClient {
	return &CEPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		cache:   gocache.New(24*time.Hour, time.Hour),
	}
}

// SanitizeCEP strips formatting and requires exactly eight digits.
func SanitizeCEP(cep string) (string, error) {
	digits := forms.Digits(cep)
	if len(digits) != 8 {
		return "", ErrInvalidCEP
	}
	return digits, nil
}

// Lookup resolves cep. Unknown codes yield ErrCEPNotFound.
func (c *CEPClient) Lookup(ctx context.Context, cep string) (*Address, error) {
	digits, err := SanitizeCEP(cep)
	if err != nil {
		return nil, err
	}
	if v, ok := c.cache.Get(digits); ok {
		if addr, ok := v.(*Address); ok {
			return addr, nil
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var resp viaCEPResponse
	code, _, errs := fiber.Get(c.baseURL + "/" + digits + "/json/").Timeout(c.timeout).Struct(&resp)
	switch {
	case code == fiber.StatusBadRequest || code == fiber.StatusNotFound:
		return nil, ErrCEPNotFound
	case len(errs) > 0:
		logger.Named("cep").Warn("viacep request failed", zap.String("cep", digits), zap.Int("status", code), zap.Errors("errors", errs))
		return nil, fmt.Errorf("viacep: %w", errors.Join(errs...))
	case code != fiber.StatusOK:
		return nil, fmt.Errorf("viacep: unexpected status %d", code)
	}
	if resp.failed() {
		return nil, ErrCEPNotFound
	}

	addr := resp.Address
	c.cache.SetDefault(digits, &addr)
	return &addr, nil
}
