package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estrategicos-catalogo/internal/application/dto"
	apphttp "github.com/jhoicas/estrategicos-catalogo/internal/interfaces/http"
)

// fakeGate sesión fija para probar los middlewares aislados.
type fakeGate struct {
	authenticated bool
	token         string
}

func (g fakeGate) IsAuthenticated() bool { return g.authenticated }

func (g fakeGate) Authorize(token string) bool {
	return g.authenticated && token != "" && token == g.token
}

// buildGateApp construye una aplicación Fiber mínima con:
//   - GET /api/protected (AuthMiddleware)
//   - GET /panel (RequireSession)
//   - GET /entrar (RedirectIfSession)
func buildGateApp(gate apphttp.SessionGate) *fiber.App {
	app := fiber.New()
	ok := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }
	app.Get("/api/protected", apphttp.AuthMiddleware(gate), ok)
	app.Get("/panel", apphttp.RequireSession(gate), ok)
	app.Get("/entrar", apphttp.RedirectIfSession(gate), ok)
	return app
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out.Code
}

func TestAuthMiddleware_SinHeader(t *testing.T) {
	app := buildGateApp(fakeGate{authenticated: true, token: "tok"})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", errorCode(t, resp))
}

func TestAuthMiddleware_FormatoInvalido(t *testing.T) {
	app := buildGateApp(fakeGate{authenticated: true, token: "tok"})

	req := httptest.NewRequest(http.MethodGet, "/api/protected", nil)
	req.Header.Set("Authorization", "Token tok")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, resp))
}

func TestAuthMiddleware_TokenDeOtraSesion(t *testing.T) {
	app := buildGateApp(fakeGate{authenticated: true, token: "tok"})

	req := httptest.NewRequest(http.MethodGet, "/api/protected", nil)
	req.Header.Set("Authorization", "Bearer otro")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, resp))
}

func TestAuthMiddleware_SesionCerrada(t *testing.T) {
	app := buildGateApp(fakeGate{authenticated: false, token: "tok"})

	req := httptest.NewRequest(http.MethodGet, "/api/protected", nil)
	req.Header.Set("Authorization", "Bearer tok")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenValido(t *testing.T) {
	app := buildGateApp(fakeGate{authenticated: true, token: "tok"})

	req := httptest.NewRequest(http.MethodGet, "/api/protected", nil)
	req.Header.Set("Authorization", "bearer tok")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireSession_RedirigeSinCookie(t *testing.T) {
	app := buildGateApp(fakeGate{authenticated: true, token: "tok"})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/panel", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/panel", nil)
	req.AddCookie(&http.Cookie{Name: apphttp.CookieName, Value: "tok"})
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRedirectIfSession(t *testing.T) {
	app := buildGateApp(fakeGate{authenticated: true, token: "tok"})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/entrar", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/entrar", nil)
	req.AddCookie(&http.Cookie{Name: apphttp.CookieName, Value: "tok"})
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
}

type limitSpy struct{ n int }

func (s *limitSpy) RecordRateLimited() { s.n++ }

func TestLoginLimiter_PorIP(t *testing.T) {
	spy := &limitSpy{}
	l := apphttp.NewLoginLimiter(1, 2, spy)
	t.Cleanup(l.Stop)

	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.2"), "cada IP tiene su propio cupo")
	assert.Equal(t, 2, l.Count())
	assert.Equal(t, 60, l.RetryAfter())

	app := fiber.New()
	app.Post("/login", l.Middleware(func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusTooManyRequests) }),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
		require.NoError(t, err)
		codes = append(codes, resp.StatusCode)
	}
	assert.Equal(t, []int{fiber.StatusOK, fiber.StatusOK, fiber.StatusTooManyRequests}, codes)
	assert.Equal(t, 1, spy.n)
}
