package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estrategicos-catalogo/internal/application/dto"
)

// CookieName cookie que lleva el token de la sesión en las pantallas.
const CookieName = "estrategicos_session"

// SessionGate lo que las rutas protegidas consultan de la sesión.
type SessionGate interface {
	IsAuthenticated() bool
	Authorize(token string) bool
}

// AuthMiddleware valida el Bearer Token contra la sesión activa del proceso.
func AuthMiddleware(gate SessionGate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		token := strings.TrimSpace(parts[1])
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		if !gate.IsAuthenticated() || !gate.Authorize(token) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión inválida o cerrada"})
		}
		return c.Next()
	}
}

// hasSession indica si la petición pertenece a la sesión activa (cookie).
func hasSession(c *fiber.Ctx, gate SessionGate) bool {
	return gate.IsAuthenticated() && gate.Authorize(c.Cookies(CookieName))
}

// RequireSession protege las pantallas: sin sesión redirige a /login.
func RequireSession(gate SessionGate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !hasSession(c, gate) {
			return c.Redirect("/login", fiber.StatusSeeOther)
		}
		return c.Next()
	}
}

// RedirectIfSession envía al dashboard a quien ya tiene sesión (login y registro).
func RedirectIfSession(gate SessionGate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if hasSession(c, gate) {
			return c.Redirect("/dashboard", fiber.StatusSeeOther)
		}
		return c.Next()
	}
}
