package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estrategicos-catalogo/internal/application/dto"
	"github.com/jhoicas/estrategicos-catalogo/internal/application/ports"
	"github.com/jhoicas/estrategicos-catalogo/internal/domain"
)

// AuthHandler maneja login, logout, estado de sesión y registro.
type AuthHandler struct {
	session      Session
	registrar    ports.Registrar
	cookieSecure bool
}

// NewAuthHandler construye el handler de auth. registrar puede ser nil.
func NewAuthHandler(session Session, registrar ports.Registrar, cookieSecure bool) *AuthHandler {
	return &AuthHandler{session: session, registrar: registrar, cookieSecure: cookieSecure}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
	}
	if err := h.session.SignIn(c.Context(), in.Email, in.Password); err != nil {
		if errors.Is(err, domain.ErrSignInInProgress) {
			return writeError(c, err)
		}
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: msgSignInFailed})
	}
	snap := h.session.Snapshot()
	setSessionCookie(c, snap.Token, h.cookieSecure)
	out := dto.LoginResponse{Token: snap.Token}
	if u := toUserResponse(snap.User); u != nil {
		out.User = *u
	}
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  dto.MessageResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.session.SignOut(c.Context()); err != nil {
		return writeError(c, err)
	}
	clearSessionCookie(c)
	return c.JSON(dto.MessageResponse{Message: "sessão encerrada"})
}

// Session godoc
// @Summary      Estado de la sesión
// @Tags         auth
// @Produce      json
// @Success      200   {object}  dto.SessionResponse
// @Router       /api/auth/session [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	snap := h.session.Snapshot()
	return c.JSON(dto.SessionResponse{IsAuthenticated: snap.IsAuthenticated, User: toUserResponse(snap.User)})
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "name, email, password"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	if h.registrar == nil {
		return writeError(c, domain.ErrNotSupported)
	}
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
	}
	u, err := h.registrar.Register(c.Context(), ports.RegisterRequest{Name: in.Name, Email: in.Email, Password: in.Password})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toUserResponse(u))
}
