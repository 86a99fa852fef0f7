package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estrategicos-catalogo/internal/application/dto"
	"github.com/jhoicas/estrategicos-catalogo/internal/application/form"
	"github.com/jhoicas/estrategicos-catalogo/internal/application/ports"
	"github.com/jhoicas/estrategicos-catalogo/internal/domain/entity"
	"github.com/jhoicas/estrategicos-catalogo/internal/infrastructure/notify"
)

// Session lo que los handlers usan del adaptador de sesión.
type Session interface {
	SessionGate
	SignIn(ctx context.Context, email, password string) error
	SignOut(ctx context.Context) error
	Snapshot() ports.AuthSnapshot
}

// NoticeSource avisos pendientes para la próxima respuesta.
type NoticeSource interface {
	Drain() []notify.Message
	Error(msg string)
}

// ReportGenerator genera el relatório PDF del catálogo.
type ReportGenerator interface {
	Generate(ctx context.Context, produtos []entity.Produto) ([]byte, error)
}

// CategoryGauge recibe el total de categorías tras cada alta.
type CategoryGauge interface {
	SetCategories(n int)
}

// produtoFields campos de producto aceptados por pantallas y API, en orden de aplicación.
var produtoFields = []string{
	form.FieldType,
	form.FieldCategory,
	form.FieldDescription,
	form.FieldUnit,
	form.FieldPackageQuantity,
	form.FieldPackageCost,
}

// applyFields vuelca los campos presentes sobre el formulario y, si hay nombre,
// registra y selecciona la categoría nueva.
func applyFields(f *form.ProductForm, fields map[string]string, novaCategoria string) error {
	for _, name := range produtoFields {
		v, ok := fields[name]
		if !ok {
			continue
		}
		if err := f.Set(name, v); err != nil {
			return err
		}
	}
	if strings.TrimSpace(novaCategoria) == "" {
		return nil
	}
	f.BeginNewCategory()
	f.SetNewCategoryName(novaCategoria)
	return f.ConfirmNewCategory()
}

func setSessionCookie(c *fiber.Ctx, token string, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func clearSessionCookie(c *fiber.Ctx) {
	c.ClearCookie(CookieName)
}

func toUserResponse(u *ports.AuthUser) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{ID: u.ID, Email: u.Email, Name: u.Name}
}
