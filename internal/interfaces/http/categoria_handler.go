package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estrategicos-catalogo/internal/application/dto"
	"github.com/jhoicas/estrategicos-catalogo/internal/domain/category"
	"github.com/jhoicas/estrategicos-catalogo/internal/domain/entity"
)

// CategoriaHandler expone el registro de categorías del proceso.
type CategoriaHandler struct {
	registry *category.Registry
	gauge    CategoryGauge
}

func NewCategoriaHandler(registry *category.Registry, gauge CategoryGauge) *CategoriaHandler {
	return &CategoriaHandler{registry: registry, gauge: gauge}
}

// List godoc
// @Summary      Listar categorías
// @Description  En orden de alta, con su rango de frecuencia.
// @Tags         categorias
// @Produce      json
// @Security     BearerAuth
// @Success      200   {array}   entity.Category
// @Router       /api/categorias [get]
func (h *CategoriaHandler) List(c *fiber.Ctx) error {
	list := h.registry.List()
	if list == nil {
		list = []entity.Category{}
	}
	return c.JSON(list)
}

// Create godoc
// @Summary      Registrar categoría
// @Description  Un nombre ya registrado (sin distinguir mayúsculas) devuelve la existente con added=false.
// @Tags         categorias
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CategoriaRequest  true  "nome"
// @Success      201   {object}  dto.CategoriaResponse
// @Success      200   {object}  dto.CategoriaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categorias [post]
func (h *CategoriaHandler) Create(c *fiber.Ctx) error {
	var in dto.CategoriaRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if strings.TrimSpace(in.Nome) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nome es requerido"})
	}
	cat, added, err := h.registry.Add(in.Nome)
	if err != nil {
		return writeError(c, err)
	}
	status := fiber.StatusOK
	if added {
		status = fiber.StatusCreated
		if h.gauge != nil {
			h.gauge.SetCategories(h.registry.Len())
		}
	}
	return c.Status(status).JSON(dto.CategoriaResponse{Categoria: cat, Added: added})
}
