package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estrategicos-catalogo/internal/application/dashboard"
	"github.com/jhoicas/estrategicos-catalogo/internal/application/dto"
	"github.com/jhoicas/estrategicos-catalogo/internal/application/produto"
	"github.com/jhoicas/estrategicos-catalogo/internal/domain/category"
	"github.com/jhoicas/estrategicos-catalogo/internal/infrastructure/notify"
)

// DashboardHandler resumen del panel y avisos pendientes.
type DashboardHandler struct {
	produtos   *produto.Adapter
	categories *category.Registry
	notices    NoticeSource
}

func NewDashboardHandler(produtos *produto.Adapter, categories *category.Registry, notices NoticeSource) *DashboardHandler {
	return &DashboardHandler{produtos: produtos, categories: categories, notices: notices}
}

// Summary godoc
// @Summary      Resumen del panel
// @Description  Totales por tipo, categorías distintas y actividad reciente.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  dto.DashboardSummaryDTO
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	h.produtos.EnsureLoaded(c.Context())
	v := dashboard.New(h.produtos, h.categories)
	s := v.Summary()
	return c.JSON(dto.DashboardSummaryDTO{
		Total:      s.Total,
		Produtos:   s.Produtos,
		Insumos:    s.Insumos,
		Categorias: s.Categorias,
		Recent:     v.RecentActivity(),
	})
}

// Notices godoc
// @Summary      Avisos pendientes
// @Description  Devuelve y vacía la cola de avisos.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200   {array}   notify.Message
// @Router       /api/notificacoes [get]
func (h *DashboardHandler) Notices(c *fiber.Ctx) error {
	msgs := h.notices.Drain()
	if msgs == nil {
		msgs = []notify.Message{}
	}
	return c.JSON(msgs)
}
