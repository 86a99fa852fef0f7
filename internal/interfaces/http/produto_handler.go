package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estrategicos-catalogo/internal/application/dashboard"
	"github.com/jhoicas/estrategicos-catalogo/internal/application/dto"
	"github.com/jhoicas/estrategicos-catalogo/internal/application/form"
	"github.com/jhoicas/estrategicos-catalogo/internal/application/produto"
	"github.com/jhoicas/estrategicos-catalogo/internal/domain/catalog"
	"github.com/jhoicas/estrategicos-catalogo/internal/domain/category"
	"github.com/jhoicas/estrategicos-catalogo/internal/domain/entity"
)

// ProdutoHandler maneja la colección de productos.
type ProdutoHandler struct {
	produtos   *produto.Adapter
	categories *category.Registry
	report     ReportGenerator
	gauge      CategoryGauge
}

// NewProdutoHandler construye el handler. report y gauge pueden ser nil.
func NewProdutoHandler(produtos *produto.Adapter, categories *category.Registry, report ReportGenerator, gauge CategoryGauge) *ProdutoHandler {
	return &ProdutoHandler{produtos: produtos, categories: categories, report: report, gauge: gauge}
}

func (h *ProdutoHandler) view(c *fiber.Ctx) *dashboard.View {
	h.produtos.EnsureLoaded(c.Context())
	return dashboard.New(h.produtos, h.categories)
}

// List godoc
// @Summary      Listar produtos
// @Description  Devuelve la caché (más nuevos primero). q filtra por descripción, código, tipo o categoría; refresh=true vuelve a consultar el backend.
// @Tags         produtos
// @Produce      json
// @Security     BearerAuth
// @Param        q        query  string  false  "término de búsqueda"
// @Param        refresh  query  bool    false  "recargar desde el backend"
// @Success      200   {object}  dto.ProdutoListResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/produtos [get]
func (h *ProdutoHandler) List(c *fiber.Ctx) error {
	if c.QueryBool("refresh") {
		if err := h.produtos.List(c.Context()); err != nil {
			return writeError(c, err)
		}
	}
	v := h.view(c)
	v.SetSearch(c.Query("q"))
	items := v.Filtered()
	if items == nil {
		items = []entity.Produto{}
	}
	return c.JSON(dto.ProdutoListResponse{Items: items, Total: len(items), Label: v.ResultLabel()})
}

// Create godoc
// @Summary      Crear produto
// @Tags         produtos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.ProdutoRequest  true  "campos del produto"
// @Success      201   {object}  entity.Produto
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/produtos [post]
func (h *ProdutoHandler) Create(c *fiber.Ctx) error {
	var in dto.ProdutoRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	v := h.view(c)
	return h.save(c, v, v.OpenNew(), in, fiber.StatusCreated)
}

// Update godoc
// @Summary      Actualizar produto
// @Description  Solo cambian los campos enviados.
// @Tags         produtos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string              true  "ID"
// @Param        body  body  dto.ProdutoRequest  true  "campos a cambiar"
// @Success      200   {object}  entity.Produto
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/produtos/{id} [put]
func (h *ProdutoHandler) Update(c *fiber.Ctx) error {
	var in dto.ProdutoRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	v := h.view(c)
	f, err := v.OpenEdit(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return h.save(c, v, f, in, fiber.StatusOK)
}

func (h *ProdutoHandler) save(c *fiber.Ctx, v *dashboard.View, f *form.ProductForm, in dto.ProdutoRequest, status int) error {
	before := h.categories.Len()
	err := applyFields(f, requestFields(in), in.NovaCategoria)
	if h.gauge != nil && h.categories.Len() != before {
		h.gauge.SetCategories(h.categories.Len())
	}
	if err != nil {
		return writeError(c, err)
	}
	p, err := v.Save(c.Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(status).JSON(p)
}

func requestFields(in dto.ProdutoRequest) map[string]string {
	fields := make(map[string]string)
	put := func(name string, v *string) {
		if v != nil {
			fields[name] = *v
		}
	}
	put(form.FieldDescription, in.Descricao)
	put(form.FieldType, in.Tipo)
	put(form.FieldCategory, in.Categoria)
	put(form.FieldUnit, in.Unidade)
	if in.QtdEmbalagem != nil {
		fields[form.FieldPackageQuantity] = in.QtdEmbalagem.String()
	}
	if in.CustoEmbalagem != nil {
		fields[form.FieldPackageCost] = in.CustoEmbalagem.String()
	}
	return fields
}

// Delete godoc
// @Summary      Excluir produto
// @Description  Requiere confirmar=sim.
// @Tags         produtos
// @Produce      json
// @Security     BearerAuth
// @Param        id         path   string  true  "ID"
// @Param        confirmar  query  string  true  "sim"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/produtos/{id} [delete]
func (h *ProdutoHandler) Delete(c *fiber.Ctx) error {
	confirmed := c.Query("confirmar") == "sim"
	err := h.view(c).Delete(c.Context(), c.Params("id"), func(string) bool { return confirmed })
	if dashboard.IsDeleteCancelled(err) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: dashboard.ConfirmDelete + " (confirmar=sim)"})
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Produto excluído com sucesso"})
}

// UnitCost godoc
// @Summary      Vista previa del costo unitario
// @Tags         produtos
// @Produce      json
// @Security     BearerAuth
// @Param        custoEmbalagem  query  string  false  "costo del embalaje"
// @Param        qtdEmbalagem    query  string  false  "cantidad del embalaje"
// @Success      200   {object}  dto.UnitCostResponse
// @Router       /api/produtos/custo-unitario [get]
func (h *ProdutoHandler) UnitCost(c *fiber.Ctx) error {
	var in dto.UnitCostRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c)
	}
	return c.JSON(dto.UnitCostResponse{CustoUnitario: catalog.UnitCostText(in.CustoEmbalagem, in.QtdEmbalagem)})
}

// Report godoc
// @Summary      Relatório PDF del catálogo
// @Tags         produtos
// @Produce      application/pdf
// @Security     BearerAuth
// @Success      200
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/produtos/relatorio.pdf [get]
func (h *ProdutoHandler) Report(c *fiber.Ctx) error {
	return h.sendReport(c)
}

func (h *ProdutoHandler) sendReport(c *fiber.Ctx) error {
	if h.report == nil {
		return writeError(c, errReportDisabled)
	}
	h.produtos.EnsureLoaded(c.Context())
	doc, err := h.report.Generate(c.Context(), h.produtos.Snapshot())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="catalogo.pdf"`)
	return c.Send(doc)
}
