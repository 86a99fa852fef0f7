package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/estrategicos-catalogo/internal/domain/entity"
)

// ProdutoRequest entrada de alta o actualización. Campos nil quedan ausentes;
// custoUnitario no se acepta: se deriva del embalaje.
type ProdutoRequest struct {
	Descricao      *string          `json:"descricao"`
	Tipo           *string          `json:"tipo"`
	Categoria      *string          `json:"categoria"`
	Unidade        *string          `json:"unidade"`
	QtdEmbalagem   *decimal.Decimal `json:"qtdEmbalagem" swaggertype:"string"`
	CustoEmbalagem *decimal.Decimal `json:"custoEmbalagem" swaggertype:"string"`
	NovaCategoria  string           `json:"novaCategoria"` // registra y selecciona una categoría nueva
}

// ProdutoListResponse listado (filtrado si hay búsqueda).
type ProdutoListResponse struct {
	Items []entity.Produto `json:"items"`
	Total int              `json:"total"`
	Label string           `json:"label,omitempty"`
}

// UnitCostRequest vista previa del costo unitario.
type UnitCostRequest struct {
	CustoEmbalagem string `json:"custoEmbalagem" query:"custoEmbalagem"`
	QtdEmbalagem   string `json:"qtdEmbalagem" query:"qtdEmbalagem"`
}

// UnitCostResponse costo unitario con dos decimales.
type UnitCostResponse struct {
	CustoUnitario string `json:"custoUnitario"`
}

// CategoriaRequest alta de categoría.
type CategoriaRequest struct {
	Nome string `json:"nome"`
}

// CategoriaResponse categoría registrada (o la existente si el nombre ya estaba).
type CategoriaResponse struct {
	Categoria entity.Category `json:"categoria"`
	Added     bool            `json:"added"`
}
