package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Produto es un ítem del catálogo tal como lo guarda el backend hospedado (colección "produtos").
// Los nombres JSON siguen el vocabulario del backend.
type Produto struct {
	ID              string              `json:"_id"`
	Code            string              `json:"codigo"`
	Description     string              `json:"descricao"`
	Type            string              `json:"tipo"`
	Category        string              `json:"categoria"`
	Unit            string              `json:"unidade"`
	PackageQuantity decimal.NullDecimal `json:"qtdEmbalagem"`
	PackageCost     decimal.NullDecimal `json:"custoEmbalagem"`
	UnitCost        decimal.NullDecimal `json:"custoUnitario"`
	Creator         string              `json:"creator,omitempty"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

// ProdutoInput payload de creación o actualización parcial: nil = campo ausente.
// En Update los campos ausentes conservan el valor guardado.
type ProdutoInput struct {
	Description     *string          `json:"descricao,omitempty"`
	Type            *string          `json:"tipo,omitempty"`
	Category        *string          `json:"categoria,omitempty"`
	Unit            *string          `json:"unidade,omitempty"`
	PackageQuantity *decimal.Decimal `json:"qtdEmbalagem,omitempty"`
	PackageCost     *decimal.Decimal `json:"custoEmbalagem,omitempty"`
	UnitCost        *decimal.Decimal `json:"custoUnitario,omitempty"`
	Creator         *string          `json:"creator,omitempty"`
	CreatedAt       *time.Time       `json:"createdAt,omitempty"`
	UpdatedAt       *time.Time       `json:"updatedAt,omitempty"`
}

// Apply copia sobre p los campos presentes en in.
func (in ProdutoInput) Apply(p *Produto) {
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Type != nil {
		p.Type = *in.Type
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Unit != nil {
		p.Unit = *in.Unit
	}
	if in.PackageQuantity != nil {
		p.PackageQuantity = decimal.NewNullDecimal(*in.PackageQuantity)
	}
	if in.PackageCost != nil {
		p.PackageCost = decimal.NewNullDecimal(*in.PackageCost)
	}
	if in.UnitCost != nil {
		p.UnitCost = decimal.NewNullDecimal(*in.UnitCost)
	}
	if in.Creator != nil {
		p.Creator = *in.Creator
	}
	if in.CreatedAt != nil {
		p.CreatedAt = *in.CreatedAt
	}
	if in.UpdatedAt != nil {
		p.UpdatedAt = *in.UpdatedAt
	}
}
