// Package catalog reúne las reglas del catálogo: tipos, unidades, costo unitario y códigos.
package catalog

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Tipos de ítem del catálogo.
const (
	TypeProduto      = "Produto"
	TypeInsumo       = "Insumo"
	TypeMateriaPrima = "Matéria Prima"
	TypeComponente   = "Componente"
	TypeFerramenta   = "Ferramenta"
	TypeEquipamento  = "Equipamento"
)

// Types lista ordenada de tipos ofrecidos en el formulario.
var Types = []string{TypeProduto, TypeInsumo, TypeMateriaPrima, TypeComponente, TypeFerramenta, TypeEquipamento}

// Units lista ordenada de unidades ofrecidas en el formulario.
var Units = []string{"Peça", "Kg", "Litro", "Metro", "Medida", "Unidade", "Caixa", "Pacote"}

// IsConsumable indica si el tipo es un insumo (requiere embalaje y costo unitario).
func IsConsumable(tipo string) bool {
	return strings.EqualFold(strings.TrimSpace(tipo), TypeInsumo)
}

// ValidType indica si tipo pertenece a Types.
func ValidType(tipo string) bool {
	return contains(Types, tipo)
}

// ValidUnit indica si unidade pertenece a Units.
func ValidUnit(unidade string) bool {
	return contains(Units, unidade)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// UnitCost = packageCost / packageQuantity redondeado a 2 decimales.
// Si alguno de los dos no es positivo devuelve 0.
func UnitCost(packageCost, packageQuantity decimal.Decimal) decimal.Decimal {
	if !packageCost.IsPositive() || !packageQuantity.IsPositive() {
		return decimal.Zero
	}
	return packageCost.Div(packageQuantity).Round(2)
}

// UnitCostText aplica UnitCost sobre los textos del formulario; texto vacío o no numérico cuenta como 0.
func UnitCostText(packageCost, packageQuantity string) string {
	cost, err := ParseAmount(packageCost)
	if err != nil {
		cost = decimal.Zero
	}
	qty, err := ParseAmount(packageQuantity)
	if err != nil {
		qty = decimal.Zero
	}
	return FormatAmount(UnitCost(cost, qty))
}

// ParseAmount interpreta un número del formulario. Acepta coma como separador decimal.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	return decimal.NewFromString(s)
}

// FormatAmount formatea con dos decimales fijos.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatCode construye el código visible a partir de la secuencia del backend.
func FormatCode(seq int64) string {
	return fmt.Sprintf("PRD-%05d", seq)
}
