// Package pdf genera el relatório del catálogo de productos.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Catálogo de Produtos      │  Fecha de emisión      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Total | Produtos | Insumos | Categorias           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Descrição | Tipo | Categoria | Un. | Custo │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/estrategicos-catalogo/internal/application/dashboard"
	"github.com/jhoicas/estrategicos-catalogo/internal/domain/catalog"
	"github.com/jhoicas/estrategicos-catalogo/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 31, Green: 41, Blue: 55}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// CatalogReport genera el PDF del catálogo con Maroto v2.
type CatalogReport struct {
	now func() time.Time
}

// NewCatalogReport construye el generador.
func NewCatalogReport() *CatalogReport { return &CatalogReport{now: time.Now} }

// Generate arma el documento con el resumen y una fila por producto (en el orden recibido).
func (g *CatalogReport) Generate(_ context.Context, produtos []entity.Produto) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Catálogo de Produtos", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(dashboard.Summarize(produtos)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(produtos)...)
	if len(produtos) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Nenhum produto cadastrado.", props.Text{Size: 9, Align: align.Center, Top: 3, Color: colorGray}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(at time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("Catálogo de Produtos", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Emitido em "+at.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 5, Color: colorGray,
			}),
		),
	)
}

func summaryRow(s dashboard.Summary) core.Row {
	card := func(label string, n int) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(strconv.Itoa(n), props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Center, Top: 6}),
		)
	}
	return row.New(14).Add(
		card("Total de Itens", s.Total),
		card("Produtos", s.Produtos),
		card("Insumos", s.Insumos),
		card("Categorias", s.Categorias),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 2, align.Left),
		h("Descrição", 4, align.Left),
		h("Tipo", 2, align.Left),
		h("Categoria", 2, align.Left),
		h("Un.", 1, align.Center),
		h("Custo Unit.", 1, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableRows(produtos []entity.Produto) []core.Row {
	out := make([]core.Row, 0, len(produtos))
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	for _, p := range produtos {
		out = append(out, row.New(7).Add(
			cell(p.Code, 2, align.Left),
			cell(p.Description, 4, align.Left),
			cell(p.Type, 2, align.Left),
			cell(nonEmpty(p.Category, "-"), 2, align.Left),
			cell(nonEmpty(p.Unit, "-"), 1, align.Center),
			cell(unitCost(p), 1, align.Right),
		))
	}
	return out
}

func unitCost(p entity.Produto) string {
	if !p.UnitCost.Valid {
		return "-"
	}
	return catalog.FormatAmount(p.UnitCost.Decimal)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
