// Package dashboard arma la vista principal: resumen, búsqueda, actividad reciente
// y las acciones sobre productos que abren el formulario.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/jhoicas/estrategicos-catalogo/internal/application/form"
	"github.com/jhoicas/estrategicos-catalogo/internal/domain"
	"github.com/jhoicas/estrategicos-catalogo/internal/domain/catalog"
	"github.com/jhoicas/estrategicos-catalogo/internal/domain/entity"
)

// ConfirmDelete pregunta mostrada antes de excluir.
const ConfirmDelete = "Tem certeza que deseja excluir este produto?"

// RecentLimit cantidad de productos en "Atividade Recente".
const RecentLimit = 5

// Products lo que la vista usa del adaptador de productos.
type Products interface {
	Snapshot() []entity.Produto
	Get(id string) (entity.Produto, bool)
	Create(ctx context.Context, in entity.ProdutoInput) (*entity.Produto, error)
	Update(ctx context.Context, id string, in entity.ProdutoInput) (*entity.Produto, error)
	Delete(ctx context.Context, id string) error
}

// Confirmer responde a la pregunta de confirmación.
type Confirmer func(prompt string) bool

// Summary contadores de las tarjetas del dashboard.
type Summary struct {
	Total      int `json:"total"`
	Produtos   int `json:"produtos"`
	Insumos    int `json:"insumos"`
	Categorias int `json:"categorias"`
}

// View estado de una vista del panel. No es segura para uso concurrente: se crea una por petición.
type View struct {
	products   Products
	categories form.CategoryRegistry
	search     string
}

// New crea la vista sobre el adaptador y el registro de categorías.
func New(products Products, categories form.CategoryRegistry) *View {
	return &View{products: products, categories: categories}
}

// Summarize calcula los contadores sobre una lista.
func Summarize(list []entity.Produto) Summary {
	s := Summary{Total: len(list)}
	seen := make(map[string]struct{})
	for _, p := range list {
		switch p.Type {
		case catalog.TypeProduto:
			s.Produtos++
		case catalog.TypeInsumo:
			s.Insumos++
		}
		if p.Category != "" {
			seen[p.Category] = struct{}{}
		}
	}
	s.Categorias = len(seen)
	return s
}

// Summary contadores sobre la caché actual.
func (v *View) Summary() Summary {
	return Summarize(v.products.Snapshot())
}

// SetSearch cambia el término de búsqueda.
func (v *View) SetSearch(term string) { v.search = term }

// Search término de búsqueda actual.
func (v *View) Search() string { return v.search }

// Filtered productos que contienen el término en descripción, código, tipo o categoría.
// Se recalcula en cada llamada; un término en blanco no filtra.
func (v *View) Filtered() []entity.Produto {
	return Filter(v.products.Snapshot(), v.search)
}

// Filter aplica la búsqueda sin distinguir mayúsculas sobre una lista.
func Filter(list []entity.Produto, term string) []entity.Produto {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(term))
	if needle == "" {
		return list
	}
	out := make([]entity.Produto, 0, len(list))
	for _, p := range list {
		for _, field := range [...]string{p.Description, p.Code, p.Type, p.Category} {
			if strings.Contains(fold.String(field), needle) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// ResultLabel texto bajo la búsqueda; vacío si no hay término.
func (v *View) ResultLabel() string {
	term := strings.TrimSpace(v.search)
	if term == "" {
		return ""
	}
	n := len(v.Filtered())
	if n == 0 {
		return fmt.Sprintf("Nenhum resultado encontrado para %q", term)
	}
	return fmt.Sprintf("%d resultado(s) encontrado(s) para %q", n, term)
}

// RecentActivity primeros productos de la caché (la más nueva primero).
func (v *View) RecentActivity() []entity.Produto {
	list := v.products.Snapshot()
	if len(list) > RecentLimit {
		list = list[:RecentLimit]
	}
	return list
}

// OpenNew abre el formulario de alta.
func (v *View) OpenNew() *form.ProductForm {
	return form.New(v.categories)
}

// OpenEdit abre el formulario precargado con el producto id.
func (v *View) OpenEdit(id string) (*form.ProductForm, error) {
	p, ok := v.products.Get(id)
	if !ok {
		return nil, fmt.Errorf("produto %s: %w", id, domain.ErrNotFound)
	}
	return form.Edit(v.categories, p), nil
}

// Save envía el formulario: actualiza si edita un producto, si no crea uno.
// Ante error el llamador mantiene el formulario abierto.
func (v *View) Save(ctx context.Context, f *form.ProductForm) (*entity.Produto, error) {
	var saved *entity.Produto
	err := f.Submit(ctx, func(ctx context.Context, in entity.ProdutoInput) error {
		var err error
		if f.IsEditing() {
			saved, err = v.products.Update(ctx, f.EditingID(), in)
		} else {
			saved, err = v.products.Create(ctx, in)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// errDeleteCancelled el usuario no confirmó la exclusión.
var errDeleteCancelled = errors.New("exclusão cancelada")

// IsDeleteCancelled indica si Delete terminó porque no se confirmó.
func IsDeleteCancelled(err error) bool { return errors.Is(err, errDeleteCancelled) }

// Delete pide confirmación y, si la obtiene, excluye el producto.
func (v *View) Delete(ctx context.Context, id string, confirm Confirmer) error {
	if id == "" {
		return fmt.Errorf("%w: id vacío", domain.ErrInvalidInput)
	}
	if confirm == nil || !confirm(ConfirmDelete) {
		return errDeleteCancelled
	}
	return v.products.Delete(ctx, id)
}

// Section sección a mostrar para id.
func (v *View) Section(id string) Section { return SectionFor(id) }

// Sidebar menú lateral.
func (v *View) Sidebar() []MenuGroup { return Sidebar() }
