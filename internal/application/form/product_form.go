// Package form implementa el formulario de alta y edición de productos.
//
// El formulario no conoce el adaptador de productos: quien lo abre inyecta la
// función de guardado. Las categorías nuevas se registran en el Registry que
// recibe por referencia.
package form

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/estrategicos-catalogo/internal/domain"
	"github.com/jhoicas/estrategicos-catalogo/internal/domain/catalog"
	"github.com/jhoicas/estrategicos-catalogo/internal/domain/entity"
)

// Nombres de campo, iguales a los del backend.
const (
	FieldDescription     = "descricao"
	FieldType            = "tipo"
	FieldCategory        = "categoria"
	FieldUnit            = "unidade"
	FieldPackageQuantity = "qtdEmbalagem"
	FieldPackageCost     = "custoEmbalagem"
	FieldUnitCost        = "custoUnitario"
)

// CategoryRegistry lo que el formulario necesita del registro de categorías.
type CategoryRegistry interface {
	Add(name string) (entity.Category, bool, error)
	List() []entity.Category
}

// SaveFunc recibe el payload construido al enviar.
type SaveFunc func(ctx context.Context, in entity.ProdutoInput) error

// Draft valores en texto tal como se editan.
type Draft struct {
	Description     string
	Type            string
	Category        string
	Unit            string
	PackageQuantity string
	PackageCost     string
	UnitCost        string
}

// ProductForm estado del formulario modal.
type ProductForm struct {
	registry  CategoryRegistry
	editingID string
	draft     Draft

	consumable     bool
	addingCategory bool
	newCategory    string
}

// New abre el formulario vacío para crear un producto.
func New(registry CategoryRegistry) *ProductForm {
	return &ProductForm{registry: registry}
}

// Edit abre el formulario precargado con p.
func Edit(registry CategoryRegistry, p entity.Produto) *ProductForm {
	f := &ProductForm{
		registry:  registry,
		editingID: p.ID,
		draft: Draft{
			Description:     p.Description,
			Type:            p.Type,
			Category:        p.Category,
			Unit:            p.Unit,
			PackageQuantity: nullText(p.PackageQuantity),
			PackageCost:     nullText(p.PackageCost),
			UnitCost:        nullText(p.UnitCost),
		},
	}
	f.consumable = catalog.IsConsumable(p.Type)
	return f
}

func nullText(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}

// IsEditing indica si el formulario edita un producto existente.
func (f *ProductForm) IsEditing() bool { return f.editingID != "" }

// EditingID ID del producto en edición ("" al crear).
func (f *ProductForm) EditingID() string { return f.editingID }

// Title título del modal.
func (f *ProductForm) Title() string {
	if f.IsEditing() {
		return "Editar Item"
	}
	return "Adicionar Novo Item"
}

// SubmitLabel texto del botón de envío.
func (f *ProductForm) SubmitLabel() string {
	if f.IsEditing() {
		return "Salvar"
	}
	return "Adicionar"
}

// Draft copia de los valores actuales.
func (f *ProductForm) Draft() Draft { return f.draft }

// Set cambia un campo. Cambiar costo o cantidad de embalaje recalcula el costo unitario;
// el costo unitario no se puede editar a mano.
func (f *ProductForm) Set(field, value string) error {
	switch field {
	case FieldDescription:
		f.draft.Description = value
	case FieldType:
		f.draft.Type = value
		f.consumable = catalog.IsConsumable(value)
	case FieldCategory:
		f.draft.Category = value
	case FieldUnit:
		f.draft.Unit = value
	case FieldPackageQuantity:
		f.draft.PackageQuantity = value
		f.draft.UnitCost = catalog.UnitCostText(f.draft.PackageCost, value)
	case FieldPackageCost:
		f.draft.PackageCost = value
		f.draft.UnitCost = catalog.UnitCostText(value, f.draft.PackageQuantity)
	case FieldUnitCost:
		return fmt.Errorf("%w: %s", domain.ErrReadOnlyField, field)
	default:
		return fmt.Errorf("%w: campo desconocido %q", domain.ErrInvalidInput, field)
	}
	return nil
}

// ShowsPackageFields indica si se muestran embalaje y costo unitario (solo insumos).
func (f *ProductForm) ShowsPackageFields() bool { return f.consumable }

// UnitCost costo unitario derivado, "0.00" si aún no hay.
func (f *ProductForm) UnitCost() string {
	if f.draft.UnitCost == "" {
		return "0.00"
	}
	return f.draft.UnitCost
}

// Categories opciones del selector de categoría.
func (f *ProductForm) Categories() []entity.Category {
	if f.registry == nil {
		return nil
	}
	return f.registry.List()
}

// Types opciones del selector de tipo.
func (f *ProductForm) Types() []string { return catalog.Types }

// Units opciones del selector de unidad.
func (f *ProductForm) Units() []string { return catalog.Units }

// BeginNewCategory abre el campo secundario de categoría nueva.
func (f *ProductForm) BeginNewCategory() {
	f.addingCategory = true
}

// AddingCategory indica si el campo secundario está abierto.
func (f *ProductForm) AddingCategory() bool { return f.addingCategory }

// SetNewCategoryName actualiza el texto del campo secundario.
func (f *ProductForm) SetNewCategoryName(name string) {
	f.newCategory = name
}

// NewCategoryName texto actual del campo secundario.
func (f *ProductForm) NewCategoryName() string { return f.newCategory }

// ConfirmNewCategory registra la categoría escrita y la selecciona.
// Un nombre en blanco cierra el campo sin tocar el registro.
func (f *ProductForm) ConfirmNewCategory() error {
	name := strings.TrimSpace(f.newCategory)
	if name == "" || f.registry == nil {
		f.CancelNewCategory()
		return nil
	}
	cat, _, err := f.registry.Add(name)
	if err != nil {
		return err
	}
	f.draft.Category = cat.Name
	f.CancelNewCategory()
	return nil
}

// CancelNewCategory cierra el campo secundario y descarta su texto.
func (f *ProductForm) CancelNewCategory() {
	f.newCategory = ""
	f.addingCategory = false
}

// Payload construye el payload con los campos presentes: los vacíos quedan ausentes
// y los de embalaje solo se envían para insumos.
func (f *ProductForm) Payload() (entity.ProdutoInput, error) {
	var in entity.ProdutoInput
	in.Description = optText(f.draft.Description)
	in.Type = optText(f.draft.Type)
	in.Category = optText(f.draft.Category)
	in.Unit = optText(f.draft.Unit)

	if !f.consumable {
		return in, nil
	}

	var err error
	if in.PackageQuantity, err = optAmount(FieldPackageQuantity, f.draft.PackageQuantity); err != nil {
		return entity.ProdutoInput{}, err
	}
	if in.PackageCost, err = optAmount(FieldPackageCost, f.draft.PackageCost); err != nil {
		return entity.ProdutoInput{}, err
	}
	if in.UnitCost, err = optAmount(FieldUnitCost, f.draft.UnitCost); err != nil {
		return entity.ProdutoInput{}, err
	}
	return in, nil
}

// Submit construye el payload y lo entrega a save. Si save falla el formulario conserva su estado.
func (f *ProductForm) Submit(ctx context.Context, save SaveFunc) error {
	in, err := f.Payload()
	if err != nil {
		return err
	}
	return save(ctx, in)
}

func optText(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func optAmount(field, s string) (*decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := catalog.ParseAmount(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s no es numérico", domain.ErrInvalidInput, field)
	}
	return &d, nil
}
