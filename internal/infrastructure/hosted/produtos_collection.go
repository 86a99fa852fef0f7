package hosted

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/estrategicos-catalogo/internal/application/ports"
	"github.com/jhoicas/estrategicos-catalogo/internal/domain"
	"github.com/jhoicas/estrategicos-catalogo/internal/domain/catalog"
	"github.com/jhoicas/estrategicos-catalogo/internal/domain/entity"
	"github.com/jhoicas/estrategicos-catalogo/internal/domain/repository"
)

var _ ports.ProdutoCollection = (*ProdutosCollection)(nil)

// SortField único campo por el que se puede ordenar la colección.
const SortField = "createdAt"

// TextCleaner limpia texto libre antes de persistirlo.
type TextCleaner interface {
	Text(string) string
}

// CollectionOption configura ProdutosCollection.
type CollectionOption func(*ProdutosCollection)

// WithCreator fija de dónde sale el creator de los productos nuevos.
func WithCreator(fn func() string) CollectionOption {
	return func(c *ProdutosCollection) { c.creator = fn }
}

// WithCleaner fija el limpiador de descripción y categoría.
func WithCleaner(t TextCleaner) CollectionOption {
	return func(c *ProdutosCollection) { c.cleaner = t }
}

// WithTxRunner hace atómicas la reserva de código con el alta y la lectura con la escritura en Update.
func WithTxRunner(tx repository.ProdutoTxRunner) CollectionOption {
	return func(c *ProdutosCollection) { c.tx = tx }
}

// ProdutosCollection colección "produtos" del backend hospedado.
type ProdutosCollection struct {
	repo    repository.ProdutoRepository
	tx      repository.ProdutoTxRunner
	creator func() string
	cleaner TextCleaner
	now     func() time.Time
}

// NewProdutosCollection construye la colección sobre el repositorio.
func NewProdutosCollection(repo repository.ProdutoRepository, opts ...CollectionOption) *ProdutosCollection {
	c := &ProdutosCollection{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List consulta la colección. Sin orden explícito devuelve la más nueva primero.
func (c *ProdutosCollection) List(ctx context.Context, opts ports.ListOptions) (ports.ListResult, error) {
	newestFirst := true
	for field, dir := range opts.Sort {
		if field != SortField {
			return ports.ListResult{}, fmt.Errorf("%w: orden por %q", domain.ErrNotSupported, field)
		}
		newestFirst = dir != ports.SortAsc
	}
	items, err := c.repo.List(ctx, newestFirst, opts.Limit)
	if err != nil {
		return ports.ListResult{}, err
	}
	out := make([]entity.Produto, 0, len(items))
	for _, p := range items {
		out = append(out, *p)
	}
	return ports.ListResult{List: out, Total: len(out)}, nil
}

// Create asigna ID y código, aplica el payload y persiste.
func (c *ProdutosCollection) Create(ctx context.Context, in entity.ProdutoInput) (*entity.Produto, error) {
	in.Creator = nil
	c.clean(&in)
	var out *entity.Produto
	err := c.inTx(ctx, func(repo repository.ProdutoRepository) error {
		seq, err := repo.NextCode(ctx)
		if err != nil {
			return fmt.Errorf("reservar código: %w", err)
		}
		now := c.now()
		p := &entity.Produto{
			ID:        uuid.New().String(),
			Code:      catalog.FormatCode(seq),
			CreatedAt: now,
			UpdatedAt: now,
		}
		in.Apply(p)
		if c.creator != nil {
			p.Creator = c.creator()
		}
		if err := repo.Create(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update aplica los campos presentes sobre el producto guardado.
func (c *ProdutosCollection) Update(ctx context.Context, id string, in entity.ProdutoInput) (*entity.Produto, error) {
	in.Creator = nil
	c.clean(&in)
	var out *entity.Produto
	err := c.inTx(ctx, func(repo repository.ProdutoRepository) error {
		p, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("produto %s: %w", id, domain.ErrNotFound)
		}
		in.Apply(p)
		if in.UpdatedAt == nil {
			p.UpdatedAt = c.now()
		}
		if err := repo.Update(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ProdutosCollection) inTx(ctx context.Context, fn func(repo repository.ProdutoRepository) error) error {
	if c.tx == nil {
		return fn(c.repo)
	}
	return c.tx.Run(ctx, fn)
}

// Delete elimina por ID.
func (c *ProdutosCollection) Delete(ctx context.Context, id string) error {
	return c.repo.Delete(ctx, id)
}

func (c *ProdutosCollection) clean(in *entity.ProdutoInput) *entity.ProdutoInput {
	if c.cleaner == nil {
		return in
	}
	for _, s := range []**string{&in.Description, &in.Category} {
		if *s == nil {
			continue
		}
		v := c.cleaner.Text(**s)
		*s = &v
	}
	return in
}
