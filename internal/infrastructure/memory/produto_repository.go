package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/estrategicos-catalogo/internal/domain"
	"github.com/jhoicas/estrategicos-catalogo/internal/domain/entity"
	"github.com/jhoicas/estrategicos-catalogo/internal/domain/repository"
)

var _ repository.ProdutoRepository = (*ProdutoRepo)(nil)

// ProdutoRepo colección "produtos" en memoria.
type ProdutoRepo struct {
	mu    sync.RWMutex
	seq   int64
	items map[string]entity.Produto
	order []string // orden de inserción, desempata created_at iguales
}

// NewProdutoRepository crea la colección vacía.
func NewProdutoRepository() *ProdutoRepo {
	return &ProdutoRepo{items: make(map[string]entity.Produto)}
}

// NextCode reserva el siguiente código secuencial.
func (r *ProdutoRepo) NextCode(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	return r.seq, nil
}

// Create guarda una copia de p.
func (r *ProdutoRepo) Create(_ context.Context, p *entity.Produto) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[p.ID]; ok {
		return domain.ErrInvalidInput
	}
	r.items[p.ID] = *p
	r.order = append(r.order, p.ID)
	return nil
}

// GetByID devuelve nil, nil si no existe.
func (r *ProdutoRepo) GetByID(_ context.Context, id string) (*entity.Produto, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// Update reemplaza el producto guardado.
func (r *ProdutoRepo) Update(_ context.Context, p *entity.Produto) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.items[p.ID] = *p
	return nil
}

// List ordena por created_at; con fechas iguales manda el orden de inserción.
// limit <= 0 devuelve todo.
func (r *ProdutoRepo) List(_ context.Context, newestFirst bool, limit int) ([]*entity.Produto, error) {
	r.mu.RLock()
	out := make([]*entity.Produto, 0, len(r.order))
	for i := range r.order {
		id := r.order[i]
		if newestFirst {
			id = r.order[len(r.order)-1-i]
		}
		p := r.items[id]
		out = append(out, &p)
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if newestFirst {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Delete quita el producto.
func (r *ProdutoRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
