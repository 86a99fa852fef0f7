package repository

import (
	"context"

	"github.com/jhoicas/estrategicos-catalogo/internal/domain/entity"
)

// ProdutoRepository define el puerto de persistencia de la colección "produtos" (DIP).
type ProdutoRepository interface {
	// NextCode reserva el siguiente código secuencial del catálogo.
	NextCode(ctx context.Context) (int64, error)
	Create(ctx context.Context, p *entity.Produto) error
	GetByID(ctx context.Context, id string) (*entity.Produto, error)
	Update(ctx context.Context, p *entity.Produto) error
	// List devuelve los productos ordenados por created_at (desc si newestFirst).
	List(ctx context.Context, newestFirst bool, limit int) ([]*entity.Produto, error)
	Delete(ctx context.Context, id string) error
}

// ProdutoTxRunner ejecuta fn con un ProdutoRepository atado a una transacción.
// Si fn devuelve error no se confirma nada.
type ProdutoTxRunner interface {
	Run(ctx context.Context, fn func(repo ProdutoRepository) error) error
}
