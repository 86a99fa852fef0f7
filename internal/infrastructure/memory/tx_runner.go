package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/estrategicos-catalogo/internal/domain/repository"
)

var _ repository.ProdutoTxRunner = (*TxRunner)(nil)

// TxRunner serializa las operaciones compuestas sobre la colección en memoria.
// No hay rollback: un fn que falla a mitad deja lo que ya escribió.
type TxRunner struct {
	mu   sync.Mutex
	repo *ProdutoRepo
}

func NewTxRunner(repo *ProdutoRepo) *TxRunner {
	return &TxRunner{repo: repo}
}

func (r *TxRunner) Run(_ context.Context, fn func(repo repository.ProdutoRepository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.repo)
}
