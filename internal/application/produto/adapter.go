// Package produto adapta la colección "produtos" del backend hospedado: caché local,
// mutaciones optimistas y avisos al usuario.
package produto

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/estrategicos-catalogo/internal/application/ports"
	"github.com/jhoicas/estrategicos-catalogo/internal/domain/entity"
)

// Operaciones registradas en métricas.
const (
	OpList   = "list"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Mensajes mostrados al usuario.
const (
	msgListError   = "Erro ao carregar produtos"
	msgCreateError = "Erro ao criar produto"
	msgUpdateError = "Erro ao atualizar produto"
	msgDeleteError = "Erro ao excluir produto"
	msgDeleted     = "Produto excluído com sucesso"
)

// OpRecorder registra el resultado de cada operación contra el backend.
type OpRecorder interface {
	RecordProdutoOp(op string, ok bool)
}

type nopRecorder struct{}

func (nopRecorder) RecordProdutoOp(string, bool) {}

// Option configura el Adapter.
type Option func(*Adapter)

// WithRecorder fija el recolector de métricas.
func WithRecorder(r OpRecorder) Option {
	return func(a *Adapter) {
		if r != nil {
			a.recorder = r
		}
	}
}

// WithClock fija el reloj usado para createdAt/updatedAt.
func WithClock(now func() time.Time) Option {
	return func(a *Adapter) { a.now = now }
}

// Adapter único escritor de la caché de productos.
type Adapter struct {
	coll     ports.ProdutoCollection
	notifier ports.Notifier
	log      zerolog.Logger
	recorder OpRecorder
	now      func() time.Time

	cache    Cache
	loadOnce sync.Once

	mu      sync.Mutex
	loading bool
}

// NewAdapter construye el adaptador.
func NewAdapter(coll ports.ProdutoCollection, notifier ports.Notifier, log zerolog.Logger, opts ...Option) *Adapter {
	a := &Adapter{
		coll:     coll,
		notifier: notifier,
		log:      log,
		recorder: nopRecorder{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// EnsureLoaded hace la carga inicial la primera vez que se usa el adaptador.
// No vuelve a consultar por sí solo: la caché solo cambia por mutaciones o List explícito.
// Si un List explícito ya llenó la caché, no hay carga inicial.
func (a *Adapter) EnsureLoaded(ctx context.Context) {
	a.loadOnce.Do(func() {
		if a.cache.Loaded() {
			return
		}
		_ = a.List(ctx)
	})
}

// List reemplaza la caché con la colección ordenada por createdAt descendente.
// Si falla, avisa y deja la caché anterior intacta.
func (a *Adapter) List(ctx context.Context) error {
	a.setLoading(true)
	defer a.setLoading(false)

	res, err := a.coll.List(ctx, ports.ListOptions{Sort: map[string]int{"createdAt": ports.SortDesc}})
	a.recorder.RecordProdutoOp(OpList, err == nil)
	if err != nil {
		a.log.Error().Err(err).Msg("error al listar produtos")
		a.notifier.Error(msgListError)
		return fmt.Errorf("listar produtos: %w", err)
	}
	a.cache.replace(res.List)
	return nil
}

// Create sella createdAt/updatedAt, crea el producto y lo antepone en la caché.
func (a *Adapter) Create(ctx context.Context, in entity.ProdutoInput) (*entity.Produto, error) {
	now := a.now()
	in.CreatedAt = &now
	in.UpdatedAt = &now

	created, err := a.coll.Create(ctx, in)
	a.recorder.RecordProdutoOp(OpCreate, err == nil)
	if err != nil {
		a.log.Error().Err(err).Msg("error al crear produto")
		a.notifier.Error(msgCreateError)
		return nil, fmt.Errorf("crear produto: %w", err)
	}
	a.cache.prepend(*created)
	a.notifier.Success(fmt.Sprintf("Produto %q criado com sucesso", created.Description))
	a.log.Info().Str("id", created.ID).Str("codigo", created.Code).Msg("produto criado")
	return created, nil
}

// Update sella updatedAt, actualiza y reemplaza el registro en caché.
func (a *Adapter) Update(ctx context.Context, id string, in entity.ProdutoInput) (*entity.Produto, error) {
	now := a.now()
	in.CreatedAt = nil
	in.UpdatedAt = &now

	updated, err := a.coll.Update(ctx, id, in)
	a.recorder.RecordProdutoOp(OpUpdate, err == nil)
	if err != nil {
		a.log.Error().Err(err).Str("id", id).Msg("error al actualizar produto")
		a.notifier.Error(msgUpdateError)
		return nil, fmt.Errorf("actualizar produto: %w", err)
	}
	a.cache.replaceByID(id, *updated)
	a.notifier.Success(fmt.Sprintf("Produto %q atualizado com sucesso", updated.Description))
	return updated, nil
}

// Delete elimina el producto y lo quita de la caché.
func (a *Adapter) Delete(ctx context.Context, id string) error {
	err := a.coll.Delete(ctx, id)
	a.recorder.RecordProdutoOp(OpDelete, err == nil)
	if err != nil {
		a.log.Error().Err(err).Str("id", id).Msg("error al excluir produto")
		a.notifier.Error(msgDeleteError)
		return fmt.Errorf("excluir produto: %w", err)
	}
	a.cache.remove(id)
	a.notifier.Success(msgDeleted)
	return nil
}

// Snapshot copia de la caché.
func (a *Adapter) Snapshot() []entity.Produto {
	return a.cache.Snapshot()
}

// Get busca en caché.
func (a *Adapter) Get(id string) (entity.Produto, bool) {
	return a.cache.Get(id)
}

// Loading indica si hay un List en curso.
func (a *Adapter) Loading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loading
}

func (a *Adapter) setLoading(v bool) {
	a.mu.Lock()
	a.loading = v
	a.mu.Unlock()
}
