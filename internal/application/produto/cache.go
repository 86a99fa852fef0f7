package produto

import (
	"sync"

	"github.com/jhoicas/estrategicos-catalogo/internal/domain/entity"
)

// Cache copia local de la colección. Solo el Adapter la modifica; los lectores
// reciben siempre copias.
type Cache struct {
	mu     sync.RWMutex
	items  []entity.Produto
	loaded bool
}

// Snapshot copia de la lista en su orden actual.
func (c *Cache) Snapshot() []entity.Produto {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]entity.Produto, len(c.items))
	copy(out, c.items)
	return out
}

// Get busca un producto por ID.
func (c *Cache) Get(id string) (entity.Produto, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.items {
		if p.ID == id {
			return p, true
		}
	}
	return entity.Produto{}, false
}

// Loaded indica si la caché se llenó al menos una vez desde el backend.
func (c *Cache) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

func (c *Cache) replace(list []entity.Produto) {
	items := make([]entity.Produto, len(list))
	copy(items, list)
	c.mu.Lock()
	c.items = items
	c.loaded = true
	c.mu.Unlock()
}

func (c *Cache) prepend(p entity.Produto) {
	c.mu.Lock()
	c.items = append([]entity.Produto{p}, c.items...)
	c.mu.Unlock()
}

func (c *Cache) replaceByID(id string, p entity.Produto) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i] = p
		}
	}
}

func (c *Cache) remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.items[:0:0]
	for _, p := range c.items {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	c.items = kept
}
