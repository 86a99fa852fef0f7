// Package category mantiene el registro en memoria de categorías y sus faixas de frecuencia.
//
// La primera categoría recibe siempre [1, 999]. Las siguientes reciben un bloque
// [n*1000, n*1000+999] con n aleatorio en 1..9, sin repetir inicio. Como solo existen
// nueve bloques, el registro admite como máximo diez categorías; la undécima devuelve
// domain.ErrRangesExhausted.
package category

import (
	"math/rand/v2"
	"strings"
	"sync"

	"golang.org/x/text/cases"

	"github.com/jhoicas/estrategicos-catalogo/internal/domain"
	"github.com/jhoicas/estrategicos-catalogo/internal/domain/entity"
)

const (
	firstRangeStart = 1
	firstRangeEnd   = 999
	bucketSize      = 1000
	minBucket       = 1000
	maxBucket       = 9000
	// DefaultMaxAttempts intentos aleatorios antes del barrido determinista.
	DefaultMaxAttempts = 64
)

// IntN fuente de aleatoriedad; *rand.Rand la satisface.
type IntN interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Option configura el Registry.
type Option func(*Registry)

// WithRand fija la fuente aleatoria (tests deterministas).
func WithRand(src IntN) Option {
	return func(r *Registry) { r.rnd = src }
}

// WithMaxAttempts fija el tope de muestreos aleatorios por alta.
func WithMaxAttempts(n int) Option {
	return func(r *Registry) {
		if n > 0 {
			r.maxAttempts = n
		}
	}
}

// Registry registro de categorías, seguro para uso concurrente.
// Las categorías nunca se modifican ni eliminan.
type Registry struct {
	mu          sync.Mutex
	items       []entity.Category
	used        map[int]struct{}
	rnd         IntN
	maxAttempts int
}

// NewRegistry construye un registro vacío.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		used:        make(map[int]struct{}),
		rnd:         globalRand{},
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Add registra una categoría nueva. Nombre vacío o ya existente (sin distinguir
// mayúsculas) es un no-op silencioso: devuelve added=false y err=nil junto con la
// categoría existente, si la hay.
func (r *Registry) Add(name string) (cat entity.Category, added bool, err error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return entity.Category{}, false, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.lookupLocked(trimmed); ok {
		return existing, false, nil
	}

	start, err := r.allocateLocked()
	if err != nil {
		return entity.Category{}, false, err
	}
	end := start + bucketSize - 1
	if start == firstRangeStart {
		end = firstRangeEnd
	}

	cat = entity.Category{
		ID:         len(r.items) + 1,
		Name:       trimmed,
		RangeStart: start,
		RangeEnd:   end,
	}
	r.items = append(r.items, cat)
	r.used[start] = struct{}{}
	return cat, true, nil
}

func (r *Registry) allocateLocked() (int, error) {
	if len(r.items) == 0 {
		return firstRangeStart, nil
	}
	for i := 0; i < r.maxAttempts; i++ {
		start := (minBucket + r.rnd.IntN(maxBucket+bucketSize-minBucket)) / bucketSize * bucketSize
		if _, taken := r.used[start]; !taken {
			return start, nil
		}
	}
	for start := minBucket; start <= maxBucket; start += bucketSize {
		if _, taken := r.used[start]; !taken {
			return start, nil
		}
	}
	return 0, domain.ErrRangesExhausted
}

// List devuelve una copia de las categorías en orden de alta.
func (r *Registry) List() []entity.Category {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Category, len(r.items))
	copy(out, r.items)
	return out
}

// Len número de categorías registradas.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// Lookup busca una categoría por nombre sin distinguir mayúsculas.
func (r *Registry) Lookup(name string) (entity.Category, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lookupLocked(strings.TrimSpace(name))
}

func (r *Registry) lookupLocked(name string) (entity.Category, bool) {
	key := fold(name)
	for _, c := range r.items {
		if fold(c.Name) == key {
			return c, true
		}
	}
	return entity.Category{}, false
}

func fold(s string) string {
	return cases.Fold().String(s)
}
