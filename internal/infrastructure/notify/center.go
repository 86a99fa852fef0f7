// Package notify guarda los avisos para el usuario hasta que la próxima pantalla los muestra.
package notify

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/estrategicos-catalogo/internal/application/ports"
)

var _ ports.Notifier = (*Center)(nil)

// Niveles de aviso.
const (
	LevelSuccess = "success"
	LevelError   = "error"
)

// MaxPending avisos retenidos; al superarlo se descartan los más antiguos.
const MaxPending = 20

// Message aviso pendiente.
type Message struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

// Center cola de avisos del proceso. Cada aviso también se registra en el log.
type Center struct {
	log zerolog.Logger

	mu      sync.Mutex
	pending []Message
}

// NewCenter crea la cola vacía.
func NewCenter(log zerolog.Logger) *Center {
	return &Center{log: log}
}

// Success encola un aviso de éxito.
func (c *Center) Success(msg string) {
	c.log.Info().Str("level", LevelSuccess).Msg(msg)
	c.push(Message{Level: LevelSuccess, Text: msg})
}

// Error encola un aviso de error.
func (c *Center) Error(msg string) {
	c.log.Warn().Str("level", LevelError).Msg(msg)
	c.push(Message{Level: LevelError, Text: msg})
}

func (c *Center) push(m Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = append(c.pending, m)
	if over := len(c.pending) - MaxPending; over > 0 {
		c.pending = append([]Message(nil), c.pending[over:]...)
	}
}

// Drain devuelve y vacía los avisos pendientes.
func (c *Center) Drain() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.pending
	c.pending = nil
	return out
}
