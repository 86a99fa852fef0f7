// Package security limpia el texto libre que llega de formularios antes de persistirlo.
package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer elimina todo el markup HTML de un texto.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer crea un sanitizador con la política estricta (sin etiquetas).
func NewSanitizer() *Sanitizer {
	return &Sanitizer{policy: bluemonday.StrictPolicy()}
}

// Text quita las etiquetas y devuelve el texto plano recortado.
// bluemonday escapa entidades; se desescapan para guardar el texto tal cual.
func (s *Sanitizer) Text(in string) string {
	if in == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(in)))
}
