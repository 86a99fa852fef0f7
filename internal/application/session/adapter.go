// Package session refleja localmente el estado de autenticación del backend hospedado.
package session

import (
	"context"
	"crypto/subtle"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/estrategicos-catalogo/internal/application/ports"
	"github.com/jhoicas/estrategicos-catalogo/internal/domain"
)

// SignInRecorder registra el resultado de cada inicio de sesión (métricas).
type SignInRecorder interface {
	RecordSignIn(ok bool)
}

type nopRecorder struct{}

func (nopRecorder) RecordSignIn(bool) {}

// Option configura el Adapter.
type Option func(*Adapter)

// WithRecorder fija el recolector de métricas de inicio de sesión.
func WithRecorder(r SignInRecorder) Option {
	return func(a *Adapter) {
		if r != nil {
			a.recorder = r
		}
	}
}

// Adapter espejo de la sesión del backend hospedado.
// Solo SignIn, SignOut y las notificaciones del cliente modifican el estado.
type Adapter struct {
	client   ports.AuthClient
	log      zerolog.Logger
	recorder SignInRecorder

	mu          sync.RWMutex
	snap        ports.AuthSnapshot
	loading     bool
	unsubscribe func()
}

// NewAdapter lee el estado actual del cliente y, si éste lo ofrece, se suscribe a sus cambios.
func NewAdapter(client ports.AuthClient, log zerolog.Logger, opts ...Option) *Adapter {
	a := &Adapter{
		client:   client,
		log:      log,
		recorder: nopRecorder{},
		snap:     client.Current(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if sub, ok := client.(ports.AuthSubscriber); ok {
		a.unsubscribe = sub.OnAuthChange(a.onChange)
	}
	return a
}

func (a *Adapter) onChange(s ports.AuthSnapshot) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !s.IsAuthenticated {
		s = ports.AuthSnapshot{}
	}
	a.snap = s
	a.loading = false
}

// Close cancela la suscripción a los cambios del cliente.
func (a *Adapter) Close() {
	a.mu.Lock()
	unsub := a.unsubscribe
	a.unsubscribe = nil
	a.mu.Unlock()
	if unsub != nil {
		unsub()
	}
}

// SignIn delega en el backend. Mientras hay una llamada en curso devuelve
// domain.ErrSignInInProgress. Los errores del backend se registran y se devuelven sin cambios.
func (a *Adapter) SignIn(ctx context.Context, email, password string) error {
	a.mu.Lock()
	if a.loading {
		a.mu.Unlock()
		return domain.ErrSignInInProgress
	}
	a.loading = true
	a.mu.Unlock()

	defer a.setLoading(false)

	if err := a.client.SignIn(ctx, ports.Credentials{Email: email, Password: password}); err != nil {
		a.log.Error().Err(err).Str("email", email).Msg("inicio de sesión fallido")
		a.recorder.RecordSignIn(false)
		return err
	}

	current := a.client.Current()
	a.mu.Lock()
	a.snap = ports.AuthSnapshot{IsAuthenticated: true, User: current.User, Token: current.Token}
	a.mu.Unlock()

	a.recorder.RecordSignIn(true)
	a.log.Info().Str("email", email).Msg("sesión iniciada")
	return nil
}

// SignOut delega en el backend y, si tiene éxito, limpia el estado local.
// No toca loading: ese indicador pertenece solo a SignIn.
func (a *Adapter) SignOut(ctx context.Context) error {
	if err := a.client.SignOut(ctx); err != nil {
		a.log.Error().Err(err).Msg("cierre de sesión fallido")
		return err
	}

	a.mu.Lock()
	a.snap = ports.AuthSnapshot{}
	a.mu.Unlock()
	a.log.Info().Msg("sesión cerrada")
	return nil
}

func (a *Adapter) setLoading(v bool) {
	a.mu.Lock()
	a.loading = v
	a.mu.Unlock()
}

// Snapshot copia del estado actual.
func (a *Adapter) Snapshot() ports.AuthSnapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	s := a.snap
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

// IsAuthenticated indica si hay sesión activa.
func (a *Adapter) IsAuthenticated() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.snap.IsAuthenticated
}

// User usuario de la sesión o nil.
func (a *Adapter) User() *ports.AuthUser {
	return a.Snapshot().User
}

// Loading indica si hay una llamada de autenticación en curso.
func (a *Adapter) Loading() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.loading
}

// Authorize indica si token corresponde a la sesión activa.
func (a *Adapter) Authorize(token string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if !a.snap.IsAuthenticated || token == "" || a.snap.Token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(a.snap.Token)) == 1
}
