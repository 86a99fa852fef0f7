package hosted

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jhoicas/estrategicos-catalogo/internal/application/dto"
	"github.com/jhoicas/estrategicos-catalogo/internal/application/ports"
	"github.com/jhoicas/estrategicos-catalogo/internal/domain"
)

var (
	_ ports.AuthClient     = (*AuthClient)(nil)
	_ ports.AuthSubscriber = (*AuthClient)(nil)
	_ ports.Registrar      = (*AuthClient)(nil)
)

// Authenticator casos de uso de auth que consume el cliente.
type Authenticator interface {
	RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error)
}

// AuthClient sesión única del proceso contra el backend hospedado.
type AuthClient struct {
	auth Authenticator

	mu        sync.Mutex
	snap      ports.AuthSnapshot
	listeners map[int]func(ports.AuthSnapshot)
	nextID    int
}

// NewAuthClient crea el cliente sin sesión.
func NewAuthClient(auth Authenticator) *AuthClient {
	return &AuthClient{auth: auth, listeners: make(map[int]func(ports.AuthSnapshot))}
}

// Current estado actual.
func (c *AuthClient) Current() ports.AuthSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

// SignIn valida credenciales y abre la sesión.
func (c *AuthClient) SignIn(ctx context.Context, creds ports.Credentials) error {
	if strings.TrimSpace(creds.Email) == "" || creds.Password == "" {
		return fmt.Errorf("%w: email y contraseña son requeridos", domain.ErrInvalidInput)
	}
	res, err := c.auth.Login(ctx, dto.LoginRequest{Email: creds.Email, Password: creds.Password})
	if err != nil {
		return err
	}
	c.set(ports.AuthSnapshot{
		IsAuthenticated: true,
		User:            &ports.AuthUser{ID: res.User.ID, Email: res.User.Email, Name: res.User.Name},
		Token:           res.Token,
	})
	return nil
}

// SignOut cierra la sesión.
func (c *AuthClient) SignOut(_ context.Context) error {
	c.set(ports.AuthSnapshot{})
	return nil
}

// Register crea una cuenta. No abre sesión.
func (c *AuthClient) Register(ctx context.Context, in ports.RegisterRequest) (*ports.AuthUser, error) {
	u, err := c.auth.RegisterUser(ctx, dto.RegisterRequest{Name: in.Name, Email: in.Email, Password: in.Password})
	if err != nil {
		return nil, err
	}
	return &ports.AuthUser{ID: u.ID, Email: u.Email, Name: u.Name}, nil
}

// OnAuthChange registra fn; se invoca fuera del lock en cada cambio de sesión.
func (c *AuthClient) OnAuthChange(fn func(ports.AuthSnapshot)) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// CurrentUserID ID del usuario autenticado ("" sin sesión).
func (c *AuthClient) CurrentUserID() string {
	s := c.Current()
	if s.User == nil {
		return ""
	}
	return s.User.ID
}

func (c *AuthClient) set(s ports.AuthSnapshot) {
	c.mu.Lock()
	c.snap = s
	fns := make([]func(ports.AuthSnapshot), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}
