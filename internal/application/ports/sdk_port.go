package ports

import (
	"context"

	"github.com/jhoicas/estrategicos-catalogo/internal/domain/entity"
)

// AuthUser datos públicos del usuario autenticado en el backend hospedado.
type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// AuthSnapshot estado de autenticación del backend hospedado.
type AuthSnapshot struct {
	IsAuthenticated bool      `json:"isAuthenticated"`
	User            *AuthUser `json:"user"`
	Token           string    `json:"-"`
}

// Credentials credenciales de inicio de sesión.
type Credentials struct {
	Email    string
	Password string
}

// AuthClient define el puerto de salida hacia la autenticación del backend hospedado.
// La firma de SignIn es fija: recibe siempre el objeto de credenciales.
type AuthClient interface {
	Current() AuthSnapshot
	SignIn(ctx context.Context, creds Credentials) error
	SignOut(ctx context.Context) error
}

// AuthSubscriber lo implementan los clientes que notifican cambios de autenticación.
// La función devuelta cancela la suscripción.
type AuthSubscriber interface {
	OnAuthChange(fn func(AuthSnapshot)) (unsubscribe func())
}

// RegisterRequest datos de alta de una cuenta.
type RegisterRequest struct {
	Name     string
	Email    string
	Password string
}

// Registrar lo implementan los clientes que permiten crear cuentas.
type Registrar interface {
	Register(ctx context.Context, in RegisterRequest) (*AuthUser, error)
}

// SortDesc / SortAsc dirección de ordenación.
const (
	SortDesc = -1
	SortAsc  = 1
)

// ListOptions opciones de consulta de la colección.
// Sort mapea campo -> dirección; solo se admite "createdAt".
type ListOptions struct {
	Sort  map[string]int
	Limit int
}

// ListResult respuesta de List.
type ListResult struct {
	List  []entity.Produto
	Total int
}

// ProdutoCollection define el puerto de salida hacia la colección "produtos" del backend hospedado.
type ProdutoCollection interface {
	List(ctx context.Context, opts ListOptions) (ListResult, error)
	Create(ctx context.Context, in entity.ProdutoInput) (*entity.Produto, error)
	Update(ctx context.Context, id string, in entity.ProdutoInput) (*entity.Produto, error)
	Delete(ctx context.Context, id string) error
}
