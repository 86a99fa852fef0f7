package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estrategicos-catalogo/internal/application/auth"
	"github.com/jhoicas/estrategicos-catalogo/internal/application/dto"
	"github.com/jhoicas/estrategicos-catalogo/internal/domain"
	"github.com/jhoicas/estrategicos-catalogo/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/estrategicos-catalogo/pkg/jwt"
)

var jwtCfg = auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "test"}

func newUseCase(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	return auth.NewAuthUseCase(memory.NewUserRepository(), jwtCfg)
}

func TestRegisterUser_YLogin(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(t)

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Name: "Ana", Email: " Ana@Estrategicos.com ", Password: "segredo1"})
	require.NoError(t, err)
	assert.Equal(t, "ana@estrategicos.com", u.Email)
	assert.Equal(t, "Ana", u.Name)

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@estrategicos.com", Password: "segredo1"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, res.User.ID)

	claims, err := pkgjwt.Parse(jwtCfg.Secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)

	verified, err := uc.Verify(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, verified.ID)
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(t)

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.com", Password: "123456"})
	require.NoError(t, err)
	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "A@B.com", Password: "123456"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterUser_EntradaInvalida(t *testing.T) {
	uc := newUseCase(t)

	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: "sin-arroba", Password: "123456"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: "a@b.com", Password: "123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(t)
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.com", Password: "123456"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@b.com", Password: "errada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@b.com", Password: "123456"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestVerify_TokenInvalido(t *testing.T) {
	_, err := newUseCase(t).Verify(context.Background(), "x.y.z")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
