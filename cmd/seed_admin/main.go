// seed_admin crea la cuenta inicial del panel en el backend PostgreSQL.
//
// Uso: go run ./cmd/seed_admin <email> <senha> [nome]
// Lee la conexión de las mismas variables que cmd/api (DATABASE_URL o DB_*).
// Si el email ya existe no hace nada.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/estrategicos-catalogo/internal/application/auth"
	"github.com/jhoicas/estrategicos-catalogo/internal/application/dto"
	"github.com/jhoicas/estrategicos-catalogo/internal/domain"
	"github.com/jhoicas/estrategicos-catalogo/internal/infrastructure/postgres"
	"github.com/jhoicas/estrategicos-catalogo/pkg/config"
	"github.com/jhoicas/estrategicos-catalogo/pkg/logger"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "uso: seed_admin <email> <senha> [nome]")
		os.Exit(2)
	}
	name := "Administrador"
	if len(os.Args) > 3 {
		name = os.Args[3]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := postgres.RunMigrations(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	uc := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Name: name, Email: os.Args[1], Password: os.Args[2]})
	switch {
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		log.Info().Str("email", os.Args[1]).Msg("el usuario ya existe, nada que hacer")
	case err != nil:
		log.Fatal().Err(err).Msg("crear usuario")
	default:
		log.Info().Str("id", u.ID).Str("email", u.Email).Msg("usuario creado")
	}
}
