package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	_ "github.com/jhoicas/estrategicos-catalogo/docs"
	"github.com/jhoicas/estrategicos-catalogo/internal/application/auth"
	"github.com/jhoicas/estrategicos-catalogo/internal/application/produto"
	"github.com/jhoicas/estrategicos-catalogo/internal/application/session"
	"github.com/jhoicas/estrategicos-catalogo/internal/domain/category"
	"github.com/jhoicas/estrategicos-catalogo/internal/domain/repository"
	"github.com/jhoicas/estrategicos-catalogo/internal/infrastructure/hosted"
	"github.com/jhoicas/estrategicos-catalogo/internal/infrastructure/memory"
	"github.com/jhoicas/estrategicos-catalogo/internal/infrastructure/metrics"
	"github.com/jhoicas/estrategicos-catalogo/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/estrategicos-catalogo/internal/infrastructure/pdf"
	"github.com/jhoicas/estrategicos-catalogo/internal/infrastructure/postgres"
	"github.com/jhoicas/estrategicos-catalogo/internal/infrastructure/security"
	httpRouter "github.com/jhoicas/estrategicos-catalogo/internal/interfaces/http"
	"github.com/jhoicas/estrategicos-catalogo/pkg/config"
	"github.com/jhoicas/estrategicos-catalogo/pkg/logger"
)

// @title                       Estratégicos Catálogo API
// @version                     1.0
// @description                 Catálogo de produtos e insumos do painel Estratégicos: sessão, produtos, categorias e resumo.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Backend hospedado: PostgreSQL o memoria del proceso.
	var (
		userRepo    repository.UserRepository
		produtoRepo repository.ProdutoRepository
		produtoTx   repository.ProdutoTxRunner
	)
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		if cfg.DB.AutoMigrate {
			if err := postgres.RunMigrations(cfg.DB.ConnectionString()); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		userRepo = postgres.NewUserRepository(pool)
		produtoRepo = postgres.NewProdutoRepository(pool)
		produtoTx = postgres.NewTxRunner(pool)
	default:
		log.Warn().Msg("backend en memoria: los datos se pierden al reiniciar")
		userRepo = memory.NewUserRepository()
		memProdutos := memory.NewProdutoRepository()
		produtoRepo = memProdutos
		produtoTx = memory.NewTxRunner(memProdutos)
	}

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	authClient := hosted.NewAuthClient(authUC)
	produtos := hosted.NewProdutosCollection(produtoRepo,
		hosted.WithCreator(authClient.CurrentUserID),
		hosted.WithCleaner(security.NewSanitizer()),
		hosted.WithTxRunner(produtoTx),
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(reg)

	notices := notify.NewCenter(log.Component("notify"))
	sess := session.NewAdapter(authClient, log.Component("session"), session.WithRecorder(collector))
	defer sess.Close()
	produtoAdapter := produto.NewAdapter(produtos, notices, log.Component("produto"), produto.WithRecorder(collector))
	categories := category.NewRegistry(category.WithMaxAttempts(cfg.Category.MaxAttempts))

	loginLimiter := httpRouter.NewLoginLimiter(cfg.Login.RatePerMinute, cfg.Login.Burst, collector)
	defer loginLimiter.Stop()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.App.SwaggerFile != "" {
		if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.App.SwaggerFile,
				Path:     "docs",
				Title:    "Estratégicos Catálogo API",
			}))
		} else {
			log.Warn().Str("file", cfg.App.SwaggerFile).Msg("swagger.json no encontrado, /docs deshabilitado")
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler(reg)))

	if err := httpRouter.Router(app, httpRouter.RouterDeps{
		Session:      sess,
		Registrar:    authClient,
		Produtos:     produtoAdapter,
		Categories:   categories,
		Notices:      notices,
		Report:       infrapdf.NewCatalogReport(),
		Gauge:        collector,
		LoginLimiter: loginLimiter,
		CookieSecure: cfg.HTTP.CookieSecure,
		Log:          log.Component("http"),
	}); err != nil {
		log.Fatal().Err(err).Msg("registrar rutas")
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
