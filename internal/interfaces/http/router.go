package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/estrategicos-catalogo/internal/application/dto"
	"github.com/jhoicas/estrategicos-catalogo/internal/application/ports"
	"github.com/jhoicas/estrategicos-catalogo/internal/application/produto"
	"github.com/jhoicas/estrategicos-catalogo/internal/domain/category"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Session      Session
	Registrar    ports.Registrar // nil = sin registro de cuentas
	Produtos     *produto.Adapter
	Categories   *category.Registry
	Notices      NoticeSource
	Report       ReportGenerator // nil = sin relatório PDF
	Gauge        CategoryGauge
	LoginLimiter *LoginLimiter // nil = sin límite
	CookieSecure bool
	Log          zerolog.Logger
}

// Router registra las pantallas y la API.
func Router(app *fiber.App, deps RouterDeps) error {
	produtoHandler := NewProdutoHandler(deps.Produtos, deps.Categories, deps.Report, deps.Gauge)
	screens, err := NewScreens(deps, produtoHandler)
	if err != nil {
		return err
	}

	loginLimit := func(onLimit fiber.Handler) fiber.Handler {
		if deps.LoginLimiter == nil {
			return func(c *fiber.Ctx) error { return c.Next() }
		}
		return deps.LoginLimiter.Middleware(onLimit)
	}
	apiLimited := func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "RATE_LIMITED", Message: msgTooManyAttempts})
	}

	// Pantallas
	app.Get("/", screens.Root)
	app.Get("/login", RedirectIfSession(deps.Session), screens.LoginPage)
	app.Post("/login", RedirectIfSession(deps.Session), loginLimit(screens.LoginLimited), screens.LoginSubmit)
	app.Get("/register", RedirectIfSession(deps.Session), screens.RegisterPage)
	app.Post("/register", RedirectIfSession(deps.Session), screens.RegisterSubmit)
	app.Post("/logout", RequireSession(deps.Session), screens.Logout)

	dash := app.Group("/dashboard", RequireSession(deps.Session))
	dash.Get("/", screens.Dashboard)
	dash.Get("/relatorio.pdf", screens.Report)
	dash.Post("/produtos", screens.SaveProduto)
	dash.Post("/produtos/atualizar", screens.RefreshProdutos)
	dash.Post("/produtos/:id/excluir", screens.DeleteProduto)

	api := app.Group("/api")

	// Auth (público salvo logout)
	authHandler := NewAuthHandler(deps.Session, deps.Registrar, deps.CookieSecure)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", loginLimit(apiLimited), authHandler.Login)
	authGroup.Get("/session", authHandler.Session)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/logout", AuthMiddleware(deps.Session), authHandler.Logout)

	// Rutas protegidas (requieren Bearer Token)
	protect := AuthMiddleware(deps.Session)

	produtos := api.Group("/produtos", protect)
	produtos.Get("/custo-unitario", produtoHandler.UnitCost)
	produtos.Get("/relatorio.pdf", produtoHandler.Report)
	produtos.Get("/", produtoHandler.List)
	produtos.Post("/", produtoHandler.Create)
	produtos.Put("/:id", produtoHandler.Update)
	produtos.Delete("/:id", produtoHandler.Delete)

	categoriaHandler := NewCategoriaHandler(deps.Categories, deps.Gauge)
	categorias := api.Group("/categorias", protect)
	categorias.Get("/", categoriaHandler.List)
	categorias.Post("/", categoriaHandler.Create)

	dashboardHandler := NewDashboardHandler(deps.Produtos, deps.Categories, deps.Notices)
	api.Get("/dashboard/summary", protect, dashboardHandler.Summary)
	api.Get("/notificacoes", protect, dashboardHandler.Notices)

	return nil
}
