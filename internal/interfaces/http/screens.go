package http

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/estrategicos-catalogo/internal/application/dashboard"
	"github.com/jhoicas/estrategicos-catalogo/internal/application/dto"
	"github.com/jhoicas/estrategicos-catalogo/internal/application/form"
	"github.com/jhoicas/estrategicos-catalogo/internal/application/ports"
	"github.com/jhoicas/estrategicos-catalogo/internal/application/produto"
	"github.com/jhoicas/estrategicos-catalogo/internal/domain"
	"github.com/jhoicas/estrategicos-catalogo/internal/domain/catalog"
	"github.com/jhoicas/estrategicos-catalogo/internal/domain/category"
	"github.com/jhoicas/estrategicos-catalogo/internal/domain/entity"
	"github.com/jhoicas/estrategicos-catalogo/internal/infrastructure/notify"
)

//go:embed views/*.html
var viewsFS embed.FS

// Textos de las pantallas.
const (
	msgRegistered       = "Conta criada com sucesso. Faça login."
	msgPasswordMismatch = "As senhas não coincidem"
	msgRegisterFailed   = "Não foi possível criar a conta"
	msgEmailTaken       = "E-mail já cadastrado"
	msgRegisterDisabled = "Cadastro indisponível"
	msgSignInBusy       = "Entrada em andamento, aguarde"
	msgTooManyAttempts  = "Muitas tentativas. Tente novamente em instantes."
	msgSaveFailed       = "Não foi possível salvar o produto"
	msgProdutoMissing   = "Produto não encontrado"
)

type loginPage struct {
	Title  string
	Error  string
	Notice string
	Email  string
}

type registerPage struct {
	Title string
	Error string
	Name  string
	Email string
}

type dashboardPage struct {
	Title       string
	User        *ports.AuthUser
	Sidebar     []dashboard.MenuGroup
	Section     dashboard.Section
	Summary     dashboard.Summary
	Recent      []entity.Produto
	Search      string
	Filtered    []entity.Produto
	ResultLabel string
	Loading     bool
	Notices     []notify.Message
	Form        *form.ProductForm
	FormError   string
	Confirm     *entity.Produto
}

// Screens pantallas HTML: login, registro y panel.
type Screens struct {
	tpl          *template.Template
	session      Session
	registrar    ports.Registrar
	produtos     *produto.Adapter
	categories   *category.Registry
	notices      NoticeSource
	gauge        CategoryGauge
	reports      *ProdutoHandler
	cookieSecure bool
	log          zerolog.Logger
}

// NewScreens parsea las plantillas embebidas.
func NewScreens(deps RouterDeps, reports *ProdutoHandler) (*Screens, error) {
	tpl, err := template.New("screens").Funcs(template.FuncMap{"money": money}).ParseFS(viewsFS, "views/*.html")
	if err != nil {
		return nil, err
	}
	return &Screens{
		tpl:          tpl,
		session:      deps.Session,
		registrar:    deps.Registrar,
		produtos:     deps.Produtos,
		categories:   deps.Categories,
		notices:      deps.Notices,
		gauge:        deps.Gauge,
		reports:      reports,
		cookieSecure: deps.CookieSecure,
		log:          deps.Log,
	}, nil
}

func money(d decimal.NullDecimal) string {
	if !d.Valid {
		return "-"
	}
	return "R$ " + catalog.FormatAmount(d.Decimal)
}

func (s *Screens) render(c *fiber.Ctx, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := s.tpl.ExecuteTemplate(&buf, name, data); err != nil {
		s.log.Error().Err(err).Str("template", name).Msg("error al renderizar pantalla")
		return fiber.NewError(fiber.StatusInternalServerError, "error al renderizar pantalla")
	}
	c.Type("html", "utf-8")
	return c.Status(status).Send(buf.Bytes())
}

// Root envía al panel o al login según la sesión.
func (s *Screens) Root(c *fiber.Ctx) error {
	if hasSession(c, s.session) {
		return c.Redirect("/dashboard", fiber.StatusSeeOther)
	}
	return c.Redirect("/login", fiber.StatusSeeOther)
}

func (s *Screens) LoginPage(c *fiber.Ctx) error {
	page := loginPage{Title: "Entrar"}
	if c.QueryBool("registrado") {
		page.Notice = msgRegistered
	}
	return s.render(c, fiber.StatusOK, "login", page)
}

func (s *Screens) LoginSubmit(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return s.render(c, fiber.StatusBadRequest, "login", loginPage{Title: "Entrar", Error: msgSignInFailed})
	}
	page := loginPage{Title: "Entrar", Email: strings.TrimSpace(in.Email)}
	if err := s.session.SignIn(c.Context(), in.Email, in.Password); err != nil {
		if errors.Is(err, domain.ErrSignInInProgress) {
			page.Error = msgSignInBusy
			return s.render(c, fiber.StatusConflict, "login", page)
		}
		page.Error = msgSignInFailed
		return s.render(c, fiber.StatusUnauthorized, "login", page)
	}
	setSessionCookie(c, s.session.Snapshot().Token, s.cookieSecure)
	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

// LoginLimited respuesta del login cuando la IP superó el límite.
func (s *Screens) LoginLimited(c *fiber.Ctx) error {
	return s.render(c, fiber.StatusTooManyRequests, "login", loginPage{Title: "Entrar", Error: msgTooManyAttempts})
}

func (s *Screens) RegisterPage(c *fiber.Ctx) error {
	return s.render(c, fiber.StatusOK, "register", registerPage{Title: "Criar conta"})
}

func (s *Screens) RegisterSubmit(c *fiber.Ctx) error {
	page := registerPage{
		Title: "Criar conta",
		Name:  strings.TrimSpace(c.FormValue("name")),
		Email: strings.TrimSpace(c.FormValue("email")),
	}
	if s.registrar == nil {
		page.Error = msgRegisterDisabled
		return s.render(c, fiber.StatusNotImplemented, "register", page)
	}
	password := c.FormValue("password")
	if password != c.FormValue("confirm") {
		page.Error = msgPasswordMismatch
		return s.render(c, fiber.StatusUnprocessableEntity, "register", page)
	}
	_, err := s.registrar.Register(c.Context(), ports.RegisterRequest{Name: page.Name, Email: page.Email, Password: password})
	switch {
	case err == nil:
		return c.Redirect("/login?registrado=1", fiber.StatusSeeOther)
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		page.Error = msgEmailTaken
		return s.render(c, fiber.StatusConflict, "register", page)
	case errors.Is(err, domain.ErrInvalidInput):
		page.Error = err.Error()
		return s.render(c, fiber.StatusUnprocessableEntity, "register", page)
	default:
		s.log.Error().Err(err).Msg("error al registrar usuario")
		page.Error = msgRegisterFailed
		return s.render(c, fiber.StatusInternalServerError, "register", page)
	}
}

func (s *Screens) Logout(c *fiber.Ctx) error {
	if err := s.session.SignOut(c.Context()); err != nil {
		s.log.Error().Err(err).Msg("error al cerrar sesión")
	}
	clearSessionCookie(c)
	return c.Redirect("/login", fiber.StatusSeeOther)
}

// page arma el panel; los avisos se vacían al final para incluir los de esta petición.
func (s *Screens) page(v *dashboard.View, sectionID string) dashboardPage {
	section := v.Section(sectionID)
	snap := s.session.Snapshot()
	return dashboardPage{
		Title:       section.Title,
		User:        snap.User,
		Sidebar:     v.Sidebar(),
		Section:     section,
		Summary:     v.Summary(),
		Recent:      v.RecentActivity(),
		Search:      v.Search(),
		Filtered:    v.Filtered(),
		ResultLabel: v.ResultLabel(),
		Loading:     s.produtos.Loading(),
		Notices:     s.notices.Drain(),
	}
}

func (s *Screens) view(c *fiber.Ctx) *dashboard.View {
	s.produtos.EnsureLoaded(c.Context())
	return dashboard.New(s.produtos, s.categories)
}

// Dashboard panel principal. Query: secao, q, novo, editar, excluir.
func (s *Screens) Dashboard(c *fiber.Ctx) error {
	v := s.view(c)
	v.SetSearch(c.Query("q"))

	var f *form.ProductForm
	var confirm *entity.Produto
	switch {
	case c.QueryBool("novo"):
		f = v.OpenNew()
	case c.Query("editar") != "":
		var err error
		if f, err = v.OpenEdit(c.Query("editar")); err != nil {
			s.produtosMissing()
		}
	case c.Query("excluir") != "":
		if p, ok := s.produtos.Get(c.Query("excluir")); ok {
			confirm = &p
		} else {
			s.produtosMissing()
		}
	}

	page := s.page(v, c.Query("secao"))
	page.Form = f
	page.Confirm = confirm
	return s.render(c, fiber.StatusOK, "dashboard", page)
}

func (s *Screens) produtosMissing() {
	s.notices.Error(msgProdutoMissing)
}

// SaveProduto envía el formulario del modal. Ante error se vuelve a mostrar con lo escrito.
func (s *Screens) SaveProduto(c *fiber.Ctx) error {
	v := s.view(c)
	section := sectionOrProdutos(c.FormValue("secao"))

	var f *form.ProductForm
	if id := c.FormValue("id"); id != "" {
		var err error
		if f, err = v.OpenEdit(id); err != nil {
			s.produtosMissing()
			return c.Redirect("/dashboard?secao="+section, fiber.StatusSeeOther)
		}
	} else {
		f = v.OpenNew()
	}

	fields := make(map[string]string, len(produtoFields))
	args := c.Request().PostArgs()
	for _, name := range produtoFields {
		if args.Has(name) {
			fields[name] = c.FormValue(name)
		}
	}

	before := s.categories.Len()
	err := applyFields(f, fields, c.FormValue("novaCategoria"))
	if s.gauge != nil && s.categories.Len() != before {
		s.gauge.SetCategories(s.categories.Len())
	}
	if err == nil {
		_, err = v.Save(c.Context(), f)
	}
	if err != nil {
		page := s.page(v, section)
		page.Form = f
		page.FormError = formMessage(err)
		return s.render(c, fiber.StatusUnprocessableEntity, "dashboard", page)
	}
	return c.Redirect("/dashboard?secao="+section, fiber.StatusSeeOther)
}

func formMessage(err error) string {
	if errors.Is(err, domain.ErrInvalidInput) || errors.Is(err, domain.ErrRangesExhausted) {
		return err.Error()
	}
	return msgSaveFailed
}

// sectionOrProdutos vuelve a la sección de productos si secao no lo es.
func sectionOrProdutos(id string) string {
	if sec := dashboard.SectionFor(id); sec.Products {
		return sec.ID
	}
	return dashboard.SectionCadastramento
}

// RefreshProdutos vuelve a consultar el backend. Los fallos llegan como aviso.
func (s *Screens) RefreshProdutos(c *fiber.Ctx) error {
	if err := s.produtos.List(c.Context()); err != nil {
		s.log.Warn().Err(err).Msg("atualizar produtos")
	}
	return c.Redirect("/dashboard?secao="+dashboard.SectionCadastramento, fiber.StatusSeeOther)
}

// DeleteProduto excluye tras la confirmación del modal (confirmar=sim).
func (s *Screens) DeleteProduto(c *fiber.Ctx) error {
	confirmed := c.FormValue("confirmar") == "sim"
	err := s.view(c).Delete(c.Context(), c.Params("id"), func(string) bool { return confirmed })
	if err != nil && !dashboard.IsDeleteCancelled(err) {
		s.log.Warn().Err(err).Str("id", c.Params("id")).Msg("excluir produto")
	}
	return c.Redirect("/dashboard?secao="+dashboard.SectionCadastramento, fiber.StatusSeeOther)
}

// Report descarga el relatório PDF desde el panel.
func (s *Screens) Report(c *fiber.Ctx) error {
	return s.reports.sendReport(c)
}
