package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estrategicos-catalogo/internal/application/auth"
	"github.com/jhoicas/estrategicos-catalogo/internal/application/dto"
	"github.com/jhoicas/estrategicos-catalogo/internal/application/produto"
	"github.com/jhoicas/estrategicos-catalogo/internal/application/session"
	"github.com/jhoicas/estrategicos-catalogo/internal/domain/category"
	"github.com/jhoicas/estrategicos-catalogo/internal/domain/entity"
	"github.com/jhoicas/estrategicos-catalogo/internal/infrastructure/hosted"
	"github.com/jhoicas/estrategicos-catalogo/internal/infrastructure/memory"
	"github.com/jhoicas/estrategicos-catalogo/internal/infrastructure/notify"
	apphttp "github.com/jhoicas/estrategicos-catalogo/internal/interfaces/http"
)

const (
	testEmail    = "ana@estrategicos.com"
	testPassword = "segredo1"
)

type fakeReport struct{ calls int }

func (f *fakeReport) Generate(_ context.Context, produtos []entity.Produto) ([]byte, error) {
	f.calls++
	return []byte("%PDF-1.3 fake"), nil
}

type gaugeSpy struct{ last int }

func (g *gaugeSpy) SetCategories(n int) { g.last = n }

type testEnv struct {
	app        *fiber.App
	session    *session.Adapter
	categories *category.Registry
	notices    *notify.Center
	report     *fakeReport
	gauge      *gaugeSpy
}

func newEnv(t *testing.T, limiter *apphttp.LoginLimiter) *testEnv {
	t.Helper()
	uc := auth.NewAuthUseCase(memory.NewUserRepository(), auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "estrategicos-test"})
	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Name: "Ana", Email: testEmail, Password: testPassword})
	require.NoError(t, err)

	client := hosted.NewAuthClient(uc)
	sess := session.NewAdapter(client, zerolog.Nop())
	t.Cleanup(sess.Close)

	notices := notify.NewCenter(zerolog.Nop())
	coll := hosted.NewProdutosCollection(memory.NewProdutoRepository(), hosted.WithCreator(client.CurrentUserID))
	env := &testEnv{
		app:        fiber.New(),
		session:    sess,
		categories: category.NewRegistry(),
		notices:    notices,
		report:     &fakeReport{},
		gauge:      &gaugeSpy{},
	}
	require.NoError(t, apphttp.Router(env.app, apphttp.RouterDeps{
		Session:      sess,
		Registrar:    client,
		Produtos:     produto.NewAdapter(coll, notices, zerolog.Nop()),
		Categories:   env.categories,
		Notices:      notices,
		Report:       env.report,
		Gauge:        env.gauge,
		LoginLimiter: limiter,
		Log:          zerolog.Nop(),
	}))
	return env
}

func (e *testEnv) do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func jsonRequest(method, target string, body any) *http.Request {
	var r io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func formRequest(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(raw)
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// login inicia sesión por la API y devuelve el token.
func (e *testEnv) login(t *testing.T) string {
	t.Helper()
	resp := e.do(t, jsonRequest(http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: testEmail, Password: testPassword}))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var out dto.LoginResponse
	decode(t, resp, &out)
	require.NotEmpty(t, out.Token)
	return out.Token
}

func bearer(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func withCookie(req *http.Request, token string) *http.Request {
	req.AddCookie(&http.Cookie{Name: apphttp.CookieName, Value: token})
	return req
}

func TestLoginAPI_FalloDevuelveMensajeUnico(t *testing.T) {
	env := newEnv(t, nil)

	for _, in := range []dto.LoginRequest{
		{Email: testEmail, Password: "errada"},
		{Email: "ninguem@estrategicos.com", Password: testPassword},
	} {
		resp := env.do(t, jsonRequest(http.MethodPost, "/api/auth/login", in))
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		var out dto.ErrorResponse
		decode(t, resp, &out)
		assert.Equal(t, "E-mail ou senha inválidos", out.Message)
	}
	assert.False(t, env.session.IsAuthenticated())
}

func TestLoginAPI_OKDevuelveTokenCookieYSesion(t *testing.T) {
	env := newEnv(t, nil)

	resp := env.do(t, jsonRequest(http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: testEmail, Password: testPassword}))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Set-Cookie"), apphttp.CookieName+"=")
	var out dto.LoginResponse
	decode(t, resp, &out)
	assert.Equal(t, testEmail, out.User.Email)

	resp = env.do(t, httptest.NewRequest(http.MethodGet, "/api/auth/session", nil))
	var sess dto.SessionResponse
	decode(t, resp, &sess)
	assert.True(t, sess.IsAuthenticated)
	require.NotNil(t, sess.User)
	assert.Equal(t, "Ana", sess.User.Name)
}

func TestLogoutAPI_InvalidaElToken(t *testing.T) {
	env := newEnv(t, nil)
	token := env.login(t)

	resp := env.do(t, bearer(httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil), token))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = env.do(t, bearer(httptest.NewRequest(http.MethodGet, "/api/produtos", nil), token))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRegisterAPI(t *testing.T) {
	env := newEnv(t, nil)

	resp := env.do(t, jsonRequest(http.MethodPost, "/api/auth/register", dto.RegisterRequest{Name: "Bia", Email: "bia@estrategicos.com", Password: "123456"}))
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = env.do(t, jsonRequest(http.MethodPost, "/api/auth/register", dto.RegisterRequest{Name: "Ana 2", Email: testEmail, Password: "123456"}))
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.False(t, env.session.IsAuthenticated(), "registrar no abre sesión")
}

func TestProdutosAPI_SinSesion401(t *testing.T) {
	env := newEnv(t, nil)

	resp := env.do(t, httptest.NewRequest(http.MethodGet, "/api/produtos", nil))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	env.login(t)
	resp = env.do(t, bearer(httptest.NewRequest(http.MethodGet, "/api/produtos", nil), "otro-token"))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProdutosAPI_CicloCompleto(t *testing.T) {
	env := newEnv(t, nil)
	token := env.login(t)

	resp := env.do(t, bearer(jsonRequest(http.MethodPost, "/api/produtos", map[string]any{
		"tipo":           "Insumo",
		"descricao":      "Farinha de trigo",
		"unidade":        "Kg",
		"qtdEmbalagem":   "25",
		"custoEmbalagem": "100",
		"novaCategoria":  "Secos",
	}), token))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var created entity.Produto
	decode(t, resp, &created)
	assert.Equal(t, "PRD-00001", created.Code)
	assert.Equal(t, "Secos", created.Category)
	require.True(t, created.UnitCost.Valid)
	assert.True(t, created.UnitCost.Decimal.Equal(decimal.NewFromInt(4)))
	assert.Equal(t, 1, env.gauge.last)

	resp = env.do(t, bearer(jsonRequest(http.MethodPut, "/api/produtos/"+created.ID, map[string]any{"descricao": "Farinha especial"}), token))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var updated entity.Produto
	decode(t, resp, &updated)
	assert.Equal(t, "Farinha especial", updated.Description)
	assert.Equal(t, "Secos", updated.Category, "campos ausentes se conservan")

	resp = env.do(t, bearer(httptest.NewRequest(http.MethodGet, "/api/produtos?q=ESPECIAL", nil), token))
	var list dto.ProdutoListResponse
	decode(t, resp, &list)
	require.Len(t, list.Items, 1)
	assert.Contains(t, list.Label, "1 resultado(s)")

	resp = env.do(t, bearer(httptest.NewRequest(http.MethodDelete, "/api/produtos/"+created.ID, nil), token))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "sin confirmar no excluye")

	resp = env.do(t, bearer(httptest.NewRequest(http.MethodDelete, "/api/produtos/"+created.ID+"?confirmar=sim", nil), token))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = env.do(t, bearer(httptest.NewRequest(http.MethodGet, "/api/produtos", nil), token))
	list = dto.ProdutoListResponse{}
	decode(t, resp, &list)
	assert.Empty(t, list.Items)
	assert.NotNil(t, list.Items)
}

func TestProdutosAPI_UpdateInexistente404(t *testing.T) {
	env := newEnv(t, nil)
	token := env.login(t)

	resp := env.do(t, bearer(jsonRequest(http.MethodPut, "/api/produtos/nao-existe", map[string]any{"descricao": "x"}), token))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestProdutosAPI_CustoUnitario(t *testing.T) {
	env := newEnv(t, nil)
	token := env.login(t)

	cases := map[string]string{
		"/api/produtos/custo-unitario?custoEmbalagem=10&qtdEmbalagem=4": "2.50",
		"/api/produtos/custo-unitario?custoEmbalagem=10&qtdEmbalagem=0": "0.00",
		"/api/produtos/custo-unitario":                                  "0.00",
	}
	for target, want := range cases {
		resp := env.do(t, bearer(httptest.NewRequest(http.MethodGet, target, nil), token))
		var out dto.UnitCostResponse
		decode(t, resp, &out)
		assert.Equal(t, want, out.CustoUnitario, target)
	}
}

func TestProdutosAPI_Relatorio(t *testing.T) {
	env := newEnv(t, nil)
	token := env.login(t)

	resp := env.do(t, bearer(httptest.NewRequest(http.MethodGet, "/api/produtos/relatorio.pdf", nil), token))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, strings.HasPrefix(readBody(t, resp), "%PDF"))
	assert.Equal(t, 1, env.report.calls)
}

func TestCategoriasAPI(t *testing.T) {
	env := newEnv(t, nil)
	token := env.login(t)

	resp := env.do(t, bearer(jsonRequest(http.MethodPost, "/api/categorias", dto.CategoriaRequest{Nome: "Bebidas"}), token))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var out dto.CategoriaResponse
	decode(t, resp, &out)
	assert.True(t, out.Added)
	assert.Equal(t, 1, out.Categoria.RangeStart)
	assert.Equal(t, 999, out.Categoria.RangeEnd)

	resp = env.do(t, bearer(jsonRequest(http.MethodPost, "/api/categorias", dto.CategoriaRequest{Nome: "  bebidas "}), token))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	out = dto.CategoriaResponse{}
	decode(t, resp, &out)
	assert.False(t, out.Added)
	assert.Equal(t, "Bebidas", out.Categoria.Name)

	resp = env.do(t, bearer(jsonRequest(http.MethodPost, "/api/categorias", dto.CategoriaRequest{Nome: "  "}), token))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, bearer(httptest.NewRequest(http.MethodGet, "/api/categorias", nil), token))
	var list []entity.Category
	decode(t, resp, &list)
	assert.Len(t, list, 1)
	assert.Equal(t, 1, env.gauge.last)
}

func TestDashboardAPI_ResumenYAvisos(t *testing.T) {
	env := newEnv(t, nil)
	token := env.login(t)

	for _, body := range []map[string]any{
		{"tipo": "Produto", "descricao": "Bolo", "unidade": "Unidade", "categoria": "Doces"},
		{"tipo": "Insumo", "descricao": "Açúcar", "unidade": "Kg", "categoria": "Secos"},
	} {
		resp := env.do(t, bearer(jsonRequest(http.MethodPost, "/api/produtos", body), token))
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	resp := env.do(t, bearer(httptest.NewRequest(http.MethodGet, "/api/dashboard/summary", nil), token))
	var sum dto.DashboardSummaryDTO
	decode(t, resp, &sum)
	assert.Equal(t, 2, sum.Total)
	assert.Equal(t, 1, sum.Produtos)
	assert.Equal(t, 1, sum.Insumos)
	assert.Equal(t, 2, sum.Categorias)
	require.Len(t, sum.Recent, 2)
	assert.Equal(t, "Açúcar", sum.Recent[0].Description)

	resp = env.do(t, bearer(httptest.NewRequest(http.MethodGet, "/api/notificacoes", nil), token))
	var msgs []notify.Message
	decode(t, resp, &msgs)
	assert.Len(t, msgs, 2)

	resp = env.do(t, bearer(httptest.NewRequest(http.MethodGet, "/api/notificacoes", nil), token))
	msgs = nil
	decode(t, resp, &msgs)
	assert.Empty(t, msgs)
}

func TestPantallas_SinSesionRedirigeALogin(t *testing.T) {
	env := newEnv(t, nil)

	for _, target := range []string{"/", "/dashboard", "/dashboard?secao=cadastramento", "/dashboard/relatorio.pdf"} {
		resp := env.do(t, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode, target)
		assert.Equal(t, "/login", resp.Header.Get("Location"), target)
	}
}

func TestPantallas_LoginFormulario(t *testing.T) {
	env := newEnv(t, nil)

	resp := env.do(t, formRequest("/login", url.Values{"email": {testEmail}, "password": {"errada"}}))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "E-mail ou senha inválidos")
	assert.Contains(t, body, testEmail, "el email escrito se conserva")

	resp = env.do(t, formRequest("/login", url.Values{"email": {testEmail}, "password": {testPassword}}))
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))

	token := env.session.Snapshot().Token
	resp = env.do(t, withCookie(httptest.NewRequest(http.MethodGet, "/login", nil), token))
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))

	resp = env.do(t, withCookie(httptest.NewRequest(http.MethodGet, "/dashboard", nil), token))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body = readBody(t, resp)
	assert.Contains(t, body, "Total de Itens")
	assert.Contains(t, body, "Mini Estratégias")
}

func TestPantallas_Registro(t *testing.T) {
	env := newEnv(t, nil)

	resp := env.do(t, formRequest("/register", url.Values{
		"name": {"Caio"}, "email": {"caio@estrategicos.com"}, "password": {"123456"}, "confirm": {"654321"},
	}))
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "As senhas não coincidem")

	resp = env.do(t, formRequest("/register", url.Values{
		"name": {"Caio"}, "email": {"caio@estrategicos.com"}, "password": {"123456"}, "confirm": {"123456"},
	}))
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login?registrado=1", resp.Header.Get("Location"))

	resp = env.do(t, httptest.NewRequest(http.MethodGet, "/login?registrado=1", nil))
	assert.Contains(t, readBody(t, resp), "Conta criada com sucesso")
}

func TestPantallas_LogoutSinCookieNoCierraLaSesion(t *testing.T) {
	env := newEnv(t, nil)
	token := env.login(t)

	resp := env.do(t, formRequest("/logout", url.Values{}))
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	assert.True(t, env.session.IsAuthenticated())
	assert.True(t, env.session.Authorize(token))

	resp = env.do(t, withCookie(formRequest("/logout", url.Values{}), "otro-token"))
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.True(t, env.session.IsAuthenticated())

	resp = env.do(t, withCookie(formRequest("/logout", url.Values{}), token))
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	assert.False(t, env.session.IsAuthenticated())
	assert.False(t, env.session.Authorize(token))
}

func TestPantallas_PostLoginYRegistroConSesionRedirigen(t *testing.T) {
	env := newEnv(t, nil)
	token := env.login(t)

	resp := env.do(t, withCookie(formRequest("/login", url.Values{"email": {testEmail}, "password": {"errada"}}), token))
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
	assert.True(t, env.session.Authorize(token), "la sesión sigue intacta")

	resp = env.do(t, withCookie(formRequest("/register", url.Values{
		"name": {"Caio"}, "email": {"caio@estrategicos.com"}, "password": {"123456"}, "confirm": {"123456"},
	}), token))
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))

	// La cuenta no se creó: registrarla ahora por la API funciona.
	resp = env.do(t, jsonRequest(http.MethodPost, "/api/auth/register", dto.RegisterRequest{Name: "Caio", Email: "caio@estrategicos.com", Password: "123456"}))
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestPantallas_GuardarYExcluirProduto(t *testing.T) {
	env := newEnv(t, nil)
	token := env.login(t)

	resp := env.do(t, withCookie(formRequest("/dashboard/produtos", url.Values{
		"secao": {"cadastramento"}, "tipo": {"Insumo"}, "descricao": {"Leite"}, "unidade": {"Litro"},
		"categoria": {""}, "novaCategoria": {"Laticínios"}, "qtdEmbalagem": {"abc"}, "custoEmbalagem": {"10"},
	}), token))
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "no es numérico")
	assert.Contains(t, body, "Leite", "el formulario conserva lo escrito")

	resp = env.do(t, withCookie(formRequest("/dashboard/produtos", url.Values{
		"secao": {"cadastramento"}, "tipo": {"Insumo"}, "descricao": {"Leite"}, "unidade": {"Litro"},
		"categoria": {"Laticínios"}, "qtdEmbalagem": {"12"}, "custoEmbalagem": {"60"},
	}), token))
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/dashboard?secao=cadastramento", resp.Header.Get("Location"))

	resp = env.do(t, withCookie(httptest.NewRequest(http.MethodGet, "/dashboard?secao=cadastramento&q=leite", nil), token))
	body = readBody(t, resp)
	assert.Contains(t, body, "PRD-00001")
	assert.Contains(t, body, "R$ 5.00")

	resp = env.do(t, bearer(httptest.NewRequest(http.MethodGet, "/api/produtos", nil), token))
	var list dto.ProdutoListResponse
	decode(t, resp, &list)
	require.Len(t, list.Items, 1)
	id := list.Items[0].ID

	resp = env.do(t, withCookie(formRequest("/dashboard/produtos/"+id+"/excluir", url.Values{}), token))
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	resp = env.do(t, bearer(httptest.NewRequest(http.MethodGet, "/api/produtos", nil), token))
	list = dto.ProdutoListResponse{}
	decode(t, resp, &list)
	assert.Len(t, list.Items, 1, "sin confirmar no excluye")

	resp = env.do(t, withCookie(formRequest("/dashboard/produtos/"+id+"/excluir", url.Values{"confirmar": {"sim"}}), token))
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	resp = env.do(t, bearer(httptest.NewRequest(http.MethodGet, "/api/produtos", nil), token))
	list = dto.ProdutoListResponse{}
	decode(t, resp, &list)
	assert.Empty(t, list.Items)
}

func TestPantallas_SeccionPlaceholder(t *testing.T) {
	env := newEnv(t, nil)
	token := env.login(t)

	resp := env.do(t, withCookie(httptest.NewRequest(http.MethodGet, "/dashboard?secao=suporte", nil), token))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Esta seção permite acessar suporte técnico e documentação.")
}

func TestLogin_LimitePorIP(t *testing.T) {
	limiter := apphttp.NewLoginLimiter(1, 1, nil)
	t.Cleanup(limiter.Stop)
	env := newEnv(t, limiter)

	resp := env.do(t, jsonRequest(http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: testEmail, Password: "errada"}))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = env.do(t, jsonRequest(http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: testEmail, Password: testPassword}))
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "60", resp.Header.Get("Retry-After"))
	assert.False(t, env.session.IsAuthenticated())

	resp = env.do(t, formRequest("/login", url.Values{"email": {testEmail}, "password": {testPassword}}))
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Muitas tentativas")
}
