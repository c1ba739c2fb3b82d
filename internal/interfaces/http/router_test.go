package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/jhoicas/ledger-api/internal/application/account"
	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/application/ledger"
	"github.com/jhoicas/ledger-api/internal/infrastructure/memory"
	"github.com/jhoicas/ledger-api/internal/infrastructure/pdf"
	"github.com/jhoicas/ledger-api/internal/infrastructure/xmlexport"
	apphttp "github.com/jhoicas/ledger-api/internal/interfaces/http"
	"github.com/jhoicas/ledger-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type testServer struct {
	app *fiber.App
	now time.Time
}

// newTestServer arma la API completa sobre un registro en memoria nuevo,
// con reloj controlable para simular días distintos.
func newTestServer(t *testing.T, logOutput io.Writer) *testServer {
	t.Helper()
	s := &testServer{now: time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)}

	registry := memory.NewCustomerRegistry(nil)
	accountUC := account.NewUseCase(registry, nil)
	ledgerUC := ledger.NewUseCase(ledger.Deps{
		Registry: registry,
		PDF:      pdf.NewStatementPDFGenerator(language.Spanish),
		XML:      xmlexport.NewStatementXMLBuilder(),
		Clock:    func() time.Time { return s.now },
	})

	log := logger.Nop()
	if logOutput != nil {
		log = logger.New(logger.Config{Env: "production", Level: "info", Output: logOutput})
	}

	s.app = fiber.New()
	apphttp.UseRequestMiddleware(s.app, log, nil)
	apphttp.Router(s.app, apphttp.RouterDeps{AccountUC: accountUC, LedgerUC: ledgerUC, Location: time.UTC})
	return s
}

func (s *testServer) do(t *testing.T, method, path, taxID string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if taxID != "" {
		req.Header.Set(apphttp.HeaderTaxID, taxID)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func (s *testServer) register(t *testing.T, taxID, name string) {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/api/account", "", map[string]string{"tax_id": taxID, "name": name})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func (s *testServer) balance(t *testing.T, taxID string) decimal.Decimal {
	t.Helper()
	resp := s.do(t, http.MethodGet, "/api/balance", taxID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.BalanceResponse
	decode(t, resp, &out)
	return out.Balance
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var e dto.ErrorResponse
	decode(t, resp, &e)
	return e.Code
}

// ──────────────────────────────────────────────────────────────────────────────
// Cuentas
// ──────────────────────────────────────────────────────────────────────────────

func TestAccount_AltaYConsulta(t *testing.T) {
	s := newTestServer(t, nil)

	resp := s.do(t, http.MethodPost, "/api/account", "", map[string]string{"tax_id": "111", "name": "Ana"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var created dto.AccountResponse
	decode(t, resp, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "111", created.TaxID)

	resp = s.do(t, http.MethodGet, "/api/account", "111", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var got dto.AccountResponse
	decode(t, resp, &got)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Ana", got.Name)
}

func TestAccount_Duplicado409(t *testing.T) {
	s := newTestServer(t, nil)
	s.register(t, "111", "Ana")

	resp := s.do(t, http.MethodPost, "/api/account", "", map[string]string{"tax_id": "111", "name": "Otra"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE_CUSTOMER", errorCode(t, resp))
}

func TestAccount_Validacion400(t *testing.T) {
	s := newTestServer(t, nil)

	resp := s.do(t, http.MethodPost, "/api/account", "", map[string]string{"tax_id": "111"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, resp))
}

func TestAccount_SinCabecera400(t *testing.T) {
	s := newTestServer(t, nil)

	resp := s.do(t, http.MethodGet, "/api/account", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "MISSING_TAX_ID", errorCode(t, resp))
}

func TestAccount_ClienteInexistente404(t *testing.T) {
	s := newTestServer(t, nil)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/account"},
		{http.MethodGet, "/api/balance"},
		{http.MethodGet, "/api/statement"},
		{http.MethodPost, "/api/deposit"},
	} {
		resp := s.do(t, route.method, route.path, "999", map[string]string{"amount": "1"})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, route.path)
		assert.Equal(t, "CUSTOMER_NOT_FOUND", errorCode(t, resp), route.path)
	}
}

func TestAccount_CambioDeNombre(t *testing.T) {
	s := newTestServer(t, nil)
	s.register(t, "111", "Ana")

	resp := s.do(t, http.MethodPut, "/api/account", "111", map[string]string{"name": "Ana Clara"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var got dto.AccountResponse
	decode(t, resp, &got)
	assert.Equal(t, "Ana Clara", got.Name)
	assert.Equal(t, "111", got.TaxID)
}

func TestAccount_BajaDevuelveRestantes(t *testing.T) {
	s := newTestServer(t, nil)
	s.register(t, "111", "Ana")
	s.register(t, "222", "Bia")

	resp := s.do(t, http.MethodDelete, "/api/account", "111", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var remaining []dto.AccountResponse
	decode(t, resp, &remaining)
	require.Len(t, remaining, 1)
	assert.Equal(t, "222", remaining[0].TaxID)

	resp = s.do(t, http.MethodGet, "/api/account", "111", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

// ──────────────────────────────────────────────────────────────────────────────
// Extracto
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_DepositosRetiroYSaldo(t *testing.T) {
	s := newTestServer(t, nil)
	s.register(t, "111", "Ana")

	resp := s.do(t, http.MethodPost, "/api/deposit", "111", map[string]interface{}{"amount": 100, "description": "salary"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var op dto.OperationResponse
	decode(t, resp, &op)
	assert.Equal(t, "credit", op.Type)
	assert.Equal(t, "salary", op.Description)

	resp = s.do(t, http.MethodPost, "/api/deposit", "111", map[string]interface{}{"amount": "50", "description": "gift"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(t, http.MethodPost, "/api/withdraw", "111", map[string]interface{}{"amount": 30})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.NotContains(t, fields, "description")
	var debit dto.OperationResponse
	require.NoError(t, json.Unmarshal(raw, &debit))
	assert.Equal(t, "debit", debit.Type)
	assert.Empty(t, debit.Description)

	assert.True(t, decimal.NewFromInt(120).Equal(s.balance(t, "111")))

	resp = s.do(t, http.MethodGet, "/api/statement", "111", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var ops []dto.OperationResponse
	decode(t, resp, &ops)
	require.Len(t, ops, 3)
	assert.Equal(t, []string{"credit", "credit", "debit"}, []string{ops[0].Type, ops[1].Type, ops[2].Type})
}

func TestLedger_RetiroSinFondos409(t *testing.T) {
	s := newTestServer(t, nil)
	s.register(t, "222", "Bia")

	resp := s.do(t, http.MethodPost, "/api/withdraw", "222", map[string]interface{}{"amount": 1})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_FUNDS", errorCode(t, resp))
	assert.True(t, s.balance(t, "222").IsZero())
}

func TestLedger_MontoInvalido400(t *testing.T) {
	s := newTestServer(t, nil)
	s.register(t, "111", "Ana")

	resp := s.do(t, http.MethodPost, "/api/deposit", "111", map[string]interface{}{"amount": -10})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_AMOUNT", errorCode(t, resp))

	resp = s.do(t, http.MethodPost, "/api/deposit", "111", map[string]interface{}{"amount": "diez"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", errorCode(t, resp))
}

func TestLedger_ExtractoPorDia(t *testing.T) {
	s := newTestServer(t, nil)
	s.register(t, "333", "Caio")

	resp := s.do(t, http.MethodPost, "/api/deposit", "333", map[string]interface{}{"amount": 10, "description": "día 1"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	s.now = s.now.AddDate(0, 0, 1)
	resp = s.do(t, http.MethodPost, "/api/deposit", "333", map[string]interface{}{"amount": 20, "description": "día 2"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	var ops []dto.OperationResponse
	resp = s.do(t, http.MethodGet, "/api/statement/date?date=2024-01-15", "333", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &ops)
	require.Len(t, ops, 1)
	assert.Equal(t, "día 1", ops[0].Description)

	resp = s.do(t, http.MethodGet, "/api/statement/date?date=2024-01-16", "333", nil)
	decode(t, resp, &ops)
	require.Len(t, ops, 1)
	assert.Equal(t, "día 2", ops[0].Description)

	resp = s.do(t, http.MethodGet, "/api/statement/date?date=2023-12-31", "333", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &ops)
	assert.Empty(t, ops)
}

func TestLedger_FechaInvalida400(t *testing.T) {
	s := newTestServer(t, nil)
	s.register(t, "111", "Ana")

	for _, q := range []string{"", "?date=15/01/2024"} {
		resp := s.do(t, http.MethodGet, "/api/statement/date"+q, "111", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_DATE", errorCode(t, resp))
	}
}

func TestLedger_ExportXMLyPDF(t *testing.T) {
	s := newTestServer(t, nil)
	s.register(t, "111", "Ana")
	resp := s.do(t, http.MethodPost, "/api/deposit", "111", map[string]interface{}{"amount": 10})
	resp.Body.Close()

	resp = s.do(t, http.MethodGet, "/api/statement/export?format=xml", "111", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/xml", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "extrato-111.xml")
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), "<saldo>10.00</saldo>")

	resp = s.do(t, http.MethodGet, "/api/statement/export?date=2024-01-15", "111", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF-")))

	resp = s.do(t, http.MethodGet, "/api/statement/export?format=csv", "111", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestRequestLogger_RegistraEstado(t *testing.T) {
	var buf bytes.Buffer
	s := newTestServer(t, &buf)

	resp := s.do(t, http.MethodGet, "/api/balance", "999", nil)
	resp.Body.Close()

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, float64(http.StatusNotFound), line["status"])
	assert.Equal(t, "/api/balance", line["path"])
}

type observerSpy struct {
	routes   []string
	statuses []string
}

func (o *observerSpy) ObserveHTTPRequest(_, route, status string, _ float64) {
	o.routes = append(o.routes, route)
	o.statuses = append(o.statuses, status)
}

func TestUseRequestMiddleware_PanicSeRegistraComo500(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Output: &buf})
	observer := &observerSpy{}

	app := fiber.New()
	apphttp.UseRequestMiddleware(app, log, observer)
	app.Get("/boom", func(c *fiber.Ctx) error {
		panic("fallo inesperado")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "error", line["level"])
	assert.Equal(t, float64(http.StatusInternalServerError), line["status"])
	assert.Equal(t, "/boom", line["path"])

	assert.Equal(t, []string{"/boom"}, observer.routes)
	assert.Equal(t, []string{"500"}, observer.statuses)
}
