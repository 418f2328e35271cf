package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/ledger"
	"github.com/jhoicas/Contable-api/internal/application/taxation"
	"github.com/jhoicas/Contable-api/internal/application/usecase"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/infrastructure/export"
	"github.com/jhoicas/Contable-api/internal/infrastructure/orm"
	"github.com/jhoicas/Contable-api/internal/infrastructure/orm/ormtest"
	infrapdf "github.com/jhoicas/Contable-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Contable-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Contable-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// newAPI arma la API completa sobre una base sqlite en memoria.
func newAPI(t *testing.T) *fiber.App {
	t.Helper()
	db := ormtest.New(t)
	companyRepo := orm.NewCompanyRepository(db)
	taxRepo := orm.NewTaxRepository(db)
	ruleRepo := orm.NewTaxRuleRepository(db)
	groupRepo := orm.NewGroupRepository(db)
	entityRepo := orm.NewBusinessEntityRepository(db)
	itemRepo := orm.NewItemRepository(db)
	docRepo := orm.NewDocumentRepository(db)
	accountRepo := orm.NewAccountRepository(db)
	periodRepo := orm.NewFiscalPeriodRepository(db)
	txRunner := orm.NewTxRunner(db)

	resolver := taxation.NewTaxResolutionUseCase(docRepo, taxRepo, ruleRepo, groupRepo, nil)
	ledgerUC := ledger.NewUseCase(txRunner, orm.NewLedgerRepository(db), periodRepo, accountRepo,
		docRepo, companyRepo, export.NewJournalXMLExporter(), nil)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CompanyUC:        usecase.NewCompanyUseCase(companyRepo),
		TaxUC:            usecase.NewTaxUseCase(taxRepo),
		TaxRuleUC:        usecase.NewTaxRuleUseCase(ruleRepo, taxRepo, groupRepo),
		GroupUC:          usecase.NewGroupUseCase(groupRepo, entityRepo, itemRepo),
		BusinessEntityUC: usecase.NewBusinessEntityUseCase(entityRepo),
		ItemUC:           usecase.NewItemUseCase(itemRepo),
		AccountUC:        usecase.NewAccountUseCase(accountRepo),
		FiscalPeriodUC:   usecase.NewFiscalPeriodUseCase(periodRepo),
		DocumentUC:       taxation.NewDocumentUseCase(txRunner, docRepo, entityRepo, itemRepo),
		TaxResolutionUC:  resolver,
		PDFUC:            taxation.NewPDFUseCase(resolver, docRepo, companyRepo, entityRepo, infrapdf.NewMarotoPDFGenerator()),
		LedgerUC:         ledgerUC,
		JWTSecret:        testJWTSecret,
	})
	return app
}

// call ejecuta la petición; body nil = sin cuerpo.
func call(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// created exige 201 y decodifica la respuesta.
func created(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, out)
}

// setupCompany crea la empresa por la ruta pública y devuelve un token para el rol.
func setupCompany(t *testing.T, app *fiber.App, role string) (companyID, token string) {
	t.Helper()
	var company dto.CompanyResponse
	created(t, call(t, app, http.MethodPost, "/api/companies", "", dto.CreateCompanyRequest{Name: "Comercial Andina SAS", NIT: "900123456"}), &company)
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, company.ID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return company.ID, tok
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var e dto.ErrorResponse
	decode(t, resp, &e)
	return e.Code
}

// ──────────────────────────────────────────────────────────────────────────────
// Salud y autenticación
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	app := newAPI(t)
	resp := call(t, app, http.MethodGet, "/health", "", nil)
	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, "ok", body["status"])
}

func TestRouter_RutaProtegidaSinToken(t *testing.T) {
	app := newAPI(t)
	resp := call(t, app, http.MethodGet, "/api/taxes", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", errorCode(t, resp))
}

func TestRouter_EmpresaDelTokenInexistente(t *testing.T) {
	app := newAPI(t)
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, apphttp.RoleAdmin, testIssuer, testExpMin)
	require.NoError(t, err)

	resp := call(t, app, http.MethodGet, "/api/taxes", tok, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNKNOWN_COMPANY", errorCode(t, resp))
}

func TestRouter_AuditorSoloLectura(t *testing.T) {
	app := newAPI(t)
	_, tok := setupCompany(t, app, apphttp.RoleAuditor)

	resp := call(t, app, http.MethodPost, "/api/taxes", tok, dto.CreateTaxRequest{Code: "IVA19", Name: "IVA", Kind: "percentage", Level: "line", Percentage: decimal.NewFromInt(19)})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", errorCode(t, resp))

	resp = call(t, app, http.MethodGet, "/api/taxes", tok, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Documentos e impuestos
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_ImpuestosDeDocumento(t *testing.T) {
	app := newAPI(t)
	_, tok := setupCompany(t, app, apphttp.RoleContador)

	var tax dto.TaxResponse
	created(t, call(t, app, http.MethodPost, "/api/taxes", tok, dto.CreateTaxRequest{
		Code: "IVA19", Name: "IVA 19%", Kind: "percentage", Level: "line", Percentage: decimal.NewFromInt(19),
	}), &tax)
	// Sin "enabled": la regla se crea habilitada y asigna el impuesto.
	var rule dto.TaxRuleResponse
	created(t, call(t, app, http.MethodPost, "/api/tax-rules", tok, map[string]any{
		"tax_id": tax.ID, "operation_code": entity.OperationInvoice, "priority": 10,
	}), &rule)
	assert.True(t, rule.Enabled)

	var item dto.ItemResponse
	created(t, call(t, app, http.MethodPost, "/api/items", tok, dto.CreateItemRequest{Code: "P1", Name: "Portátil", Price: decimal.NewFromInt(100000)}), &item)
	var party dto.BusinessEntityResponse
	created(t, call(t, app, http.MethodPost, "/api/business-entities", tok, dto.CreateBusinessEntityRequest{Code: "C1", Name: "Cliente Uno", TaxID: "800100200"}), &party)

	var doc dto.DocumentResponse
	created(t, call(t, app, http.MethodPost, "/api/documents", tok, dto.CreateDocumentRequest{
		OperationCode:    entity.OperationInvoice,
		BusinessEntityID: party.ID,
		Number:           "FV-1",
		Lines:            []dto.CreateDocumentLineRequest{{ItemID: item.ID, Quantity: decimal.NewFromInt(1)}},
	}), &doc)

	resp := call(t, app, http.MethodGet, "/api/documents/"+doc.ID+"/taxes", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var summary dto.DocumentTaxesResponse
	decode(t, resp, &summary)
	require.Len(t, summary.Lines, 1)
	require.Len(t, summary.Lines[0].Taxes, 1)
	assert.Equal(t, "IVA19", summary.Lines[0].Taxes[0].Code)
	assert.True(t, decimal.NewFromInt(119000).Equal(summary.GrandTotal), "grand total: %s", summary.GrandTotal)

	resp = call(t, app, http.MethodGet, "/api/documents/"+doc.ID+"/taxes/explain", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var explain dto.TaxExplanationResponse
	decode(t, resp, &explain)
	require.Len(t, explain.Lines, 1)
	require.Len(t, explain.Lines[0].Decisions, 1)
	assert.Equal(t, rule.ID, explain.Lines[0].Decisions[0].RuleID)

	resp = call(t, app, http.MethodGet, "/api/documents/"+doc.ID+"/taxes/pdf", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "impuestos_FV-1.pdf")
	pdfBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdfBytes, []byte("%PDF")))
}

func TestRouter_DocumentoInexistente(t *testing.T) {
	app := newAPI(t)
	_, tok := setupCompany(t, app, apphttp.RoleAdmin)

	resp := call(t, app, http.MethodGet, "/api/documents/no-existe/taxes", tok, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errorCode(t, resp))

	for _, path := range []string{"/api/tax-rules/abc", "/api/documents/abc", "/api/ledger/transactions/abc"} {
		resp = call(t, app, http.MethodGet, path, tok, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
		assert.Equal(t, "NOT_FOUND", errorCode(t, resp), path)
	}
}

func TestRouter_CuerpoInvalido(t *testing.T) {
	app := newAPI(t)
	_, tok := setupCompany(t, app, apphttp.RoleAdmin)

	req := httptest.NewRequest(http.MethodPost, "/api/taxes", bytes.NewBufferString("{no-json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", errorCode(t, resp))
}

// ──────────────────────────────────────────────────────────────────────────────
// Contabilidad
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_Contabilidad(t *testing.T) {
	app := newAPI(t)
	_, tok := setupCompany(t, app, apphttp.RoleContador)

	var caja, ventas dto.AccountResponse
	created(t, call(t, app, http.MethodPost, "/api/accounts", tok, dto.CreateAccountRequest{Code: "110505", Name: "Caja general", Type: "asset"}), &caja)
	created(t, call(t, app, http.MethodPost, "/api/accounts", tok, dto.CreateAccountRequest{Code: "413595", Name: "Ventas", Type: "income"}), &ventas)

	var period dto.FiscalPeriodResponse
	created(t, call(t, app, http.MethodPost, "/api/fiscal-periods", tok, map[string]string{
		"name": "2025-01", "start_date": "2025-01-01T00:00:00Z", "end_date": "2025-01-31T00:00:00Z",
	}), &period)

	entry := func(debit, credit int64) map[string]any {
		return map[string]any{"debit": decimal.NewFromInt(debit), "credit": decimal.NewFromInt(credit)}
	}
	tx := func(cajaDebit, ventasCredit int64) map[string]any {
		d, c := entry(cajaDebit, 0), entry(0, ventasCredit)
		d["account_id"], c["account_id"] = caja.ID, ventas.ID
		return map[string]any{
			"period_id": period.ID, "date": "2025-01-15T00:00:00Z", "reference": "RC-1",
			"entries": []map[string]any{d, c},
		}
	}

	t.Run("comprobante descuadrado", func(t *testing.T) {
		resp := call(t, app, http.MethodPost, "/api/ledger/transactions", tok, tx(1000, 900))
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Equal(t, "UNBALANCED_ENTRY", errorCode(t, resp))
	})

	var posted dto.LedgerTransactionResponse
	created(t, call(t, app, http.MethodPost, "/api/ledger/transactions", tok, tx(1000, 1000)), &posted)

	t.Run("listado requiere periodo", func(t *testing.T) {
		resp := call(t, app, http.MethodGet, "/api/ledger/transactions", tok, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		resp = call(t, app, http.MethodGet, "/api/ledger/transactions?period_id="+period.ID, tok, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var list []dto.LedgerTransactionResponse
		decode(t, resp, &list)
		require.Len(t, list, 1)
		assert.Equal(t, posted.ID, list[0].ID)
	})

	t.Run("balance de prueba", func(t *testing.T) {
		resp := call(t, app, http.MethodGet, "/api/fiscal-periods/"+period.ID+"/trial-balance", tok, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var tb dto.TrialBalanceResponse
		decode(t, resp, &tb)
		assert.True(t, decimal.NewFromInt(1000).Equal(tb.TotalDebit))
		assert.True(t, tb.TotalDebit.Equal(tb.TotalCredit))
	})

	t.Run("exportación XML", func(t *testing.T) {
		resp := call(t, app, http.MethodGet, "/api/fiscal-periods/"+period.ID+"/export", tok, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Disposition"), "diario_2025-01.xml")
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "RC-1")
	})

	t.Run("periodo cerrado", func(t *testing.T) {
		resp := call(t, app, http.MethodPost, "/api/fiscal-periods/"+period.ID+"/close", tok, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp = call(t, app, http.MethodPost, "/api/ledger/transactions", tok, tx(500, 500))
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "PERIOD_CLOSED", errorCode(t, resp))

		resp = call(t, app, http.MethodPost, "/api/fiscal-periods/"+period.ID+"/close", tok, nil)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "CONFLICT", errorCode(t, resp))
	})
}
