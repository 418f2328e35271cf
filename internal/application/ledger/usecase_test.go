package ledger_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/ledger"
	"github.com/jhoicas/Contable-api/internal/application/usecase"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/infrastructure/export"
	"github.com/jhoicas/Contable-api/internal/infrastructure/orm"
	"github.com/jhoicas/Contable-api/internal/infrastructure/orm/ormtest"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type env struct {
	companyID string
	ledger    *ledger.UseCase
	periods   *usecase.FiscalPeriodUseCase
	accounts  *usecase.AccountUseCase
	periodID  string
	caja      string
	ventas    string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := ormtest.New(t)
	companyRepo := orm.NewCompanyRepository(db)
	accountRepo := orm.NewAccountRepository(db)
	periodRepo := orm.NewFiscalPeriodRepository(db)

	company, err := usecase.NewCompanyUseCase(companyRepo).Create(dto.CreateCompanyRequest{Name: "Comercial Andina SAS", NIT: "900123456"})
	require.NoError(t, err)

	e := &env{
		companyID: company.ID,
		periods:   usecase.NewFiscalPeriodUseCase(periodRepo),
		accounts:  usecase.NewAccountUseCase(accountRepo),
		ledger: ledger.NewUseCase(
			orm.NewTxRunner(db),
			orm.NewLedgerRepository(db),
			periodRepo,
			accountRepo,
			orm.NewDocumentRepository(db),
			companyRepo,
			export.NewJournalXMLExporter(),
			nil,
		),
	}
	p, err := e.periods.Create(e.companyID, dto.CreateFiscalPeriodRequest{
		Name:      "2025-01",
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	e.periodID = p.ID

	caja, err := e.accounts.Create(e.companyID, dto.CreateAccountRequest{Code: "110505", Name: "Caja general", Type: "asset"})
	require.NoError(t, err)
	ventas, err := e.accounts.Create(e.companyID, dto.CreateAccountRequest{Code: "413595", Name: "Ventas", Type: "income"})
	require.NoError(t, err)
	e.caja, e.ventas = caja.ID, ventas.ID
	return e
}

func (e *env) sale(amount string, day int) dto.PostTransactionRequest {
	v := decimal.RequireFromString(amount)
	return dto.PostTransactionRequest{
		PeriodID:  e.periodID,
		Date:      time.Date(2025, 1, day, 10, 0, 0, 0, time.UTC),
		Reference: "RC-" + amount,
		Entries: []dto.LedgerEntryRequest{
			{AccountID: e.caja, Debit: v},
			{AccountID: e.ventas, Credit: v},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// PostTransaction
// ──────────────────────────────────────────────────────────────────────────────

func TestPostTransaction_Cuadrado(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	tx, err := e.ledger.PostTransaction(ctx, e.companyID, e.sale("100000", 15))
	require.NoError(t, err)
	assert.Len(t, tx.Entries, 2)
	assert.True(t, tx.TotalDebit.Equal(tx.TotalCredit))

	got, err := e.ledger.GetTransaction(e.companyID, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, "RC-100000", got.Reference)

	_, err = e.ledger.GetTransaction("otra-empresa", tx.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostTransaction_ConservaOrdenDeMovimientos(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	// Crédito primero y débitos partidos: el orden no coincide con ningún orden por cuenta o monto.
	req := dto.PostTransactionRequest{
		PeriodID:  e.periodID,
		Date:      time.Date(2025, 1, 20, 10, 0, 0, 0, time.UTC),
		Reference: "RC-ORDEN",
		Entries: []dto.LedgerEntryRequest{
			{AccountID: e.ventas, Credit: decimal.NewFromInt(100), Memo: "venta"},
			{AccountID: e.caja, Debit: decimal.NewFromInt(30), Memo: "efectivo"},
			{AccountID: e.caja, Debit: decimal.NewFromInt(50), Memo: "datáfono"},
			{AccountID: e.caja, Debit: decimal.NewFromInt(20), Memo: "transferencia"},
		},
	}
	want := []string{"venta", "efectivo", "datáfono", "transferencia"}
	memos := func(entries []dto.LedgerEntryResponse) []string {
		out := make([]string, 0, len(entries))
		for _, en := range entries {
			out = append(out, en.Memo)
		}
		return out
	}

	var ids []string
	for i := 0; i < 8; i++ {
		tx, err := e.ledger.PostTransaction(ctx, e.companyID, req)
		require.NoError(t, err)
		ids = append(ids, tx.ID)

		got, err := e.ledger.GetTransaction(e.companyID, tx.ID)
		require.NoError(t, err)
		require.Equal(t, want, memos(got.Entries), "comprobante %d", i)
		for n, en := range got.Entries {
			assert.Equal(t, n+1, en.LineNumber)
		}
	}

	list, err := e.ledger.ListByPeriod(e.companyID, e.periodID)
	require.NoError(t, err)
	require.Len(t, list, len(ids))
	for _, tx := range list {
		assert.Equal(t, want, memos(tx.Entries), "comprobante %s", tx.ID)
	}
}

func TestPostTransaction_Rechazos(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	descuadrado := e.sale("100", 15)
	descuadrado.Entries[1].Credit = decimal.NewFromInt(90)
	_, err := e.ledger.PostTransaction(ctx, e.companyID, descuadrado)
	assert.ErrorIs(t, err, domain.ErrUnbalancedEntry)

	fueraDelPeriodo := e.sale("100", 15)
	fueraDelPeriodo.Date = time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	_, err = e.ledger.PostTransaction(ctx, e.companyID, fueraDelPeriodo)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	cuentaAjena := e.sale("100", 15)
	cuentaAjena.Entries[0].AccountID = "no-existe"
	_, err = e.ledger.PostTransaction(ctx, e.companyID, cuentaAjena)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	inactive := false
	_, err = e.accounts.Update(e.companyID, e.ventas, dto.UpdateAccountRequest{Active: &inactive})
	require.NoError(t, err)
	_, err = e.ledger.PostTransaction(ctx, e.companyID, e.sale("100", 15))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cuenta inactiva")

	active := true
	_, err = e.accounts.Update(e.companyID, e.ventas, dto.UpdateAccountRequest{Active: &active})
	require.NoError(t, err)
	_, err = e.periods.Close(e.companyID, e.periodID)
	require.NoError(t, err)
	_, err = e.ledger.PostTransaction(ctx, e.companyID, e.sale("100", 15))
	assert.ErrorIs(t, err, domain.ErrPeriodClosed)

	list, err := e.ledger.ListByPeriod(e.companyID, e.periodID)
	require.NoError(t, err)
	assert.Empty(t, list, "ningún rechazo deja comprobantes")
}

// ──────────────────────────────────────────────────────────────────────────────
// TrialBalance y exportación
// ──────────────────────────────────────────────────────────────────────────────

func TestTrialBalance(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	_, err := e.ledger.PostTransaction(ctx, e.companyID, e.sale("100000", 10))
	require.NoError(t, err)
	_, err = e.ledger.PostTransaction(ctx, e.companyID, e.sale("50000", 20))
	require.NoError(t, err)

	tb, err := e.ledger.TrialBalance(e.companyID, e.periodID)
	require.NoError(t, err)
	assert.Equal(t, "2025-01", tb.PeriodName)
	require.Len(t, tb.Lines, 2)

	assert.Equal(t, "110505", tb.Lines[0].AccountCode)
	assert.True(t, decimal.NewFromInt(150000).Equal(tb.Lines[0].Balance), "activo: saldo débito")
	assert.Equal(t, "413595", tb.Lines[1].AccountCode)
	assert.True(t, decimal.NewFromInt(150000).Equal(tb.Lines[1].Balance), "ingreso: saldo crédito")
	assert.True(t, tb.TotalDebit.Equal(tb.TotalCredit))

	_, err = e.ledger.TrialBalance("otra-empresa", e.periodID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExportPeriodXML(t *testing.T) {
	e := newEnv(t)
	_, err := e.ledger.PostTransaction(context.Background(), e.companyID, e.sale("100000", 10))
	require.NoError(t, err)

	data, filename, err := e.ledger.ExportPeriodXML(e.companyID, e.periodID)
	require.NoError(t, err)
	assert.Equal(t, "diario_2025-01.xml", filename)
	xml := string(data)
	assert.True(t, strings.HasPrefix(xml, "<?xml"))
	assert.Contains(t, xml, `account="110505"`)
	assert.Contains(t, xml, `debit="100000.00"`)
}
