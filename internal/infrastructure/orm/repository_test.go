package orm_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
	"github.com/jhoicas/Contable-api/internal/infrastructure/orm"
	"github.com/jhoicas/Contable-api/internal/infrastructure/orm/ormtest"
)

func newCompany(t *testing.T, repo *orm.CompanyRepo, nit string) *entity.Company {
	t.Helper()
	now := time.Now()
	c := &entity.Company{
		ID: uuid.New().String(), Name: "Empresa " + nit, NIT: nit, Currency: "COP",
		Status: entity.CompanyStatusActive, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, repo.Create(c))
	return c
}

// ── Empresas ──────────────────────────────────────────────────────────────────

func TestCompanyRepo_CrearYConsultar(t *testing.T) {
	db := ormtest.New(t)
	repo := orm.NewCompanyRepository(db)

	c := newCompany(t, repo, "900123456")

	got, err := repo.GetByNIT("900123456")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, c.ID, got.ID)
	assert.Equal(t, "COP", got.Currency)

	missing, err := repo.GetByID(uuid.New().String())
	require.NoError(t, err)
	assert.Nil(t, missing)

	dup := *c
	dup.ID = uuid.New().String()
	assert.ErrorIs(t, repo.Create(&dup), domain.ErrDuplicate)
}

// ── Impuestos y reglas ────────────────────────────────────────────────────────

func TestTaxRuleRepo_OrdenPorPrioridadYBorrado(t *testing.T) {
	db := ormtest.New(t)
	company := newCompany(t, orm.NewCompanyRepository(db), "900000001")
	taxes := orm.NewTaxRepository(db)
	rules := orm.NewTaxRuleRepository(db)

	now := time.Now()
	iva := &entity.Tax{
		ID: uuid.New().String(), CompanyID: company.ID, Code: "IVA19", Name: "IVA 19%",
		Kind: entity.TaxKindPercentage, Level: entity.TaxLevelLine, Percentage: decimal.NewFromInt(19),
		Enabled: true, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, taxes.Create(iva))

	for _, p := range []int{30, 10, 20} {
		require.NoError(t, rules.Create(&entity.TaxRule{
			ID: uuid.New().String(), CompanyID: company.ID, TaxID: iva.ID,
			OperationCode: entity.OperationInvoice, Priority: p, Enabled: true, CreatedAt: now, UpdatedAt: now,
		}))
	}

	list, err := rules.ListByCompany(company.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []int{10, 20, 30}, []int{list[0].Priority, list[1].Priority, list[2].Priority})
	assert.Empty(t, list[0].ItemGroupID)

	require.NoError(t, rules.Delete(list[0].ID))
	byTax, err := rules.ListByTax(iva.ID)
	require.NoError(t, err)
	assert.Len(t, byTax, 2)

	got, err := taxes.GetByCompanyAndCode(company.ID, "IVA19")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, decimal.NewFromInt(19).Equal(got.Percentage))
}

// ── Grupos ────────────────────────────────────────────────────────────────────

func TestGroupRepo_Membresias(t *testing.T) {
	db := ormtest.New(t)
	companies := orm.NewCompanyRepository(db)
	a := newCompany(t, companies, "900000010")
	b := newCompany(t, companies, "900000011")
	groups := orm.NewGroupRepository(db)

	now := time.Now()
	ga := &entity.Group{ID: uuid.New().String(), CompanyID: a.ID, Code: "GC", Name: "Grandes contribuyentes", Kind: entity.GroupKindBusinessEntity, CreatedAt: now, UpdatedAt: now}
	gb := &entity.Group{ID: uuid.New().String(), CompanyID: b.ID, Code: "GC", Name: "Grandes contribuyentes", Kind: entity.GroupKindBusinessEntity, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, groups.Create(ga))
	require.NoError(t, groups.Create(gb))

	m := &entity.GroupMembership{ID: uuid.New().String(), GroupID: ga.ID, MemberID: "be-1", Kind: ga.Kind, CreatedAt: now}
	require.NoError(t, groups.AddMember(m))
	require.NoError(t, groups.AddMember(&entity.GroupMembership{ID: uuid.New().String(), GroupID: gb.ID, MemberID: "be-2", Kind: gb.Kind, CreatedAt: now}))

	dup := *m
	dup.ID = uuid.New().String()
	assert.ErrorIs(t, groups.AddMember(&dup), domain.ErrDuplicate)

	list, err := groups.ListMembershipsByCompany(a.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "be-1", list[0].MemberID)

	byKind, err := groups.ListByCompany(a.ID, entity.GroupKindItem)
	require.NoError(t, err)
	assert.Empty(t, byKind)

	require.NoError(t, groups.RemoveMember(ga.ID, "be-1"))
	assert.ErrorIs(t, groups.RemoveMember(ga.ID, "be-1"), domain.ErrNotFound)
}

// ── Documentos ────────────────────────────────────────────────────────────────

func TestTxRunner_RunDocumentHaceRollback(t *testing.T) {
	db := ormtest.New(t)
	company := newCompany(t, orm.NewCompanyRepository(db), "900000020")
	runner := orm.NewTxRunner(db)
	docs := orm.NewDocumentRepository(db)

	now := time.Now()
	doc := &entity.Document{ID: uuid.New().String(), CompanyID: company.ID, OperationCode: entity.OperationInvoice, Date: now, CreatedAt: now, UpdatedAt: now}
	boom := errors.New("boom")
	err := runner.RunDocument(context.Background(), func(repo repository.DocumentRepository) error {
		require.NoError(t, repo.Create(doc))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := docs.GetByID(doc.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	err = runner.RunDocument(context.Background(), func(repo repository.DocumentRepository) error {
		if err := repo.Create(doc); err != nil {
			return err
		}
		for i := 2; i >= 1; i-- {
			if err := repo.CreateLine(&entity.DocumentLine{
				ID: uuid.New().String(), DocumentID: doc.ID, LineNumber: i, ItemID: "item-1",
				Quantity: decimal.NewFromInt(int64(i)), UnitPrice: decimal.NewFromInt(1000),
			}); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	lines, err := docs.GetLines(doc.ID)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, 1, lines[0].LineNumber)
	assert.True(t, decimal.NewFromInt(2000).Equal(lines[1].Subtotal()))
}

// ── Libro mayor ───────────────────────────────────────────────────────────────

func TestLedgerRepo_ComprobanteYBalance(t *testing.T) {
	db := ormtest.New(t)
	company := newCompany(t, orm.NewCompanyRepository(db), "900000030")
	accounts := orm.NewAccountRepository(db)
	periods := orm.NewFiscalPeriodRepository(db)
	ledgerRepo := orm.NewLedgerRepository(db)

	now := time.Now()
	caja := &entity.Account{ID: uuid.New().String(), CompanyID: company.ID, Code: "110505", Name: "Caja", Type: entity.AccountAsset, Active: true, CreatedAt: now, UpdatedAt: now}
	ventas := &entity.Account{ID: uuid.New().String(), CompanyID: company.ID, Code: "413595", Name: "Ventas", Type: entity.AccountIncome, Active: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, accounts.Create(caja))
	require.NoError(t, accounts.Create(ventas))

	period := &entity.FiscalPeriod{
		ID: uuid.New().String(), CompanyID: company.ID, Name: "2025-01",
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		Status: entity.PeriodStatusOpen, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, periods.Create(period))

	post := func(amount int64) *entity.LedgerTransaction {
		id := uuid.New().String()
		tx := &entity.LedgerTransaction{
			ID: id, CompanyID: company.ID, PeriodID: period.ID, Date: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), CreatedAt: now,
			Entries: []*entity.LedgerEntry{
				{ID: uuid.New().String(), TransactionID: id, LineNumber: 1, AccountID: ventas.ID, Credit: decimal.NewFromInt(amount)},
				{ID: uuid.New().String(), TransactionID: id, LineNumber: 2, AccountID: caja.ID, Debit: decimal.NewFromInt(amount)},
			},
		}
		require.NoError(t, ledgerRepo.Create(tx))
		return tx
	}
	first := post(100)
	post(50)

	got, err := ledgerRepo.GetByID(first.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Entries, 2)
	assert.Equal(t, first.Entries[0].ID, got.Entries[0].ID)
	assert.Equal(t, first.Entries[1].ID, got.Entries[1].ID)
	debit, credit := got.Totals()
	assert.True(t, debit.Equal(credit))

	list, err := ledgerRepo.ListByPeriod(period.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	balances, err := ledgerRepo.TrialBalance(period.ID)
	require.NoError(t, err)
	require.Len(t, balances, 2)
	assert.Equal(t, caja.ID, balances[0].AccountID)
	assert.True(t, decimal.NewFromInt(150).Equal(balances[0].Debit))
	assert.True(t, decimal.NewFromInt(150).Equal(balances[1].Credit))

	chart, err := accounts.ListByCompany(company.ID)
	require.NoError(t, err)
	require.Len(t, chart, 2)
	assert.Equal(t, "110505", chart[0].Code)

	period.Status = entity.PeriodStatusClosed
	require.NoError(t, periods.Update(period))
	reloaded, err := periods.GetByID(period.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsOpen())
}
